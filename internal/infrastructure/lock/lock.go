package lock

import (
	"context"
	"sync"
	"time"

	"github.com/saradorri/ffarena/internal/domain"
	"github.com/saradorri/ffarena/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// KeyedLockManager is an in-process domain.SweepLease backed by one mutex per key.
// It only serialises runs inside a single replica.
type KeyedLockManager struct {
	locks  sync.Map // map[string]*sync.Mutex
	logger *logger.Logger
}

var _ domain.SweepLease = (*KeyedLockManager)(nil)

// NewKeyedLockManager creates a new in-process lock manager
func NewKeyedLockManager(logger *logger.Logger) *KeyedLockManager {
	logger.Info("KeyedLockManager initialized")
	return &KeyedLockManager{
		logger: logger,
	}
}

// Acquire takes the lock for key without blocking. The ttl is ignored; the holder must call release.
func (m *KeyedLockManager) Acquire(ctx context.Context, key string, _ time.Duration) (func(), bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	if !m.TryLock(key) {
		return nil, false, nil
	}

	var once sync.Once
	release := func() {
		once.Do(func() { m.Unlock(key) })
	}
	return release, true, nil
}

// Unlock releases the lock for the given key
func (m *KeyedLockManager) Unlock(key string) {
	muInterface, ok := m.locks.Load(key)
	if !ok {
		m.logger.Warn("No lock found during unlock", zap.String("key", key))
		return
	}
	mu := muInterface.(*sync.Mutex)
	mu.Unlock()
	m.logger.Debug("Successfully released lock", zap.String("key", key))
}

// TryLock attempts to acquire a lock without blocking
func (m *KeyedLockManager) TryLock(key string) bool {
	mu := m.getOrCreateMutex(key)
	acquired := mu.TryLock()
	if acquired {
		m.logger.Debug("Successfully acquired try-lock", zap.String("key", key))
	} else {
		m.logger.Debug("Failed to acquire try-lock: lock is busy", zap.String("key", key))
	}
	return acquired
}

func (m *KeyedLockManager) getOrCreateMutex(key string) *sync.Mutex {
	mu, ok := m.locks.Load(key)
	if ok {
		return mu.(*sync.Mutex)
	}

	newMu := &sync.Mutex{}
	actual, _ := m.locks.LoadOrStore(key, newMu)
	return actual.(*sync.Mutex)
}
