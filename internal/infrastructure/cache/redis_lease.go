package cache

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/saradorri/ffarena/internal/domain"
	"github.com/saradorri/ffarena/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// releaseScript deletes the key only while it still holds our token
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// RedisLease is a domain.SweepLease shared by every replica pointing at the same redis
type RedisLease struct {
	client *redis.Client
	logger *logger.Logger
}

var _ domain.SweepLease = (*RedisLease)(nil)

// NewRedisClient connects to redis
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

// NewRedisLease creates a lease on top of an existing client
func NewRedisLease(client *redis.Client, logger *logger.Logger) *RedisLease {
	return &RedisLease{
		client: client,
		logger: logger,
	}
}

// Acquire sets key to a fresh token if absent. The lease expires after ttl even if release is never called.
func (l *RedisLease) Acquire(ctx context.Context, key string, ttl time.Duration) (func(), bool, error) {
	token := uuid.NewString()
	ok, err := l.client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}

	release := func() {
		// the caller's context may already be done when the run finishes
		releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := releaseScript.Run(releaseCtx, l.client, []string{key}, token).Err(); releaseFailed(err) {
			l.logger.Warn("Failed to release lease", zap.String("key", key), zap.Error(err))
		}
	}
	return release, true, nil
}

// releaseFailed ignores the nil reply a script returns when the key already expired
func releaseFailed(err error) bool {
	return err != nil && !errors.Is(err, redis.Nil)
}

// Ping checks the connection
func (l *RedisLease) Ping(ctx context.Context) error {
	return l.client.Ping(ctx).Err()
}

// Close closes the underlying client
func (l *RedisLease) Close() error {
	return l.client.Close()
}
