package moderator

import (
	"context"
	"net/http"
	"time"

	"github.com/saradorri/ffarena/internal/domain"
	"github.com/saradorri/ffarena/internal/infrastructure/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Lease keys, one per phase
const (
	SweepLeaseKey        = "ffarena:moderator:sweep"
	NotificationLeaseKey = "ffarena:moderator:notifications"
	PurgeLeaseKey        = "ffarena:moderator:purge"
)

// Options holds the moderator tunables
type Options struct {
	Thresholds    domain.ModeratorThresholds
	PenaltyAmount int64
	CancelTTL     time.Duration
	BatchSize     int
	LeaseTTL      time.Duration
}

// DefaultOptions match the production rules: 10 credit penalty after 10 minutes, cancellation after 20
var DefaultOptions = Options{
	Thresholds:    domain.DefaultModeratorThresholds,
	PenaltyAmount: 10,
	CancelTTL:     15 * time.Minute,
	BatchSize:     100,
	LeaseTTL:      2 * time.Minute,
}

// ModeratorUseCase implements domain.ModeratorUseCase
type ModeratorUseCase struct {
	tournamentRepo domain.TournamentRepository
	txRepo         domain.CreditTransactionRepository
	settlement     domain.SettlementUseCase
	lease          domain.SweepLease
	archiver       domain.TournamentArchiver
	db             *gorm.DB
	logger         *logger.Logger
	opts           Options
}

// NewModeratorUseCase creates a new moderator usecase
func NewModeratorUseCase(
	tournamentRepo domain.TournamentRepository,
	txRepo domain.CreditTransactionRepository,
	settlement domain.SettlementUseCase,
	lease domain.SweepLease,
	archiver domain.TournamentArchiver,
	db *gorm.DB,
	logger *logger.Logger,
	opts Options,
) domain.ModeratorUseCase {
	if opts.Thresholds.PenaltyAfter <= 0 {
		opts.Thresholds.PenaltyAfter = DefaultOptions.Thresholds.PenaltyAfter
	}
	if opts.Thresholds.CancelAfter <= 0 {
		opts.Thresholds.CancelAfter = DefaultOptions.Thresholds.CancelAfter
	}
	if opts.PenaltyAmount <= 0 {
		opts.PenaltyAmount = DefaultOptions.PenaltyAmount
	}
	if opts.CancelTTL <= 0 {
		opts.CancelTTL = DefaultOptions.CancelTTL
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = DefaultOptions.BatchSize
	}
	if opts.LeaseTTL <= 0 {
		opts.LeaseTTL = DefaultOptions.LeaseTTL
	}
	logger.Info("ModeratorUseCase initialized successfully",
		zap.Duration("penaltyAfter", opts.Thresholds.PenaltyAfter),
		zap.Duration("cancelAfter", opts.Thresholds.CancelAfter),
		zap.Int64("penaltyAmount", opts.PenaltyAmount))
	return &ModeratorUseCase{
		tournamentRepo: tournamentRepo,
		txRepo:         txRepo,
		settlement:     settlement,
		lease:          lease,
		archiver:       archiver,
		db:             db,
		logger:         logger,
		opts:           opts,
	}
}

// RunModeratorSweep flags late or under-filled tournaments for penalty or cancellation
func (uc *ModeratorUseCase) RunModeratorSweep(ctx context.Context, now time.Time) (*domain.SweepResult, error) {
	return uc.sweep(ctx, now)
}

// RunNotificationProcessor executes flagged penalties and cancellations
func (uc *ModeratorUseCase) RunNotificationProcessor(ctx context.Context, now time.Time) (*domain.NotificationResult, error) {
	return uc.processNotifications(ctx, now)
}

// PurgeExpired archives and deletes cancelled tournaments past their TTL
func (uc *ModeratorUseCase) PurgeExpired(ctx context.Context, now time.Time) (*domain.PurgeResult, error) {
	return uc.purge(ctx, now)
}

// acquireLease takes the phase lease. A lease backend failure is logged and the run proceeds unleased.
func (uc *ModeratorUseCase) acquireLease(ctx context.Context, key string) (func(), bool) {
	release, acquired, err := uc.lease.Acquire(ctx, key, uc.opts.LeaseTTL)
	if err != nil {
		uc.logger.Warn("Lease backend unavailable, running without lease", zap.String("key", key), zap.Error(err))
		return func() {}, true
	}
	if !acquired {
		uc.logger.Info("Lease held elsewhere, skipping run", zap.String("key", key))
		return nil, false
	}
	return release, true
}

// inTransaction runs fn in one database transaction
func (uc *ModeratorUseCase) inTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	err := uc.db.WithContext(ctx).Transaction(fn)
	if err == nil {
		return nil
	}
	if _, ok := domain.IsAppError(err); ok {
		return err
	}
	return domain.NewAppError(domain.ErrCodeDatabaseConnection, "Failed to commit transaction", http.StatusInternalServerError, err)
}
