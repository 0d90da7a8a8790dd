package tournament

import (
	"context"
	"time"

	"github.com/saradorri/ffarena/internal/domain"
	"github.com/saradorri/ffarena/internal/infrastructure/logger"
	"gorm.io/gorm"
)

// Options holds tunables of the tournament usecase
type Options struct {
	// CancelTTL is how long a cancelled tournament is kept before the purge removes it
	CancelTTL time.Duration
}

// DefaultOptions keeps cancelled tournaments for 15 minutes
var DefaultOptions = Options{CancelTTL: 15 * time.Minute}

// TournamentUseCase implements domain.TournamentUseCase
type TournamentUseCase struct {
	tournamentRepo domain.TournamentRepository
	userRepo       domain.UserRepository
	outboxRepo     domain.OutboxRepository
	ledger         domain.LedgerUseCase
	settlement     domain.SettlementUseCase
	db             *gorm.DB
	logger         *logger.Logger
	opts           Options
	now            func() time.Time
}

// NewTournamentUseCase creates a new tournament usecase
func NewTournamentUseCase(
	tournamentRepo domain.TournamentRepository,
	userRepo domain.UserRepository,
	outboxRepo domain.OutboxRepository,
	ledger domain.LedgerUseCase,
	settlement domain.SettlementUseCase,
	db *gorm.DB,
	logger *logger.Logger,
	opts Options,
) domain.TournamentUseCase {
	if opts.CancelTTL <= 0 {
		opts.CancelTTL = DefaultOptions.CancelTTL
	}
	logger.Info("TournamentUseCase initialized successfully")
	return &TournamentUseCase{
		tournamentRepo: tournamentRepo,
		userRepo:       userRepo,
		outboxRepo:     outboxRepo,
		ledger:         ledger,
		settlement:     settlement,
		db:             db,
		logger:         logger,
		opts:           opts,
		now:            time.Now,
	}
}

// Create validates and stores a new tournament
func (uc *TournamentUseCase) Create(ctx context.Context, input domain.CreateTournamentInput) (*domain.Tournament, error) {
	return uc.create(ctx, input)
}

// Get returns a tournament with its participants and winners
func (uc *TournamentUseCase) Get(ctx context.Context, id string) (*domain.TournamentDetails, error) {
	return uc.get(ctx, id)
}

// List returns tournaments matching the filter
func (uc *TournamentUseCase) List(ctx context.Context, filter domain.TournamentFilter) ([]*domain.Tournament, error) {
	return uc.list(ctx, filter)
}

// Join adds a player to a tournament and grows the prize pool by the entry fee
func (uc *TournamentUseCase) Join(ctx context.Context, tournamentID, userID, ign string) (*domain.Tournament, error) {
	return uc.join(ctx, tournamentID, userID, ign)
}

// Cancel lets the host cancel a tournament and refunds every participant
func (uc *TournamentUseCase) Cancel(ctx context.Context, tournamentID, callerID string) (*domain.CancelResult, error) {
	return uc.cancel(ctx, tournamentID, callerID)
}

// Start moves a tournament to ongoing
func (uc *TournamentUseCase) Start(ctx context.Context, tournamentID, callerID string) (*domain.Tournament, error) {
	return uc.transition(ctx, tournamentID, callerID, domain.StatusOngoing, "start")
}

// End closes an ongoing tournament
func (uc *TournamentUseCase) End(ctx context.Context, tournamentID, callerID string) (*domain.Tournament, error) {
	return uc.transition(ctx, tournamentID, callerID, domain.StatusEnded, "end")
}

// DistributePrize pays a winner out of the prize pool
func (uc *TournamentUseCase) DistributePrize(ctx context.Context, input domain.DistributePrizeInput) (*domain.Winner, error) {
	return uc.distributePrize(ctx, input)
}
