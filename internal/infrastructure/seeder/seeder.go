package seeder

import (
	"context"

	"github.com/saradorri/ffarena/internal/domain"
	"github.com/saradorri/ffarena/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// SeedUser describes one demo account
type SeedUser struct {
	ID          string
	Email       string
	DisplayName string
	Credits     int64
}

// DefaultUsers are the demo accounts created by cmd/seed
var DefaultUsers = []SeedUser{
	{ID: "admin", Email: "admin@ffarena.local", DisplayName: "Arena Admin", Credits: 0},
	{ID: "host-1", Email: "host1@ffarena.local", DisplayName: "BoyahHost", Credits: 100},
	{ID: "player-1", Email: "player1@ffarena.local", DisplayName: "HeadshotKing", Credits: 50},
	{ID: "player-2", Email: "player2@ffarena.local", DisplayName: "ClutchQueen", Credits: 50},
	{ID: "player-3", Email: "player3@ffarena.local", DisplayName: "", Credits: 50},
}

// Seeder handles database seeding operations
type Seeder struct {
	userRepo domain.UserRepository
	ledger   domain.LedgerUseCase
	logger   *logger.Logger
}

// NewSeeder creates a new seeder instance
func NewSeeder(userRepo domain.UserRepository, ledger domain.LedgerUseCase, logger *logger.Logger) *Seeder {
	return &Seeder{
		userRepo: userRepo,
		ledger:   ledger,
		logger:   logger,
	}
}

// SeedUsers creates missing users and tops up their credits through the ledger, so
// reconciliation holds for seeded accounts too. Existing users are left untouched.
func (s *Seeder) SeedUsers(ctx context.Context, users []SeedUser) (int, error) {
	s.logger.Info("Seeding users", zap.Int("count", len(users)))

	created := 0
	for _, u := range users {
		existingUser, err := s.userRepo.GetByID(ctx, u.ID)
		if err != nil {
			s.logger.Warn("Error checking existing user, skipping", zap.String("userID", u.ID), zap.Error(err))
			continue
		}
		if existingUser != nil {
			s.logger.Info("User already exists, skipping", zap.String("userID", u.ID))
			continue
		}

		user := &domain.User{
			ID:          u.ID,
			Email:       u.Email,
			DisplayName: u.DisplayName,
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			s.logger.Error("Error creating user", zap.String("userID", u.ID), zap.Error(err))
			return created, err
		}

		if u.Credits > 0 {
			if _, err := s.ledger.AdjustBalance(ctx, domain.BalanceAdjustment{
				UserID: u.ID,
				Wallet: domain.WalletTournamentCredits,
				Delta:  u.Credits,
				Type:   domain.CreditTxTopUp,
			}); err != nil {
				s.logger.Error("Error topping up user", zap.String("userID", u.ID), zap.Error(err))
				return created, err
			}
		}

		created++
		s.logger.Info("Successfully created user", zap.String("userID", u.ID), zap.Int64("credits", u.Credits))
	}

	s.logger.Info("User seeding completed successfully", zap.Int("created", created))
	return created, nil
}
