package user

import (
	"context"
	"net/http"

	"github.com/saradorri/ffarena/internal/domain"
	"github.com/saradorri/ffarena/internal/infrastructure/logger"
	"go.uber.org/zap"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// UserUseCase implements domain.UserUseCase
type UserUseCase struct {
	userRepo domain.UserRepository
	txRepo   domain.CreditTransactionRepository
	logger   *logger.Logger
}

// NewUserUseCase creates a new user use case
func NewUserUseCase(userRepo domain.UserRepository, txRepo domain.CreditTransactionRepository, logger *logger.Logger) domain.UserUseCase {
	return &UserUseCase{
		userRepo: userRepo,
		txRepo:   txRepo,
		logger:   logger,
	}
}

// GetWallet returns both balances of a user
func (uc *UserUseCase) GetWallet(ctx context.Context, userID string) (*domain.Wallet, error) {
	uc.logger.Info("Retrieving wallet", zap.String("userID", userID))

	user, err := uc.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &domain.Wallet{
		UserID:            user.ID,
		TournamentCredits: user.TournamentCredits,
		Earnings:          user.Earnings,
	}, nil
}

// ListTransactions returns the credit transactions of a user, newest first
func (uc *UserUseCase) ListTransactions(ctx context.Context, userID string, limit, offset int) ([]*domain.CreditTransaction, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}

	if _, err := uc.getUser(ctx, userID); err != nil {
		return nil, err
	}

	transactions, err := uc.txRepo.ListByUserID(ctx, userID, limit, offset)
	if err != nil {
		uc.logger.Error("Failed to list credit transactions", zap.String("userID", userID), zap.Error(err))
		return nil, domain.NewDatabaseError("list credit transactions", err)
	}
	return transactions, nil
}

// Reconcile replays the transaction log and compares the totals with the cached balances
func (uc *UserUseCase) Reconcile(ctx context.Context, userID string) (*domain.Reconciliation, error) {
	user, err := uc.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	totals, err := uc.txRepo.SumByWallet(ctx, userID)
	if err != nil {
		uc.logger.Error("Failed to sum credit transactions", zap.String("userID", userID), zap.Error(err))
		return nil, domain.NewDatabaseError("sum credit transactions", err)
	}

	result := &domain.Reconciliation{
		UserID:            user.ID,
		TournamentCredits: user.TournamentCredits,
		LedgerCredits:     totals[domain.WalletTournamentCredits],
		Earnings:          user.Earnings,
		LedgerEarnings:    totals[domain.WalletEarnings],
	}
	result.Consistent = result.TournamentCredits == result.LedgerCredits && result.Earnings == result.LedgerEarnings

	if !result.Consistent {
		uc.logger.Warn("Wallet drift detected",
			zap.String("userID", user.ID),
			zap.Int64("tournamentCredits", result.TournamentCredits),
			zap.Int64("ledgerCredits", result.LedgerCredits),
			zap.Int64("earnings", result.Earnings),
			zap.Int64("ledgerEarnings", result.LedgerEarnings))
	}
	return result, nil
}

func (uc *UserUseCase) getUser(ctx context.Context, userID string) (*domain.User, error) {
	if userID == "" {
		return nil, domain.NewAppError(domain.ErrCodeInvalidFormat, "Invalid user ID", http.StatusBadRequest, nil)
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		uc.logger.Error("Failed to get user from database", zap.String("userID", userID), zap.Error(err))
		return nil, domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to get user", http.StatusInternalServerError, err)
	}
	if user == nil {
		uc.logger.Warn("User not found", zap.String("userID", userID))
		return nil, domain.NewAppError(domain.ErrCodeUserNotFound, "User not found", http.StatusNotFound, nil)
	}
	return user, nil
}
