package ledger

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/saradorri/ffarena/internal/domain"
	"github.com/saradorri/ffarena/internal/infrastructure/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// LedgerUseCase owns every balance mutation. Each mutation writes the new wallet value
// and one credit transaction record in the same database transaction.
type LedgerUseCase struct {
	userRepo domain.UserRepository
	txRepo   domain.CreditTransactionRepository
	db       *gorm.DB
	logger   *logger.Logger
}

// NewLedgerUseCase creates a new ledger usecase
func NewLedgerUseCase(
	userRepo domain.UserRepository,
	txRepo domain.CreditTransactionRepository,
	db *gorm.DB,
	logger *logger.Logger,
) domain.LedgerUseCase {
	logger.Info("LedgerUseCase initialized successfully")
	return &LedgerUseCase{
		userRepo: userRepo,
		txRepo:   txRepo,
		db:       db,
		logger:   logger,
	}
}

// AdjustBalance applies a signed delta to one wallet in its own transaction and returns the record id
func (uc *LedgerUseCase) AdjustBalance(ctx context.Context, adj domain.BalanceAdjustment) (string, error) {
	var record *domain.CreditTransaction
	err := uc.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		record, err = uc.AdjustBalanceTx(ctx, tx, adj)
		return err
	})
	if err != nil {
		return "", err
	}
	return record.ID, nil
}

// AdjustBalanceTx applies a signed delta inside an existing transaction.
// The resulting balance is allowed to be negative.
func (uc *LedgerUseCase) AdjustBalanceTx(ctx context.Context, tx *gorm.DB, adj domain.BalanceAdjustment) (*domain.CreditTransaction, error) {
	if err := validateAdjustment(adj); err != nil {
		return nil, err
	}

	txUserRepo := uc.userRepo.WithTransaction(tx)
	txCreditRepo := uc.txRepo.WithTransaction(tx)

	user, err := txUserRepo.GetByIDForUpdate(ctx, adj.UserID)
	if err != nil {
		uc.logger.Error("Failed to lock user", zap.String("userID", adj.UserID), zap.Error(err))
		return nil, domain.NewDatabaseError("lock user", err)
	}
	if user == nil {
		uc.logger.Warn("User not found for balance adjustment", zap.String("userID", adj.UserID))
		return nil, domain.NewAppError(domain.ErrCodeUserNotFound, "User not found", http.StatusNotFound, nil)
	}

	before := user.Balance(adj.Wallet)
	after := before + adj.Delta

	if err := txUserRepo.UpdateBalance(ctx, user.ID, adj.Wallet, after); err != nil {
		uc.logger.Error("Failed to update balance", zap.String("userID", user.ID), zap.Error(err))
		return nil, domain.NewDatabaseError("update balance", err)
	}
	user.SetBalance(adj.Wallet, after)

	record := &domain.CreditTransaction{
		ID:            uuid.NewString(),
		UserID:        user.ID,
		Type:          adj.Type,
		Amount:        adj.Delta,
		BalanceBefore: before,
		BalanceAfter:  after,
		WalletType:    adj.Wallet,
	}
	if adj.TournamentID != "" {
		tournamentID := adj.TournamentID
		record.TournamentID = &tournamentID
	}

	if err := txCreditRepo.Create(ctx, record); err != nil {
		uc.logger.Error("Failed to append credit transaction", zap.String("userID", user.ID), zap.Error(err))
		return nil, domain.NewDatabaseError("create credit transaction", err)
	}

	uc.logger.Info("Balance adjusted",
		zap.String("userID", user.ID),
		zap.String("wallet", string(adj.Wallet)),
		zap.String("type", string(adj.Type)),
		zap.Int64("delta", adj.Delta),
		zap.Int64("balanceAfter", after))

	return record, nil
}

func validateAdjustment(adj domain.BalanceAdjustment) error {
	if adj.UserID == "" {
		return domain.NewValidationError("user_id", "is required")
	}
	if !adj.Wallet.Valid() {
		return domain.NewValidationError("wallet", "must be tournament_credits or earnings")
	}
	if adj.Type == "" {
		return domain.NewValidationError("type", "is required")
	}
	return nil
}
