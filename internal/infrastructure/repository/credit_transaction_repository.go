package repository

import (
	"context"
	"time"

	"github.com/saradorri/ffarena/internal/domain"
	"gorm.io/gorm"
)

// CreditTransactionRepository implements domain.CreditTransactionRepository.
// It only ever inserts; there is no update or delete path.
type CreditTransactionRepository struct {
	db *gorm.DB
}

// NewCreditTransactionRepository creates a new credit transaction repository
func NewCreditTransactionRepository(db *gorm.DB) domain.CreditTransactionRepository {
	return &CreditTransactionRepository{db: db}
}

// WithTransaction returns a repository bound to the given transaction
func (r *CreditTransactionRepository) WithTransaction(tx *gorm.DB) domain.CreditTransactionRepository {
	return &CreditTransactionRepository{db: tx}
}

// Create appends a transaction record
func (r *CreditTransactionRepository) Create(ctx context.Context, transaction *domain.CreditTransaction) error {
	if transaction.CreatedAt.IsZero() {
		transaction.CreatedAt = time.Now()
	}
	return r.db.WithContext(ctx).Create(transaction).Error
}

// ListByUserID retrieves transactions for a user with pagination, newest first
func (r *CreditTransactionRepository) ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*domain.CreditTransaction, error) {
	var transactions []*domain.CreditTransaction
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&transactions)

	if result.Error != nil {
		return nil, result.Error
	}

	return transactions, nil
}

// ListByTournamentID retrieves every transaction that references a tournament
func (r *CreditTransactionRepository) ListByTournamentID(ctx context.Context, tournamentID string) ([]*domain.CreditTransaction, error) {
	var transactions []*domain.CreditTransaction
	result := r.db.WithContext(ctx).
		Where("tournament_id = ?", tournamentID).
		Order("created_at ASC").
		Find(&transactions)

	if result.Error != nil {
		return nil, result.Error
	}

	return transactions, nil
}

// SumByWallet replays the log of a user into per-wallet totals
func (r *CreditTransactionRepository) SumByWallet(ctx context.Context, userID string) (map[domain.WalletType]int64, error) {
	var rows []struct {
		WalletType domain.WalletType
		Total      int64
	}
	result := r.db.WithContext(ctx).
		Model(&domain.CreditTransaction{}).
		Select("wallet_type, COALESCE(SUM(amount), 0) AS total").
		Where("user_id = ?", userID).
		Group("wallet_type").
		Scan(&rows)

	if result.Error != nil {
		return nil, result.Error
	}

	totals := make(map[domain.WalletType]int64, len(rows))
	for _, row := range rows {
		totals[row.WalletType] = row.Total
	}
	return totals, nil
}
