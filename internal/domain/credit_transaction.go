package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// CreditTransactionType represents the reason of a balance mutation
type CreditTransactionType string

const (
	CreditTxTournamentRefund             CreditTransactionType = "tournament_refund"
	CreditTxTournamentCancellationRefund CreditTransactionType = "tournament_cancellation_refund"
	CreditTxHostPenalty                  CreditTransactionType = "host_penalty"
	CreditTxTournamentWin                CreditTransactionType = "tournament_win"
	CreditTxTopUp                        CreditTransactionType = "credit_topup"
	CreditTxManualAdjustment             CreditTransactionType = "manual_adjustment"
)

// CreditTransaction is the append-only audit record of exactly one balance mutation.
// Rows are never updated or deleted.
type CreditTransaction struct {
	ID            string                `json:"transaction_id" gorm:"primaryKey;column:id;type:varchar(64)"`
	UserID        string                `json:"user_id" gorm:"index;not null;type:varchar(128)"`
	Type          CreditTransactionType `json:"type" gorm:"type:varchar(48);not null"`
	Amount        int64                 `json:"amount" gorm:"type:bigint;not null"`
	BalanceBefore int64                 `json:"balance_before" gorm:"type:bigint;not null"`
	BalanceAfter  int64                 `json:"balance_after" gorm:"type:bigint;not null"`
	WalletType    WalletType            `json:"wallet_type" gorm:"type:varchar(32);not null"`
	TournamentID  *string               `json:"tournament_id,omitempty" gorm:"index;type:varchar(64)"`
	CreatedAt     time.Time             `json:"created_at" gorm:"not null"`
}

// TableName specifies the table name for CreditTransaction
func (c CreditTransaction) TableName() string {
	return "credit_transactions"
}

// CreditTransactionRepository defines the interface for the credit transaction log
type CreditTransactionRepository interface {
	Create(ctx context.Context, transaction *CreditTransaction) error
	ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*CreditTransaction, error)
	ListByTournamentID(ctx context.Context, tournamentID string) ([]*CreditTransaction, error)
	SumByWallet(ctx context.Context, userID string) (map[WalletType]int64, error)
	WithTransaction(tx *gorm.DB) CreditTransactionRepository
}

// BalanceAdjustment describes one requested balance mutation
type BalanceAdjustment struct {
	UserID       string
	Wallet       WalletType
	Delta        int64
	Type         CreditTransactionType
	TournamentID string
}

// LedgerUseCase defines the ledger primitive
type LedgerUseCase interface {
	AdjustBalance(ctx context.Context, adj BalanceAdjustment) (string, error)
	AdjustBalanceTx(ctx context.Context, tx *gorm.DB, adj BalanceAdjustment) (*CreditTransaction, error)
}
