package domain

import (
	"context"

	"gorm.io/gorm"
)

// RefundResult reports the outcome of a batch refund
type RefundResult struct {
	Count int
	Total int64
}

// SettlementUseCase moves money for a tournament already locked by the caller.
// Every method runs inside the caller's transaction and writes its notification outbox rows there too.
type SettlementUseCase interface {
	RefundParticipantsTx(ctx context.Context, tx *gorm.DB, tournament *Tournament, txType CreditTransactionType) (*RefundResult, error)
	PenalizeHostTx(ctx context.Context, tx *gorm.DB, tournament *Tournament, amount int64) (*CreditTransaction, error)
}
