package tournament

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/saradorri/ffarena/internal/domain"
	"github.com/saradorri/ffarena/internal/infrastructure/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Settlement implements domain.SettlementUseCase
type Settlement struct {
	tournamentRepo domain.TournamentRepository
	outboxRepo     domain.OutboxRepository
	ledger         domain.LedgerUseCase
	logger         *logger.Logger
}

// NewSettlement creates a new settlement usecase
func NewSettlement(
	tournamentRepo domain.TournamentRepository,
	outboxRepo domain.OutboxRepository,
	ledger domain.LedgerUseCase,
	logger *logger.Logger,
) domain.SettlementUseCase {
	return &Settlement{
		tournamentRepo: tournamentRepo,
		outboxRepo:     outboxRepo,
		ledger:         ledger,
		logger:         logger,
	}
}

// RefundParticipantsTx refunds the entry fee to every participant in one pass and
// queues one cancellation email per participant. The caller persists the tournament.
func (s *Settlement) RefundParticipantsTx(ctx context.Context, tx *gorm.DB, t *domain.Tournament, txType domain.CreditTransactionType) (*domain.RefundResult, error) {
	participants, err := s.tournamentRepo.WithTransaction(tx).ListParticipants(ctx, t.ID)
	if err != nil {
		s.logger.Error("Failed to list participants", zap.String("tournamentID", t.ID), zap.Error(err))
		return nil, domain.NewDatabaseError("list participants", err)
	}

	owed := t.EntryFee * int64(len(participants))
	if owed > t.CurrentPrizePool {
		s.logger.Warn("Refund total exceeds prize pool",
			zap.String("tournamentID", t.ID),
			zap.Int64("owed", owed),
			zap.Int64("pool", t.CurrentPrizePool))
		return nil, domain.NewAppError(domain.ErrCodeInsufficientPool,
			fmt.Sprintf("Prize pool of %d cannot cover refunds of %d", t.CurrentPrizePool, owed),
			http.StatusConflict, nil)
	}

	txOutboxRepo := s.outboxRepo.WithTransaction(tx)
	result := &domain.RefundResult{}
	for _, p := range participants {
		if t.EntryFee > 0 {
			if _, err := s.ledger.AdjustBalanceTx(ctx, tx, domain.BalanceAdjustment{
				UserID:       p.AuthUID,
				Wallet:       domain.WalletTournamentCredits,
				Delta:        t.EntryFee,
				Type:         txType,
				TournamentID: t.ID,
			}); err != nil {
				return nil, err
			}
			result.Count++
			result.Total += t.EntryFee
		}

		event := domain.NewNotificationEvent(uuid.NewString(), domain.EventTypeCancellationEmail, p.AuthUID, t, t.EntryFee)
		if err := txOutboxRepo.Save(ctx, event); err != nil {
			return nil, domain.NewDatabaseError("save cancellation email", err)
		}
	}

	t.CurrentPrizePool -= result.Total

	s.logger.Info("Participants refunded",
		zap.String("tournamentID", t.ID),
		zap.String("type", string(txType)),
		zap.Int("count", result.Count),
		zap.Int64("total", result.Total))
	return result, nil
}

// PenalizeHostTx debits the host once and queues the penalty email.
// The balance may go negative. The caller persists the tournament.
func (s *Settlement) PenalizeHostTx(ctx context.Context, tx *gorm.DB, t *domain.Tournament, amount int64) (*domain.CreditTransaction, error) {
	if t.HostPenalized {
		s.logger.Warn("Host already penalized", zap.String("tournamentID", t.ID))
		return nil, domain.NewConflictError(domain.ErrCodeAlreadyProcessed, "Host has already been penalized for this tournament")
	}
	if amount <= 0 {
		return nil, domain.NewAppError(domain.ErrCodeInvalidAmount, "Penalty amount must be positive", http.StatusBadRequest, nil)
	}

	record, err := s.ledger.AdjustBalanceTx(ctx, tx, domain.BalanceAdjustment{
		UserID:       t.HostID,
		Wallet:       domain.WalletTournamentCredits,
		Delta:        -amount,
		Type:         domain.CreditTxHostPenalty,
		TournamentID: t.ID,
	})
	if err != nil {
		return nil, err
	}
	t.HostPenalized = true

	event := domain.NewNotificationEvent(uuid.NewString(), domain.EventTypeHostPenaltyEmail, t.HostID, t, amount)
	if err := s.outboxRepo.WithTransaction(tx).Save(ctx, event); err != nil {
		return nil, domain.NewDatabaseError("save penalty email", err)
	}

	s.logger.Info("Host penalized",
		zap.String("tournamentID", t.ID),
		zap.String("hostID", t.HostID),
		zap.Int64("amount", amount),
		zap.Int64("balanceAfter", record.BalanceAfter))
	return record, nil
}
