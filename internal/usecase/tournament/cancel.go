package tournament

import (
	"context"

	"github.com/saradorri/ffarena/internal/domain"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// cancel refunds every participant and flips the status in the same transaction
func (uc *TournamentUseCase) cancel(ctx context.Context, tournamentID, callerID string) (*domain.CancelResult, error) {
	uc.logger.Info("Cancelling tournament", zap.String("tournamentID", tournamentID), zap.String("callerID", callerID))

	var result *domain.CancelResult
	err := uc.inTransaction(ctx, func(tx *gorm.DB) error {
		txTournamentRepo := uc.tournamentRepo.WithTransaction(tx)

		t, err := uc.lockHostedTournament(ctx, txTournamentRepo, tournamentID, callerID, "cancel")
		if err != nil {
			return err
		}
		if !t.Status.AllowsHostCancel() {
			return newStatusError(t, "cancel")
		}

		refund, err := uc.settlement.RefundParticipantsTx(ctx, tx, t, domain.CreditTxTournamentRefund)
		if err != nil {
			return err
		}

		if err := t.TransitionTo(domain.StatusCancelled); err != nil {
			return err
		}
		now := uc.now()
		deleteAfter := now.Add(uc.opts.CancelTTL)
		t.CancellationReason = domain.CancellationReasonHost
		t.CancelledAt = &now
		t.DeleteAfter = &deleteAfter

		if err := txTournamentRepo.Update(ctx, t); err != nil {
			return domain.NewDatabaseError("update tournament", err)
		}

		result = &domain.CancelResult{
			Tournament:    t,
			RefundedCount: refund.Count,
			RefundedTotal: refund.Total,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("Tournament cancelled by host",
		zap.String("tournamentID", tournamentID),
		zap.Int("refundedCount", result.RefundedCount),
		zap.Int64("refundedTotal", result.RefundedTotal))
	return result, nil
}
