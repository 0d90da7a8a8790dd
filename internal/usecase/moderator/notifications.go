package moderator

import (
	"context"
	"time"

	"github.com/saradorri/ffarena/internal/domain"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func (uc *ModeratorUseCase) processNotifications(ctx context.Context, now time.Time) (*domain.NotificationResult, error) {
	result := &domain.NotificationResult{}

	release, ok := uc.acquireLease(ctx, NotificationLeaseKey)
	if !ok {
		result.Skipped = true
		return result, nil
	}
	defer release()

	penalties, err := uc.tournamentRepo.FindByStatus(ctx, domain.StatusPendingPenalty, uc.opts.BatchSize)
	if err != nil {
		uc.logger.Error("Failed to query pending penalties", zap.Error(err))
		return nil, domain.NewDatabaseError("find pending penalties", err)
	}
	cancellations, err := uc.tournamentRepo.FindByStatus(ctx, domain.StatusPendingCancellation, uc.opts.BatchSize)
	if err != nil {
		uc.logger.Error("Failed to query pending cancellations", zap.Error(err))
		return nil, domain.NewDatabaseError("find pending cancellations", err)
	}

	for _, t := range penalties {
		if ctx.Err() != nil {
			return result, ctx.Err()
		}
		done, err := uc.executePenalty(ctx, t.ID)
		if err != nil {
			result.Failed++
			uc.logger.Error("Failed to execute penalty", zap.String("tournamentID", t.ID), zap.Error(err))
			continue
		}
		if done {
			result.ProcessedPenalties++
		}
	}

	for _, t := range cancellations {
		if ctx.Err() != nil {
			return result, ctx.Err()
		}
		done, err := uc.executeCancellation(ctx, t.ID, now)
		if err != nil {
			result.Failed++
			uc.logger.Error("Failed to execute cancellation", zap.String("tournamentID", t.ID), zap.Error(err))
			continue
		}
		if done {
			result.ProcessedCancellations++
		}
	}

	uc.logger.Info("Notification processor completed",
		zap.Int("processedPenalties", result.ProcessedPenalties),
		zap.Int("processedCancellations", result.ProcessedCancellations),
		zap.Int("failed", result.Failed))
	return result, nil
}

// executePenalty debits the host, queues the email and moves to penalty_applied in one transaction.
// It reports false when another run already executed it.
func (uc *ModeratorUseCase) executePenalty(ctx context.Context, tournamentID string) (bool, error) {
	done := false
	err := uc.inTransaction(ctx, func(tx *gorm.DB) error {
		txTournamentRepo := uc.tournamentRepo.WithTransaction(tx)

		t, err := txTournamentRepo.GetByIDForUpdate(ctx, tournamentID)
		if err != nil {
			return domain.NewDatabaseError("lock tournament", err)
		}
		if t == nil || t.Status != domain.StatusPendingPenalty {
			return nil
		}

		if !t.PenaltyNotificationSent() {
			if _, err := uc.settlement.PenalizeHostTx(ctx, tx, t, uc.opts.PenaltyAmount); err != nil {
				return err
			}
		}
		if err := t.TransitionTo(domain.StatusPenaltyApplied); err != nil {
			return err
		}
		if err := txTournamentRepo.Update(ctx, t); err != nil {
			return domain.NewDatabaseError("update tournament", err)
		}
		done = true
		return nil
	})
	return done, err
}

// executeCancellation refunds every participant, queues the emails and moves to cancelled in one transaction
func (uc *ModeratorUseCase) executeCancellation(ctx context.Context, tournamentID string, now time.Time) (bool, error) {
	done := false
	err := uc.inTransaction(ctx, func(tx *gorm.DB) error {
		txTournamentRepo := uc.tournamentRepo.WithTransaction(tx)

		t, err := txTournamentRepo.GetByIDForUpdate(ctx, tournamentID)
		if err != nil {
			return domain.NewDatabaseError("lock tournament", err)
		}
		if t == nil || t.Status != domain.StatusPendingCancellation {
			return nil
		}

		refund, err := uc.settlement.RefundParticipantsTx(ctx, tx, t, domain.CreditTxTournamentCancellationRefund)
		if err != nil {
			return err
		}
		if err := t.TransitionTo(domain.StatusCancelled); err != nil {
			return err
		}
		if t.CancellationReason == domain.CancellationReasonNone {
			t.CancellationReason = domain.CancellationReasonHostNoShow
		}
		deleteAfter := now.Add(uc.opts.CancelTTL)
		t.CancelledAt = &now
		t.DeleteAfter = &deleteAfter

		if err := txTournamentRepo.Update(ctx, t); err != nil {
			return domain.NewDatabaseError("update tournament", err)
		}
		done = true
		uc.logger.Info("Tournament cancelled by moderator",
			zap.String("tournamentID", t.ID),
			zap.String("reason", string(t.CancellationReason)),
			zap.Int("refundedCount", refund.Count),
			zap.Int64("refundedTotal", refund.Total))
		return nil
	})
	return done, err
}
