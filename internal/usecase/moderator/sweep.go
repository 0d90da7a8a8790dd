package moderator

import (
	"context"
	"time"

	"github.com/saradorri/ffarena/internal/domain"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func (uc *ModeratorUseCase) sweep(ctx context.Context, now time.Time) (*domain.SweepResult, error) {
	result := &domain.SweepResult{}

	release, ok := uc.acquireLease(ctx, SweepLeaseKey)
	if !ok {
		result.Skipped = true
		return result, nil
	}
	defer release()

	candidates, err := uc.tournamentRepo.FindDueForModeration(ctx, domain.ModeratedStatuses, now.Add(-uc.opts.Thresholds.PenaltyAfter), uc.opts.BatchSize)
	if err != nil {
		uc.logger.Error("Failed to query tournaments for moderation", zap.Error(err))
		return nil, domain.NewDatabaseError("find tournaments for moderation", err)
	}
	result.Scanned = len(candidates)

	for _, candidate := range candidates {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		action, err := uc.flag(ctx, candidate.ID, now)
		if err != nil {
			result.Failed++
			uc.logger.Error("Failed to moderate tournament", zap.String("tournamentID", candidate.ID), zap.Error(err))
			continue
		}
		switch action {
		case domain.ModeratorActionFlagPenalty:
			result.FlaggedForPenalty++
		case domain.ModeratorActionFlagCancellation:
			result.FlaggedForCancellation++
		}
	}

	uc.logger.Info("Moderator sweep completed",
		zap.Int("scanned", result.Scanned),
		zap.Int("flaggedForPenalty", result.FlaggedForPenalty),
		zap.Int("flaggedForCancellation", result.FlaggedForCancellation),
		zap.Int("failed", result.Failed))
	return result, nil
}

// flag re-evaluates one tournament on locked, fresh data and applies at most one transition
func (uc *ModeratorUseCase) flag(ctx context.Context, tournamentID string, now time.Time) (domain.ModeratorAction, error) {
	action := domain.ModeratorActionNone
	err := uc.inTransaction(ctx, func(tx *gorm.DB) error {
		txTournamentRepo := uc.tournamentRepo.WithTransaction(tx)

		t, err := txTournamentRepo.GetByIDForUpdate(ctx, tournamentID)
		if err != nil {
			return domain.NewDatabaseError("lock tournament", err)
		}
		if t == nil {
			return nil
		}

		decision := domain.EvaluateModeration(t, now, uc.opts.Thresholds)
		switch decision.Action {
		case domain.ModeratorActionFlagPenalty:
			if err := t.TransitionTo(domain.StatusPendingPenalty); err != nil {
				return err
			}
		case domain.ModeratorActionFlagCancellation:
			if err := t.TransitionTo(domain.StatusPendingCancellation); err != nil {
				return err
			}
			t.CancellationReason = decision.Reason
		default:
			return nil
		}

		if err := txTournamentRepo.Update(ctx, t); err != nil {
			return domain.NewDatabaseError("update tournament", err)
		}
		action = decision.Action
		uc.logger.Info("Tournament flagged",
			zap.String("tournamentID", t.ID),
			zap.String("action", string(decision.Action)),
			zap.String("reason", string(decision.Reason)),
			zap.Duration("elapsed", now.Sub(t.StartDate)))
		return nil
	})
	return action, err
}
