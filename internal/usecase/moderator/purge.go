package moderator

import (
	"context"
	"time"

	"github.com/saradorri/ffarena/internal/domain"
	"go.uber.org/zap"
)

// purge archives a snapshot of each expired tournament before deleting it.
// A tournament whose archive fails is kept for the next run.
func (uc *ModeratorUseCase) purge(ctx context.Context, now time.Time) (*domain.PurgeResult, error) {
	result := &domain.PurgeResult{}

	release, ok := uc.acquireLease(ctx, PurgeLeaseKey)
	if !ok {
		return result, nil
	}
	defer release()

	expired, err := uc.tournamentRepo.FindExpired(ctx, now, uc.opts.BatchSize)
	if err != nil {
		uc.logger.Error("Failed to query expired tournaments", zap.Error(err))
		return nil, domain.NewDatabaseError("find expired tournaments", err)
	}

	for _, t := range expired {
		if ctx.Err() != nil {
			return result, ctx.Err()
		}

		snapshot, err := uc.snapshot(ctx, t, now)
		if err != nil {
			result.Failed++
			uc.logger.Error("Failed to build tournament snapshot", zap.String("tournamentID", t.ID), zap.Error(err))
			continue
		}
		if err := uc.archiver.Archive(ctx, snapshot); err != nil {
			result.Failed++
			uc.logger.Error("Failed to archive tournament", zap.String("tournamentID", t.ID), zap.Error(err))
			continue
		}
		result.Archived++

		if err := uc.tournamentRepo.Delete(ctx, t.ID); err != nil {
			result.Failed++
			uc.logger.Error("Failed to delete tournament", zap.String("tournamentID", t.ID), zap.Error(err))
			continue
		}
		result.Deleted++
	}

	if len(expired) > 0 {
		uc.logger.Info("Expired tournaments purged",
			zap.Int("archived", result.Archived),
			zap.Int("deleted", result.Deleted),
			zap.Int("failed", result.Failed))
	}
	return result, nil
}

func (uc *ModeratorUseCase) snapshot(ctx context.Context, t *domain.Tournament, now time.Time) (*domain.TournamentSnapshot, error) {
	participants, err := uc.tournamentRepo.ListParticipants(ctx, t.ID)
	if err != nil {
		return nil, err
	}
	winners, err := uc.tournamentRepo.ListWinners(ctx, t.ID)
	if err != nil {
		return nil, err
	}
	transactions, err := uc.txRepo.ListByTournamentID(ctx, t.ID)
	if err != nil {
		return nil, err
	}
	return &domain.TournamentSnapshot{
		Tournament:   t,
		Participants: participants,
		Winners:      winners,
		Transactions: transactions,
		ArchivedAt:   now,
	}, nil
}
