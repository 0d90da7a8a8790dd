package tournament

import (
	"context"

	"github.com/saradorri/ffarena/internal/domain"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// transition applies a host-driven status change
func (uc *TournamentUseCase) transition(ctx context.Context, tournamentID, callerID string, to domain.TournamentStatus, action string) (*domain.Tournament, error) {
	var updated *domain.Tournament
	err := uc.inTransaction(ctx, func(tx *gorm.DB) error {
		txTournamentRepo := uc.tournamentRepo.WithTransaction(tx)

		t, err := uc.lockHostedTournament(ctx, txTournamentRepo, tournamentID, callerID, action)
		if err != nil {
			return err
		}
		if err := t.TransitionTo(to); err != nil {
			uc.logger.Warn("Rejected status change",
				zap.String("tournamentID", t.ID),
				zap.String("from", string(t.Status)),
				zap.String("to", string(to)))
			return err
		}
		if err := txTournamentRepo.Update(ctx, t); err != nil {
			return domain.NewDatabaseError("update tournament", err)
		}
		updated = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("Tournament status changed", zap.String("tournamentID", tournamentID), zap.String("status", string(to)))
	return updated, nil
}
