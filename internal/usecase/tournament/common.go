package tournament

import (
	"context"
	"fmt"
	"net/http"

	"github.com/saradorri/ffarena/internal/domain"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// *****  Database Transaction Management

// inTransaction runs fn in one database transaction. Any error rolls everything back.
func (uc *TournamentUseCase) inTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	err := uc.db.WithContext(ctx).Transaction(fn)
	if err == nil {
		return nil
	}
	if _, ok := domain.IsAppError(err); ok {
		return err
	}
	uc.logger.Error("Database transaction failed", zap.Error(err))
	return domain.NewAppError(domain.ErrCodeDatabaseConnection, "Failed to commit transaction", http.StatusInternalServerError, err)
}

// *****  Tournament Loading

// lockTournament loads a tournament row for update inside tx
func (uc *TournamentUseCase) lockTournament(ctx context.Context, repo domain.TournamentRepository, tournamentID string) (*domain.Tournament, error) {
	t, err := repo.GetByIDForUpdate(ctx, tournamentID)
	if err != nil {
		uc.logger.Error("Failed to lock tournament", zap.String("tournamentID", tournamentID), zap.Error(err))
		return nil, domain.NewDatabaseError("lock tournament", err)
	}
	if t == nil {
		uc.logger.Warn("Tournament not found", zap.String("tournamentID", tournamentID))
		return nil, newTournamentNotFoundError()
	}
	return t, nil
}

// lockHostedTournament loads a tournament for update and checks the caller hosts it
func (uc *TournamentUseCase) lockHostedTournament(ctx context.Context, repo domain.TournamentRepository, tournamentID, callerID, action string) (*domain.Tournament, error) {
	t, err := uc.lockTournament(ctx, repo, tournamentID)
	if err != nil {
		return nil, err
	}
	if t.HostID != callerID {
		uc.logger.Warn("Caller is not the host",
			zap.String("tournamentID", tournamentID),
			zap.String("callerID", callerID),
			zap.String("action", action))
		return nil, domain.NewNotHostError(action)
	}
	return t, nil
}

// *****  Errors

func newTournamentNotFoundError() *domain.AppError {
	return domain.NewAppError(domain.ErrCodeTournamentNotFound, "Tournament not found", http.StatusNotFound, nil)
}

func newStatusError(t *domain.Tournament, action string) *domain.AppError {
	return domain.NewAppError(
		domain.ErrCodeInvalidStatus,
		fmt.Sprintf("Cannot %s a tournament in status '%s'", action, t.Status),
		http.StatusConflict,
		nil,
	)
}
