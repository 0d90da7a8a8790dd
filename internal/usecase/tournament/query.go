package tournament

import (
	"context"

	"github.com/saradorri/ffarena/internal/domain"
	"go.uber.org/zap"
)

func (uc *TournamentUseCase) get(ctx context.Context, id string) (*domain.TournamentDetails, error) {
	t, err := uc.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		uc.logger.Error("Failed to get tournament", zap.String("tournamentID", id), zap.Error(err))
		return nil, domain.NewDatabaseError("get tournament", err)
	}
	if t == nil {
		return nil, newTournamentNotFoundError()
	}

	participants, err := uc.tournamentRepo.ListParticipants(ctx, id)
	if err != nil {
		return nil, domain.NewDatabaseError("list participants", err)
	}
	winners, err := uc.tournamentRepo.ListWinners(ctx, id)
	if err != nil {
		return nil, domain.NewDatabaseError("list winners", err)
	}

	return &domain.TournamentDetails{
		Tournament:   t,
		Participants: participants,
		Winners:      winners,
	}, nil
}

func (uc *TournamentUseCase) list(ctx context.Context, filter domain.TournamentFilter) ([]*domain.Tournament, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, domain.NewValidationError("status", "unknown tournament status")
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	tournaments, err := uc.tournamentRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Error("Failed to list tournaments", zap.Error(err))
		return nil, domain.NewDatabaseError("list tournaments", err)
	}
	return tournaments, nil
}
