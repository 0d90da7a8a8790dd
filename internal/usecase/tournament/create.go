package tournament

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/saradorri/ffarena/internal/domain"
	"go.uber.org/zap"
)

// create validates the input and stores the tournament with an empty pool
func (uc *TournamentUseCase) create(ctx context.Context, input domain.CreateTournamentInput) (*domain.Tournament, error) {
	uc.logger.Info("Creating tournament", zap.String("hostID", input.HostID), zap.String("name", input.Name))

	input.Name = strings.TrimSpace(input.Name)
	if input.MinParticipants == 0 {
		input.MinParticipants = 1
	}
	if input.Status == "" {
		input.Status = domain.StatusActive
	}
	if err := validateCreateInput(input); err != nil {
		uc.logger.Warn("Invalid tournament input", zap.String("hostID", input.HostID), zap.Error(err))
		return nil, err
	}

	host, err := uc.userRepo.GetByID(ctx, input.HostID)
	if err != nil {
		return nil, domain.NewDatabaseError("get host", err)
	}
	if host == nil {
		return nil, domain.NewAppError(domain.ErrCodeUserNotFound, "Host not found", http.StatusNotFound, nil)
	}

	id := uuid.NewString()
	t := &domain.Tournament{
		ID:                id,
		Slug:              fmt.Sprintf("%s-%s", slug.Make(input.Name), id[:8]),
		HostID:            input.HostID,
		Name:              input.Name,
		EntryFee:          input.EntryFee,
		MinParticipants:   input.MinParticipants,
		MaxPlayers:        input.MaxPlayers,
		Status:            input.Status,
		StartDate:         input.StartDate,
		PrizeDistribution: input.PrizeDistribution,
	}

	if err := uc.tournamentRepo.Create(ctx, t); err != nil {
		uc.logger.Error("Failed to create tournament", zap.String("hostID", input.HostID), zap.Error(err))
		return nil, domain.NewDatabaseError("create tournament", err)
	}

	uc.logger.Info("Tournament created", zap.String("tournamentID", t.ID), zap.String("slug", t.Slug))
	return t, nil
}

func validateCreateInput(input domain.CreateTournamentInput) error {
	if input.HostID == "" {
		return domain.NewValidationError("host_id", "is required")
	}
	if input.Name == "" {
		return domain.NewValidationError("name", "is required")
	}
	if input.EntryFee < 0 {
		return domain.NewAppError(domain.ErrCodeInvalidAmount, "Entry fee cannot be negative", http.StatusBadRequest, nil)
	}
	if input.MaxPlayers < 1 {
		return domain.NewValidationError("max_players", "must be at least 1")
	}
	if input.MinParticipants < 1 || input.MinParticipants > input.MaxPlayers {
		return domain.NewValidationError("min_participants", "must be between 1 and max_players")
	}
	if input.StartDate.IsZero() {
		return domain.NewValidationError("start_date", "is required")
	}
	if input.Status != domain.StatusActive && input.Status != domain.StatusUpcoming {
		return domain.NewValidationError("status", "must be upcoming or active")
	}
	return validatePrizeDistribution(input.PrizeDistribution)
}

// validatePrizeDistribution accepts an empty map or percentages summing to exactly 100
func validatePrizeDistribution(dist domain.PrizeDistribution) error {
	if len(dist) == 0 {
		return nil
	}
	for position, pct := range dist {
		if strings.TrimSpace(position) == "" || pct <= 0 || pct > 100 {
			return domain.NewAppError(domain.ErrCodeInvalidPrizeSplit,
				fmt.Sprintf("Invalid share %d for position '%s'", pct, position),
				http.StatusBadRequest, nil)
		}
	}
	if total := dist.Total(); total != 100 {
		return domain.NewAppError(domain.ErrCodeInvalidPrizeSplit,
			fmt.Sprintf("Prize distribution must sum to 100, got %d", total),
			http.StatusBadRequest, nil)
	}
	return nil
}
