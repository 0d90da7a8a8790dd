package tournament

import (
	"context"
	"net/http"

	"github.com/saradorri/ffarena/internal/domain"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// join appends the participant and grows filled spots and the pool under the tournament row lock
func (uc *TournamentUseCase) join(ctx context.Context, tournamentID, userID, ign string) (*domain.Tournament, error) {
	uc.logger.Info("Joining tournament", zap.String("tournamentID", tournamentID), zap.String("userID", userID))

	var joined *domain.Tournament
	err := uc.inTransaction(ctx, func(tx *gorm.DB) error {
		txTournamentRepo := uc.tournamentRepo.WithTransaction(tx)

		t, err := uc.lockTournament(ctx, txTournamentRepo, tournamentID)
		if err != nil {
			return err
		}
		if !t.Status.AllowsJoin() {
			uc.logger.Warn("Tournament is not open for joins",
				zap.String("tournamentID", t.ID),
				zap.String("status", string(t.Status)))
			return newStatusError(t, "join")
		}
		if t.IsFull() {
			return domain.NewConflictError(domain.ErrCodeTournamentFull, "Tournament is full")
		}

		existing, err := txTournamentRepo.GetParticipant(ctx, t.ID, userID)
		if err != nil {
			return domain.NewDatabaseError("get participant", err)
		}
		if existing != nil {
			return domain.NewConflictError(domain.ErrCodeAlreadyJoined, "User already joined this tournament")
		}

		user, err := uc.userRepo.WithTransaction(tx).GetByID(ctx, userID)
		if err != nil {
			return domain.NewDatabaseError("get user", err)
		}
		if user == nil {
			return domain.NewAppError(domain.ErrCodeUserNotFound, "User not found", http.StatusNotFound, nil)
		}
		if ign == "" {
			ign = user.DisplayName
		}

		participant := &domain.Participant{
			TournamentID: t.ID,
			AuthUID:      user.ID,
			IGN:          ign,
			Position:     t.FilledSpots + 1,
			JoinedAt:     uc.now(),
		}
		if err := txTournamentRepo.AddParticipant(ctx, participant); err != nil {
			return domain.NewDatabaseError("add participant", err)
		}

		t.FilledSpots++
		t.CurrentPrizePool += t.EntryFee
		if err := txTournamentRepo.Update(ctx, t); err != nil {
			return domain.NewDatabaseError("update tournament", err)
		}

		joined = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("Tournament joined",
		zap.String("tournamentID", joined.ID),
		zap.String("userID", userID),
		zap.Int("filledSpots", joined.FilledSpots),
		zap.Int64("pool", joined.CurrentPrizePool))
	return joined, nil
}
