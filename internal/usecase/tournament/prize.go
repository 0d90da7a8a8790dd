package tournament

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/saradorri/ffarena/internal/domain"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// prizeTolerance is the rounding slack allowed against a percentage share
const prizeTolerance = 1

// distributePrize credits a winner's earnings and debits the pool in one transaction
func (uc *TournamentUseCase) distributePrize(ctx context.Context, input domain.DistributePrizeInput) (*domain.Winner, error) {
	uc.logger.Info("Distributing prize",
		zap.String("tournamentID", input.TournamentID),
		zap.String("winnerID", input.WinnerID),
		zap.String("position", input.Position),
		zap.Int64("amount", input.Amount))

	if err := validatePrizeInput(input); err != nil {
		return nil, err
	}

	var winner *domain.Winner
	err := uc.inTransaction(ctx, func(tx *gorm.DB) error {
		txTournamentRepo := uc.tournamentRepo.WithTransaction(tx)

		t, err := uc.lockHostedTournament(ctx, txTournamentRepo, input.TournamentID, input.CallerID, "distribute prizes for")
		if err != nil {
			return err
		}
		if !t.Status.AllowsPrizeDistribution() {
			return newStatusError(t, "distribute prizes for")
		}
		if t.CurrentPrizePool < input.Amount {
			uc.logger.Warn("Insufficient prize pool",
				zap.String("tournamentID", t.ID),
				zap.Int64("pool", t.CurrentPrizePool),
				zap.Int64("amount", input.Amount))
			return domain.NewAppError(domain.ErrCodeInsufficientPool,
				fmt.Sprintf("Prize pool of %d cannot cover %d", t.CurrentPrizePool, input.Amount),
				http.StatusConflict, nil)
		}

		paid, err := txTournamentRepo.GetWinner(ctx, t.ID, input.Position)
		if err != nil {
			return domain.NewDatabaseError("get winner", err)
		}
		if paid != nil {
			return domain.NewConflictError(domain.ErrCodeAlreadyProcessed,
				fmt.Sprintf("Prize for position '%s' was already distributed", input.Position))
		}

		participant, err := txTournamentRepo.GetParticipant(ctx, t.ID, input.WinnerID)
		if err != nil {
			return domain.NewDatabaseError("get participant", err)
		}
		if participant == nil {
			return domain.NewAppError(domain.ErrCodeNotParticipant, "Winner is not a participant of this tournament", http.StatusBadRequest, nil)
		}

		if err := checkPercentageShare(t, input.Position, input.Amount); err != nil {
			uc.logger.Warn("Prize amount does not match distribution", zap.String("tournamentID", t.ID), zap.Error(err))
			return err
		}

		if _, err := uc.ledger.AdjustBalanceTx(ctx, tx, domain.BalanceAdjustment{
			UserID:       input.WinnerID,
			Wallet:       domain.WalletEarnings,
			Delta:        input.Amount,
			Type:         domain.CreditTxTournamentWin,
			TournamentID: t.ID,
		}); err != nil {
			return err
		}

		t.CurrentPrizePool -= input.Amount
		if err := txTournamentRepo.Update(ctx, t); err != nil {
			return domain.NewDatabaseError("update tournament", err)
		}

		winner = &domain.Winner{
			TournamentID:  t.ID,
			Position:      input.Position,
			AuthUID:       input.WinnerID,
			PrizeCredits:  input.Amount,
			DistributedAt: uc.now(),
		}
		if err := txTournamentRepo.AddWinner(ctx, winner); err != nil {
			return domain.NewDatabaseError("add winner", err)
		}

		event := domain.NewNotificationEvent(uuid.NewString(), domain.EventTypePrizeWinEmail, input.WinnerID, t, input.Amount)
		if err := uc.outboxRepo.WithTransaction(tx).Save(ctx, event); err != nil {
			return domain.NewDatabaseError("save prize email", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("Prize distributed",
		zap.String("tournamentID", input.TournamentID),
		zap.String("winnerID", input.WinnerID),
		zap.Int64("amount", input.Amount))
	return winner, nil
}

func validatePrizeInput(input domain.DistributePrizeInput) error {
	if input.WinnerID == "" {
		return domain.NewValidationError("winner_id", "is required")
	}
	if input.Position == "" {
		return domain.NewValidationError("position", "is required")
	}
	if input.Amount <= 0 {
		return domain.NewAppError(domain.ErrCodeInvalidAmount, "Prize amount must be positive", http.StatusBadRequest, nil)
	}
	return nil
}

// checkPercentageShare enforces |amount - floor(pct * pool / 100)| <= 1 when the position has a share.
// pool is the live prize pool, so each payout shrinks the base of the next share.
func checkPercentageShare(t *domain.Tournament, position string, amount int64) error {
	pct, ok := t.PrizeDistribution[position]
	if !ok {
		return nil
	}
	expected := int64(pct) * t.CurrentPrizePool / 100
	diff := amount - expected
	if diff < 0 {
		diff = -diff
	}
	if diff > prizeTolerance {
		return domain.NewAppError(domain.ErrCodePrizeAmountMismatch,
			fmt.Sprintf("Prize for position '%s' must be %d (%d%% of %d), got %d", position, expected, pct, t.CurrentPrizePool, amount),
			http.StatusBadRequest, nil)
	}
	return nil
}
