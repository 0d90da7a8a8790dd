package app

import (
	"github.com/saradorri/ffarena/internal/domain"
	"github.com/saradorri/ffarena/internal/infrastructure/logger"
	"github.com/saradorri/ffarena/internal/usecase/ledger"
	"github.com/saradorri/ffarena/internal/usecase/moderator"
	"github.com/saradorri/ffarena/internal/usecase/tournament"
	"github.com/saradorri/ffarena/internal/usecase/user"
	"gorm.io/gorm"
)

func (a *application) InitLedgerUseCase(
	ur domain.UserRepository,
	tr domain.CreditTransactionRepository,
	db *gorm.DB,
	log *logger.Logger,
) domain.LedgerUseCase {
	return ledger.NewLedgerUseCase(ur, tr, db, log.Named("ledger"))
}

func (a *application) InitSettlement(
	tr domain.TournamentRepository,
	or domain.OutboxRepository,
	lu domain.LedgerUseCase,
	log *logger.Logger,
) domain.SettlementUseCase {
	return tournament.NewSettlement(tr, or, lu, log.Named("settlement"))
}

func (a *application) InitTournamentUseCase(
	tr domain.TournamentRepository,
	ur domain.UserRepository,
	or domain.OutboxRepository,
	lu domain.LedgerUseCase,
	su domain.SettlementUseCase,
	db *gorm.DB,
	log *logger.Logger,
) domain.TournamentUseCase {
	return tournament.NewTournamentUseCase(tr, ur, or, lu, su, db, log.Named("tournament"), tournament.Options{
		CancelTTL: a.config.Moderator.CancelTTL,
	})
}

func (a *application) InitUserUseCase(
	ur domain.UserRepository,
	tr domain.CreditTransactionRepository,
	log *logger.Logger,
) domain.UserUseCase {
	return user.NewUserUseCase(ur, tr, log.Named("user"))
}

func (a *application) InitModeratorUseCase(
	tr domain.TournamentRepository,
	ctr domain.CreditTransactionRepository,
	su domain.SettlementUseCase,
	lease domain.SweepLease,
	archiver domain.TournamentArchiver,
	db *gorm.DB,
	log *logger.Logger,
) domain.ModeratorUseCase {
	return moderator.NewModeratorUseCase(tr, ctr, su, lease, archiver, db, log.Named("moderator"), moderator.Options{
		Thresholds: domain.ModeratorThresholds{
			PenaltyAfter: a.config.Moderator.PenaltyAfter,
			CancelAfter:  a.config.Moderator.CancelAfter,
		},
		PenaltyAmount: a.config.Moderator.PenaltyAmount,
		CancelTTL:     a.config.Moderator.CancelTTL,
		BatchSize:     a.config.Moderator.BatchSize,
		LeaseTTL:      a.config.Moderator.LeaseTTL,
	})
}
