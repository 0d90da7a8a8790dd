package app

import (
	"github.com/saradorri/ffarena/internal/domain"
	"github.com/saradorri/ffarena/internal/infrastructure/repository"
	"gorm.io/gorm"
)

func (a *application) InitRepository(db *gorm.DB) (
	domain.UserRepository,
	domain.TournamentRepository,
	domain.CreditTransactionRepository,
	domain.OutboxRepository,
) {
	return repository.NewUserRepository(db),
		repository.NewTournamentRepository(db),
		repository.NewCreditTransactionRepository(db),
		repository.NewOutboxRepository(db)
}
