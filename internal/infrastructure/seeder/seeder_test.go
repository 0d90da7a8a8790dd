package seeder

import (
	"context"
	"testing"

	"github.com/saradorri/ffarena/internal/domain"
	"github.com/saradorri/ffarena/internal/infrastructure/logger"
	"github.com/saradorri/ffarena/internal/infrastructure/repository"
	"github.com/saradorri/ffarena/internal/testutil"
	"github.com/saradorri/ffarena/internal/usecase/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedUsers(t *testing.T) {
	db := testutil.NewDB(t)
	log := logger.NewLogger("test", "debug")
	userRepo := repository.NewUserRepository(db)
	txRepo := repository.NewCreditTransactionRepository(db)
	s := NewSeeder(userRepo, ledger.NewLedgerUseCase(userRepo, txRepo, db, log), log)

	created, err := s.SeedUsers(context.Background(), DefaultUsers)
	require.NoError(t, err)
	assert.Equal(t, len(DefaultUsers), created)

	host := testutil.GetUser(t, db, "host-1")
	assert.Equal(t, int64(100), host.TournamentCredits)
	assert.Equal(t, int64(1), testutil.CountRows(t, db, &domain.CreditTransaction{}, "user_id = ? AND type = ?", "host-1", domain.CreditTxTopUp))
	// zero credit accounts get no ledger row
	assert.Equal(t, int64(0), testutil.CountRows(t, db, &domain.CreditTransaction{}, "user_id = ?", "admin"))

	created, err = s.SeedUsers(context.Background(), DefaultUsers)
	require.NoError(t, err)
	assert.Zero(t, created)
	assert.Equal(t, int64(100), testutil.GetUser(t, db, "host-1").TournamentCredits)
}
