package user

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
	"gorm.io/gorm"
)

func setup(t *testing.T) (*gorm.DB, domain.UserUseCase, domain.LedgerUseCase) {
	db := testutil.NewDB(t)
	log := logger.NewLogger("test", "debug")
	userRepo := repository.NewUserRepository(db)
	txRepo := repository.NewCreditTransactionRepository(db)
	return db, NewUserUseCase(userRepo, txRepo, log), ledger.NewLedgerUseCase(userRepo, txRepo, db, log)
}

func adjust(t *testing.T, l domain.LedgerUseCase, userID string, wallet domain.WalletType, delta int64) {
	_, err := l.AdjustBalance(context.Background(), domain.BalanceAdjustment{
		UserID: userID,
		Wallet: wallet,
		Delta:  delta,
		Type:   domain.CreditTxManualAdjustment,
	})
	require.NoError(t, err)
}

func TestGetWallet(t *testing.T) {
	db, uc, _ := setup(t)
	testutil.CreateUser(t, db, "user-1", 40, 15)

	wallet, err := uc.GetWallet(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, &domain.Wallet{UserID: "user-1", TournamentCredits: 40, Earnings: 15}, wallet)

	_, err = uc.GetWallet(context.Background(), "ghost")
	assert.True(t, domain.HasCode(err, domain.ErrCodeUserNotFound))

	_, err = uc.GetWallet(context.Background(), "")
	assert.True(t, domain.HasCode(err, domain.ErrCodeInvalidFormat))
}

func TestListTransactions(t *testing.T) {
	db, uc, l := setup(t)
	testutil.CreateUser(t, db, "user-1", 0, 0)
	testutil.CreateUser(t, db, "user-2", 0, 0)
	for i := 0; i < 5; i++ {
		adjust(t, l, "user-1", domain.WalletTournamentCredits, 10)
	}
	adjust(t, l, "user-2", domain.WalletEarnings, 3)

	tests := []struct {
		name          string
		limit, offset int
		want          int
	}{
		{"Default_Page", 0, 0, 5},
		{"Limited", 2, 0, 2},
		{"Offset_Tail", 2, 4, 1},
		{"Past_End", 10, 10, 0},
		{"Negative_Offset_Clamped", 10, -3, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txs, err := uc.ListTransactions(context.Background(), "user-1", tt.limit, tt.offset)
			require.NoError(t, err)
			assert.Len(t, txs, tt.want)
			for _, tx := range txs {
				assert.Equal(t, "user-1", tx.UserID)
			}
		})
	}

	_, err := uc.ListTransactions(context.Background(), "ghost", 10, 0)
	assert.True(t, domain.HasCode(err, domain.ErrCodeUserNotFound))
}

func TestReconcile(t *testing.T) {
	db, uc, l := setup(t)
	testutil.CreateUser(t, db, "user-1", 0, 0)

	adjust(t, l, "user-1", domain.WalletTournamentCredits, 50)
	adjust(t, l, "user-1", domain.WalletTournamentCredits, -60)
	adjust(t, l, "user-1", domain.WalletEarnings, 20)

	result, err := uc.Reconcile(context.Background(), "user-1")
	require.NoError(t, err)
	assert.True(t, result.Consistent)
	assert.Equal(t, int64(-10), result.TournamentCredits)
	assert.Equal(t, int64(-10), result.LedgerCredits)
	assert.Equal(t, int64(20), result.LedgerEarnings)

	// a write that bypasses the ledger
	require.NoError(t, db.Model(&domain.User{}).Where("id = ?", "user-1").Update("earnings", 25).Error)

	result, err = uc.Reconcile(context.Background(), "user-1")
	require.NoError(t, err)
	assert.False(t, result.Consistent)
	assert.Equal(t, int64(25), result.Earnings)
	assert.Equal(t, int64(20), result.LedgerEarnings)
}
