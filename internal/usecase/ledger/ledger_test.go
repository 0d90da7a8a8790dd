package ledger

import (
	"context"
	"testing"

	"github.com/saradorri/ffarena/internal/domain"
	"github.com/saradorri/ffarena/internal/infrastructure/logger"
	"github.com/saradorri/ffarena/internal/infrastructure/repository"
	"github.com/saradorri/ffarena/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestLedger(t *testing.T) (domain.LedgerUseCase, *gorm.DB) {
	db := testutil.NewDB(t)
	uc := NewLedgerUseCase(
		repository.NewUserRepository(db),
		repository.NewCreditTransactionRepository(db),
		db,
		logger.NewLogger("test", "debug"),
	)
	return uc, db
}

func TestAdjustBalance(t *testing.T) {
	tests := []struct {
		name         string
		credits      int64
		earnings     int64
		adj          domain.BalanceAdjustment
		wantCredits  int64
		wantEarnings int64
	}{
		{
			name:        "Credit_Refund",
			credits:     10,
			adj:         domain.BalanceAdjustment{Wallet: domain.WalletTournamentCredits, Delta: 5, Type: domain.CreditTxTournamentRefund, TournamentID: "t-1"},
			wantCredits: 15,
		},
		{
			name:        "Penalty_May_Go_Negative",
			credits:     4,
			adj:         domain.BalanceAdjustment{Wallet: domain.WalletTournamentCredits, Delta: -10, Type: domain.CreditTxHostPenalty, TournamentID: "t-1"},
			wantCredits: -6,
		},
		{
			name:         "Prize_Goes_To_Earnings",
			credits:      7,
			earnings:     3,
			adj:          domain.BalanceAdjustment{Wallet: domain.WalletEarnings, Delta: 20, Type: domain.CreditTxTournamentWin, TournamentID: "t-1"},
			wantCredits:  7,
			wantEarnings: 23,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, db := newTestLedger(t)
			testutil.CreateUser(t, db, "user-1", tt.credits, tt.earnings)

			tt.adj.UserID = "user-1"
			id, err := uc.AdjustBalance(context.Background(), tt.adj)
			require.NoError(t, err)
			assert.NotEmpty(t, id)

			user := testutil.GetUser(t, db, "user-1")
			assert.Equal(t, tt.wantCredits, user.TournamentCredits)
			assert.Equal(t, tt.wantEarnings, user.Earnings)

			var record domain.CreditTransaction
			require.NoError(t, db.First(&record, "id = ?", id).Error)
			assert.Equal(t, tt.adj.Delta, record.Amount)
			assert.Equal(t, tt.adj.Wallet, record.WalletType)
			assert.Equal(t, tt.adj.Type, record.Type)
			assert.Equal(t, record.BalanceBefore+record.Amount, record.BalanceAfter)
			require.NotNil(t, record.TournamentID)
			assert.Equal(t, "t-1", *record.TournamentID)
		})
	}
}

func TestAdjustBalanceValidation(t *testing.T) {
	uc, db := newTestLedger(t)
	testutil.CreateUser(t, db, "user-1", 0, 0)

	tests := []struct {
		name string
		adj  domain.BalanceAdjustment
		code string
	}{
		{
			name: "Missing_User",
			adj:  domain.BalanceAdjustment{Wallet: domain.WalletTournamentCredits, Delta: 1, Type: domain.CreditTxTopUp},
			code: domain.ErrCodeValidation,
		},
		{
			name: "Unknown_Wallet",
			adj:  domain.BalanceAdjustment{UserID: "user-1", Wallet: "bonus", Delta: 1, Type: domain.CreditTxTopUp},
			code: domain.ErrCodeValidation,
		},
		{
			name: "Missing_Type",
			adj:  domain.BalanceAdjustment{UserID: "user-1", Wallet: domain.WalletEarnings, Delta: 1},
			code: domain.ErrCodeValidation,
		},
		{
			name: "User_Not_Found",
			adj:  domain.BalanceAdjustment{UserID: "ghost", Wallet: domain.WalletEarnings, Delta: 1, Type: domain.CreditTxTopUp},
			code: domain.ErrCodeUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.AdjustBalance(context.Background(), tt.adj)
			assert.True(t, domain.HasCode(err, tt.code), "got %v", err)
		})
	}

	assert.Equal(t, int64(0), testutil.CountRows(t, db, &domain.CreditTransaction{}, "1 = 1"))
}

func TestAdjustBalanceTxRollsBackWithCaller(t *testing.T) {
	uc, db := newTestLedger(t)
	testutil.CreateUser(t, db, "user-1", 10, 0)

	err := db.Transaction(func(tx *gorm.DB) error {
		if _, err := uc.AdjustBalanceTx(context.Background(), tx, domain.BalanceAdjustment{
			UserID: "user-1",
			Wallet: domain.WalletTournamentCredits,
			Delta:  5,
			Type:   domain.CreditTxManualAdjustment,
		}); err != nil {
			return err
		}
		return assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)

	assert.Equal(t, int64(10), testutil.GetUser(t, db, "user-1").TournamentCredits)
	assert.Equal(t, int64(0), testutil.CountRows(t, db, &domain.CreditTransaction{}, "user_id = ?", "user-1"))
}
