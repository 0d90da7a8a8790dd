package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// WalletType names one of the two integer balances a user holds
type WalletType string

const (
	// WalletTournamentCredits is spent on entry fees and debited by host penalties; may go negative
	WalletTournamentCredits WalletType = "tournament_credits"

	// WalletEarnings holds prize winnings and is non-negative by construction
	WalletEarnings WalletType = "earnings"
)

// Valid reports whether w is a known wallet
func (w WalletType) Valid() bool {
	return w == WalletTournamentCredits || w == WalletEarnings
}

// User represents a player or host in the system
type User struct {
	ID                string    `json:"user_id" gorm:"primaryKey;column:id;type:varchar(128)"`
	Email             string    `json:"email" gorm:"type:varchar(255)"`
	DisplayName       string    `json:"display_name" gorm:"type:varchar(64)"`
	TournamentCredits int64     `json:"tournament_credits" gorm:"type:bigint;not null;default:0"`
	Earnings          int64     `json:"earnings" gorm:"type:bigint;not null;default:0"`
	CreatedAt         time.Time `json:"created_at" gorm:"not null"`
	UpdatedAt         time.Time `json:"updated_at" gorm:"not null"`
}

// TableName specifies the table name for User
func (u User) TableName() string {
	return "users"
}

// Balance returns the value of the given wallet
func (u *User) Balance(wallet WalletType) int64 {
	if wallet == WalletEarnings {
		return u.Earnings
	}
	return u.TournamentCredits
}

// SetBalance overwrites the value of the given wallet
func (u *User) SetBalance(wallet WalletType, value int64) {
	if wallet == WalletEarnings {
		u.Earnings = value
		return
	}
	u.TournamentCredits = value
}

// UserRepository defines the interface for user data
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*User, error)
	GetByIDForUpdate(ctx context.Context, id string) (*User, error)
	Create(ctx context.Context, user *User) error
	UpdateBalance(ctx context.Context, userID string, wallet WalletType, newBalance int64) error
	GetEmail(ctx context.Context, userID string) (string, error)
	WithTransaction(tx *gorm.DB) UserRepository
}

// EmailLookup resolves the notification address of a user; an empty string means none on file
type EmailLookup interface {
	GetEmail(ctx context.Context, userID string) (string, error)
}

// Wallet is the read view of a user's balances
type Wallet struct {
	UserID            string `json:"user_id"`
	TournamentCredits int64  `json:"tournament_credits"`
	Earnings          int64  `json:"earnings"`
}

// Reconciliation compares cached balances with the replayed transaction log
type Reconciliation struct {
	UserID            string `json:"user_id"`
	TournamentCredits int64  `json:"tournament_credits"`
	LedgerCredits     int64  `json:"ledger_credits"`
	Earnings          int64  `json:"earnings"`
	LedgerEarnings    int64  `json:"ledger_earnings"`
	Consistent        bool   `json:"consistent"`
}

// UserUseCase defines the interface for user business logic
type UserUseCase interface {
	GetWallet(ctx context.Context, userID string) (*Wallet, error)
	ListTransactions(ctx context.Context, userID string, limit, offset int) ([]*CreditTransaction, error)
	Reconcile(ctx context.Context, userID string) (*Reconciliation, error)
}
