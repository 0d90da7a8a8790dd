package repository

import (
	"context"
	"errors"
	"time"

	"github.com/saradorri/ffarena/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRepository implements domain.UserRepository
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &UserRepository{db: db}
}

// WithTransaction returns a repository bound to the given transaction
func (r *UserRepository) WithTransaction(tx *gorm.DB) domain.UserRepository {
	return &UserRepository{db: tx}
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	var user domain.User
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &user, nil
}

// GetByIDForUpdate retrieves a user by ID and locks the row until the transaction ends
func (r *UserRepository) GetByIDForUpdate(ctx context.Context, id string) (*domain.User, error) {
	var user domain.User
	result := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &user, nil
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).Create(user).Error
}

// UpdateBalance updates only the given wallet column of a user
func (r *UserRepository) UpdateBalance(ctx context.Context, userID string, wallet domain.WalletType, newBalance int64) error {
	column := "tournament_credits"
	if wallet == domain.WalletEarnings {
		column = "earnings"
	}
	return r.db.WithContext(ctx).Model(&domain.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			column:       newBalance,
			"updated_at": time.Now(),
		}).Error
}

// GetEmail returns the email on file for a user, or "" when the user or address is missing
func (r *UserRepository) GetEmail(ctx context.Context, userID string) (string, error) {
	user, err := r.GetByID(ctx, userID)
	if err != nil || user == nil {
		return "", err
	}
	return user.Email, nil
}
