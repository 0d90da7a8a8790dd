// Package testutil provides an in-memory database for usecase and repository tests.
package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/saradorri/ffarena/internal/domain"
	"github.com/saradorri/ffarena/internal/infrastructure/database"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewDB opens a private in-memory sqlite database with every table migrated.
// A single connection serializes transactions; row locks are dropped by the sqlite dialect.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_busy_timeout=5000", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
		SkipDefaultTransaction: true,
		NowFunc:                func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(database.Models()...))
	return db
}

// CreateUser inserts a user with the given balances
func CreateUser(t *testing.T, db *gorm.DB, id string, credits, earnings int64) *domain.User {
	t.Helper()

	user := &domain.User{
		ID:                id,
		Email:             id + "@ffarena.test",
		DisplayName:       "IGN-" + id,
		TournamentCredits: credits,
		Earnings:          earnings,
	}
	require.NoError(t, db.WithContext(context.Background()).Create(user).Error)
	return user
}

// CreateTournament inserts a tournament as is, bypassing validation
func CreateTournament(t *testing.T, db *gorm.DB, tournament *domain.Tournament) *domain.Tournament {
	t.Helper()

	if tournament.ID == "" {
		tournament.ID = uuid.NewString()
	}
	if tournament.Status == "" {
		tournament.Status = domain.StatusActive
	}
	if tournament.MinParticipants == 0 {
		tournament.MinParticipants = 1
	}
	require.NoError(t, db.Create(tournament).Error)
	return tournament
}

// AddParticipants inserts participants with consecutive positions and grows spots and pool to match
func AddParticipants(t *testing.T, db *gorm.DB, tournament *domain.Tournament, userIDs ...string) {
	t.Helper()

	for _, id := range userIDs {
		tournament.FilledSpots++
		tournament.CurrentPrizePool += tournament.EntryFee
		require.NoError(t, db.Create(&domain.Participant{
			TournamentID: tournament.ID,
			AuthUID:      id,
			IGN:          "IGN-" + id,
			Position:     tournament.FilledSpots,
			JoinedAt:     time.Now().UTC(),
		}).Error)
	}
	require.NoError(t, db.Save(tournament).Error)
}

// GetUser reloads a user
func GetUser(t *testing.T, db *gorm.DB, id string) *domain.User {
	t.Helper()

	var user domain.User
	require.NoError(t, db.First(&user, "id = ?", id).Error)
	return &user
}

// GetTournament reloads a tournament
func GetTournament(t *testing.T, db *gorm.DB, id string) *domain.Tournament {
	t.Helper()

	var tournament domain.Tournament
	require.NoError(t, db.First(&tournament, "id = ?", id).Error)
	return &tournament
}

// CountRows counts rows of a model matching the condition
func CountRows(t *testing.T, db *gorm.DB, model interface{}, query string, args ...interface{}) int64 {
	t.Helper()

	var count int64
	require.NoError(t, db.Model(model).Where(query, args...).Count(&count).Error)
	return count
}
