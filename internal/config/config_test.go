package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestApplyDefaults(t *testing.T) {
	var c Config
	c.ApplyDefaults()

	assert.Equal(t, "8080", c.Server.Port)
	assert.Equal(t, int64(10), c.Moderator.PenaltyAmount)
	assert.Equal(t, 10*time.Minute, c.Moderator.PenaltyAfter)
	assert.Equal(t, 20*time.Minute, c.Moderator.CancelAfter)
	assert.Equal(t, 15*time.Minute, c.Moderator.CancelTTL)
	assert.Equal(t, 5*time.Second, c.Scheduler.OutboxInterval)
	assert.Equal(t, ":8080", c.GetServerAddress())
}

func TestApplyDefaultsKeepsExplicitValues(t *testing.T) {
	c := Config{Moderator: ModeratorConfig{PenaltyAmount: 25, CancelAfter: time.Hour}}
	c.ApplyDefaults()

	assert.Equal(t, int64(25), c.Moderator.PenaltyAmount)
	assert.Equal(t, time.Hour, c.Moderator.CancelAfter)
}

func TestGetEnvironment(t *testing.T) {
	t.Setenv("FF_ARENA_ENV", "")
	t.Setenv("ENV", "")
	assert.Equal(t, "development", GetEnvironment())

	t.Setenv("ENV", "staging")
	assert.Equal(t, "staging", GetEnvironment())

	t.Setenv("FF_ARENA_ENV", "production")
	assert.Equal(t, "production", GetEnvironment())
}
