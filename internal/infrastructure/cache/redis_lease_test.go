package cache

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/saradorri/ffarena/internal/infrastructure/logger"
	"github.com/stretchr/testify/assert"
)

func TestAcquireReportsBackendErrors(t *testing.T) {
	client := NewRedisClient("127.0.0.1:1", "", 0)
	lease := NewRedisLease(client, logger.NewLogger("test", "debug"))
	defer lease.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	release, acquired, err := lease.Acquire(ctx, "ffarena:moderator:sweep", time.Minute)
	assert.Error(t, err)
	assert.False(t, acquired)
	assert.Nil(t, release)

	assert.Error(t, lease.Ping(ctx))
}

func TestReleaseFailed(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"No_Error", nil, false},
		{"Nil_Reply", redis.Nil, false},
		{"Wrapped_Nil_Reply", fmt.Errorf("run release script: %w", redis.Nil), false},
		{"Connection_Error", errors.New("dial tcp 127.0.0.1:1: connect: connection refused"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, releaseFailed(tt.err))
		})
	}
}
