package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/saradorri/ffarena/internal/domain"
	"github.com/saradorri/ffarena/internal/infrastructure/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingModerator struct {
	sweeps, notifications, purges int32
}

func (m *countingModerator) RunModeratorSweep(context.Context, time.Time) (*domain.SweepResult, error) {
	atomic.AddInt32(&m.sweeps, 1)
	return &domain.SweepResult{}, nil
}

func (m *countingModerator) RunNotificationProcessor(context.Context, time.Time) (*domain.NotificationResult, error) {
	atomic.AddInt32(&m.notifications, 1)
	return &domain.NotificationResult{}, nil
}

func (m *countingModerator) PurgeExpired(context.Context, time.Time) (*domain.PurgeResult, error) {
	atomic.AddInt32(&m.purges, 1)
	return &domain.PurgeResult{}, nil
}

type countingOutbox struct {
	runs int32
}

func (o *countingOutbox) ProcessEvents(context.Context) error {
	atomic.AddInt32(&o.runs, 1)
	return nil
}

func (o *countingOutbox) ProcessEvent(context.Context, *domain.OutboxEvent) error {
	return nil
}

func TestSchedulerRunsEveryJob(t *testing.T) {
	moderator := &countingModerator{}
	outbox := &countingOutbox{}

	s, err := NewScheduler(moderator, outbox, Intervals{
		Sweep:        20 * time.Millisecond,
		Notification: 20 * time.Millisecond,
		Outbox:       20 * time.Millisecond,
		Purge:        20 * time.Millisecond,
	}, logger.NewLogger("test", "debug"))
	require.NoError(t, err)

	s.Start()
	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&moderator.sweeps) > 0 &&
			atomic.LoadInt32(&moderator.notifications) > 0 &&
			atomic.LoadInt32(&moderator.purges) > 0 &&
			atomic.LoadInt32(&outbox.runs) > 0
	}, 2*time.Second, 10*time.Millisecond)
	require.NoError(t, s.Stop())
}

func TestSchedulerSkipsDisabledJobs(t *testing.T) {
	moderator := &countingModerator{}
	outbox := &countingOutbox{}

	s, err := NewScheduler(moderator, outbox, Intervals{Outbox: 10 * time.Millisecond}, logger.NewLogger("test", "debug"))
	require.NoError(t, err)

	s.Start()
	assert.Eventually(t, func() bool { return atomic.LoadInt32(&outbox.runs) > 1 }, 2*time.Second, 10*time.Millisecond)
	require.NoError(t, s.Stop())

	assert.Zero(t, atomic.LoadInt32(&moderator.sweeps))
	assert.Zero(t, atomic.LoadInt32(&moderator.purges))
}
