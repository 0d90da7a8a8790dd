package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/saradorri/ffarena/internal/domain"
	"github.com/saradorri/ffarena/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// Intervals configures how often each background job runs
type Intervals struct {
	Sweep        time.Duration
	Notification time.Duration
	Outbox       time.Duration
	Purge        time.Duration
}

// Scheduler runs the moderator phases, the outbox delivery and the TTL purge on fixed intervals
type Scheduler struct {
	sched     gocron.Scheduler
	moderator domain.ModeratorUseCase
	outbox    domain.OutboxProcessor
	logger    *logger.Logger

	ctx    context.Context
	cancel context.CancelFunc
}

// NewScheduler registers every job. Jobs run in singleton mode so a slow run is never overlapped by the next tick.
func NewScheduler(
	moderator domain.ModeratorUseCase,
	outbox domain.OutboxProcessor,
	intervals Intervals,
	logger *logger.Logger,
) (*Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Scheduler{
		sched:     sched,
		moderator: moderator,
		outbox:    outbox,
		logger:    logger,
		ctx:       ctx,
		cancel:    cancel,
	}

	jobs := []struct {
		name     string
		interval time.Duration
		run      func(context.Context)
	}{
		{"moderator-sweep", intervals.Sweep, s.runSweep},
		{"notification-processor", intervals.Notification, s.runNotifications},
		{"outbox-delivery", intervals.Outbox, s.runOutbox},
		{"ttl-purge", intervals.Purge, s.runPurge},
	}
	for _, job := range jobs {
		if job.interval <= 0 {
			logger.Warn("Job disabled", zap.String("job", job.name))
			continue
		}
		run := job.run
		_, err := sched.NewJob(
			gocron.DurationJob(job.interval),
			gocron.NewTask(func() { run(s.ctx) }),
			gocron.WithName(job.name),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
		)
		if err != nil {
			cancel()
			return nil, fmt.Errorf("failed to register job %s: %w", job.name, err)
		}
		logger.Info("Job registered", zap.String("job", job.name), zap.Duration("interval", job.interval))
	}

	return s, nil
}

// Start begins running jobs
func (s *Scheduler) Start() {
	s.logger.Info("Scheduler started")
	s.sched.Start()
}

// Stop cancels in-flight runs and waits for them to return
func (s *Scheduler) Stop() error {
	s.cancel()
	if err := s.sched.Shutdown(); err != nil {
		return fmt.Errorf("failed to stop scheduler: %w", err)
	}
	s.logger.Info("Scheduler stopped")
	return nil
}

func (s *Scheduler) runSweep(ctx context.Context) {
	if _, err := s.moderator.RunModeratorSweep(ctx, time.Now()); err != nil {
		s.logger.Error("Scheduled moderator sweep failed", zap.Error(err))
	}
}

func (s *Scheduler) runNotifications(ctx context.Context) {
	if _, err := s.moderator.RunNotificationProcessor(ctx, time.Now()); err != nil {
		s.logger.Error("Scheduled notification processor failed", zap.Error(err))
	}
}

func (s *Scheduler) runOutbox(ctx context.Context) {
	if err := s.outbox.ProcessEvents(ctx); err != nil {
		s.logger.Error("Scheduled outbox delivery failed", zap.Error(err))
	}
}

func (s *Scheduler) runPurge(ctx context.Context) {
	if _, err := s.moderator.PurgeExpired(ctx, time.Now()); err != nil {
		s.logger.Error("Scheduled TTL purge failed", zap.Error(err))
	}
}
