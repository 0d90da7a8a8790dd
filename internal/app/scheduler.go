package app

import (
	"context"

	"github.com/saradorri/ffarena/internal/domain"
	"github.com/saradorri/ffarena/internal/infrastructure/logger"
	"github.com/saradorri/ffarena/internal/infrastructure/scheduler"
	"go.uber.org/fx"
)

func (a *application) InitScheduler(
	mod domain.ModeratorUseCase,
	processor domain.OutboxProcessor,
	log *logger.Logger,
) (*scheduler.Scheduler, error) {
	return scheduler.NewScheduler(mod, processor, scheduler.Intervals{
		Sweep:        a.config.Scheduler.SweepInterval,
		Notification: a.config.Scheduler.NotificationInterval,
		Outbox:       a.config.Scheduler.OutboxInterval,
		Purge:        a.config.Scheduler.PurgeInterval,
	}, log.Named("scheduler"))
}

// RegisterScheduler ties the background jobs to the application lifecycle
func (a *application) RegisterScheduler(lc fx.Lifecycle, s *scheduler.Scheduler, log *logger.Logger) {
	if !a.config.Scheduler.Enabled {
		log.Info("Scheduler disabled by configuration")
		return
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			s.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return s.Stop()
		},
	})
}
