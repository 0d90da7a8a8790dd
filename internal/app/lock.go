package app

import (
	"context"
	"time"

	"github.com/saradorri/ffarena/internal/domain"
	"github.com/saradorri/ffarena/internal/infrastructure/cache"
	"github.com/saradorri/ffarena/internal/infrastructure/lock"
	"github.com/saradorri/ffarena/internal/infrastructure/logger"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// InitSweepLease uses redis when an address is configured, so several replicas share one lease.
// Otherwise the lease is process local.
func (a *application) InitSweepLease(lc fx.Lifecycle, log *logger.Logger) domain.SweepLease {
	log = log.Named("lease")
	if a.config.Redis.Addr == "" {
		log.Info("Redis not configured, using in-process sweep lease")
		return lock.NewKeyedLockManager(log)
	}

	lease := cache.NewRedisLease(cache.NewRedisClient(a.config.Redis.Addr, a.config.Redis.Password, a.config.Redis.DB), log)
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()
			if err := lease.Ping(pingCtx); err != nil {
				log.Warn("Redis ping failed, sweeps will run unleased until it recovers", zap.Error(err))
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return lease.Close()
		},
	})
	return lease
}
