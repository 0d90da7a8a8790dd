package app

import (
	"context"

	"github.com/saradorri/ffarena/internal/config"
	"github.com/saradorri/ffarena/internal/infrastructure/logger"
	"go.uber.org/fx"
)

// InitLogger creates a new logger instance
func (a *application) InitLogger(lc fx.Lifecycle) *logger.Logger {
	log := logger.NewLogger(config.GetEnvironment(), a.config.Log.Level)
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			_ = log.Sync()
			return nil
		},
	})
	return log
}
