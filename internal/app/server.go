package app

import (
	"context"

	"github.com/saradorri/ffarena/internal/http"
	"github.com/saradorri/ffarena/internal/http/handlers"
	"github.com/saradorri/ffarena/internal/http/middleware"
	"github.com/saradorri/ffarena/internal/infrastructure/auth"
	"github.com/saradorri/ffarena/internal/infrastructure/logger"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// InitHTTPServer initializes the HTTP server with all dependencies
func (a *application) InitHTTPServer(
	tournamentHandler *handlers.TournamentHandler,
	userHandler *handlers.UserHandler,
	moderatorHandler *handlers.ModeratorHandler,
	jwtService auth.JWTService,
	errorHandler *middleware.ErrorHandler,
	log *logger.Logger,
) *http.Server {
	return http.NewServer(jwtService, http.Handlers{
		Tournament: tournamentHandler,
		User:       userHandler,
		Moderator:  moderatorHandler,
	}, errorHandler, a.config.Moderator.AdminIDs, log.Named("http"), a.config.GetServerAddress())
}

// RegisterHTTPServer starts listening once the container is up and drains on shutdown
func (a *application) RegisterHTTPServer(lc fx.Lifecycle, shutdowner fx.Shutdowner, server *http.Server, log *logger.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := server.Start(); err != nil {
					log.Error("HTTP server stopped", zap.Error(err))
					_ = shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return server.Shutdown(ctx)
		},
	})
}
