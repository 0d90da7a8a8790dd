package app

import (
	"github.com/saradorri/ffarena/internal/domain"
	"github.com/saradorri/ffarena/internal/http/handlers"
	"github.com/saradorri/ffarena/internal/http/middleware"
	"github.com/saradorri/ffarena/internal/infrastructure/logger"
)

func (a *application) InitTournamentHandler(uc domain.TournamentUseCase, errs *middleware.ErrorHandler, log *logger.Logger) *handlers.TournamentHandler {
	return handlers.NewTournamentHandler(uc, errs, log.Named("tournament"))
}

func (a *application) InitUserHandler(uc domain.UserUseCase, errs *middleware.ErrorHandler) *handlers.UserHandler {
	return handlers.NewUserHandler(uc, errs)
}

func (a *application) InitModeratorHandler(uc domain.ModeratorUseCase, errs *middleware.ErrorHandler) *handlers.ModeratorHandler {
	return handlers.NewModeratorHandler(uc, errs)
}
