package app

import (
	"github.com/saradorri/ffarena/internal/http/middleware"
	"github.com/saradorri/ffarena/internal/infrastructure/logger"
)

func (a *application) InitErrorHandler(log *logger.Logger) *middleware.ErrorHandler {
	return middleware.NewErrorHandler(log.Named("http"))
}
