package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/saradorri/ffarena/internal/http/handlers"
	"github.com/saradorri/ffarena/internal/http/middleware"
	"github.com/saradorri/ffarena/internal/infrastructure/auth"
	"github.com/saradorri/ffarena/internal/infrastructure/logger"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// Handlers groups every route handler of the API
type Handlers struct {
	Tournament *handlers.TournamentHandler
	User       *handlers.UserHandler
	Moderator  *handlers.ModeratorHandler
}

// Server represents the HTTP server
type Server struct {
	router       *gin.Engine
	httpServer   *http.Server
	jwtService   auth.JWTService
	handlers     Handlers
	errorHandler *middleware.ErrorHandler
	adminIDs     []string
	logger       *logger.Logger
}

// NewServer creates a new HTTP server
func NewServer(
	jwtService auth.JWTService,
	h Handlers,
	errorHandler *middleware.ErrorHandler,
	adminIDs []string,
	logger *logger.Logger,
	addr string,
) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	router.Use(errorHandler.RequestIDMiddleware())
	router.Use(errorHandler.TimeoutMiddleware(30 * time.Second))
	router.Use(errorHandler.ErrorHandlerMiddleware())
	router.Use(middleware.LoggerMiddleware(logger))

	server := &Server{
		router:       router,
		jwtService:   jwtService,
		handlers:     h,
		errorHandler: errorHandler,
		adminIDs:     adminIDs,
		logger:       logger,
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}

	server.setupRoutes()
	return server
}

// setupRoutes configures all the routes
func (s *Server) setupRoutes() {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	s.router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := s.router.Group("/api/v1")
	protected := v1.Group("/")
	protected.Use(middleware.JWTMiddleware(s.jwtService))
	{
		tournamentRoutes := protected.Group("/tournaments")
		{
			tournamentRoutes.POST("", s.handlers.Tournament.Create)
			tournamentRoutes.GET("", s.handlers.Tournament.List)
			tournamentRoutes.GET("/:id", s.handlers.Tournament.Get)
			tournamentRoutes.POST("/:id/join", s.handlers.Tournament.Join)
			tournamentRoutes.POST("/:id/cancel", s.handlers.Tournament.Cancel)
			tournamentRoutes.POST("/:id/start", s.handlers.Tournament.Start)
			tournamentRoutes.POST("/:id/end", s.handlers.Tournament.End)
			tournamentRoutes.POST("/:id/prizes", s.handlers.Tournament.DistributePrize)
		}

		userRoutes := protected.Group("/users")
		{
			userRoutes.GET("/me", s.handlers.User.GetWallet)
			userRoutes.GET("/me/transactions", s.handlers.User.ListTransactions)
			userRoutes.GET("/me/reconcile", s.handlers.User.Reconcile)
		}

		moderatorRoutes := protected.Group("/moderator")
		moderatorRoutes.Use(middleware.AdminMiddleware(s.adminIDs))
		{
			moderatorRoutes.POST("/sweep", s.handlers.Moderator.Sweep)
			moderatorRoutes.POST("/notifications", s.handlers.Moderator.Notifications)
			moderatorRoutes.POST("/purge", s.handlers.Moderator.Purge)
		}
	}
}

// Handler exposes the router, mostly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the HTTP server and blocks until it stops
func (s *Server) Start() error {
	s.logger.Info("HTTP server listening", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server failed: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
