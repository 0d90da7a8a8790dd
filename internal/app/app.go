package app

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/saradorri/ffarena/internal/config"
	"go.uber.org/fx"
)

// Application provides application level setup
type Application interface {
	Setup()
	GetContext() context.Context
}

// application represents context and configure file
type application struct {
	ctx    context.Context
	config *config.Config
}

// NewApplication creates a new application
func NewApplication(ctx context.Context) Application {
	return &application{ctx: ctx}
}

// GetContext returns application context
func (a *application) GetContext() context.Context {
	return a.ctx
}

// Setup creates a new fx application with all modules
func (a *application) Setup() {
	fmt.Println("[x] Starting FF Arena Service...")

	path := flag.String("e", "./config", "env file directory")
	flag.Parse()

	err := a.setupViper(*path)
	if err != nil {
		log.Panic(err.Error())
	}

	app := fx.New(
		fx.NopLogger,
		fx.Provide(
			a.InitConfig,
			a.InitLogger,
			a.InitDatabase,
			a.InitRepository,
			a.InitLedgerUseCase,
			a.InitSettlement,
			a.InitTournamentUseCase,
			a.InitUserUseCase,
			a.InitSweepLease,
			a.InitArchiver,
			a.InitModeratorUseCase,
			a.InitMailer,
			a.InitOutboxProcessor,
			a.InitScheduler,
			a.InitJWTService,
			a.InitErrorHandler,
			a.InitTournamentHandler,
			a.InitUserHandler,
			a.InitModeratorHandler,
			a.InitHTTPServer,
		),
		fx.Invoke(
			a.RegisterScheduler,
			a.RegisterHTTPServer,
		),
	)

	app.Run()
}

// InitConfig exposes the loaded configuration to the container
func (a *application) InitConfig() *config.Config {
	return a.config
}
