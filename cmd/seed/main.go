package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/saradorri/ffarena/internal/config"
	"github.com/saradorri/ffarena/internal/infrastructure/auth"
	"github.com/saradorri/ffarena/internal/infrastructure/database"
	"github.com/saradorri/ffarena/internal/infrastructure/logger"
	"github.com/saradorri/ffarena/internal/infrastructure/repository"
	"github.com/saradorri/ffarena/internal/infrastructure/seeder"
	"github.com/saradorri/ffarena/internal/usecase/ledger"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func main() {
	var (
		configPath = flag.String("config", "./config", "Path to config directory")
		configFile = flag.String("env", config.GetEnvironment(), "Environment")
		tokens     = flag.Bool("tokens", true, "Print a development JWT for every seeded user")
	)
	flag.Parse()

	cfg, err := loadConfig(*configPath, *configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	cfg.ApplyDefaults()

	appLogger := logger.NewLogger(*configFile, cfg.Log.Level)
	defer func() { _ = appLogger.Sync() }()

	db, err := database.NewDatabase(&database.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		Name:            cfg.Database.Name,
		SSLMode:         cfg.Database.SSLMode,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}

	userRepo := repository.NewUserRepository(db.DB)
	txRepo := repository.NewCreditTransactionRepository(db.DB)
	ledgerUseCase := ledger.NewLedgerUseCase(userRepo, txRepo, db.DB, appLogger.Named("ledger"))
	newSeeder := seeder.NewSeeder(userRepo, ledgerUseCase, appLogger.Named("seeder"))

	appLogger.Info("Starting database seeding...")
	if _, err := newSeeder.SeedUsers(context.Background(), seeder.DefaultUsers); err != nil {
		appLogger.Fatal("Failed to seed users", zap.Error(err))
	}
	appLogger.Info("Database seeding completed successfully")

	if !*tokens {
		return
	}
	jwtService := auth.NewJWTService(&cfg.JWT)
	for _, u := range seeder.DefaultUsers {
		token, err := jwtService.GenerateToken(u.ID, u.DisplayName)
		if err != nil {
			appLogger.Fatal("Failed to generate token", zap.String("userID", u.ID), zap.Error(err))
		}
		fmt.Printf("%-10s %s\n", u.ID, token)
	}
}

// loadConfig loads configuration from file
func loadConfig(configPath, configFile string) (*config.Config, error) {
	viper.SetConfigName(fmt.Sprintf("config.%s", configFile))
	viper.SetConfigType("yml")
	viper.AddConfigPath(configPath)
	viper.AutomaticEnv()
	viper.SetEnvPrefix("FF_ARENA")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("could not read config file: %w", err)
	}

	var cfg config.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("could not unmarshal config: %w", err)
	}

	return &cfg, nil
}
