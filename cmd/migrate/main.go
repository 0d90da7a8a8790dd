package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/saradorri/ffarena/internal/config"
	"github.com/spf13/viper"
)

func main() {
	var (
		configPath     = flag.String("config", "./config", "Path to config directory")
		configFile     = flag.String("env", config.GetEnvironment(), "Environment (development, production)")
		migrationsPath = flag.String("path", "./migrations", "Path to migration files")
		action         = flag.String("action", "up", "Migration action: up, down, steps, version, force")
		steps          = flag.Int("n", 1, "Number of steps for the steps action, or the version for force")
	)
	flag.Parse()

	cfg, err := loadConfig(*configPath, *configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := validateMigrationsPath(*migrationsPath); err != nil {
		log.Fatalf("Failed to validate migrations path: %v", err)
	}

	m, err := migrate.New(fmt.Sprintf("file://%s", *migrationsPath), databaseURL(&cfg.Database))
	if err != nil {
		log.Fatalf("Failed to create migration instance: %v", err)
	}
	defer m.Close()

	switch *action {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatalf("Failed to migrate up: %v", err)
		}
		fmt.Println("Successfully migrated up")
	case "down":
		if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatalf("Failed to migrate down: %v", err)
		}
		fmt.Println("Successfully migrated down")
	case "steps":
		if err := m.Steps(*steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatalf("Failed to migrate %d steps: %v", *steps, err)
		}
		fmt.Printf("Successfully migrated %d steps\n", *steps)
	case "version":
		version, dirty, err := m.Version()
		if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
			log.Fatalf("Failed to read version: %v", err)
		}
		fmt.Printf("Version %d (dirty: %t)\n", version, dirty)
	case "force":
		if err := m.Force(*steps); err != nil {
			log.Fatalf("Failed to force version %d: %v", *steps, err)
		}
		fmt.Printf("Forced version %d\n", *steps)
	default:
		log.Fatalf("Unknown action: %s. Valid actions: up, down, steps, version, force", *action)
	}
}

// databaseURL builds the postgres URL golang-migrate expects
func databaseURL(db *config.DatabaseConfig) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(db.User, db.Password),
		Host:     fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:     db.Name,
		RawQuery: url.Values{"sslmode": []string{db.SSLMode}}.Encode(),
	}
	return u.String()
}

// loadConfig loads configuration from file, with FF_ARENA_* environment overrides
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

// validateMigrationsPath checks if the migrations directory exists and contains migration files
func validateMigrationsPath(migrationsPath string) error {
	if _, err := os.Stat(migrationsPath); os.IsNotExist(err) {
		return fmt.Errorf("migrations directory does not exist: %s", migrationsPath)
	}

	files, err := filepath.Glob(filepath.Join(migrationsPath, "*.sql"))
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	if len(files) == 0 {
		return fmt.Errorf("no migration files found in directory: %s", migrationsPath)
	}

	fmt.Printf("Found %d migration files in %s\n", len(files), migrationsPath)
	return nil
}
