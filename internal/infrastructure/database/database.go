package database

import (
	"fmt"
	"time"

	"github.com/saradorri/ffarena/internal/domain"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Config holds connection settings for the database
type Config struct {
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

// Database wraps the gorm connection
type Database struct {
	DB *gorm.DB
}

// DSN returns the postgres connection string
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// NewDatabase opens a postgres connection and configures the pool
func NewDatabase(cfg *Config) (*Database, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger:                 gormlogger.Default.LogMode(gormlogger.Warn),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	return &Database{DB: db}, nil
}

// GetDB returns the gorm handle
func (d *Database) GetDB() *gorm.DB {
	return d.DB
}

// Models lists every table owned by the service
func Models() []interface{} {
	return []interface{}{
		&domain.User{},
		&domain.Tournament{},
		&domain.Participant{},
		&domain.Winner{},
		&domain.CreditTransaction{},
		&domain.OutboxEvent{},
	}
}
