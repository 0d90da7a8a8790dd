package config

import (
	"fmt"
	"os"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Log       LogConfig       `mapstructure:"log"`
	Moderator ModeratorConfig `mapstructure:"moderator"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Mail      MailConfig      `mapstructure:"mail"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Archive   ArchiveConfig   `mapstructure:"archive"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"ssl"`
	MaxIdleConns    int           `mapstructure:"maxIdleConns"`
	MaxOpenConns    int           `mapstructure:"maxOpenConns"`
	ConnMaxLifetime time.Duration `mapstructure:"connMaxLifetime"`
}

// JWTConfig holds JWT-related configuration
type JWTConfig struct {
	Secret string        `mapstructure:"secret"`
	Expiry time.Duration `mapstructure:"expiry"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// ModeratorConfig holds the lifecycle rules enforced by the moderator
type ModeratorConfig struct {
	PenaltyAmount int64         `mapstructure:"penalty_amount"`
	PenaltyAfter  time.Duration `mapstructure:"penalty_after"`
	CancelAfter   time.Duration `mapstructure:"cancel_after"`
	CancelTTL     time.Duration `mapstructure:"cancel_ttl"`
	BatchSize     int           `mapstructure:"batch_size"`
	LeaseTTL      time.Duration `mapstructure:"lease_ttl"`
	AdminIDs      []string      `mapstructure:"admin_ids"`
}

// SchedulerConfig holds background job intervals
type SchedulerConfig struct {
	Enabled              bool          `mapstructure:"enabled"`
	SweepInterval        time.Duration `mapstructure:"sweep_interval"`
	NotificationInterval time.Duration `mapstructure:"notification_interval"`
	OutboxInterval       time.Duration `mapstructure:"outbox_interval"`
	PurgeInterval        time.Duration `mapstructure:"purge_interval"`
}

// MailConfig holds email API configuration
type MailConfig struct {
	URL           string        `mapstructure:"url"`
	APIKey        string        `mapstructure:"api_key"`
	From          string        `mapstructure:"from"`
	RatePerSecond float64       `mapstructure:"rate_per_second"`
	Timeout       time.Duration `mapstructure:"timeout"`
	Retries       int           `mapstructure:"retries"`
}

// RedisConfig holds the sweep lease store configuration; an empty address disables it
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// ArchiveConfig holds object storage configuration; an empty bucket disables archiving
type ArchiveConfig struct {
	Bucket    string `mapstructure:"bucket"`
	Region    string `mapstructure:"region"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Prefix    string `mapstructure:"prefix"`
}

// GetDSN returns the database connection string
func (c *Config) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetServerAddress returns the server address for binding
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}

// ApplyDefaults fills zero values with the production defaults
func (c *Config) ApplyDefaults() {
	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Moderator.PenaltyAmount == 0 {
		c.Moderator.PenaltyAmount = 10
	}
	if c.Moderator.PenaltyAfter == 0 {
		c.Moderator.PenaltyAfter = 10 * time.Minute
	}
	if c.Moderator.CancelAfter == 0 {
		c.Moderator.CancelAfter = 20 * time.Minute
	}
	if c.Moderator.CancelTTL == 0 {
		c.Moderator.CancelTTL = 15 * time.Minute
	}
	if c.Moderator.BatchSize == 0 {
		c.Moderator.BatchSize = 100
	}
	if c.Moderator.LeaseTTL == 0 {
		c.Moderator.LeaseTTL = time.Minute
	}
	if c.Scheduler.SweepInterval == 0 {
		c.Scheduler.SweepInterval = time.Minute
	}
	if c.Scheduler.NotificationInterval == 0 {
		c.Scheduler.NotificationInterval = time.Minute
	}
	if c.Scheduler.OutboxInterval == 0 {
		c.Scheduler.OutboxInterval = 5 * time.Second
	}
	if c.Scheduler.PurgeInterval == 0 {
		c.Scheduler.PurgeInterval = 5 * time.Minute
	}
	if c.Mail.RatePerSecond == 0 {
		c.Mail.RatePerSecond = 5
	}
	if c.Mail.Timeout == 0 {
		c.Mail.Timeout = 10 * time.Second
	}
	if c.Mail.Retries == 0 {
		c.Mail.Retries = 3
	}
}

// GetEnvironment returns the current environment
func GetEnvironment() string {
	if env := os.Getenv("FF_ARENA_ENV"); env != "" {
		return env
	}
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "development"
}
