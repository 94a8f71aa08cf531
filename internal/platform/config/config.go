// Package config provides environment-based configuration.
//
// Loads from .env file (godotenv), maps to Config struct via go-simpler/env struct tags.
// Validates the store backend selection and its connection settings.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"go-simpler.org/env"
)

const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

type Config struct {
	AppEnv       string `env:"APP_ENV" default:"development"`
	StoreBackend string `env:"STORE_BACKEND" default:"sqlite"`
	SQLitePath   string `env:"SQLITE_PATH" default:"data/register.db"`
	RedisURL     string `env:"REDIS_URL"`
	KeyPrefix    string `env:"STORE_KEY_PREFIX" default:"retailmaster"`
	LogLevel     string `env:"LOG_LEVEL" default:"warn"`
	LogFormat    string `env:"LOG_FORMAT" default:"text"`
	Timezone     string `env:"TIMEZONE" default:"Local"`

	MetricsTextfile string `env:"METRICS_TEXTFILE"`

	StoreConnectAttempts int           `env:"STORE_CONNECT_ATTEMPTS" default:"3"`
	StoreConnectBackoff  time.Duration `env:"STORE_CONNECT_BACKOFF" default:"500ms"`
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found, using environment variables")
	}

	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Location resolves TIMEZONE; "Local" and "" mean the host zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("TIMEZONE is invalid: %w", err)
	}
	return loc, nil
}

func validate(cfg *Config) error {
	switch cfg.StoreBackend {
	case BackendMemory:
	case BackendSQLite:
		if cfg.SQLitePath == "" {
			return errors.New("SQLITE_PATH is required when STORE_BACKEND=sqlite")
		}
	case BackendRedis:
		if cfg.RedisURL == "" {
			return errors.New("REDIS_URL is required when STORE_BACKEND=redis")
		}
	default:
		return fmt.Errorf("STORE_BACKEND must be one of memory, sqlite, redis, got %q", cfg.StoreBackend)
	}

	if cfg.StoreConnectAttempts < 1 {
		return errors.New("STORE_CONNECT_ATTEMPTS must be at least 1")
	}
	if cfg.StoreConnectBackoff < 0 {
		return errors.New("STORE_CONNECT_BACKOFF must not be negative")
	}

	if _, err := cfg.Location(); err != nil {
		return err
	}

	return nil
}
