/*
Package config loads server configuration.

PRECEDENCE (lowest to highest):
  1. Built-in defaults
  2. .env file (optional; path from ENV_FILE, default ".env")
  3. Process environment
  4. Command-line flags

KEYS:
  APP_PORT              HTTP port (8080)
  APP_ENV               development | production (development)
  LOG_LEVEL             debug | info | warn | error (info)
  STORE_DRIVER          memory | sqlite | redis (memory)
  SQLITE_PATH           SQLite file, or ":memory:" (results.db)
  REDIS_URL             redis://host:port/db or host:port
  RESULT_TTL            how long a stored result stays readable (1h)
  SWEEP_INTERVAL        how often expired results are purged (5m)
  CORS_ALLOWED_ORIGINS  comma-separated origins
  LEGAL_TABLE_PATH      YAML legal table override; empty uses the embedded one

FLAGS:
  -port -store -db -redis -legal-table mirror the keys above.
*/
package config

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
)

type Config struct {
	App            AppConfig
	Store          StoreConfig
	CORS           CORSConfig
	LegalTablePath string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// StoreConfig selects and tunes the result store
type StoreConfig struct {
	Driver        string
	SQLitePath    string
	RedisURL      string
	ResultTTL     time.Duration
	SweepInterval time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

// Load builds the configuration from defaults, .env, environment and args
// (typically os.Args[1:]).
func Load(args []string) (*Config, error) {
	envFile := getEnv("ENV_FILE", ".env")
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}

	cfg := &Config{}
	var err error

	if cfg.App.Port, err = getEnvInt("APP_PORT", 8080); err != nil {
		return nil, err
	}
	cfg.App.Env = getEnv("APP_ENV", "development")
	cfg.App.LogLevel = getEnv("LOG_LEVEL", "info")

	cfg.Store.Driver = getEnv("STORE_DRIVER", DriverMemory)
	cfg.Store.SQLitePath = getEnv("SQLITE_PATH", "results.db")
	cfg.Store.RedisURL = getEnv("REDIS_URL", "")
	if cfg.Store.ResultTTL, err = getEnvDuration("RESULT_TTL", time.Hour); err != nil {
		return nil, err
	}
	if cfg.Store.SweepInterval, err = getEnvDuration("SWEEP_INTERVAL", 5*time.Minute); err != nil {
		return nil, err
	}

	cfg.CORS.AllowedOrigins = getEnvSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173", "http://localhost:8080"})
	cfg.LegalTablePath = getEnv("LEGAL_TABLE_PATH", "")

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.IntVar(&cfg.App.Port, "port", cfg.App.Port, "HTTP server port")
	fs.StringVar(&cfg.Store.Driver, "store", cfg.Store.Driver, "result store: memory, sqlite or redis")
	fs.StringVar(&cfg.Store.SQLitePath, "db", cfg.Store.SQLitePath, `SQLite database path (":memory:" for in-memory)`)
	fs.StringVar(&cfg.Store.RedisURL, "redis", cfg.Store.RedisURL, "Redis URL")
	fs.StringVar(&cfg.LegalTablePath, "legal-table", cfg.LegalTablePath, "YAML legal table override")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.App.Port <= 0 || c.App.Port > 65535 {
		return fmt.Errorf("APP_PORT %d is out of range", c.App.Port)
	}
	switch c.Store.Driver {
	case DriverMemory:
	case DriverSQLite:
		if c.Store.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required for the sqlite store")
		}
	case DriverRedis:
		if c.Store.RedisURL == "" {
			return fmt.Errorf("REDIS_URL is required for the redis store")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.Store.Driver)
	}
	if c.Store.ResultTTL <= 0 {
		return fmt.Errorf("RESULT_TTL must be positive")
	}
	if c.Store.SweepInterval <= 0 {
		return fmt.Errorf("SWEEP_INTERVAL must be positive")
	}
	if _, err := parseLevel(c.App.LogLevel); err != nil {
		return err
	}
	return nil
}

// Addr is the listen address for http.Server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.App.Port)
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// SlogLevel maps LOG_LEVEL to a slog level; Validate rejects unknown names.
func (c *Config) SlogLevel() slog.Level {
	lvl, _ := parseLevel(c.App.LogLevel)
	return lvl
}

func parseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q", s)
	}
	return lvl, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getEnvSlice(key string, fallback []string) []string {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
