package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/severance-engine/config"
)

var keys = []string{
	"ENV_FILE", "APP_PORT", "APP_ENV", "LOG_LEVEL", "STORE_DRIVER", "SQLITE_PATH",
	"REDIS_URL", "RESULT_TTL", "SWEEP_INTERVAL", "CORS_ALLOWED_ORIGINS", "LEGAL_TABLE_PATH",
}

// clearEnv unsets every key for the test and restores it afterwards.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.Load(nil)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "development", cfg.App.Env)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
	assert.Equal(t, config.DriverMemory, cfg.Store.Driver)
	assert.Equal(t, time.Hour, cfg.Store.ResultTTL)
	assert.Equal(t, 5*time.Minute, cfg.Store.SweepInterval)
	assert.Equal(t, []string{"http://localhost:5173", "http://localhost:8080"}, cfg.CORS.AllowedOrigins)
	assert.Empty(t, cfg.LegalTablePath)
}

func TestLoad_EnvironmentThenFlags(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_PORT", "9000")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", "/tmp/a.db")
	t.Setenv("RESULT_TTL", "90m")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")

	cfg, err := config.Load([]string{"-port", "3000", "-db", ":memory:"})
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.App.Port, "flag wins over env")
	assert.Equal(t, ":memory:", cfg.Store.SQLitePath)
	assert.Equal(t, config.DriverSQLite, cfg.Store.Driver)
	assert.Equal(t, 90*time.Minute, cfg.Store.ResultTTL)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_DotEnvFile(t *testing.T) {
	clearEnv(t)
	envFile := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte("APP_ENV=production\nSWEEP_INTERVAL=30s\n"), 0o600))
	t.Setenv("ENV_FILE", envFile)

	cfg, err := config.Load(nil)
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 30*time.Second, cfg.Store.SweepInterval)
}

func TestLoad_Rejects(t *testing.T) {
	cases := map[string]map[string]string{
		"bad port":          {"APP_PORT": "eighty"},
		"port range":        {"APP_PORT": "70000"},
		"bad ttl":           {"RESULT_TTL": "forever"},
		"zero sweep":        {"SWEEP_INTERVAL": "0s"},
		"unknown driver":    {"STORE_DRIVER": "mongo"},
		"redis without url": {"STORE_DRIVER": "redis"},
		"bad log level":     {"LOG_LEVEL": "loud"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := config.Load(nil)
			assert.Error(t, err)
		})
	}
}

func TestLoad_UnknownFlag(t *testing.T) {
	clearEnv(t)
	_, err := config.Load([]string{"-verbose"})
	assert.Error(t, err)
}
