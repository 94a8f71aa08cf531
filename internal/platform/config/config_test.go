package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_ENV", "STORE_BACKEND", "SQLITE_PATH", "REDIS_URL", "STORE_KEY_PREFIX",
		"LOG_LEVEL", "LOG_FORMAT", "TIMEZONE", "METRICS_TEXTFILE",
		"STORE_CONNECT_ATTEMPTS", "STORE_CONNECT_BACKOFF",
	} {
		// Register restore-on-cleanup, then unset so defaults apply.
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoad_DefaultValues(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, BackendSQLite, cfg.StoreBackend)
	assert.Equal(t, "data/register.db", cfg.SQLitePath)
	assert.Equal(t, "retailmaster", cfg.KeyPrefix)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 3, cfg.StoreConnectAttempts)
	assert.Equal(t, 500*time.Millisecond, cfg.StoreConnectBackoff)
	assert.Empty(t, cfg.MetricsTextfile)
}

func TestLoad_RedisBackend(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_BACKEND", "redis")
	t.Setenv("REDIS_URL", "redis://localhost:6379/2")
	t.Setenv("STORE_CONNECT_BACKOFF", "2s")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, BackendRedis, cfg.StoreBackend)
	assert.Equal(t, "redis://localhost:6379/2", cfg.RedisURL)
	assert.Equal(t, 2*time.Second, cfg.StoreConnectBackoff)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"unknown backend", map[string]string{"STORE_BACKEND": "postgres"}, `STORE_BACKEND must be one of memory, sqlite, redis, got "postgres"`},
		{"redis without url", map[string]string{"STORE_BACKEND": "redis"}, "REDIS_URL is required when STORE_BACKEND=redis"},
		{"zero attempts", map[string]string{"STORE_CONNECT_ATTEMPTS": "0"}, "STORE_CONNECT_ATTEMPTS must be at least 1"},
		{"bad timezone", map[string]string{"TIMEZONE": "Mars/Olympus"}, "TIMEZONE is invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLocation(t *testing.T) {
	cfg := &Config{Timezone: "UTC"}
	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)

	cfg.Timezone = "Local"
	loc, err = cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)
}

func TestLoad_MemoryBackendNeedsNothing(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_BACKEND", "memory")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, BackendMemory, cfg.StoreBackend)
}
