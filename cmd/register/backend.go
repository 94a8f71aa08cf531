package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/ipang84/retailmaster/internal/adapter/memory"
	"github.com/ipang84/retailmaster/internal/adapter/redis"
	"github.com/ipang84/retailmaster/internal/adapter/sqlite"
	"github.com/ipang84/retailmaster/internal/domain"
	"github.com/ipang84/retailmaster/internal/platform/config"
	"github.com/ipang84/retailmaster/internal/platform/retry"
	"github.com/jonboulle/clockwork"
	goredis "github.com/redis/go-redis/v9"
)

const redisDialTimeout = 5 * time.Second

// openBackend opens the key-value store selected by STORE_BACKEND.
// The returned close func is always safe to call.
func openBackend(ctx context.Context, cfg *config.Config, clock clockwork.Clock) (domain.KeyValueStore, func(), error) {
	switch cfg.StoreBackend {
	case config.BackendMemory:
		slog.WarnContext(ctx, "Memory store selected, sessions are discarded when the command exits")
		return memory.NewKV(), func() {}, nil

	case config.BackendSQLite:
		kv, err := sqlite.Open(cfg.SQLitePath, sqlite.WithClock(clock))
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite store: %w", err)
		}
		slog.DebugContext(ctx, "Opened SQLite store", "path", cfg.SQLitePath)
		return kv, func() {
			if err := kv.Close(); err != nil {
				slog.WarnContext(ctx, "Failed to close SQLite store", "error", err)
			}
		}, nil

	case config.BackendRedis:
		client, err := connectRedis(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return redis.NewKV(client), func() { _ = client.Close() }, nil
	}
	return nil, nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
}

func connectRedis(ctx context.Context, cfg *config.Config) (*goredis.Client, error) {
	policy := retry.Connect(cfg.StoreConnectAttempts, cfg.StoreConnectBackoff)
	policy.OnRetry = func(attempt int, err error, backoff time.Duration) {
		slog.WarnContext(ctx, "Redis connect failed, retrying", "attempt", attempt, "backoff", backoff, "error", err)
	}

	client, err := retry.Do(ctx, policy, classifyConnectError, func(ctx context.Context) (*goredis.Client, error) {
		dialCtx, cancel := context.WithTimeout(ctx, redisDialTimeout)
		defer cancel()
		return redis.NewClient(dialCtx, cfg.RedisURL)
	})
	if err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	slog.DebugContext(ctx, "Connected to Redis", "url", redactURL(cfg.RedisURL))
	return client, nil
}

func classifyConnectError(err error) retry.Action {
	if errors.Is(err, redis.ErrInvalidURL) {
		return retry.Stop
	}
	return retry.Retry
}

// redactURL hides the password in a Redis URL for logging.
func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "<unparseable>"
	}
	return u.Redacted()
}
