package kvstore

import (
	"context"
	"log/slog"
	"time"

	"github.com/ipang84/retailmaster/internal/adapter/metrics"
	"github.com/ipang84/retailmaster/internal/domain"
)

// InstrumentedKV records operation counts and latency for a backend.
type InstrumentedKV struct {
	next    domain.KeyValueStore
	backend string
	metrics *metrics.StoreMetrics
}

// Instrument wraps kv so every call is measured under the given backend label.
func Instrument(kv domain.KeyValueStore, backend string, m *metrics.StoreMetrics) *InstrumentedKV {
	return &InstrumentedKV{next: kv, backend: backend, metrics: m}
}

func (k *InstrumentedKV) Get(ctx context.Context, key string) (string, bool, error) {
	start := time.Now()
	value, found, err := k.next.Get(ctx, key)
	k.observe(ctx, "get", key, start, err)
	return value, found, err
}

func (k *InstrumentedKV) Set(ctx context.Context, key, value string) error {
	start := time.Now()
	err := k.next.Set(ctx, key, value)
	k.observe(ctx, "set", key, start, err)
	return err
}

func (k *InstrumentedKV) Delete(ctx context.Context, key string) error {
	start := time.Now()
	err := k.next.Delete(ctx, key)
	k.observe(ctx, "delete", key, start, err)
	return err
}

func (k *InstrumentedKV) observe(ctx context.Context, op, key string, start time.Time, err error) {
	elapsed := time.Since(start)
	status := "ok"
	if err != nil {
		status = "error"
		slog.ErrorContext(ctx, "Store operation failed", "backend", k.backend, "operation", op, "key", key, "error", err)
	} else {
		slog.DebugContext(ctx, "Store operation", "backend", k.backend, "operation", op, "key", key, "duration", elapsed)
	}

	k.metrics.Operations.WithLabelValues(k.backend, op, status).Inc()
	k.metrics.Duration.WithLabelValues(k.backend, op).Observe(elapsed.Seconds())
}
