package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/ipang84/retailmaster/internal/adapter/kvstore"
	"github.com/ipang84/retailmaster/internal/adapter/kvstore/kvtest"
	"github.com/ipang84/retailmaster/internal/domain"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestKV(t *testing.T, path string) *KV {
	t.Helper()
	kv, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = kv.Close() })
	return kv
}

func TestKV_Contract(t *testing.T) {
	kvtest.Run(t, func(t *testing.T) domain.KeyValueStore {
		return openTestKV(t, filepath.Join(t.TempDir(), "kv.db"))
	})
}

func TestOpen_RequiresPath(t *testing.T) {
	_, err := Open("   ")
	assert.ErrorContains(t, err, "storage path is required")
}

func TestOpen_CreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "data", "register.db")
	kv := openTestKV(t, path)
	assert.FileExists(t, path)
	assert.NoError(t, kv.Set(context.Background(), "k", "v"))
}

func TestKV_StampsUpdatedAtFromClock(t *testing.T) {
	at := time.Date(2026, 10, 14, 8, 0, 0, 0, time.UTC)
	clock := clockwork.NewFakeClockAt(at)
	kv, err := Open(filepath.Join(t.TempDir(), "kv.db"), WithClock(clock))
	require.NoError(t, err)
	t.Cleanup(func() { _ = kv.Close() })
	ctx := context.Background()

	updatedAt := func() int64 {
		t.Helper()
		var millis int64
		require.NoError(t, kv.sqlDB.QueryRowContext(ctx, `SELECT updated_at FROM kv WHERE key = ?`, "k").Scan(&millis))
		return millis
	}

	require.NoError(t, kv.Set(ctx, "k", "v1"))
	assert.Equal(t, at.UnixMilli(), updatedAt())

	clock.Advance(90 * time.Second)
	require.NoError(t, kv.Set(ctx, "k", "v2"))
	assert.Equal(t, at.Add(90*time.Second).UnixMilli(), updatedAt())
}

func TestKV_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "register.db")
	ctx := context.Background()

	session := domain.RegisterSession{
		ID:           "s-sqlite",
		StartTime:    time.Date(2026, 10, 14, 8, 0, 0, 0, time.UTC),
		StartingCash: 20305,
		CashCounts:   domain.DenominationCount{"100": 2, "1.00": 3, "0.01": 5},
		Status:       domain.SessionActive,
		Transactions: []domain.Transaction{},
	}

	first, err := Open(path)
	require.NoError(t, err)
	store := kvstore.New(first, "retailmaster")
	require.NoError(t, store.SaveSessions(ctx, []domain.RegisterSession{session}))
	require.NoError(t, store.SetCurrentSession(ctx, session))
	require.NoError(t, first.Close())

	second := openTestKV(t, path)
	reopened := kvstore.New(second, "retailmaster")

	sessions, err := reopened.ListSessions(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.RegisterSession{session}, sessions)

	current, err := reopened.CurrentSession(ctx)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, session, *current)
}

func TestKV_CancelledContext(t *testing.T) {
	kv := openTestKV(t, filepath.Join(t.TempDir(), "kv.db"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := kv.Get(ctx, "k")
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, kv.Set(ctx, "k", "v"), context.Canceled)
	assert.ErrorIs(t, kv.Delete(ctx, "k"), context.Canceled)
}

func TestClose_NilSafe(t *testing.T) {
	var kv *KV
	assert.NoError(t, kv.Close())
}
