package kvstore

import (
	"context"
	"testing"
	"time"

	"github.com/ipang84/retailmaster/internal/adapter/memory"
	"github.com/ipang84/retailmaster/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func closedSession() domain.RegisterSession {
	start := time.Date(2026, 10, 14, 8, 30, 0, 0, time.UTC)
	end := start.Add(9 * time.Hour)
	ending := domain.Cents(14505)
	return domain.RegisterSession{
		ID:           "0192f1c4-42aa-7c31-9a0e-5e2b8f1d0a11",
		StartTime:    start,
		StartingCash: 10000,
		CashCounts:   domain.DenominationCount{"20": 5},
		EndTime:      &end,
		EndingCash:   &ending,
		EndCashCounts: domain.DenominationCount{
			"100": 1, "20": 2, "5": 1, "0.05": 1,
		},
		Status: domain.SessionClosed,
		Transactions: []domain.Transaction{
			{Type: "sale", PaymentMethod: "cash", Amount: 5000, OrderID: "o-1", Timestamp: start.Add(time.Hour)},
			{Type: "refund", PaymentMethod: "cash", Amount: 1000, Note: "damaged", Metadata: map[string]string{"reason": "damage"}, Timestamp: start.Add(2 * time.Hour)},
		},
	}
}

func activeSession() domain.RegisterSession {
	return domain.RegisterSession{
		ID:           "0192f1c4-42aa-7c31-9a0e-5e2b8f1d0a12",
		StartTime:    time.Date(2026, 10, 15, 8, 0, 0, 0, time.UTC),
		StartingCash: 2530,
		CashCounts:   domain.DenominationCount{"20": 1, "5": 1, "0.10": 3},
		Status:       domain.SessionActive,
		Transactions: []domain.Transaction{},
	}
}

func TestStore_EmptyBackend(t *testing.T) {
	store := New(memory.NewKV(), "test")
	ctx := context.Background()

	sessions, err := store.ListSessions(ctx)
	require.NoError(t, err)
	assert.NotNil(t, sessions)
	assert.Empty(t, sessions)

	current, err := store.CurrentSession(ctx)
	require.NoError(t, err)
	assert.Nil(t, current)
}

func TestStore_SessionsRoundTrip(t *testing.T) {
	store := New(memory.NewKV(), "test")
	ctx := context.Background()

	want := []domain.RegisterSession{closedSession(), activeSession()}
	require.NoError(t, store.SaveSessions(ctx, want))

	got, err := store.ListSessions(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestStore_CurrentRoundTrip(t *testing.T) {
	store := New(memory.NewKV(), "test")
	ctx := context.Background()

	want := closedSession()
	require.NoError(t, store.SetCurrentSession(ctx, want))

	got, err := store.CurrentSession(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want, *got)
}

func TestStore_ActiveSessionKeepsNulls(t *testing.T) {
	kv := memory.NewKV()
	store := New(kv, "")
	ctx := context.Background()

	require.NoError(t, store.SetCurrentSession(ctx, activeSession()))

	raw, found, err := kv.Get(ctx, "current_register_session")
	require.NoError(t, err)
	require.True(t, found)
	assert.Contains(t, raw, `"endTime":null`)
	assert.Contains(t, raw, `"endingCash":null`)
	assert.Contains(t, raw, `"transactions":[]`)
	assert.NotContains(t, raw, "endCashCounts")
	assert.Contains(t, raw, `"startingCash":25.30`)
}

func TestStore_ClearCurrent(t *testing.T) {
	store := New(memory.NewKV(), "test")
	ctx := context.Background()

	require.NoError(t, store.SetCurrentSession(ctx, activeSession()))
	require.NoError(t, store.ClearCurrentSession(ctx))

	current, err := store.CurrentSession(ctx)
	require.NoError(t, err)
	assert.Nil(t, current)
}

func TestStore_PrefixIsolation(t *testing.T) {
	kv := memory.NewKV()
	a := New(kv, "store-a")
	b := New(kv, "store-b")
	ctx := context.Background()

	require.NoError(t, a.SaveSessions(ctx, []domain.RegisterSession{activeSession()}))

	sessions, err := b.ListSessions(ctx)
	require.NoError(t, err)
	assert.Empty(t, sessions)

	_, found, _ := kv.Get(ctx, "store-a:register_sessions")
	assert.True(t, found)
}

func TestStore_CorruptBlob(t *testing.T) {
	kv := memory.NewKV()
	store := New(kv, "")
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, "register_sessions", "{not json"))
	require.NoError(t, kv.Set(ctx, "current_register_session", "[1,2"))

	_, err := store.ListSessions(ctx)
	assert.ErrorContains(t, err, "failed to unmarshal sessions")

	_, err = store.CurrentSession(ctx)
	assert.ErrorContains(t, err, "failed to unmarshal current session")
}

func TestStore_AcceptsLegacyFloatAmounts(t *testing.T) {
	kv := memory.NewKV()
	store := New(kv, "")
	ctx := context.Background()

	legacy := `[{"id":"1697270400000","startTime":"2026-10-14T08:00:00Z","startingCash":203.05,` +
		`"cashCounts":{"100":2,"1.00":3,"0.01":5},"endTime":null,"endingCash":null,"status":"active",` +
		`"transactions":[{"type":"sale","paymentMethod":"cash","amount":"19.99","timestamp":"2026-10-14T09:00:00Z"}]}]`
	require.NoError(t, kv.Set(ctx, "register_sessions", legacy))

	sessions, err := store.ListSessions(ctx)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, domain.Cents(20305), sessions[0].StartingCash)
	assert.Equal(t, domain.Cents(1999), sessions[0].Transactions[0].Amount)
	assert.Nil(t, sessions[0].EndingCash)
}

type failingKV struct{ err error }

func (f failingKV) Get(context.Context, string) (string, bool, error) { return "", false, f.err }
func (f failingKV) Set(context.Context, string, string) error         { return f.err }
func (f failingKV) Delete(context.Context, string) error              { return f.err }

func TestStore_PropagatesBackendErrors(t *testing.T) {
	backendErr := assert.AnError
	store := New(failingKV{err: backendErr}, "")
	ctx := context.Background()

	_, err := store.ListSessions(ctx)
	assert.ErrorIs(t, err, backendErr)
	assert.ErrorIs(t, store.SaveSessions(ctx, nil), backendErr)
	_, err = store.CurrentSession(ctx)
	assert.ErrorIs(t, err, backendErr)
	assert.ErrorIs(t, store.SetCurrentSession(ctx, activeSession()), backendErr)
	assert.ErrorIs(t, store.ClearCurrentSession(ctx), backendErr)
}
