// Package kvtest holds the behavioral contract every key-value backend must satisfy.
package kvtest

import (
	"context"
	"testing"

	"github.com/ipang84/retailmaster/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Run exercises newKV against the shared backend contract. newKV must return an empty store.
func Run(t *testing.T, newKV func(t *testing.T) domain.KeyValueStore) {
	t.Helper()

	t.Run("get missing key", func(t *testing.T) {
		kv := newKV(t)
		v, found, err := kv.Get(context.Background(), "missing")
		require.NoError(t, err)
		assert.False(t, found)
		assert.Empty(t, v)
	})

	t.Run("set then get", func(t *testing.T) {
		kv := newKV(t)
		ctx := context.Background()
		require.NoError(t, kv.Set(ctx, "k", `{"a":1}`))

		v, found, err := kv.Get(ctx, "k")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, `{"a":1}`, v)
	})

	t.Run("set overwrites", func(t *testing.T) {
		kv := newKV(t)
		ctx := context.Background()
		require.NoError(t, kv.Set(ctx, "k", "first"))
		require.NoError(t, kv.Set(ctx, "k", "second"))

		v, _, err := kv.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, "second", v)
	})

	t.Run("empty value is found", func(t *testing.T) {
		kv := newKV(t)
		ctx := context.Background()
		require.NoError(t, kv.Set(ctx, "k", ""))

		_, found, err := kv.Get(ctx, "k")
		require.NoError(t, err)
		assert.True(t, found)
	})

	t.Run("delete", func(t *testing.T) {
		kv := newKV(t)
		ctx := context.Background()
		require.NoError(t, kv.Set(ctx, "k", "v"))
		require.NoError(t, kv.Delete(ctx, "k"))

		_, found, err := kv.Get(ctx, "k")
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("delete missing key is not an error", func(t *testing.T) {
		kv := newKV(t)
		assert.NoError(t, kv.Delete(context.Background(), "never-set"))
	})

	t.Run("keys are independent", func(t *testing.T) {
		kv := newKV(t)
		ctx := context.Background()
		require.NoError(t, kv.Set(ctx, "a", "1"))
		require.NoError(t, kv.Set(ctx, "b", "2"))
		require.NoError(t, kv.Delete(ctx, "a"))

		v, found, err := kv.Get(ctx, "b")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "2", v)
	})
}
