// Package storagetest checks that a storage.Store behaves like local storage.
package storagetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moneyapp/internal/storage"
)

// Run exercises a fresh store returned by newStore.
func Run(t *testing.T, newStore func(t *testing.T) storage.Store) {
	t.Run("get missing", func(t *testing.T) {
		s := newStore(t)
		_, ok, err := s.Get(context.Background(), "nope")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("set overwrites whole value", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)
		require.NoError(t, s.Set(ctx, "user-A", `{"name":"A","balance":1}`))
		require.NoError(t, s.Set(ctx, "user-A", `{"name":"A"}`))
		v, ok, err := s.Get(ctx, "user-A")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, `{"name":"A"}`, v)
	})

	t.Run("keys keep first write order", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)
		for _, k := range []string{"user-B", "userName", "user-A"} {
			require.NoError(t, s.Set(ctx, k, "x"))
		}
		require.NoError(t, s.Set(ctx, "user-B", "y"))
		keys, err := s.Keys(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"user-B", "userName", "user-A"}, keys)
	})

	t.Run("remove", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)
		require.NoError(t, s.Set(ctx, "a", "1"))
		require.NoError(t, s.Set(ctx, "b", "2"))
		require.NoError(t, s.Remove(ctx, "a"))
		require.NoError(t, s.Remove(ctx, "missing"))

		_, ok, err := s.Get(ctx, "a")
		require.NoError(t, err)
		assert.False(t, ok)
		keys, err := s.Keys(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"b"}, keys)
	})

	t.Run("empty store has no keys", func(t *testing.T) {
		keys, err := newStore(t).Keys(context.Background())
		require.NoError(t, err)
		assert.Empty(t, keys)
	})
}
