package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*ResetCodeStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewResetCodeStore(client, 15*time.Minute), mr
}

func TestConsume_Match(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "ana@example.com", "123456"))

	ok, err := store.Consume(ctx, "ana@example.com", "123456")
	require.NoError(t, err)
	assert.True(t, ok)

	// Single use.
	ok, err = store.Consume(ctx, "ana@example.com", "123456")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestConsume_Mismatch(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "ana@example.com", "123456"))

	ok, err := store.Consume(ctx, "ana@example.com", "654321")
	require.NoError(t, err)
	assert.False(t, ok)

	// A wrong attempt must not destroy the code.
	ok, err = store.Consume(ctx, "ana@example.com", "123456")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestConsume_Missing(t *testing.T) {
	store, _ := newTestStore(t)

	ok, err := store.Consume(context.Background(), "nobody@example.com", "123456")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestConsume_Expired(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "ana@example.com", "123456"))
	mr.FastForward(16 * time.Minute)

	ok, err := store.Consume(ctx, "ana@example.com", "123456")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSet_Replaces(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "ana@example.com", "111111"))
	require.NoError(t, store.Set(ctx, "ana@example.com", "222222"))

	ok, err := store.Consume(ctx, "ana@example.com", "111111")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = store.Consume(ctx, "ana@example.com", "222222")
	require.NoError(t, err)
	assert.True(t, ok)
}
