package store_test

import (
	"context"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/keranjang/internal/store"
)

type snapshot struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func runStoreContract(t *testing.T, s store.Store) {
	t.Helper()
	ctx := context.Background()

	found, err := s.GetJSON(ctx, "cart", &snapshot{})
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, s.SetJSON(ctx, "cart", snapshot{Name: "demo", Count: 3}))

	var got snapshot
	found, err = s.GetJSON(ctx, "cart", &got)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, snapshot{Name: "demo", Count: 3}, got)

	// last write wins
	require.NoError(t, s.SetJSON(ctx, "cart", snapshot{Name: "demo", Count: 9}))
	found, err = s.GetJSON(ctx, "cart", &got)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, 9, got.Count)

	require.NoError(t, s.Delete(ctx, "cart"))
	found, err = s.GetJSON(ctx, "cart", &got)
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, s.Delete(ctx, "cart"))
}

func TestMemoryStore(t *testing.T) {
	runStoreContract(t, store.NewMemory())
}

func TestRedisStore(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	runStoreContract(t, store.NewRedis(client))
}
