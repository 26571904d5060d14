package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedisStoreTest(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisStore(client, ttl), mr
}

func TestRedisStore_SetGetDelete(t *testing.T) {
	store, mr := setupRedisStoreTest(t, time.Hour)
	ctx := context.Background()

	_, found, err := store.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Set(ctx, "abc", "user-1"))
	assert.True(t, mr.Exists("session:abc"))
	assert.Equal(t, time.Hour, mr.TTL("session:abc"))

	userID, found, err := store.Get(ctx, "abc")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "user-1", userID)

	require.NoError(t, store.Delete(ctx, "abc"))
	_, found, err = store.Get(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisStore_Expires(t *testing.T) {
	store, mr := setupRedisStoreTest(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "abc", "user-1"))
	mr.FastForward(2 * time.Minute)

	_, found, err := store.Get(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisStore_RejectsEmptyValues(t *testing.T) {
	store, _ := setupRedisStoreTest(t, time.Minute)

	assert.Error(t, store.Set(context.Background(), "", "user-1"))
	assert.Error(t, store.Set(context.Background(), "abc", ""))
}

func TestRedisStore_ServerDown(t *testing.T) {
	store, mr := setupRedisStoreTest(t, time.Minute)
	mr.Close()

	_, _, err := store.Get(context.Background(), "abc")
	assert.Error(t, err)
}
