package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"raksetu/cache"
)

func newTestRedisCache(t *testing.T) *cache.RedisCache {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return cache.NewRedisCache(client)
}

func TestRedisCache_SetAndGet(t *testing.T) {
	c := newTestRedisCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte(`{"a":1}`)))

	got, ok := c.Get(ctx, "k", time.Minute)
	require.True(t, ok)
	assert.JSONEq(t, `{"a":1}`, string(got))
}

func TestRedisCache_MaxAgeEnforcedByEnvelope(t *testing.T) {
	c := newTestRedisCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte(`"v"`)))
	time.Sleep(5 * time.Millisecond)

	_, ok := c.Get(ctx, "k", time.Nanosecond)
	assert.False(t, ok, "an entry older than maxAge reads as a miss")

	_, ok = c.Get(ctx, "k", time.Hour)
	assert.True(t, ok)
}

func TestRedisCache_MissAndDelete(t *testing.T) {
	c := newTestRedisCache(t)
	ctx := context.Background()

	_, ok := c.Get(ctx, "missing", time.Minute)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "k", []byte(`"v"`)))
	require.NoError(t, c.Delete(ctx, "k"))

	_, ok = c.Get(ctx, "k", time.Hour)
	assert.False(t, ok)
}
