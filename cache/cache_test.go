package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_FreshHit(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v")))

	got, ok := c.Get(ctx, "k", time.Minute)
	require.True(t, ok)
	assert.Equal(t, []byte("v"), got)
}

func TestMemoryCache_StaleEntryMissesButStaysRecoverable(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return base }
	require.NoError(t, c.Set(ctx, "k", []byte("v")))

	// five minutes later the entry is stale for a 2m budget but still
	// recoverable with a larger one (stale-while-revalidate fallback)
	c.now = func() time.Time { return base.Add(5 * time.Minute) }

	_, ok := c.Get(ctx, "k", 2*time.Minute)
	assert.False(t, ok)

	got, ok := c.Get(ctx, "k", 30*time.Minute)
	require.True(t, ok)
	assert.Equal(t, []byte("v"), got)
}

func TestMemoryCache_MissAndDelete(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	_, ok := c.Get(ctx, "missing", time.Minute)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "k", []byte("v")))
	require.NoError(t, c.Delete(ctx, "k"))

	_, ok = c.Get(ctx, "k", time.Hour)
	assert.False(t, ok)
}

func TestMemoryCache_OverwriteRefreshesAge(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return base }
	require.NoError(t, c.Set(ctx, "k", []byte("old")))

	c.now = func() time.Time { return base.Add(10 * time.Minute) }
	require.NoError(t, c.Set(ctx, "k", []byte("new")))

	got, ok := c.Get(ctx, "k", time.Minute)
	require.True(t, ok)
	assert.Equal(t, []byte("new"), got)
}
