package cache

import (
	"context"
	"sync"
	"time"
)

// Cache is a read-through cache for the listing queries. Get only returns a
// hit when the entry is younger than maxAge, so callers pick their own
// staleness budget per read (a large maxAge recovers stale entries for
// stale-while-revalidate fallbacks). Writes to the store bypass the cache and
// should Delete the affected keys afterwards.
type Cache interface {
	Get(ctx context.Context, key string, maxAge time.Duration) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

type memoryEntry struct {
	value    []byte
	storedAt time.Time
}

// MemoryCache is the in-process tier: a mutex-guarded map with per-read
// staleness checks. Entries are only evicted by overwrite or Delete.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (m *MemoryCache) Get(_ context.Context, key string, maxAge time.Duration) ([]byte, bool) {
	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if m.now().Sub(entry.storedAt) > maxAge {
		return nil, false
	}
	return entry.value, true
}

func (m *MemoryCache) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	m.entries[key] = memoryEntry{value: value, storedAt: m.now()}
	m.mu.Unlock()
	return nil
}

func (m *MemoryCache) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
	return nil
}
