package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// hard TTL on Redis entries; per-read staleness is still enforced via the
// envelope timestamp, this just keeps dead keys from accumulating
const redisHardTTL = 30 * time.Minute

// envelope carries the write time alongside the payload so Get can apply the
// caller's maxAge without relying on Redis TTL granularity.
type envelope struct {
	StoredAt time.Time       `json:"storedAt"`
	Payload  json.RawMessage `json:"payload"`
}

// RedisCache is the optional persistent tier, selected when REDIS_ADDR is
// configured. Keys are namespaced under raksetu:cache:.
type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func redisKey(key string) string {
	return fmt.Sprintf("raksetu:cache:%s", key)
}

func (r *RedisCache) Get(ctx context.Context, key string, maxAge time.Duration) ([]byte, bool) {
	val, err := r.client.Get(ctx, redisKey(key)).Result()
	if err != nil {
		// redis.Nil and transient errors both read as a miss
		return nil, false
	}

	var env envelope
	if err := json.Unmarshal([]byte(val), &env); err != nil {
		return nil, false
	}
	if time.Since(env.StoredAt) > maxAge {
		return nil, false
	}
	return env.Payload, true
}

func (r *RedisCache) Set(ctx context.Context, key string, value []byte) error {
	data, err := json.Marshal(envelope{StoredAt: time.Now(), Payload: value})
	if err != nil {
		return fmt.Errorf("failed to marshal cache envelope: %w", err)
	}
	if err := r.client.Set(ctx, redisKey(key), data, redisHardTTL).Err(); err != nil {
		return fmt.Errorf("failed to set cache key %s: %w", key, err)
	}
	return nil
}

func (r *RedisCache) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, redisKey(key)).Err(); err != nil {
		return fmt.Errorf("failed to delete cache key %s: %w", key, err)
	}
	return nil
}
