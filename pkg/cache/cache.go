package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/VCL-tt/BK-VenComp/pkg/logger"
)

// Cache is a thin JSON cache over Redis. A nil *Cache is a no-op,
// so callers can run without Redis configured.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New creates a cache with the given TTL for stored entries
func New(client *redis.Client, ttl time.Duration) *Cache {
	if client == nil {
		return nil
	}
	return &Cache{client: client, ttl: ttl}
}

// GetJSON loads a cached value into dest. Returns false on miss or error.
func (c *Cache) GetJSON(ctx context.Context, key string, dest interface{}) bool {
	if c == nil {
		return false
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		logger.Warn(ctx).Err(err).Str("key", key).Msg("Failed to decode cached value")
		return false
	}
	return true
}

// SetJSON stores a value under key, best effort
func (c *Cache) SetJSON(ctx context.Context, key string, value interface{}) {
	if c == nil {
		return
	}

	data, err := json.Marshal(value)
	if err != nil {
		logger.Warn(ctx).Err(err).Str("key", key).Msg("Failed to encode value for cache")
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		logger.Warn(ctx).Err(err).Str("key", key).Msg("Failed to cache value")
	}
}

// Invalidate removes all keys matching the given pattern
func (c *Cache) Invalidate(ctx context.Context, pattern string) {
	if c == nil {
		return
	}

	iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			logger.Warn(ctx).Err(err).Str("key", iter.Val()).Msg("Failed to invalidate cache key")
		}
	}
	if err := iter.Err(); err != nil {
		logger.Warn(ctx).Err(err).Str("pattern", pattern).Msg("Cache invalidation scan failed")
	}
}
