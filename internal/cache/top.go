// top.go caches the serialized top-articles board so the analytics endpoint
// skips the aggregate query on repeat hits.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	topArticlesKey = "analytics:top"

	// DefaultTopTTL is how long the top-articles board stays cached.
	DefaultTopTTL = time.Minute
)

// TopCache stores one JSON-serialized value under a fixed key.
type TopCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewTopCache creates a TopCache with the given TTL.
func NewTopCache(client *redis.Client, ttl time.Duration) *TopCache {
	if ttl == 0 {
		ttl = DefaultTopTTL
	}
	return &TopCache{client: client, ttl: ttl}
}

// Get unmarshals the cached board into dest. Returns false on miss or error.
func (c *TopCache) Get(ctx context.Context, dest any) bool {
	val, err := c.client.Get(ctx, topArticlesKey).Bytes()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		slog.Warn("top cache get error", "error", err)
		return false
	}
	if err := json.Unmarshal(val, dest); err != nil {
		slog.Warn("top cache decode error", "error", err)
		return false
	}
	return true
}

// Set serializes and stores the board with the configured TTL.
func (c *TopCache) Set(ctx context.Context, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		slog.Warn("top cache encode error", "error", err)
		return
	}
	if err := c.client.Set(ctx, topArticlesKey, data, c.ttl).Err(); err != nil {
		slog.Warn("top cache set error", "error", err)
	}
}

// Invalidate drops the cached board.
func (c *TopCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, topArticlesKey).Err(); err != nil {
		slog.Warn("top cache invalidate error", "error", err)
	}
}
