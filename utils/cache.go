package utils

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"tinyblog/config"
)

const defaultCacheTTL = 5 * time.Minute

// Cache is a best-effort Redis-backed JSON cache. All operations tolerate a
// missing or unreachable Redis and fall back to cache misses.
type Cache struct {
	client *redis.Client
}

// NewCache returns a cache bound to Redis, or a disabled cache when no Redis
// host is configured.
func NewCache(cfg config.AppConfig) *Cache {
	if cfg.RedisHost == "" {
		return &Cache{}
	}
	return &Cache{client: NewRedisClient(cfg)}
}

// GetJSON loads and unmarshals a cached value into out.
func (c *Cache) GetJSON(key string, out interface{}) bool {
	if c == nil || c.client == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	b, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		Sugar.Debugf("cache get miss key=%s err=%v", key, err)
		return false
	}
	if err := json.Unmarshal(b, out); err != nil {
		Sugar.Warnf("cache decode failed key=%s err=%v", key, err)
		return false
	}
	return true
}

// SetJSON marshals v and stores it with the given TTL.
func (c *Cache) SetJSON(key string, v interface{}, ttl time.Duration) {
	if c == nil || c.client == nil {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := c.client.Set(ctx, key, b, ttl).Err(); err != nil {
		Sugar.Warnf("cache set failed key=%s err=%v", key, err)
	}
}

// Delete removes keys, typically after a write invalidates them.
func (c *Cache) Delete(keys ...string) {
	if c == nil || c.client == nil || len(keys) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		Sugar.Warnf("cache delete failed err=%v", err)
	}
}
