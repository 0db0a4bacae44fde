package geo

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache stores geocoding responses so repeated lookups for the same query
// or coordinates do not hit the provider again.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string, ttl time.Duration)
}

// RedisCache is a Redis-backed Cache. Failures degrade to cache misses;
// the provider call still happens.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache connects a cache to the given Redis address.
func NewRedisCache(addr string) *RedisCache {
	return &RedisCache{
		client: redis.NewClient(&redis.Options{Addr: addr}),
	}
}

func (c *RedisCache) Get(ctx context.Context, key string) (string, bool) {
	value, err := c.client.Get(ctx, key).Result()
	if err != nil {
		return "", false
	}
	return value, true
}

func (c *RedisCache) Set(ctx context.Context, key, value string, ttl time.Duration) {
	_ = c.client.Set(ctx, key, value, ttl).Err()
}

// Close releases the underlying Redis connection.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// noopCache is used when no Redis address is configured.
type noopCache struct{}

func (noopCache) Get(ctx context.Context, key string) (string, bool)          { return "", false }
func (noopCache) Set(ctx context.Context, key, value string, _ time.Duration) {}
