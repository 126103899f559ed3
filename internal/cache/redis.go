package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache stores validated feed URLs in Redis with a TTL.
type RedisCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisCache initializes a Redis-backed ValidationCache.
func NewRedisCache(addr, prefix string, ttl time.Duration) *RedisCache {
	return &RedisCache{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		prefix: prefix,
		ttl:    ttl,
	}
}

// Close closes the Redis client.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// WasValid reports whether the URL validated within the TTL window.
func (c *RedisCache) WasValid(ctx context.Context, url string) (bool, error) {
	err := c.client.Get(ctx, c.prefix+url).Err()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// MarkValid records the URL as validated for the TTL window.
func (c *RedisCache) MarkValid(ctx context.Context, url string) error {
	return c.client.Set(ctx, c.prefix+url, "1", c.ttl).Err()
}
