// Package cache provides the Redis-backed cache used for engine template
// hints. The engine's template map changes rarely; caching it keeps the
// templates endpoint from hitting the engine on every read.
package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"dealdesk/internal/port"
)

// TemplateKey is the cache key for the engine's extraction hint templates.
const TemplateKey = "dealdesk:engine:templates"

// RedisCache implements port.Cache using go-redis/v9.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache creates a new RedisCache from a Redis URL.
func NewRedisCache(redisURL string) (*RedisCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	return &RedisCache{client: redis.NewClient(opts)}, nil
}

var _ port.Cache = (*RedisCache)(nil)

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}
