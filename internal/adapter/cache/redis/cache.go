package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/simaogato/companystats-backend/internal/usecase/statistics"
)

// scanBatch is the SCAN COUNT hint used while invalidating
const scanBatch = 100

// Options configures the Redis connection
type Options struct {
	Addr     string
	Password string
	DB       int
}

// Cache stores computed statistics in Redis with a TTL
// It implements statistics.Cache
type Cache struct {
	client goredis.UniversalClient
	ttl    time.Duration
	prefix string
}

// NewClient connects to Redis and verifies the connection
func NewClient(ctx context.Context, opts Options) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", opts.Addr, err)
	}

	return client, nil
}

// NewCache wraps a Redis client
func NewCache(client goredis.UniversalClient, ttl time.Duration, prefix string) *Cache {
	return &Cache{
		client: client,
		ttl:    ttl,
		prefix: prefix,
	}
}

// Get returns the cached value for key and whether it was present
func (c *Cache) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := c.client.Get(ctx, c.prefix+key).Result()
	if errors.Is(err, goredis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read cache key %s: %w", key, err)
	}
	return value, true, nil
}

// Set stores value under key with the configured TTL
func (c *Cache) Set(ctx context.Context, key, value string) error {
	if err := c.client.Set(ctx, c.prefix+key, value, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write cache key %s: %w", key, err)
	}
	return nil
}

// Invalidate deletes every statistics key under the cache prefix
func (c *Cache) Invalidate(ctx context.Context) error {
	pattern := c.prefix + statistics.CacheKeyPrefix + "*"

	var keys []string
	iter := c.client.Scan(ctx, 0, pattern, scanBatch).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan cache keys %s: %w", pattern, err)
	}

	for start := 0; start < len(keys); start += scanBatch {
		end := min(start+scanBatch, len(keys))
		if err := c.client.Del(ctx, keys[start:end]...).Err(); err != nil {
			return fmt.Errorf("failed to delete cache keys: %w", err)
		}
	}

	return nil
}
