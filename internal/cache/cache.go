// Package cache provides a small Redis cache-aside layer for the
// read-heavy inventory views (analytics, low-stock list). The cache is
// optional: a nil *Cache is a no-op, so the service works unchanged when
// Redis is not configured.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultTTL = 60 * time.Second

// Cache wraps a Redis client with JSON marshalling and a key prefix.
type Cache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// New creates a cache backed by the Redis instance at addr.
func New(addr string) (*Cache, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}

	return &Cache{
		client: client,
		prefix: "inventory:",
		ttl:    defaultTTL,
	}, nil
}

// Get retrieves a value from the cache into dest. Returns false on a miss.
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	if c == nil {
		return false, nil
	}

	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil // cache miss
		}
		return false, fmt.Errorf("cache get error: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("cache unmarshal error: %w", err)
	}

	return true, nil
}

// Set stores a value in the cache with the default TTL.
func (c *Cache) Set(ctx context.Context, key string, value interface{}) error {
	if c == nil {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache marshal error: %w", err)
	}

	if err := c.client.Set(ctx, c.prefix+key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set error: %w", err)
	}

	return nil
}

// Invalidate removes all keys matching the given patterns. Used after
// stock mutations so reads never serve stale quantities past the TTL.
func (c *Cache) Invalidate(ctx context.Context, patterns ...string) error {
	if c == nil {
		return nil
	}

	for _, pattern := range patterns {
		iter := c.client.Scan(ctx, 0, c.prefix+pattern, 0).Iterator()
		for iter.Next(ctx) {
			if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
				return fmt.Errorf("cache delete error: %w", err)
			}
		}
		if err := iter.Err(); err != nil {
			return fmt.Errorf("cache scan error: %w", err)
		}
	}

	return nil
}

// Close releases the underlying Redis connection.
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
