package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLookupCache is a Redis-backed lookup cache with per-entry expiry.
// Redis enforces the TTL, so an expired entry is never returned as a hit.
type RedisLookupCache struct {
	client *redis.Client
}

func NewRedisLookupCache(client *redis.Client) *RedisLookupCache {
	return &RedisLookupCache{client: client}
}

// Get returns the cached value and true on a hit. A miss is not an error.
func (c *RedisLookupCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if c.client == nil {
		return nil, false, errors.New("lookup cache: client is nil")
	}

	val, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("lookup cache get %q: %w", key, err)
	}

	return val, true, nil
}

// Set stores value under key. Every write carries an explicit TTL.
func (c *RedisLookupCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if c.client == nil {
		return errors.New("lookup cache: client is nil")
	}
	if ttl <= 0 {
		return fmt.Errorf("lookup cache set %q: ttl must be positive, got %v", key, ttl)
	}

	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("lookup cache set %q: %w", key, err)
	}

	return nil
}
