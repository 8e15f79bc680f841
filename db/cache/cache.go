// Package cache stores computed cost breakdowns keyed by input hash.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"buildaide/core/types"
	"buildaide/internal/config"
)

// KeyPrefix namespaces estimate entries in Redis
const KeyPrefix = "buildaide:estimate:"

// Cache stores breakdowns. A miss is (nil, false, nil).
type Cache interface {
	Get(ctx context.Context, key string) (*types.CostBreakdown, bool, error)
	Set(ctx context.Context, key string, b *types.CostBreakdown, ttl time.Duration) error
}

// RedisCache is a Cache backed by Redis
type RedisCache struct {
	client *redis.Client
}

// NewRedisClient creates a Redis client from cache configuration
func NewRedisClient(cfg config.CacheConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})
}

// NewRedisCache wraps an existing client
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

// Ping tests the Redis connection
func (c *RedisCache) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// Close closes the Redis connection
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// Get returns the cached breakdown for key
func (c *RedisCache) Get(ctx context.Context, key string) (*types.CostBreakdown, bool, error) {
	raw, err := c.client.Get(ctx, KeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var b types.CostBreakdown
	if err := json.Unmarshal(raw, &b); err != nil {
		return nil, false, fmt.Errorf("corrupt cache entry %s: %w", key, err)
	}
	return &b, true, nil
}

// Set stores b under key. A zero ttl keeps the entry until evicted.
func (c *RedisCache) Set(ctx context.Context, key string, b *types.CostBreakdown, ttl time.Duration) error {
	raw, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("failed to encode breakdown: %w", err)
	}
	if err := c.client.Set(ctx, KeyPrefix+key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}
