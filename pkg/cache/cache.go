// Package cache provides an optional Redis read-through cache for the
// catalog listings, keeping the mobile form load cheap.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/youvit/gramedia-display-backend/pkg/logger"
)

// Client caches name lists with a TTL. All methods are best-effort: a cache
// failure never fails the calling operation.
type Client struct {
	rdb *redis.Client
	ttl time.Duration
}

// New connects to Redis and verifies the connection.
func New(addr, password string, db int, ttl time.Duration) (*Client, error) {
	logger.Info("Initializing Redis connection", map[string]interface{}{
		"addr": addr,
		"db":   db,
	})

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{rdb: rdb, ttl: ttl}, nil
}

// GetNames returns the cached list for key, or false on miss or error.
func (c *Client) GetNames(ctx context.Context, key string) ([]string, bool) {
	val, err := c.rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		logger.Warn("Catalog cache read failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		return nil, false
	}

	var names []string
	if err := json.Unmarshal([]byte(val), &names); err != nil {
		logger.Warn("Catalog cache entry corrupt, ignoring", map[string]interface{}{
			"key": key,
		})
		return nil, false
	}
	return names, true
}

// SetNames stores the list for key with the configured TTL.
func (c *Client) SetNames(ctx context.Context, key string, names []string) {
	data, err := json.Marshal(names)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
		logger.Warn("Catalog cache write failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
}

// Invalidate drops the cached list for key.
func (c *Client) Invalidate(ctx context.Context, key string) {
	if err := c.rdb.Del(ctx, key).Err(); err != nil {
		logger.Warn("Catalog cache invalidation failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
}

// Close closes the Redis connection.
func (c *Client) Close() error {
	return c.rdb.Close()
}
