package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "fantasy-recap:cache:"

// Redis is a cache shared by every API replica. Redis errors are logged and
// treated as misses; the cache never fails a request.
type Redis struct {
	client *redis.Client
	logger *slog.Logger
}

// NewRedis connects to the Redis instance at url (redis://... or host:port).
func NewRedis(ctx context.Context, url string, logger *slog.Logger) (*Redis, error) {
	if logger == nil {
		logger = slog.Default()
	}
	opt, err := redis.ParseURL(url)
	if err != nil {
		opt = &redis.Options{Addr: url}
	}
	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &Redis{client: client, logger: logger}, nil
}

// NewRedisFromClient wraps an existing client.
func NewRedisFromClient(client *redis.Client, logger *slog.Logger) *Redis {
	if logger == nil {
		logger = slog.Default()
	}
	return &Redis{client: client, logger: logger}
}

// Get retrieves a cached value.
func (c *Redis) Get(ctx context.Context, key string) ([]byte, string, bool) {
	data, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("redis cache get failed", "key", key, "error", err)
		}
		return nil, "", false
	}
	return data, ComputeETag(data), true
}

// Set stores a value with a TTL.
func (c *Redis) Set(ctx context.Context, key string, data []byte, ttl time.Duration) string {
	if err := c.client.Set(ctx, keyPrefix+key, data, ttl).Err(); err != nil {
		c.logger.Warn("redis cache set failed", "key", key, "error", err)
	}
	return ComputeETag(data)
}

// Close closes the Redis client.
func (c *Redis) Close() error {
	return c.client.Close()
}
