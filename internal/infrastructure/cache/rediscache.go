package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"helpdesk/internal/shared/config"
	"helpdesk/internal/shared/logger"
)

// RedisCache is an advisory cache on top of Redis. Every failure is
// logged and treated as a miss so a degraded Redis never takes the API
// down with it.
type RedisCache struct {
	client *redis.Client
	logger logger.Interface
}

func NewRedisClient(cfg *config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return client, nil
}

func NewRedisCache(client *redis.Client, log logger.Interface) *RedisCache {
	return &RedisCache{
		client: client,
		logger: log.Named("cache"),
	}
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warnw("cache get failed", "key", key, "error", err)
		}
		return nil, false
	}
	return data, true
}

func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		c.logger.Warnw("cache set failed", "key", key, "error", err)
	}
}

func (c *RedisCache) Delete(ctx context.Context, key string) {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		c.logger.Warnw("cache delete failed", "key", key, "error", err)
	}
}

// DeleteByPattern removes every key under the given prefix. Uses SCAN
// rather than KEYS to avoid blocking Redis on large keyspaces.
func (c *RedisCache) DeleteByPattern(ctx context.Context, prefix string) {
	iter := c.client.Scan(ctx, 0, prefix+"*", 100).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
		if len(keys) >= 100 {
			c.deleteKeys(ctx, keys)
			keys = keys[:0]
		}
	}
	if err := iter.Err(); err != nil {
		c.logger.Warnw("cache scan failed", "prefix", prefix, "error", err)
		return
	}
	if len(keys) > 0 {
		c.deleteKeys(ctx, keys)
	}
}

func (c *RedisCache) deleteKeys(ctx context.Context, keys []string) {
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warnw("cache bulk delete failed", "count", len(keys), "error", err)
	}
}
