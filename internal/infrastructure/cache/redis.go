package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/snakanz/adviceApp-sub002/pkg/config"
)

const seenKeyPrefix = "webhook:seen:"

// NewRedisClient connects to Redis and verifies the connection
func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetRedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}

// RedisSeenCache marks webhook ids as seen across replicas with SET NX
type RedisSeenCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewRedisSeenCache creates a Redis-backed seen-marker cache
func NewRedisSeenCache(client redis.Cmdable, ttl time.Duration) *RedisSeenCache {
	return &RedisSeenCache{client: client, ttl: ttl}
}

// MarkSeen records key and reports whether it was new
func (c *RedisSeenCache) MarkSeen(ctx context.Context, key string) (bool, error) {
	ok, err := c.client.SetNX(ctx, seenKeyPrefix+key, time.Now().Unix(), c.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis setnx: %w", err)
	}
	return ok, nil
}

// Forget removes key so a redelivery is processed again
func (c *RedisSeenCache) Forget(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, seenKeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
