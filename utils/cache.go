package utils

import (
	"context"
	"fmt"
	"time"

	"bookingadmin/config"

	"github.com/go-redis/redis/v8"
)

// NewAuthCache opens the Redis client for the admin session cache (REDIS_AUTH_DB).
func NewAuthCache(cfg *config.Config) (*redis.Client, error) {
	return newRedisClient(cfg, cfg.RedisAuthDB)
}

// NewQueueCache opens a plain client on the task queue database, used for health checks only.
func NewQueueCache(cfg *config.Config) (*redis.Client, error) {
	return newRedisClient(cfg, cfg.RedisQueueDB)
}

func newRedisClient(cfg *config.Config, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis db %d: %w", db, err)
	}
	return client, nil
}
