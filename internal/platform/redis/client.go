// Package redis provides the Redis client used for refresh-token storage.
package redis

import (
	"context"
	"fmt"

	"github.com/lyricdeck/lyricdeck-api/internal/config"
	"github.com/redis/go-redis/v9"
)

// NewClient creates a Redis client from configuration and verifies the
// connection with a ping.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}

	return client, nil
}
