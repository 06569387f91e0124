package config

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"cityhelp-be/logger"
)

// ConnectRedis returns a connected client, or nil when Redis is not configured.
func ConnectRedis(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	if !cfg.Enabled() {
		logger.Warn().Msg("REDIS_ADDRESS not set; report rate limiting and stats caching are disabled")
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info().Str("address", cfg.Address).Msg("connected to Redis")
	return client, nil
}
