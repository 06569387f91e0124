// Package cache keeps the global stats aggregate in Redis between issue
// mutations.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"cityhelp-be/logger"
	"cityhelp-be/metrics"
	"cityhelp-be/models"
)

const (
	DefaultStatsKey = "cityhelp:stats:global"
	DefaultStatsTTL = 5 * time.Minute
)

// StatsCache is a Redis-backed services.StatsCache. Redis failures are
// logged and treated as misses.
type StatsCache struct {
	rdb *redis.Client
	key string
	ttl time.Duration
}

func NewStatsCache(rdb *redis.Client, key string, ttl time.Duration) *StatsCache {
	if key == "" {
		key = DefaultStatsKey
	}
	if ttl <= 0 {
		ttl = DefaultStatsTTL
	}
	return &StatsCache{rdb: rdb, key: key, ttl: ttl}
}

func (c *StatsCache) Get(ctx context.Context) (*models.GlobalStats, bool) {
	raw, err := c.rdb.Get(ctx, c.key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.FromContext(ctx).Warn().Err(err).Msg("stats cache read failed")
			metrics.StatsCacheLookups.WithLabelValues("error").Inc()
			return nil, false
		}
		metrics.StatsCacheLookups.WithLabelValues("miss").Inc()
		return nil, false
	}

	var stats models.GlobalStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		logger.FromContext(ctx).Warn().Err(err).Msg("discarding undecodable stats cache entry")
		c.Invalidate(ctx)
		metrics.StatsCacheLookups.WithLabelValues("error").Inc()
		return nil, false
	}
	metrics.StatsCacheLookups.WithLabelValues("hit").Inc()
	return &stats, true
}

func (c *StatsCache) Set(ctx context.Context, stats *models.GlobalStats) {
	raw, err := json.Marshal(stats)
	if err != nil {
		logger.FromContext(ctx).Warn().Err(err).Msg("stats cache encode failed")
		return
	}
	if err := c.rdb.Set(ctx, c.key, raw, c.ttl).Err(); err != nil {
		logger.FromContext(ctx).Warn().Err(err).Msg("stats cache write failed")
	}
}

func (c *StatsCache) Invalidate(ctx context.Context) {
	if err := c.rdb.Del(ctx, c.key).Err(); err != nil {
		logger.FromContext(ctx).Warn().Err(err).Msg("stats cache invalidation failed")
	}
}
