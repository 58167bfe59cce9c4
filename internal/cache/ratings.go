package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/drivebook/car-rental-api/internal/config"
)

// RatingStats are the per-item review aggregates shown in catalog listings.
type RatingStats struct {
	ReviewsCount  int64   `json:"reviewsCount"`
	AverageRating float64 `json:"averageRating"`
}

// RatingsCache keeps aggregates in redis with a short TTL. With no redis
// configured every lookup is a miss and callers fall through to the DB.
type RatingsCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRatingsCache(cfg *config.Config) *RatingsCache {
	if cfg.RedisAddr == "" {
		return &RatingsCache{}
	}

	return &RatingsCache{
		rdb: redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		}),
		ttl: 5 * time.Minute,
	}
}

func key(itemID string) string {
	return "catalog:ratings:" + itemID
}

func (c *RatingsCache) Get(ctx context.Context, itemID string) (RatingStats, bool) {
	if c.rdb == nil {
		return RatingStats{}, false
	}

	raw, err := c.rdb.Get(ctx, key(itemID)).Result()
	if err != nil {
		return RatingStats{}, false
	}

	var stats RatingStats
	if err := json.Unmarshal([]byte(raw), &stats); err != nil {
		return RatingStats{}, false
	}
	return stats, true
}

func (c *RatingsCache) Set(ctx context.Context, itemID string, stats RatingStats) {
	if c.rdb == nil {
		return
	}

	if raw, err := json.Marshal(stats); err == nil {
		c.rdb.Set(ctx, key(itemID), raw, c.ttl)
	}
}

func (c *RatingsCache) Invalidate(ctx context.Context, itemID string) {
	if c.rdb == nil {
		return
	}
	c.rdb.Del(ctx, key(itemID))
}

func (c *RatingsCache) Close() error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}
