package company

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"esgtrack/pkg/platform/sentinel"
)

const baselineKeyPrefix = "esg:baseline:"

// RedisCache caches resolved company baselines.
type RedisCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewRedisCache builds a baseline cache. A non-positive ttl keeps keys forever.
func NewRedisCache(client redis.Cmdable, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func baselineKey(company string) string {
	return baselineKeyPrefix + company
}

// FindBaseline returns sentinel.ErrNotFound on a cache miss.
func (c *RedisCache) FindBaseline(ctx context.Context, company string) (float64, error) {
	raw, err := c.client.Get(ctx, baselineKey(company)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, sentinel.ErrNotFound
		}
		return 0, fmt.Errorf("get cached baseline: %w", err)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("parse cached baseline %q: %w", raw, err)
	}
	return v, nil
}

func (c *RedisCache) SaveBaseline(ctx context.Context, company string, baseline float64) error {
	ttl := c.ttl
	if ttl < 0 {
		ttl = 0
	}
	if err := c.client.Set(ctx, baselineKey(company), strconv.FormatFloat(baseline, 'f', -1, 64), ttl).Err(); err != nil {
		return fmt.Errorf("cache baseline: %w", err)
	}
	return nil
}

func (c *RedisCache) Invalidate(ctx context.Context, company string) error {
	if err := c.client.Del(ctx, baselineKey(company)).Err(); err != nil {
		return fmt.Errorf("invalidate baseline: %w", err)
	}
	return nil
}
