package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// KeyPrefix namespaces every report entry so invalidation can sweep them
const KeyPrefix = "ledger:report:"

// GenerationKey holds the counter bumped by every invalidation. It lives
// outside KeyPrefix so the sweep never resets it.
const GenerationKey = "ledger:report-generation"

// ReportCache stores serialized report results.
//
// Callers read Generation before computing a report and embed it in the key.
// A report computed across an invalidation lands under a stale generation
// and is never read back.
type ReportCache interface {
	// Generation returns the current invalidation counter
	Generation(ctx context.Context) (int64, error)
	// Get loads key into dest. found is false on a miss.
	Get(ctx context.Context, key string, dest any) (found bool, err error)
	Set(ctx context.Context, key string, value any) error
	// Invalidate bumps the generation and drops every cached report
	Invalidate(ctx context.Context) error
}

type redisReportCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisReportCache returns a ReportCache backed by Redis
func NewRedisReportCache(client *redis.Client, ttl time.Duration) ReportCache {
	return &redisReportCache{client: client, ttl: ttl}
}

func (c *redisReportCache) Generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, GenerationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func (c *redisReportCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	raw, err := c.client.Get(ctx, KeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *redisReportCache) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, KeyPrefix+key, raw, c.ttl).Err()
}

func (c *redisReportCache) Invalidate(ctx context.Context) error {
	if err := c.client.Incr(ctx, GenerationKey).Err(); err != nil {
		return err
	}

	iter := c.client.Scan(ctx, 0, KeyPrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

// NopReportCache never hits; used when Redis is not configured
type NopReportCache struct{}

func (NopReportCache) Generation(context.Context) (int64, error)      { return 0, nil }
func (NopReportCache) Get(context.Context, string, any) (bool, error) { return false, nil }
func (NopReportCache) Set(context.Context, string, any) error         { return nil }
func (NopReportCache) Invalidate(context.Context) error               { return nil }
