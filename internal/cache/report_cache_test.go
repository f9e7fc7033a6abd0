package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type report struct {
	Count int    `json:"count"`
	Total string `json:"total"`
}

func TestNopReportCache(t *testing.T) {
	var c ReportCache = NopReportCache{}
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "summary", report{Count: 1}))
	var got report
	found, err := c.Get(ctx, "summary", &got)
	require.NoError(t, err)
	assert.False(t, found)
	assert.NoError(t, c.Invalidate(ctx))

	gen, err := c.Generation(ctx)
	require.NoError(t, err)
	assert.Zero(t, gen)
}

// Needs a scratch Redis, e.g. TEST_REDIS_ADDR=localhost:6379
func TestRedisReportCache(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}

	client := redis.NewClient(&redis.Options{Addr: addr, DB: 15})
	defer client.Close()
	ctx := context.Background()
	require.NoError(t, client.FlushDB(ctx).Err())

	c := NewRedisReportCache(client, time.Minute)

	gen, err := c.Generation(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), gen)

	var got report
	found, err := c.Get(ctx, "summary:-:-", &got)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, c.Set(ctx, "summary:-:-", report{Count: 3, Total: "700"}))
	require.NoError(t, c.Set(ctx, "arrears:-", report{Count: 2}))
	require.NoError(t, client.Set(ctx, "unrelated", "keep", 0).Err())

	found, err = c.Get(ctx, "summary:-:-", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, report{Count: 3, Total: "700"}, got)

	ttl, err := client.TTL(ctx, KeyPrefix+"summary:-:-").Result()
	require.NoError(t, err)
	assert.True(t, ttl > 0 && ttl <= time.Minute)

	require.NoError(t, c.Invalidate(ctx))
	found, err = c.Get(ctx, "arrears:-", &got)
	require.NoError(t, err)
	assert.False(t, found)

	gen, err = c.Generation(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), gen, "invalidation bumps the generation")
	require.NoError(t, c.Invalidate(ctx))
	gen, err = c.Generation(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), gen, "the sweep leaves the counter alone")

	kept, err := client.Get(ctx, "unrelated").Result()
	require.NoError(t, err)
	assert.Equal(t, "keep", kept)
}
