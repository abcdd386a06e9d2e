package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/omvsuite/omvadmin/internal/config"
	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestNewWriteLimiterDisabled(t *testing.T) {
	cfg := config.Config{}
	assert.Nil(t, NewWriteLimiter(cfg, nil, zap.NewNop()))

	cfg.RateLimit.Enabled = true
	assert.Nil(t, NewWriteLimiter(cfg, nil, zap.NewNop()), "no redis means no limiter")
}

func TestWriteLimiterNilAllowsEverything(t *testing.T) {
	var limiter *WriteLimiter

	assert.False(t, limiter.Enabled())
	allowed, res := limiter.Allow(context.Background(), "client-1")
	assert.True(t, allowed)
	assert.Nil(t, res)
}

func TestWriteLimiterDegradesOpen(t *testing.T) {
	cfg := config.Config{}
	cfg.RateLimit.Enabled = true
	cfg.RateLimit.Rate = 10
	cfg.RateLimit.Burst = 20

	// Nothing listens here: the bucket script fails on every call and the
	// limiter must let the request through.
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })

	limiter := NewWriteLimiter(cfg, client, zap.NewNop())
	assert.True(t, limiter.Enabled())

	allowed, _ := limiter.Allow(context.Background(), "client-1")
	assert.True(t, allowed)

	// Blank client keys are never throttled.
	allowed, res := limiter.Allow(context.Background(), "")
	assert.True(t, allowed)
	assert.Nil(t, res)
}
