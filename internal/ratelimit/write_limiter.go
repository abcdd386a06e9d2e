package ratelimit

import (
	"context"

	redis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/omvsuite/omvadmin/internal/config"
)

const keyWriteClient = "ratelimit:write:"

// WriteLimiter throttles mutating API calls per client. It degrades open: a
// redis failure lets the request through, because throttling is protection,
// not policy.
type WriteLimiter struct {
	enabled bool
	bucket  *TokenBucket
	rate    float64
	burst   int
	log     *zap.Logger
}

func NewWriteLimiter(cfg config.Config, client *redis.Client, logger *zap.Logger) *WriteLimiter {
	if !cfg.RateLimit.Enabled || client == nil {
		return nil
	}
	return &WriteLimiter{
		enabled: true,
		bucket:  NewTokenBucket(client),
		rate:    cfg.RateLimit.Rate,
		burst:   cfg.RateLimit.Burst,
		log:     logger.Named("ratelimit"),
	}
}

func (l *WriteLimiter) Enabled() bool {
	return l != nil && l.enabled
}

// Allow reports whether the client may proceed. The second return carries
// throttling details when the request was denied.
func (l *WriteLimiter) Allow(ctx context.Context, clientKey string) (bool, *Result) {
	if !l.Enabled() || clientKey == "" {
		return true, nil
	}
	res, err := l.bucket.Allow(ctx, keyWriteClient+clientKey, l.rate, l.burst)
	if err != nil {
		l.log.Warn("rate limit check failed, allowing request",
			zap.String("client", clientKey), zap.Error(err))
		return true, nil
	}
	if !res.Allowed {
		return false, res
	}
	return true, res
}
