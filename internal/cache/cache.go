package cache

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrMiss reports an absent or expired entry. Every transient backend
	// failure on the read path is collapsed into this before it reaches a
	// caller.
	ErrMiss = errors.New("cache_miss")

	// ErrFlushUnsupported reports that the active backend cannot clear the
	// whole keyspace. Store-backed mode returns this instead of pretending
	// a flush succeeded.
	ErrFlushUnsupported = errors.New("cache_flush_unsupported")
)

// Backend is the three-operation contract both cache implementations satisfy.
// Values are opaque serialized payloads; ttl <= 0 means no expiry.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	FlushAll(ctx context.Context) error
	Ping(ctx context.Context) error
}
