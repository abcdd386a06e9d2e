package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"
)

const (
	backendRedis = "redis"
	backendStore = "store"
)

// Facade is the single entry point for read-through caching and write
// invalidation. Callers never learn whether redis was reachable: a cache
// failure is at worst a slower read, a store failure is the operation's
// failure.
type Facade struct {
	prober  *Prober
	redis   *RedisBackend
	store   *StoreBackend
	log     *zap.Logger
	metrics *Metrics
}

func NewFacade(prober *Prober, redis *RedisBackend, store *StoreBackend, logger *zap.Logger, metrics *Metrics) *Facade {
	return &Facade{
		prober:  prober,
		redis:   redis,
		store:   store,
		log:     logger.Named("cache.facade"),
		metrics: metrics,
	}
}

// activeBackend resolves which cache implementation serves this call. The
// redis adapter wins whenever the prober saw it healthy; otherwise the
// store-backed emulation takes over. With neither healthy the store backend
// is still returned so the authoritative read path decides the outcome.
func (f *Facade) activeBackend(ctx context.Context) (Backend, string) {
	if f.redis != nil {
		switch f.prober.Classify(ctx) {
		case ClassBoth, ClassCacheOnly:
			return f.redis, backendRedis
		}
	}
	return f.store, backendStore
}

// Probe reports adapter health for the /health surface.
func (f *Facade) Probe(ctx context.Context) Health {
	return f.prober.Probe(ctx)
}

// GetCached implements the read path: cache hit wins, miss invokes the
// loader against the authoritative store and populates the cache
// best-effort. Loader errors propagate; cache errors never do.
func GetCached[T any](ctx context.Context, f *Facade, key string, ttl time.Duration, loader func(context.Context) (T, error)) (T, error) {
	var zero T
	backend, label := f.activeBackend(ctx)

	raw, err := backend.Get(ctx, key)
	switch {
	case err == nil:
		var value T
		if err := json.Unmarshal(raw, &value); err == nil {
			f.metrics.hit(label)
			return value, nil
		}
		// Corrupt payload: drop the entry so the next read repopulates.
		f.log.Warn("corrupt cache payload, self-healing", zap.String("key", key))
		if err := backend.Del(ctx, key); err != nil {
			f.log.Warn("cache self-heal delete failed", zap.String("key", key), zap.Error(err))
		}
		f.metrics.miss(label)
	case errors.Is(err, ErrMiss):
		f.metrics.miss(label)
	default:
		// Timeouts and transport failures on the cache path are misses,
		// never user-facing errors.
		f.metrics.readError(label)
		f.log.Warn("cache read failed, falling through to store",
			zap.String("key", key), zap.Error(err))
	}

	value, err := loader(ctx)
	if err != nil {
		return zero, err
	}

	if raw, err := json.Marshal(value); err != nil {
		f.log.Warn("cache population skipped, value not serializable",
			zap.String("key", key), zap.Error(err))
	} else if err := backend.Set(ctx, key, raw, ttl); err != nil {
		f.metrics.populateFailure(label)
		f.log.Warn("cache population failed",
			zap.String("key", key), zap.Error(err))
	}

	return value, nil
}

// Put stores a value whose only authority is the cache itself, such as a
// session. Unlike read-through population the write error surfaces, because
// there is no durable fallback for the caller to lean on.
func (f *Facade) Put(ctx context.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	backend, _ := f.activeBackend(ctx)
	return backend.Set(ctx, key, raw, ttl)
}

// Fetch reads a cache-authoritative value. ErrMiss propagates so the caller
// can distinguish absent from failed.
func Fetch[T any](ctx context.Context, f *Facade, key string) (T, error) {
	var zero T
	backend, _ := f.activeBackend(ctx)
	raw, err := backend.Get(ctx, key)
	if err != nil {
		return zero, err
	}
	var value T
	if err := json.Unmarshal(raw, &value); err != nil {
		return zero, err
	}
	return value, nil
}

// Drop removes cache-authoritative keys, surfacing the backend error.
func (f *Facade) Drop(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	backend, _ := f.activeBackend(ctx)
	return backend.Del(ctx, keys...)
}

// Invalidate deletes the given keys on the active backend. Deleting an
// absent key is a no-op; failures are logged and swallowed because the
// store write already carried the durable outcome and TTL heals staleness.
func (f *Facade) Invalidate(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	backend, label := f.activeBackend(ctx)
	if err := backend.Del(ctx, keys...); err != nil {
		f.log.Warn("cache invalidation failed", zap.Strings("keys", keys), zap.Error(err))
		return
	}
	f.metrics.invalidated(label, len(keys))
}

// FlushAll clears the whole keyspace where the backend supports it.
// Store-backed mode returns ErrFlushUnsupported, which callers must surface
// as a warning rather than ignore.
func (f *Facade) FlushAll(ctx context.Context) error {
	backend, _ := f.activeBackend(ctx)
	return backend.FlushAll(ctx)
}
