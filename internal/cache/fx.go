package cache

import (
	"context"
	"strings"
	"time"

	"github.com/omvsuite/omvadmin/internal/clock"
	"github.com/omvsuite/omvadmin/internal/config"
	"github.com/omvsuite/omvadmin/internal/ratelimit"
	redis "github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("cache",
	fx.Provide(NewRedisClient),
	fx.Provide(provideRedisBackend),
	fx.Provide(provideStoreBackend),
	fx.Provide(provideProber),
	fx.Provide(NewMetrics),
	fx.Provide(NewFacade),
	fx.Invoke(startSweeper),
)

// NewRedisClient returns nil when no address is configured; the prober then
// reports the cache side unhealthy and the store emulation serves all reads.
func NewRedisClient(lc fx.Lifecycle, cfg config.Config) *redis.Client {
	addr := strings.TrimSpace(cfg.RedisAddr)
	if addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})

	return client
}

func provideRedisBackend(client *redis.Client, cfg config.Config) *RedisBackend {
	return NewRedisBackend(client, cfg.Cache.CommandTimeout)
}

func provideStoreBackend(db *gorm.DB, clk clock.Clock) *StoreBackend {
	return NewStoreBackend(db, clk)
}

func provideProber(client *redis.Client, db *gorm.DB, clk clock.Clock, cfg config.Config) *Prober {
	return NewProber(client, db, clk, cfg.Cache.ProbeTimeout, cfg.Cache.ProbeInterval)
}

const sweepLockKey = "cache:sweep:lock"

type sweeperParams struct {
	fx.In

	LC      fx.Lifecycle
	Backend *StoreBackend
	Cfg     config.Config
	Log     *zap.Logger
	Locker  *ratelimit.Locker `optional:"true"`
}

// startSweeper runs the periodic purge of expired store-backed entries. With
// redis available the sweep takes a distributed lock so only one replica
// pays for the delete; without it every replica sweeps, which is harmless.
func startSweeper(p sweeperParams) {
	interval := p.Cfg.Cache.SweepInterval
	if interval <= 0 {
		interval = time.Minute
	}

	log := p.Log.Named("cache.sweeper")
	done := make(chan struct{})

	sweep := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if p.Locker != nil {
			token, ok, err := p.Locker.TryLock(ctx, sweepLockKey, interval)
			if err == nil && !ok {
				return
			}
			if err == nil {
				defer func() {
					if err := p.Locker.Release(ctx, sweepLockKey, token); err != nil {
						log.Debug("sweep lock release failed", zap.Error(err))
					}
				}()
			}
		}

		removed, err := p.Backend.Sweep(ctx)
		if err != nil {
			log.Warn("sweep failed", zap.Error(err))
			return
		}
		if removed > 0 {
			log.Debug("swept expired cache entries", zap.Int64("removed", removed))
		}
	}

	p.LC.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				ticker := time.NewTicker(interval)
				defer ticker.Stop()
				for {
					select {
					case <-done:
						return
					case <-ticker.C:
						sweep()
					}
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			close(done)
			return nil
		},
	})
}
