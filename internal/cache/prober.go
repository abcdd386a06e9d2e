package cache

import (
	"context"
	"sync"
	"time"

	"github.com/omvsuite/omvadmin/internal/clock"
	redis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Classification tags which side of the hybrid layer answered a health ping.
type Classification string

const (
	ClassBoth      Classification = "both"
	ClassCacheOnly Classification = "cache-only"
	ClassStoreOnly Classification = "store-only"
	ClassNone      Classification = "none"
)

// Health is the probe result exposed to callers.
type Health struct {
	CacheHealthy bool `json:"cacheHealthy"`
	StoreHealthy bool `json:"storeHealthy"`
}

func (h Health) Classify() Classification {
	switch {
	case h.CacheHealthy && h.StoreHealthy:
		return ClassBoth
	case h.CacheHealthy:
		return ClassCacheOnly
	case h.StoreHealthy:
		return ClassStoreOnly
	default:
		return ClassNone
	}
}

// Prober pings both adapters and classifies availability. Probing is
// advisory: the classification may be stale by the time a downstream call
// runs, and that is accepted. Results are memoized for a short window to
// keep per-request overhead down; the staleness bound is the window itself.
type Prober struct {
	redis   *redis.Client
	db      *gorm.DB
	clock   clock.Clock
	timeout time.Duration
	window  time.Duration

	mu       sync.Mutex
	lastAt   time.Time
	last     Health
	hasProbe bool
}

func NewProber(rdb *redis.Client, db *gorm.DB, clk clock.Clock, timeout, window time.Duration) *Prober {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &Prober{
		redis:   rdb,
		db:      db,
		clock:   clk,
		timeout: timeout,
		window:  window,
	}
}

// Probe pings both adapters. A failed ping is never fatal here; the caller
// decides what an unhealthy side means for the operation at hand.
func (p *Prober) Probe(ctx context.Context) Health {
	p.mu.Lock()
	if p.hasProbe && p.window > 0 && p.clock.Now().Sub(p.lastAt) < p.window {
		health := p.last
		p.mu.Unlock()
		return health
	}
	p.mu.Unlock()

	health := Health{
		CacheHealthy: p.pingCache(ctx),
		StoreHealthy: p.pingStore(ctx),
	}

	p.mu.Lock()
	p.last = health
	p.lastAt = p.clock.Now()
	p.hasProbe = true
	p.mu.Unlock()

	return health
}

// Classify maps the current probe result to an availability class.
func (p *Prober) Classify(ctx context.Context) Classification {
	return p.Probe(ctx).Classify()
}

func (p *Prober) pingCache(ctx context.Context) bool {
	if p.redis == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	return p.redis.Ping(ctx).Err() == nil
}

func (p *Prober) pingStore(ctx context.Context) bool {
	if p.db == nil {
		return false
	}
	sqlDB, err := p.db.DB()
	if err != nil {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	return sqlDB.PingContext(ctx) == nil
}
