package cache

import (
	"context"
	"testing"
	"time"

	"github.com/omvsuite/omvadmin/internal/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthClassify(t *testing.T) {
	assert.Equal(t, ClassBoth, Health{CacheHealthy: true, StoreHealthy: true}.Classify())
	assert.Equal(t, ClassCacheOnly, Health{CacheHealthy: true}.Classify())
	assert.Equal(t, ClassStoreOnly, Health{StoreHealthy: true}.Classify())
	assert.Equal(t, ClassNone, Health{}.Classify())
}

func TestProberStoreOnly(t *testing.T) {
	db := openCacheDB(t)
	clk := clock.NewFakeClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	prober := NewProber(nil, db, clk, time.Second, 0)

	health := prober.Probe(context.Background())
	assert.False(t, health.CacheHealthy)
	assert.True(t, health.StoreHealthy)
	assert.Equal(t, ClassStoreOnly, prober.Classify(context.Background()))
}

func TestProberMemoizesWithinWindow(t *testing.T) {
	db := openCacheDB(t)
	clk := clock.NewFakeClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	prober := NewProber(nil, db, clk, time.Second, 30*time.Second)
	ctx := context.Background()

	assert.True(t, prober.Probe(ctx).StoreHealthy)

	// Kill the store. The memoized result keeps reporting healthy until the
	// window elapses; that staleness bound is the documented behavior.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	clk.Advance(10 * time.Second)
	assert.True(t, prober.Probe(ctx).StoreHealthy, "stale result served inside the window")

	clk.Advance(25 * time.Second)
	assert.False(t, prober.Probe(ctx).StoreHealthy, "window elapsed, re-probe sees the outage")
	assert.Equal(t, ClassNone, prober.Classify(ctx))
}

func TestProberNoAdapters(t *testing.T) {
	clk := clock.NewFakeClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	prober := NewProber(nil, nil, clk, time.Second, 0)

	health := prober.Probe(context.Background())
	assert.False(t, health.CacheHealthy)
	assert.False(t, health.StoreHealthy)
}
