package cache

import (
	"context"
	"testing"
	"time"

	"github.com/omvsuite/omvadmin/internal/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStoreBackend(t *testing.T) (*StoreBackend, *clock.FakeClock) {
	t.Helper()
	db := openCacheDB(t)
	clk := clock.NewFakeClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	return NewStoreBackend(db, clk), clk
}

func TestStoreBackendRoundTrip(t *testing.T) {
	backend, _ := setupStoreBackend(t)
	ctx := context.Background()

	_, err := backend.Get(ctx, "absent")
	assert.ErrorIs(t, err, ErrMiss)

	require.NoError(t, backend.Set(ctx, "k1", []byte(`"v1"`), time.Hour))
	raw, err := backend.Get(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, []byte(`"v1"`), raw)

	// Overwrite replaces the payload in place.
	require.NoError(t, backend.Set(ctx, "k1", []byte(`"v2"`), time.Hour))
	raw, err = backend.Get(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, []byte(`"v2"`), raw)
}

func TestStoreBackendExpiredEntryInvisible(t *testing.T) {
	backend, clk := setupStoreBackend(t)
	ctx := context.Background()

	require.NoError(t, backend.Set(ctx, "short", []byte(`1`), time.Minute))
	require.NoError(t, backend.Set(ctx, "eternal", []byte(`2`), 0))

	clk.Advance(2 * time.Minute)

	_, err := backend.Get(ctx, "short")
	assert.ErrorIs(t, err, ErrMiss, "expired rows must read as misses even before sweep")

	raw, err := backend.Get(ctx, "eternal")
	require.NoError(t, err)
	assert.Equal(t, []byte(`2`), raw, "ttl 0 means no expiry")
}

func TestStoreBackendSweep(t *testing.T) {
	backend, clk := setupStoreBackend(t)
	ctx := context.Background()

	require.NoError(t, backend.Set(ctx, "dead1", []byte(`1`), time.Minute))
	require.NoError(t, backend.Set(ctx, "dead2", []byte(`2`), time.Minute))
	require.NoError(t, backend.Set(ctx, "live", []byte(`3`), time.Hour))
	require.NoError(t, backend.Set(ctx, "pinned", []byte(`4`), 0))

	clk.Advance(5 * time.Minute)

	removed, err := backend.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	_, err = backend.Get(ctx, "live")
	assert.NoError(t, err)
	_, err = backend.Get(ctx, "pinned")
	assert.NoError(t, err)

	// Nothing left to reap.
	removed, err = backend.Sweep(ctx)
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestStoreBackendDelAbsentKeys(t *testing.T) {
	backend, _ := setupStoreBackend(t)
	ctx := context.Background()

	assert.NoError(t, backend.Del(ctx, "ghost"))
	assert.NoError(t, backend.Del(ctx))
}
