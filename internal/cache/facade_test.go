package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/omvsuite/omvadmin/internal/clock"
	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type customerDoc struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	TotalSpent float64 `json:"totalSpent"`
}

func setupStoreFacade(t *testing.T) (*Facade, *StoreBackend, *clock.FakeClock) {
	t.Helper()

	db := openCacheDB(t)
	clk := clock.NewFakeClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	store := NewStoreBackend(db, clk)
	prober := NewProber(nil, db, clk, time.Second, 0)
	facade := NewFacade(prober, nil, store, zap.NewNop(), nil)
	return facade, store, clk
}

func openCacheDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Exec(`CREATE TABLE IF NOT EXISTS cache_entries (
		cache_key VARCHAR(512) PRIMARY KEY,
		value TEXT NOT NULL,
		expires_at TIMESTAMP,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`).Error)
	return db
}

func TestGetCachedReadThrough(t *testing.T) {
	facade, _, _ := setupStoreFacade(t)
	ctx := context.Background()

	calls := 0
	loader := func(ctx context.Context) (customerDoc, error) {
		calls++
		return customerDoc{ID: "42", Name: "Ana", TotalSpent: 10}, nil
	}

	first, err := GetCached(ctx, facade, CustomerKey("42"), 30*time.Minute, loader)
	require.NoError(t, err)
	assert.Equal(t, "Ana", first.Name)
	assert.Equal(t, 1, calls)

	second, err := GetCached(ctx, facade, CustomerKey("42"), 30*time.Minute, loader)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls, "second read within ttl must not invoke the loader")
}

func TestGetCachedLoaderErrorPropagates(t *testing.T) {
	facade, _, _ := setupStoreFacade(t)
	ctx := context.Background()

	wantErr := fmt.Errorf("store down")
	_, err := GetCached(ctx, facade, CustomerKey("42"), time.Minute, func(ctx context.Context) (customerDoc, error) {
		return customerDoc{}, wantErr
	})
	assert.ErrorIs(t, err, wantErr)

	// Nothing must have been cached for the failed read.
	calls := 0
	_, err = GetCached(ctx, facade, CustomerKey("42"), time.Minute, func(ctx context.Context) (customerDoc, error) {
		calls++
		return customerDoc{ID: "42"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestGetCachedTTLExpiry(t *testing.T) {
	facade, _, clk := setupStoreFacade(t)
	ctx := context.Background()

	calls := 0
	loader := func(ctx context.Context) (customerDoc, error) {
		calls++
		return customerDoc{ID: "42", TotalSpent: float64(calls)}, nil
	}

	_, err := GetCached(ctx, facade, CustomerKey("42"), 30*time.Minute, loader)
	require.NoError(t, err)

	clk.Advance(29 * time.Minute)
	_, err = GetCached(ctx, facade, CustomerKey("42"), 30*time.Minute, loader)
	require.NoError(t, err)
	assert.Equal(t, 1, calls, "entry still live just before expiry")

	clk.Advance(2 * time.Minute)
	fresh, err := GetCached(ctx, facade, CustomerKey("42"), 30*time.Minute, loader)
	require.NoError(t, err)
	assert.Equal(t, 2, calls, "expired entry must fall through to the loader")
	assert.Equal(t, float64(2), fresh.TotalSpent)
}

func TestGetCachedCorruptPayloadSelfHeals(t *testing.T) {
	facade, store, _ := setupStoreFacade(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, CustomerKey("42"), []byte("{not json"), time.Hour))

	calls := 0
	loader := func(ctx context.Context) (customerDoc, error) {
		calls++
		return customerDoc{ID: "42", Name: "Ana"}, nil
	}

	got, err := GetCached(ctx, facade, CustomerKey("42"), time.Hour, loader)
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.Name)
	assert.Equal(t, 1, calls)

	// The corrupt entry was replaced, so the next read is a hit.
	_, err = GetCached(ctx, facade, CustomerKey("42"), time.Hour, loader)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestInvalidateForcesFreshRead(t *testing.T) {
	facade, _, _ := setupStoreFacade(t)
	ctx := context.Background()

	spent := 10.0
	loader := func(ctx context.Context) (customerDoc, error) {
		return customerDoc{ID: "42", TotalSpent: spent}, nil
	}

	got, err := GetCached(ctx, facade, CustomerKey("42"), time.Hour, loader)
	require.NoError(t, err)
	assert.Equal(t, 10.0, got.TotalSpent)

	// Simulated write path: mutate the store, then invalidate.
	spent = 150.0
	facade.Invalidate(ctx, CustomerKey("42"))

	got, err = GetCached(ctx, facade, CustomerKey("42"), time.Hour, loader)
	require.NoError(t, err)
	assert.Equal(t, 150.0, got.TotalSpent, "read after invalidation must reflect the mutation")
}

func TestInvalidateIdempotent(t *testing.T) {
	facade, _, _ := setupStoreFacade(t)
	ctx := context.Background()

	_, err := GetCached(ctx, facade, SimKey("s1"), time.Hour, func(ctx context.Context) (string, error) {
		return "payload", nil
	})
	require.NoError(t, err)

	facade.Invalidate(ctx, SimKey("s1"))
	facade.Invalidate(ctx, SimKey("s1"))
	facade.Invalidate(ctx, "never:existed")
}

func TestGetCachedRedisUnreachableFallsBack(t *testing.T) {
	db := openCacheDB(t)
	clk := clock.NewFakeClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	store := NewStoreBackend(db, clk)

	// Nothing listens here: every redis command and ping fails fast.
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = rdb.Close() })

	prober := NewProber(rdb, db, clk, 100*time.Millisecond, 0)
	facade := NewFacade(prober, NewRedisBackend(rdb, 100*time.Millisecond), store, zap.NewNop(), nil)
	ctx := context.Background()

	calls := 0
	loader := func(ctx context.Context) (customerDoc, error) {
		calls++
		return customerDoc{ID: "42", Name: "Ana"}, nil
	}

	got, err := GetCached(ctx, facade, CustomerKey("42"), time.Hour, loader)
	require.NoError(t, err, "a dead cache must never surface as a caller error")
	assert.Equal(t, "Ana", got.Name)

	// Store-backed emulation took over, so the second read is still a hit.
	_, err = GetCached(ctx, facade, CustomerKey("42"), time.Hour, loader)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	assert.Equal(t, ClassStoreOnly, facade.Probe(ctx).Classify())
}

func TestPutFetchDrop(t *testing.T) {
	facade, _, clk := setupStoreFacade(t)
	ctx := context.Background()

	type session struct {
		Token  string `json:"token"`
		UserID string `json:"userId"`
	}

	key := SessionKey("tok-1")
	require.NoError(t, facade.Put(ctx, key, session{Token: "tok-1", UserID: "u1"}, time.Hour))

	got, err := Fetch[session](ctx, facade, key)
	require.NoError(t, err)
	assert.Equal(t, "u1", got.UserID)

	require.NoError(t, facade.Drop(ctx, key))
	_, err = Fetch[session](ctx, facade, key)
	assert.ErrorIs(t, err, ErrMiss)

	// Expiry behaves the same as a drop.
	require.NoError(t, facade.Put(ctx, key, session{Token: "tok-1", UserID: "u1"}, time.Minute))
	clk.Advance(2 * time.Minute)
	_, err = Fetch[session](ctx, facade, key)
	assert.ErrorIs(t, err, ErrMiss)
}

func TestFlushAllUnsupportedOnStoreBackend(t *testing.T) {
	facade, _, _ := setupStoreFacade(t)
	assert.ErrorIs(t, facade.FlushAll(context.Background()), ErrFlushUnsupported)
}
