package session

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/omvsuite/omvadmin/internal/cache"
	"github.com/omvsuite/omvadmin/internal/clock"
	"github.com/omvsuite/omvadmin/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupSessionService(t *testing.T) (Service, *clock.FakeClock) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Exec(`CREATE TABLE cache_entries (
		cache_key VARCHAR(512) PRIMARY KEY,
		value TEXT NOT NULL,
		expires_at TIMESTAMP,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`).Error)

	clk := clock.NewFakeClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	store := cache.NewStoreBackend(db, clk)
	prober := cache.NewProber(nil, db, clk, time.Second, 0)
	facade := cache.NewFacade(prober, nil, store, zap.NewNop(), nil)

	ttl, err := config.NewTTLPolicyHolder()
	require.NoError(t, err)

	svc := New(Params{
		Log:    zap.NewNop(),
		Clock:  clk,
		Facade: facade,
		TTL:    ttl,
	})
	return svc, clk
}

func TestSessionLifecycle(t *testing.T) {
	svc, _ := setupSessionService(t)
	ctx := context.Background()

	sess, err := svc.Create(ctx, "u1", "admin")
	require.NoError(t, err)
	assert.NotEmpty(t, sess.Token)
	assert.True(t, sess.ExpiresAt.After(sess.CreatedAt))

	got, err := svc.Get(ctx, sess.Token)
	require.NoError(t, err)
	assert.Equal(t, "u1", got.UserID)
	assert.Equal(t, "admin", got.Role)

	require.NoError(t, svc.Delete(ctx, sess.Token))
	_, err = svc.Get(ctx, sess.Token)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSessionExpiry(t *testing.T) {
	svc, clk := setupSessionService(t)
	ctx := context.Background()

	sess, err := svc.Create(ctx, "u1", "operator")
	require.NoError(t, err)

	clk.Advance(9 * time.Hour)
	_, err = svc.Get(ctx, sess.Token)
	assert.ErrorIs(t, err, ErrNotFound, "sessions die with their ttl")
}

func TestSessionValidation(t *testing.T) {
	svc, _ := setupSessionService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "", "admin")
	assert.ErrorIs(t, err, ErrInvalidUserID)

	_, err = svc.Get(ctx, "")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Get(ctx, "unknown-token")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteAllForUser(t *testing.T) {
	svc, _ := setupSessionService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, "u1", "admin")
	require.NoError(t, err)
	second, err := svc.Create(ctx, "u1", "admin")
	require.NoError(t, err)
	other, err := svc.Create(ctx, "u2", "vendor")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteAllForUser(ctx, "u1"))

	_, err = svc.Get(ctx, first.Token)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.Get(ctx, second.Token)
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := svc.Get(ctx, other.Token)
	require.NoError(t, err, "other users keep their sessions")
	assert.Equal(t, "u2", got.UserID)

	// No index left: a second bulk revocation is a no-op.
	require.NoError(t, svc.DeleteAllForUser(ctx, "u1"))
}
