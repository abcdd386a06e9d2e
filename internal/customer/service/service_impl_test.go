package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/omvsuite/omvadmin/internal/cache"
	"github.com/omvsuite/omvadmin/internal/clock"
	"github.com/omvsuite/omvadmin/internal/config"
	"github.com/omvsuite/omvadmin/internal/customer/domain"
	"github.com/omvsuite/omvadmin/internal/customer/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupCustomerService(t *testing.T) (domain.Service, *gorm.DB, *clock.FakeClock) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Exec(`CREATE TABLE customers (
		id VARCHAR(32) PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL,
		phone VARCHAR(64) NOT NULL,
		address TEXT,
		created_by VARCHAR(32) NOT NULL,
		status VARCHAR(16) NOT NULL DEFAULT 'active',
		total_spent DOUBLE PRECISION NOT NULL DEFAULT 0,
		last_activity TIMESTAMP,
		notes TEXT,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`).Error)
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

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	ttl, err := config.NewTTLPolicyHolder()
	require.NoError(t, err)

	svc := New(Params{
		DB:     db,
		Log:    zap.NewNop(),
		GenID:  node,
		Clock:  clk,
		Repo:   repository.Provide(),
		Facade: facade,
		TTL:    ttl,
	})
	return svc, db, clk
}

func TestCreateCustomer(t *testing.T) {
	svc, _, _ := setupCustomerService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateCustomerRequest{
		Name:      "Ana",
		Email:     "Ana@X.com",
		Phone:     "555",
		CreatedBy: "op-1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, domain.StatusActive, created.Status)
	assert.Equal(t, "ana@x.com", created.Email, "emails are stored lowercased")
	assert.Zero(t, created.TotalSpent)

	matches, err := svc.List(ctx, domain.ListCustomerRequest{Email: "ana@x.com"})
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, created.ID, matches[0].ID)
}

func TestCreateCustomerValidation(t *testing.T) {
	svc, _, _ := setupCustomerService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateCustomerRequest{Email: "a@x.com", Phone: "1"})
	assert.ErrorIs(t, err, domain.ErrInvalidName)

	_, err = svc.Create(ctx, domain.CreateCustomerRequest{Name: "Ana", Email: "no-at-sign", Phone: "1"})
	assert.ErrorIs(t, err, domain.ErrInvalidEmail)

	_, err = svc.Create(ctx, domain.CreateCustomerRequest{Name: "Ana", Email: "a@x.com"})
	assert.ErrorIs(t, err, domain.ErrInvalidPhone)
}

func TestGetByIDNotFound(t *testing.T) {
	svc, _, _ := setupCustomerService(t)

	_, err := svc.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.GetByID(context.Background(), "  ")
	assert.ErrorIs(t, err, domain.ErrInvalidID)
}

func TestUpdateInvalidatesCachedCustomer(t *testing.T) {
	svc, _, _ := setupCustomerService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateCustomerRequest{
		Name: "Ana", Email: "ana@x.com", Phone: "555", CreatedBy: "op-1",
	})
	require.NoError(t, err)

	// Populate the per-entity cache entry.
	got, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.Name)

	name := "Ana Maria"
	status := domain.StatusSuspended
	updated, err := svc.Update(ctx, domain.UpdateCustomerRequest{
		ID: created.ID,
		UpdateCustomerParams: domain.UpdateCustomerParams{
			Name:   &name,
			Status: &status,
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana Maria", updated.Name)

	// An immediate re-read must not serve the pre-mutation entry.
	got, err = svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana Maria", got.Name)
	assert.Equal(t, domain.StatusSuspended, got.Status)
}

func TestUpdateValidation(t *testing.T) {
	svc, _, _ := setupCustomerService(t)
	ctx := context.Background()

	_, err := svc.Update(ctx, domain.UpdateCustomerRequest{ID: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidID)

	bad := domain.Status("archived")
	_, err = svc.Update(ctx, domain.UpdateCustomerRequest{
		ID:                   "42",
		UpdateCustomerParams: domain.UpdateCustomerParams{Status: &bad},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)

	name := "Ghost"
	_, err = svc.Update(ctx, domain.UpdateCustomerRequest{
		ID:                   "42",
		UpdateCustomerParams: domain.UpdateCustomerParams{Name: &name},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListFiltersByStatus(t *testing.T) {
	svc, db, _ := setupCustomerService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, domain.CreateCustomerRequest{
		Name: "Ana", Email: "ana@x.com", Phone: "555", CreatedBy: "op-1",
	})
	require.NoError(t, err)
	_, err = svc.Create(ctx, domain.CreateCustomerRequest{
		Name: "Ben", Email: "ben@x.com", Phone: "556", CreatedBy: "op-1",
	})
	require.NoError(t, err)

	require.NoError(t, db.Exec(
		`UPDATE customers SET status = ? WHERE id = ?`,
		domain.StatusSuspended, first.ID,
	).Error)

	suspended, err := svc.List(ctx, domain.ListCustomerRequest{Status: domain.StatusSuspended})
	require.NoError(t, err)
	require.Len(t, suspended, 1)
	assert.Equal(t, first.ID, suspended[0].ID)

	_, err = svc.List(ctx, domain.ListCustomerRequest{Status: domain.Status("archived")})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}
