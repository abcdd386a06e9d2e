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
	"github.com/omvsuite/omvadmin/internal/user/domain"
	"github.com/omvsuite/omvadmin/internal/user/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupUserService(t *testing.T) (domain.Service, *clock.FakeClock) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Exec(`CREATE TABLE users (
		id VARCHAR(32) PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL UNIQUE,
		role VARCHAR(32) NOT NULL,
		permissions TEXT NOT NULL,
		department VARCHAR(128),
		supervisor VARCHAR(32),
		avatar TEXT,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		last_login TIMESTAMP,
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

	node, err := snowflake.NewNode(5)
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
	return svc, clk
}

func TestCreateUserDefaultsPermissionsByRole(t *testing.T) {
	svc, _ := setupUserService(t)
	ctx := context.Background()

	vendor, err := svc.Create(ctx, domain.CreateUserRequest{
		Name:  "Vera",
		Email: "vera@x.com",
		Role:  domain.RoleVendor,
	})
	require.NoError(t, err)
	assert.True(t, vendor.IsActive)
	assert.ElementsMatch(t,
		domain.DefaultPermissions(domain.RoleVendor),
		[]string(vendor.Permissions))

	admin, err := svc.Create(ctx, domain.CreateUserRequest{
		Name:        "Ada",
		Email:       "ada@x.com",
		Role:        domain.RoleAdmin,
		Permissions: []string{"reports.read"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"reports.read"}, []string(admin.Permissions),
		"explicit permissions win over the role defaults")
}

func TestCreateUserValidation(t *testing.T) {
	svc, _ := setupUserService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateUserRequest{Email: "a@x.com", Role: domain.RoleAdmin})
	assert.ErrorIs(t, err, domain.ErrInvalidName)

	_, err = svc.Create(ctx, domain.CreateUserRequest{Name: "A", Email: "broken", Role: domain.RoleAdmin})
	assert.ErrorIs(t, err, domain.ErrInvalidEmail)

	_, err = svc.Create(ctx, domain.CreateUserRequest{Name: "A", Email: "a@x.com", Role: domain.Role("root")})
	assert.ErrorIs(t, err, domain.ErrInvalidRole)

	_, err = svc.Create(ctx, domain.CreateUserRequest{Name: "A", Email: "a@x.com", Role: domain.RoleAdmin})
	require.NoError(t, err)
	_, err = svc.Create(ctx, domain.CreateUserRequest{Name: "B", Email: "A@x.com", Role: domain.RoleAdmin})
	assert.ErrorIs(t, err, domain.ErrEmailTaken, "emails collide case-insensitively")
}

func TestUpdateUserInvalidatesCache(t *testing.T) {
	svc, clk := setupUserService(t)
	ctx := context.Background()

	user, err := svc.Create(ctx, domain.CreateUserRequest{
		Name:  "Omar",
		Email: "omar@x.com",
		Role:  domain.RoleOperator,
	})
	require.NoError(t, err)

	got, err := svc.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleOperator, got.Role)

	clk.Advance(5 * time.Minute)

	role := domain.RoleGerente
	updated, err := svc.Update(ctx, domain.UpdateUserRequest{
		ID:               user.ID,
		UpdateUserParams: domain.UpdateUserParams{Role: &role},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleGerente, updated.Role)
	assert.True(t, updated.UpdatedAt.Equal(clk.Now()), "updated_at stamped from the injected clock")

	got, err = svc.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleGerente, got.Role, "stale role must not survive the update")
}

func TestPermissionsLookupCachedPerUser(t *testing.T) {
	svc, _ := setupUserService(t)
	ctx := context.Background()

	user, err := svc.Create(ctx, domain.CreateUserRequest{
		Name:  "Omar",
		Email: "omar@x.com",
		Role:  domain.RoleOperator,
	})
	require.NoError(t, err)

	perms, err := svc.Permissions(ctx, user.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, domain.DefaultPermissions(domain.RoleOperator), perms)

	// A permission grant must not be masked by the cached set.
	updated, err := svc.Update(ctx, domain.UpdateUserRequest{
		ID:               user.ID,
		UpdateUserParams: domain.UpdateUserParams{Permissions: []string{"reports.read"}},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"reports.read"}, []string(updated.Permissions))

	perms, err = svc.Permissions(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"reports.read"}, perms)

	_, err = svc.Permissions(ctx, "ghost")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.Permissions(ctx, " ")
	assert.ErrorIs(t, err, domain.ErrInvalidID)
}

func TestDeleteUser(t *testing.T) {
	svc, _ := setupUserService(t)
	ctx := context.Background()

	user, err := svc.Create(ctx, domain.CreateUserRequest{
		Name:  "Omar",
		Email: "omar@x.com",
		Role:  domain.RoleOperator,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, user.ID))
	_, err = svc.GetByID(ctx, user.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, user.ID), domain.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, " "), domain.ErrInvalidID)
}
