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
	customerdomain "github.com/omvsuite/omvadmin/internal/customer/domain"
	customerrepo "github.com/omvsuite/omvadmin/internal/customer/repository"
	simdomain "github.com/omvsuite/omvadmin/internal/sim/domain"
	simrepo "github.com/omvsuite/omvadmin/internal/sim/repository"
	"github.com/omvsuite/omvadmin/internal/transaction/domain"
	"github.com/omvsuite/omvadmin/internal/transaction/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type txnFixture struct {
	svc    domain.Service
	db     *gorm.DB
	clk    *clock.FakeClock
	facade *cache.Facade
	node   *snowflake.Node
}

func setupTransactionService(t *testing.T) *txnFixture {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	for _, ddl := range []string{
		`CREATE TABLE customers (
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
		)`,
		`CREATE TABLE sims (
			id VARCHAR(32) PRIMARY KEY,
			iccid VARCHAR(32) NOT NULL UNIQUE,
			msisdn VARCHAR(32) NOT NULL UNIQUE,
			operator VARCHAR(64) NOT NULL,
			status VARCHAR(16) NOT NULL DEFAULT 'available',
			customer_id VARCHAR(32),
			plan_id VARCHAR(32),
			warehouse_id VARCHAR(32),
			activation_date TIMESTAMP,
			expiry_date TIMESTAMP,
			created_by VARCHAR(32) NOT NULL,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE transactions (
			id VARCHAR(32) PRIMARY KEY,
			type VARCHAR(16) NOT NULL,
			customer_id VARCHAR(32) NOT NULL,
			sim_id VARCHAR(32),
			amount DOUBLE PRECISION NOT NULL,
			commission DOUBLE PRECISION NOT NULL DEFAULT 0,
			status VARCHAR(16) NOT NULL,
			operator_id VARCHAR(32) NOT NULL,
			reference VARCHAR(64),
			description TEXT,
			metadata TEXT,
			created_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE cache_entries (
			cache_key VARCHAR(512) PRIMARY KEY,
			value TEXT NOT NULL,
			expires_at TIMESTAMP,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
	} {
		require.NoError(t, db.Exec(ddl).Error)
	}

	clk := clock.NewFakeClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	store := cache.NewStoreBackend(db, clk)
	prober := cache.NewProber(nil, db, clk, time.Second, 0)
	facade := cache.NewFacade(prober, nil, store, zap.NewNop(), nil)

	node, err := snowflake.NewNode(3)
	require.NoError(t, err)
	ttl, err := config.NewTTLPolicyHolder()
	require.NoError(t, err)

	svc := New(Params{
		DB:           db,
		Log:          zap.NewNop(),
		GenID:        node,
		Clock:        clk,
		Repo:         repository.Provide(),
		CustomerRepo: customerrepo.Provide(),
		SimRepo:      simrepo.Provide(),
		Facade:       facade,
		TTL:          ttl,
	})
	return &txnFixture{svc: svc, db: db, clk: clk, facade: facade, node: node}
}

func (f *txnFixture) seedCustomer(t *testing.T, name string) *customerdomain.Customer {
	t.Helper()
	now := f.clk.Now()
	customer := &customerdomain.Customer{
		ID:        f.node.Generate().String(),
		Name:      name,
		Email:     name + "@x.com",
		Phone:     "555",
		CreatedBy: "op-1",
		Status:    customerdomain.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, customerrepo.Provide().Insert(context.Background(), f.db, customer))
	return customer
}

func (f *txnFixture) seedSim(t *testing.T, status simdomain.Status) *simdomain.Sim {
	t.Helper()
	now := f.clk.Now()
	sim := &simdomain.Sim{
		ID:          f.node.Generate().String(),
		ICCID:       "iccid-" + f.node.Generate().String(),
		MSISDN:      "msisdn-" + f.node.Generate().String(),
		Operator:    "movistar",
		Status:      status,
		WarehouseID: "wh-1",
		CreatedBy:   "op-1",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	require.NoError(t, simrepo.Provide().Insert(context.Background(), f.db, sim))
	return sim
}

func TestActivationTransaction(t *testing.T) {
	f := setupTransactionService(t)
	ctx := context.Background()

	customer := f.seedCustomer(t, "ana")
	sim := f.seedSim(t, simdomain.StatusAvailable)

	txn, err := f.svc.Activate(ctx, domain.ActivationRequest{
		CustomerID: customer.ID,
		SimID:      sim.ID,
		PlanID:     "plan-1",
		Amount:     20,
		OperatorID: "op-1",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.TypeActivation, txn.Type)
	assert.Equal(t, domain.StatusCompleted, txn.Status)

	var got simdomain.Sim
	require.NoError(t, f.db.Take(&got, "id = ?", sim.ID).Error)
	assert.Equal(t, simdomain.StatusActive, got.Status)
	assert.Equal(t, customer.ID, got.CustomerID)
	assert.Equal(t, "plan-1", got.PlanID)
	require.NotNil(t, got.ActivationDate)

	var cust customerdomain.Customer
	require.NoError(t, f.db.Take(&cust, "id = ?", customer.ID).Error)
	require.NotNil(t, cust.LastActivity)
}

func TestActivationRejectsUnavailableSim(t *testing.T) {
	f := setupTransactionService(t)
	ctx := context.Background()

	customer := f.seedCustomer(t, "ana")
	sim := f.seedSim(t, simdomain.StatusActive)

	_, err := f.svc.Activate(ctx, domain.ActivationRequest{
		CustomerID: customer.ID,
		SimID:      sim.ID,
		OperatorID: "op-1",
	})
	assert.ErrorIs(t, err, domain.ErrSimNotAvailable)

	// The failed activation must leave no ledger entry behind.
	var count int64
	require.NoError(t, f.db.Model(&domain.Transaction{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestActivationUnknownCustomer(t *testing.T) {
	f := setupTransactionService(t)

	_, err := f.svc.Activate(context.Background(), domain.ActivationRequest{
		CustomerID: "ghost",
		SimID:      "sim-1",
		OperatorID: "op-1",
	})
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)
}

func TestRechargeAccumulatesSpend(t *testing.T) {
	f := setupTransactionService(t)
	ctx := context.Background()

	customer := f.seedCustomer(t, "ana")

	_, err := f.svc.Recharge(ctx, domain.RechargeRequest{
		CustomerID: customer.ID,
		Amount:     100,
		OperatorID: "op-1",
	})
	require.NoError(t, err)

	_, err = f.svc.Recharge(ctx, domain.RechargeRequest{
		CustomerID: customer.ID,
		Amount:     50,
		OperatorID: "op-1",
	})
	require.NoError(t, err)

	var got customerdomain.Customer
	require.NoError(t, f.db.Take(&got, "id = ?", customer.ID).Error)
	assert.Equal(t, 150.0, got.TotalSpent)

	_, err = f.svc.Recharge(ctx, domain.RechargeRequest{
		CustomerID: customer.ID,
		Amount:     0,
		OperatorID: "op-1",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestTransferDoubleEntry(t *testing.T) {
	f := setupTransactionService(t)
	ctx := context.Background()

	from := f.seedCustomer(t, "ana")
	to := f.seedCustomer(t, "ben")

	result, err := f.svc.Transfer(ctx, domain.TransferRequest{
		FromCustomerID: from.ID,
		ToCustomerID:   to.ID,
		Amount:         75,
		OperatorID:     "op-1",
	})
	require.NoError(t, err)

	assert.Equal(t, -75.0, result.Debit.Amount)
	assert.Equal(t, 75.0, result.Credit.Amount)
	assert.Equal(t, from.ID, result.Debit.CustomerID)
	assert.Equal(t, to.ID, result.Credit.CustomerID)
	assert.NotEmpty(t, result.Debit.Reference, "a reference is minted when the caller omits one")
	assert.Equal(t, result.Debit.Reference, result.Credit.Reference, "both legs share the reference")

	var count int64
	require.NoError(t, f.db.Model(&domain.Transaction{}).
		Where("reference = ?", result.Debit.Reference).Count(&count).Error)
	assert.Equal(t, int64(2), count)

	// The two legs net to zero.
	var sum float64
	require.NoError(t, f.db.Model(&domain.Transaction{}).
		Select("coalesce(sum(amount), 0)").
		Where("reference = ?", result.Debit.Reference).
		Scan(&sum).Error)
	assert.Zero(t, sum)
}

func TestTransferValidation(t *testing.T) {
	f := setupTransactionService(t)
	ctx := context.Background()

	ana := f.seedCustomer(t, "ana")

	_, err := f.svc.Transfer(ctx, domain.TransferRequest{
		FromCustomerID: ana.ID, ToCustomerID: ana.ID, Amount: 10,
	})
	assert.ErrorIs(t, err, domain.ErrSameCustomer)

	_, err = f.svc.Transfer(ctx, domain.TransferRequest{
		FromCustomerID: ana.ID, ToCustomerID: "ghost", Amount: 10,
	})
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)

	_, err = f.svc.Transfer(ctx, domain.TransferRequest{
		FromCustomerID: ana.ID, ToCustomerID: "other", Amount: -1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestSuspensionTransaction(t *testing.T) {
	f := setupTransactionService(t)
	ctx := context.Background()

	customer := f.seedCustomer(t, "ana")
	sim := f.seedSim(t, simdomain.StatusActive)

	txn, err := f.svc.Suspend(ctx, domain.SuspendRequest{
		CustomerID: customer.ID,
		SimID:      sim.ID,
		OperatorID: "op-1",
		Reason:     "fraud review",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.TypeSuspension, txn.Type)
	assert.Equal(t, "fraud review", txn.Description)

	var got simdomain.Sim
	require.NoError(t, f.db.Take(&got, "id = ?", sim.ID).Error)
	assert.Equal(t, simdomain.StatusSuspended, got.Status)

	_, err = f.svc.Suspend(ctx, domain.SuspendRequest{
		CustomerID: customer.ID,
		SimID:      sim.ID,
		OperatorID: "op-1",
	})
	assert.ErrorIs(t, err, domain.ErrSimNotActive)
}

func TestHistoryInvalidatedByRecharge(t *testing.T) {
	f := setupTransactionService(t)
	ctx := context.Background()

	customer := f.seedCustomer(t, "ana")

	// Warm the history cache while it is still empty.
	history, err := f.svc.History(ctx, customer.ID)
	require.NoError(t, err)
	assert.Empty(t, history)

	_, err = f.svc.Recharge(ctx, domain.RechargeRequest{
		CustomerID: customer.ID,
		Amount:     30,
		OperatorID: "op-1",
	})
	require.NoError(t, err)

	history, err = f.svc.History(ctx, customer.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, domain.TypeRecharge, history[0].Type)
}
