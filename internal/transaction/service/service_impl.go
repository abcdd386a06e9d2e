package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/omvsuite/omvadmin/internal/cache"
	"github.com/omvsuite/omvadmin/internal/clock"
	"github.com/omvsuite/omvadmin/internal/config"
	customerdomain "github.com/omvsuite/omvadmin/internal/customer/domain"
	simdomain "github.com/omvsuite/omvadmin/internal/sim/domain"
	"github.com/omvsuite/omvadmin/internal/transaction/domain"
	"github.com/omvsuite/omvadmin/pkg/db/pagination"
)

type Params struct {
	fx.In

	DB           *gorm.DB
	Log          *zap.Logger
	GenID        *snowflake.Node
	Clock        clock.Clock
	Repo         domain.Repository
	CustomerRepo customerdomain.Repository
	SimRepo      simdomain.Repository
	Facade       *cache.Facade
	TTL          *config.TTLPolicyHolder
}

type service struct {
	db           *gorm.DB
	log          *zap.Logger
	genID        *snowflake.Node
	clock        clock.Clock
	repo         domain.Repository
	customerRepo customerdomain.Repository
	simRepo      simdomain.Repository
	facade       *cache.Facade
	ttl          *config.TTLPolicyHolder
}

func New(p Params) domain.Service {
	return &service{
		db:           p.DB,
		log:          p.Log.Named("transaction.service"),
		genID:        p.GenID,
		clock:        p.Clock,
		repo:         p.Repo,
		customerRepo: p.CustomerRepo,
		simRepo:      p.SimRepo,
		facade:       p.Facade,
		ttl:          p.TTL,
	}
}

func (s *service) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	if id == "" {
		return nil, domain.ErrInvalidTransactionID
	}
	txn, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if txn == nil {
		return nil, domain.ErrNotFound
	}
	return txn, nil
}

func (s *service) List(ctx context.Context, filter domain.ListTransactionFilter, page pagination.Pagination) ([]domain.Transaction, error) {
	page = page.Normalize()
	key := cache.CollectionKey("transactions", struct {
		domain.ListTransactionFilter
		Page     int
		PageSize int
	}{filter, page.Page, page.PageSize})

	return cache.GetCached(ctx, s.facade, key, s.ttl.Get().Transactions,
		func(ctx context.Context) ([]domain.Transaction, error) {
			return s.repo.List(ctx, s.db, filter, page)
		})
}

func (s *service) History(ctx context.Context, customerID string) ([]domain.Transaction, error) {
	if customerID == "" {
		return nil, domain.ErrInvalidCustomerID
	}
	return cache.GetCached(ctx, s.facade, cache.TransactionHistoryKey(customerID), s.ttl.Get().Transactions,
		func(ctx context.Context) ([]domain.Transaction, error) {
			return s.repo.ListByCustomer(ctx, s.db, customerID, 100)
		})
}

func (s *service) Activate(ctx context.Context, req domain.ActivationRequest) (*domain.Transaction, error) {
	if req.CustomerID == "" {
		return nil, domain.ErrInvalidCustomerID
	}
	if req.Amount < 0 {
		return nil, domain.ErrInvalidAmount
	}

	customer, err := s.customerRepo.FindByID(ctx, s.db, req.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrCustomerNotFound
	}

	now := s.clock.Now()
	txn := &domain.Transaction{
		ID:          s.genID.Generate().String(),
		Type:        domain.TypeActivation,
		CustomerID:  req.CustomerID,
		SimID:       req.SimID,
		Amount:      req.Amount,
		Commission:  req.Commission,
		Status:      domain.StatusCompleted,
		OperatorID:  req.OperatorID,
		Description: req.Description,
		CreatedAt:   now,
	}

	var warehouseID string
	err = s.db.Transaction(func(tx *gorm.DB) error {
		sim, err := s.simRepo.FindByID(ctx, tx, req.SimID)
		if err != nil {
			return err
		}
		if sim == nil {
			return domain.ErrSimNotFound
		}
		if sim.Status != simdomain.StatusAvailable {
			return domain.ErrSimNotAvailable
		}
		warehouseID = sim.WarehouseID

		active := simdomain.StatusActive
		if err := s.simRepo.Update(ctx, tx, sim.ID, simdomain.UpdateSimParams{
			Status:         &active,
			CustomerID:     &req.CustomerID,
			PlanID:         &req.PlanID,
			ActivationDate: &now,
			ExpiryDate:     req.Expiry,
		}); err != nil {
			return err
		}
		if _, err := s.customerRepo.Update(ctx, tx, req.CustomerID, customerdomain.UpdateCustomerParams{
			LastActivity: &now,
		}, now); err != nil {
			return err
		}
		return s.repo.Insert(ctx, tx, txn)
	})
	if err != nil {
		s.log.Error("activation", zap.Error(err),
			zap.String("customer_id", req.CustomerID),
			zap.String("sim_id", req.SimID))
		return nil, err
	}

	s.invalidateAfterWrite(ctx, req.CustomerID, req.OperatorID, req.SimID, warehouseID)
	return txn, nil
}

func (s *service) Recharge(ctx context.Context, req domain.RechargeRequest) (*domain.Transaction, error) {
	if req.CustomerID == "" {
		return nil, domain.ErrInvalidCustomerID
	}
	if req.Amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}

	customer, err := s.customerRepo.FindByID(ctx, s.db, req.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrCustomerNotFound
	}

	now := s.clock.Now()
	txn := &domain.Transaction{
		ID:          s.genID.Generate().String(),
		Type:        domain.TypeRecharge,
		CustomerID:  req.CustomerID,
		SimID:       req.SimID,
		Amount:      req.Amount,
		Commission:  req.Commission,
		Status:      domain.StatusCompleted,
		OperatorID:  req.OperatorID,
		Reference:   req.Reference,
		Description: req.Description,
		CreatedAt:   now,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		updated, err := s.customerRepo.AddSpent(ctx, tx, req.CustomerID, req.Amount, now)
		if err != nil {
			return err
		}
		if !updated {
			return domain.ErrCustomerNotFound
		}
		return s.repo.Insert(ctx, tx, txn)
	})
	if err != nil {
		s.log.Error("recharge", zap.Error(err), zap.String("customer_id", req.CustomerID))
		return nil, err
	}

	s.invalidateAfterWrite(ctx, req.CustomerID, req.OperatorID, req.SimID, "")
	return txn, nil
}

func (s *service) Transfer(ctx context.Context, req domain.TransferRequest) (*domain.TransferResult, error) {
	if req.FromCustomerID == "" || req.ToCustomerID == "" {
		return nil, domain.ErrInvalidCustomerID
	}
	if req.FromCustomerID == req.ToCustomerID {
		return nil, domain.ErrSameCustomer
	}
	if req.Amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}

	for _, id := range []string{req.FromCustomerID, req.ToCustomerID} {
		customer, err := s.customerRepo.FindByID(ctx, s.db, id)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, domain.ErrCustomerNotFound
		}
	}

	reference := req.Reference
	if reference == "" {
		reference = uuid.NewString()
	}

	now := s.clock.Now()
	debit := &domain.Transaction{
		ID:          s.genID.Generate().String(),
		Type:        domain.TypeTransfer,
		CustomerID:  req.FromCustomerID,
		Amount:      -req.Amount,
		Status:      domain.StatusCompleted,
		OperatorID:  req.OperatorID,
		Reference:   reference,
		Description: req.Description,
		CreatedAt:   now,
	}
	credit := &domain.Transaction{
		ID:          s.genID.Generate().String(),
		Type:        domain.TypeTransfer,
		CustomerID:  req.ToCustomerID,
		Amount:      req.Amount,
		Status:      domain.StatusCompleted,
		OperatorID:  req.OperatorID,
		Reference:   reference,
		Description: req.Description,
		CreatedAt:   now,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Insert(ctx, tx, debit); err != nil {
			return err
		}
		if err := s.repo.Insert(ctx, tx, credit); err != nil {
			return err
		}
		for _, id := range []string{req.FromCustomerID, req.ToCustomerID} {
			if _, err := s.customerRepo.Update(ctx, tx, id, customerdomain.UpdateCustomerParams{
				LastActivity: &now,
			}, now); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.log.Error("transfer", zap.Error(err),
			zap.String("from", req.FromCustomerID),
			zap.String("to", req.ToCustomerID))
		return nil, err
	}

	s.invalidateAfterWrite(ctx, req.FromCustomerID, req.OperatorID, "", "")
	s.invalidateAfterWrite(ctx, req.ToCustomerID, "", "", "")
	return &domain.TransferResult{Debit: debit, Credit: credit}, nil
}

func (s *service) Suspend(ctx context.Context, req domain.SuspendRequest) (*domain.Transaction, error) {
	if req.CustomerID == "" {
		return nil, domain.ErrInvalidCustomerID
	}

	now := s.clock.Now()
	txn := &domain.Transaction{
		ID:          s.genID.Generate().String(),
		Type:        domain.TypeSuspension,
		CustomerID:  req.CustomerID,
		SimID:       req.SimID,
		Status:      domain.StatusCompleted,
		OperatorID:  req.OperatorID,
		Description: req.Reason,
		CreatedAt:   now,
	}

	var warehouseID string
	err := s.db.Transaction(func(tx *gorm.DB) error {
		sim, err := s.simRepo.FindByID(ctx, tx, req.SimID)
		if err != nil {
			return err
		}
		if sim == nil {
			return domain.ErrSimNotFound
		}
		if sim.Status != simdomain.StatusActive {
			return domain.ErrSimNotActive
		}
		warehouseID = sim.WarehouseID

		suspended := simdomain.StatusSuspended
		if err := s.simRepo.Update(ctx, tx, sim.ID, simdomain.UpdateSimParams{
			Status: &suspended,
		}); err != nil {
			return err
		}
		return s.repo.Insert(ctx, tx, txn)
	})
	if err != nil {
		s.log.Error("suspension", zap.Error(err),
			zap.String("customer_id", req.CustomerID),
			zap.String("sim_id", req.SimID))
		return nil, err
	}

	s.invalidateAfterWrite(ctx, req.CustomerID, req.OperatorID, req.SimID, warehouseID)
	return txn, nil
}

// invalidateAfterWrite drops every cached view a completed transaction can
// stale: history for the customer and operator, the touched sim and customer,
// and the system stats aggregate.
func (s *service) invalidateAfterWrite(ctx context.Context, customerID, operatorID, simID, warehouseID string) {
	keys := []string{cache.SystemStatsKey()}
	if customerID != "" {
		keys = append(keys, cache.CustomerKeys(customerID)...)
	}
	if operatorID != "" {
		keys = append(keys, cache.TransactionHistoryKey(operatorID))
	}
	if simID != "" {
		keys = append(keys, cache.SimKeys(simID, warehouseID)...)
	}
	s.facade.Invalidate(ctx, keys...)
}
