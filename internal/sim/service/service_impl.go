package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/omvsuite/omvadmin/internal/cache"
	"github.com/omvsuite/omvadmin/internal/clock"
	"github.com/omvsuite/omvadmin/internal/config"
	"github.com/omvsuite/omvadmin/internal/sim/domain"
	"github.com/omvsuite/omvadmin/pkg/db"
	"github.com/omvsuite/omvadmin/pkg/db/pagination"
)

type Params struct {
	fx.In

	DB     *gorm.DB
	Log    *zap.Logger
	GenID  *snowflake.Node
	Clock  clock.Clock
	Repo   domain.Repository
	Facade *cache.Facade
	TTL    *config.TTLPolicyHolder
}

type service struct {
	db     *gorm.DB
	log    *zap.Logger
	genID  *snowflake.Node
	clock  clock.Clock
	repo   domain.Repository
	facade *cache.Facade
	ttl    *config.TTLPolicyHolder
}

func New(p Params) domain.Service {
	return &service{
		db:     p.DB,
		log:    p.Log.Named("sim.service"),
		genID:  p.GenID,
		clock:  p.Clock,
		repo:   p.Repo,
		facade: p.Facade,
		ttl:    p.TTL,
	}
}

func (s *service) Create(ctx context.Context, req domain.CreateSimRequest) (*domain.Sim, error) {
	iccid := strings.TrimSpace(req.ICCID)
	if iccid == "" {
		return nil, domain.ErrInvalidICCID
	}
	msisdn := strings.TrimSpace(req.MSISDN)
	if msisdn == "" {
		return nil, domain.ErrInvalidMSISDN
	}
	operator := strings.TrimSpace(req.Operator)
	if operator == "" {
		return nil, domain.ErrInvalidOperator
	}

	now := s.clock.Now()
	sim := &domain.Sim{
		ID:          s.genID.Generate().String(),
		ICCID:       iccid,
		MSISDN:      msisdn,
		Operator:    operator,
		Status:      domain.StatusAvailable,
		WarehouseID: strings.TrimSpace(req.WarehouseID),
		CreatedBy:   req.CreatedBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Insert(ctx, s.db, sim); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrICCIDTaken
		}
		s.log.Error("insert sim", zap.Error(err))
		return nil, err
	}

	if sim.WarehouseID != "" {
		s.facade.Invalidate(ctx, cache.SimWarehouseKey(sim.WarehouseID))
	}
	return sim, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*domain.Sim, error) {
	if id == "" {
		return nil, domain.ErrInvalidSimID
	}
	sim, err := cache.GetCached(ctx, s.facade, cache.SimKey(id), s.ttl.Get().Sim,
		func(ctx context.Context) (*domain.Sim, error) {
			return s.repo.FindByID(ctx, s.db, id)
		})
	if err != nil {
		return nil, err
	}
	if sim == nil {
		return nil, domain.ErrNotFound
	}
	return sim, nil
}

func (s *service) List(ctx context.Context, filter domain.ListSimFilter, page pagination.Pagination) ([]domain.Sim, error) {
	page = page.Normalize()
	key := cache.CollectionKey("sims", struct {
		domain.ListSimFilter
		Page     int
		PageSize int
	}{filter, page.Page, page.PageSize})

	return cache.GetCached(ctx, s.facade, key, s.ttl.Get().Sim,
		func(ctx context.Context) ([]domain.Sim, error) {
			return s.repo.List(ctx, s.db, filter, page)
		})
}

func (s *service) ListByWarehouse(ctx context.Context, warehouseID string) ([]domain.Sim, error) {
	if warehouseID == "" {
		return nil, domain.ErrInvalidSimID
	}
	return cache.GetCached(ctx, s.facade, cache.SimWarehouseKey(warehouseID), s.ttl.Get().Sim,
		func(ctx context.Context) ([]domain.Sim, error) {
			return s.repo.ListByWarehouse(ctx, s.db, warehouseID)
		})
}

func (s *service) Update(ctx context.Context, id string, req domain.UpdateSimRequest) (*domain.Sim, error) {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Status != nil && !req.Status.Valid() {
		return nil, domain.ErrInvalidStatus
	}

	params := domain.UpdateSimParams{
		Operator:    req.Operator,
		Status:      req.Status,
		PlanID:      req.PlanID,
		WarehouseID: req.WarehouseID,
	}
	if err := s.repo.Update(ctx, s.db, id, params); err != nil {
		s.log.Error("update sim", zap.Error(err), zap.String("sim_id", id))
		return nil, err
	}

	s.invalidate(ctx, id, current.WarehouseID, req.WarehouseID)
	return s.repo.FindByID(ctx, s.db, id)
}

func (s *service) Delete(ctx context.Context, id string) error {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, s.db, id); err != nil {
		return err
	}
	s.facade.Invalidate(ctx, cache.SimKeys(id, current.WarehouseID)...)
	return nil
}

func (s *service) Activate(ctx context.Context, id, customerID, planID string, expiry *time.Time) (*domain.Sim, error) {
	if id == "" {
		return nil, domain.ErrInvalidSimID
	}

	now := s.clock.Now()
	status := domain.StatusActive
	params := domain.UpdateSimParams{
		Status:         &status,
		CustomerID:     &customerID,
		PlanID:         &planID,
		ActivationDate: &now,
		ExpiryDate:     expiry,
	}
	warehouseID, err := s.transition(ctx, id, params, func(current *domain.Sim) error {
		if current.Status != domain.StatusAvailable {
			return domain.ErrNotAvailable
		}
		return nil
	})
	if err != nil {
		s.log.Error("activate sim", zap.Error(err), zap.String("sim_id", id))
		return nil, err
	}

	s.facade.Invalidate(ctx, cache.SimKeys(id, warehouseID)...)
	return s.repo.FindByID(ctx, s.db, id)
}

func (s *service) Suspend(ctx context.Context, id string) (*domain.Sim, error) {
	if id == "" {
		return nil, domain.ErrInvalidSimID
	}

	status := domain.StatusSuspended
	warehouseID, err := s.transition(ctx, id, domain.UpdateSimParams{Status: &status}, func(current *domain.Sim) error {
		if current.Status != domain.StatusActive {
			return domain.ErrNotActive
		}
		return nil
	})
	if err != nil {
		s.log.Error("suspend sim", zap.Error(err), zap.String("sim_id", id))
		return nil, err
	}

	s.facade.Invalidate(ctx, cache.SimKeys(id, warehouseID)...)
	return s.repo.FindByID(ctx, s.db, id)
}

func (s *service) Release(ctx context.Context, id string) (*domain.Sim, error) {
	if id == "" {
		return nil, domain.ErrInvalidSimID
	}

	status := domain.StatusAvailable
	empty := ""
	params := domain.UpdateSimParams{
		Status:     &status,
		CustomerID: &empty,
		PlanID:     &empty,
	}
	warehouseID, err := s.transition(ctx, id, params, func(current *domain.Sim) error {
		if current.Status != domain.StatusSuspended && current.Status != domain.StatusInactive {
			return domain.ErrNotSuspended
		}
		return nil
	})
	if err != nil {
		s.log.Error("release sim", zap.Error(err), zap.String("sim_id", id))
		return nil, err
	}

	s.facade.Invalidate(ctx, cache.SimKeys(id, warehouseID)...)
	return s.repo.FindByID(ctx, s.db, id)
}

// transition re-reads the SIM inside the transaction so the status gate never
// trusts a cached row, then applies the update on the same connection.
func (s *service) transition(ctx context.Context, id string, params domain.UpdateSimParams, gate func(*domain.Sim) error) (string, error) {
	var warehouseID string
	err := s.db.Transaction(func(tx *gorm.DB) error {
		current, err := s.repo.FindByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrNotFound
		}
		if err := gate(current); err != nil {
			return err
		}
		warehouseID = current.WarehouseID
		return s.repo.Update(ctx, tx, id, params)
	})
	return warehouseID, err
}

func (s *service) invalidate(ctx context.Context, id, oldWarehouse string, newWarehouse *string) {
	keys := cache.SimKeys(id, oldWarehouse)
	if newWarehouse != nil && *newWarehouse != "" && *newWarehouse != oldWarehouse {
		keys = append(keys, cache.SimWarehouseKey(*newWarehouse))
	}
	s.facade.Invalidate(ctx, keys...)
}
