package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/omvsuite/omvadmin/internal/cache"
	"github.com/omvsuite/omvadmin/internal/clock"
	"github.com/omvsuite/omvadmin/internal/config"
	"github.com/omvsuite/omvadmin/internal/warehouse/domain"
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
		log:    p.Log.Named("warehouse.service"),
		genID:  p.GenID,
		clock:  p.Clock,
		repo:   p.Repo,
		facade: p.Facade,
		ttl:    p.TTL,
	}
}

func (s *service) Create(ctx context.Context, req domain.CreateWarehouseRequest) (*domain.Warehouse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}

	now := s.clock.Now()
	wh := &domain.Warehouse{
		ID:        s.genID.Generate().String(),
		Name:      name,
		Location:  strings.TrimSpace(req.Location),
		Manager:   strings.TrimSpace(req.Manager),
		Status:    domain.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Insert(ctx, s.db, wh); err != nil {
		s.log.Error("insert warehouse", zap.Error(err))
		return nil, err
	}
	return wh, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*domain.Warehouse, error) {
	if id == "" {
		return nil, domain.ErrInvalidWarehouseID
	}
	wh, err := cache.GetCached(ctx, s.facade, cache.WarehouseKey(id), s.ttl.Get().Sim,
		func(ctx context.Context) (*domain.Warehouse, error) {
			return s.repo.FindByID(ctx, s.db, id)
		})
	if err != nil {
		return nil, err
	}
	if wh == nil {
		return nil, domain.ErrNotFound
	}
	return wh, nil
}

func (s *service) List(ctx context.Context, filter domain.ListWarehouseFilter, page pagination.Pagination) ([]domain.Warehouse, error) {
	page = page.Normalize()
	key := cache.CollectionKey("warehouses", struct {
		domain.ListWarehouseFilter
		Page     int
		PageSize int
	}{filter, page.Page, page.PageSize})

	return cache.GetCached(ctx, s.facade, key, s.ttl.Get().Sim,
		func(ctx context.Context) ([]domain.Warehouse, error) {
			return s.repo.List(ctx, s.db, filter, page)
		})
}

func (s *service) Update(ctx context.Context, id string, req domain.UpdateWarehouseRequest) (*domain.Warehouse, error) {
	if _, err := s.GetByID(ctx, id); err != nil {
		return nil, err
	}

	params := domain.UpdateWarehouseParams{
		Name:     req.Name,
		Location: req.Location,
		Manager:  req.Manager,
		Status:   req.Status,
	}
	if err := s.repo.Update(ctx, s.db, id, params); err != nil {
		s.log.Error("update warehouse", zap.Error(err), zap.String("warehouse_id", id))
		return nil, err
	}

	s.facade.Invalidate(ctx, cache.WarehouseKey(id))
	return s.repo.FindByID(ctx, s.db, id)
}

func (s *service) AdjustCounters(ctx context.Context, id string, delta domain.CounterDelta) error {
	if id == "" {
		return domain.ErrInvalidWarehouseID
	}
	if err := s.repo.AdjustCounters(ctx, s.db, id, delta); err != nil {
		s.log.Error("adjust warehouse counters", zap.Error(err), zap.String("warehouse_id", id))
		return err
	}
	s.facade.Invalidate(ctx, cache.WarehouseKey(id), cache.SimWarehouseKey(id))
	return nil
}
