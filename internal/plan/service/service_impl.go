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
	"github.com/omvsuite/omvadmin/internal/plan/domain"
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
		log:    p.Log.Named("plan.service"),
		genID:  p.GenID,
		clock:  p.Clock,
		repo:   p.Repo,
		facade: p.Facade,
		ttl:    p.TTL,
	}
}

func (s *service) Create(ctx context.Context, req domain.CreatePlanRequest) (*domain.Plan, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}
	if !req.Type.Valid() {
		return nil, domain.ErrInvalidType
	}
	if req.BaseCost < 0 || req.RetailPrice < 0 {
		return nil, domain.ErrInvalidPrice
	}

	now := s.clock.Now()
	plan := &domain.Plan{
		ID:           s.genID.Generate().String(),
		Name:         name,
		Type:         req.Type,
		DataMB:       req.DataMB,
		Minutes:      req.Minutes,
		SMS:          req.SMS,
		ValidityDays: req.ValidityDays,
		BaseCost:     req.BaseCost,
		RetailPrice:  req.RetailPrice,
		Status:       domain.StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Insert(ctx, s.db, plan); err != nil {
		s.log.Error("insert plan", zap.Error(err))
		return nil, err
	}
	return plan, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*domain.Plan, error) {
	if id == "" {
		return nil, domain.ErrInvalidPlanID
	}
	plan, err := cache.GetCached(ctx, s.facade, cache.PlanKey(id), s.ttl.Get().Sim,
		func(ctx context.Context) (*domain.Plan, error) {
			return s.repo.FindByID(ctx, s.db, id)
		})
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, domain.ErrNotFound
	}
	return plan, nil
}

func (s *service) List(ctx context.Context, filter domain.ListPlanFilter, page pagination.Pagination) ([]domain.Plan, error) {
	page = page.Normalize()
	key := cache.CollectionKey("plans", struct {
		domain.ListPlanFilter
		Page     int
		PageSize int
	}{filter, page.Page, page.PageSize})

	return cache.GetCached(ctx, s.facade, key, s.ttl.Get().Sim,
		func(ctx context.Context) ([]domain.Plan, error) {
			return s.repo.List(ctx, s.db, filter, page)
		})
}

func (s *service) Update(ctx context.Context, id string, req domain.UpdatePlanRequest) (*domain.Plan, error) {
	if _, err := s.GetByID(ctx, id); err != nil {
		return nil, err
	}

	params := domain.UpdatePlanParams{
		Name:         req.Name,
		DataMB:       req.DataMB,
		Minutes:      req.Minutes,
		SMS:          req.SMS,
		ValidityDays: req.ValidityDays,
		BaseCost:     req.BaseCost,
		RetailPrice:  req.RetailPrice,
		Status:       req.Status,
	}
	if err := s.repo.Update(ctx, s.db, id, params); err != nil {
		s.log.Error("update plan", zap.Error(err), zap.String("plan_id", id))
		return nil, err
	}

	s.facade.Invalidate(ctx, cache.PlanKey(id))
	return s.repo.FindByID(ctx, s.db, id)
}
