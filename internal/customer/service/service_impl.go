package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/omvsuite/omvadmin/internal/cache"
	"github.com/omvsuite/omvadmin/internal/clock"
	"github.com/omvsuite/omvadmin/internal/config"
	"github.com/omvsuite/omvadmin/internal/customer/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
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

type Service struct {
	db     *gorm.DB
	log    *zap.Logger
	genID  *snowflake.Node
	clock  clock.Clock
	repo   domain.Repository
	facade *cache.Facade
	ttl    *config.TTLPolicyHolder
}

func New(p Params) domain.Service {
	return &Service{
		db:     p.DB,
		log:    p.Log.Named("customer.service"),
		genID:  p.GenID,
		clock:  p.Clock,
		repo:   p.Repo,
		facade: p.Facade,
		ttl:    p.TTL,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateCustomerRequest) (domain.Customer, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Customer{}, domain.ErrInvalidName
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return domain.Customer{}, domain.ErrInvalidEmail
	}

	phone := strings.TrimSpace(req.Phone)
	if phone == "" {
		return domain.Customer{}, domain.ErrInvalidPhone
	}

	now := s.clock.Now()
	customer := domain.Customer{
		ID:        s.genID.Generate().String(),
		Name:      name,
		Email:     email,
		Phone:     phone,
		Address:   strings.TrimSpace(req.Address),
		CreatedBy: strings.TrimSpace(req.CreatedBy),
		Status:    domain.StatusActive,
		Notes:     strings.TrimSpace(req.Notes),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Insert(ctx, s.db, &customer); err != nil {
		return domain.Customer{}, err
	}

	return customer, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Customer, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.Customer{}, domain.ErrInvalidID
	}

	customer, err := cache.GetCached(ctx, s.facade, cache.CustomerKey(id), s.ttl.Get().Customer, func(ctx context.Context) (*domain.Customer, error) {
		return s.repo.FindByID(ctx, s.db, id)
	})
	if err != nil {
		return domain.Customer{}, err
	}
	if customer == nil {
		return domain.Customer{}, domain.ErrNotFound
	}
	return *customer, nil
}

func (s *Service) List(ctx context.Context, req domain.ListCustomerRequest) ([]domain.Customer, error) {
	if req.Status != "" && !req.Status.Valid() {
		return nil, domain.ErrInvalidStatus
	}

	filter := domain.ListCustomerFilter{
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:     strings.TrimSpace(req.Phone),
		Status:    req.Status,
		CreatedBy: strings.TrimSpace(req.CreatedBy),
	}
	page := req.Pagination.Normalize()

	key := cache.CollectionKey("customers", struct {
		domain.ListCustomerFilter
		Page, PageSize int
	}{filter, page.Page, page.PageSize})

	items, err := cache.GetCached(ctx, s.facade, key, s.ttl.Get().Customer, func(ctx context.Context) ([]*domain.Customer, error) {
		return s.repo.List(ctx, s.db, filter, page)
	})
	if err != nil {
		return nil, err
	}

	customers := make([]domain.Customer, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		customers = append(customers, *item)
	}
	return customers, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateCustomerRequest) (domain.Customer, error) {
	id := strings.TrimSpace(req.ID)
	if id == "" {
		return domain.Customer{}, domain.ErrInvalidID
	}
	if req.Status != nil && !req.Status.Valid() {
		return domain.Customer{}, domain.ErrInvalidStatus
	}

	updated, err := s.repo.Update(ctx, s.db, id, req.UpdateCustomerParams, s.clock.Now())
	if err != nil {
		return domain.Customer{}, err
	}
	if !updated {
		return domain.Customer{}, domain.ErrNotFound
	}

	s.facade.Invalidate(ctx, cache.CustomerKeys(id)...)

	customer, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Customer{}, err
	}
	if customer == nil {
		return domain.Customer{}, domain.ErrNotFound
	}
	return *customer, nil
}
