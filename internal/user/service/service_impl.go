package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/omvsuite/omvadmin/internal/cache"
	"github.com/omvsuite/omvadmin/internal/clock"
	"github.com/omvsuite/omvadmin/internal/config"
	"github.com/omvsuite/omvadmin/internal/user/domain"
	"github.com/omvsuite/omvadmin/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
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
		log:    p.Log.Named("user.service"),
		genID:  p.GenID,
		clock:  p.Clock,
		repo:   p.Repo,
		facade: p.Facade,
		ttl:    p.TTL,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateUserRequest) (domain.User, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.User{}, domain.ErrInvalidName
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return domain.User{}, domain.ErrInvalidEmail
	}

	if !req.Role.Valid() {
		return domain.User{}, domain.ErrInvalidRole
	}

	permissions := req.Permissions
	if len(permissions) == 0 {
		permissions = domain.DefaultPermissions(req.Role)
	}

	now := s.clock.Now()
	user := domain.User{
		ID:          s.genID.Generate().String(),
		Name:        name,
		Email:       email,
		Role:        req.Role,
		Permissions: datatypes.NewJSONSlice(permissions),
		Department:  strings.TrimSpace(req.Department),
		Supervisor:  strings.TrimSpace(req.Supervisor),
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Insert(ctx, s.db, &user); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.User{}, domain.ErrEmailTaken
		}
		return domain.User{}, err
	}

	return user, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.User{}, domain.ErrInvalidID
	}

	user, err := cache.GetCached(ctx, s.facade, cache.UserKey(id), s.ttl.Get().User, func(ctx context.Context) (*domain.User, error) {
		return s.repo.FindByID(ctx, s.db, id)
	})
	if err != nil {
		return domain.User{}, err
	}
	if user == nil {
		return domain.User{}, domain.ErrNotFound
	}
	return *user, nil
}

// Permissions resolves the effective permission set, falling back to the
// role defaults when the stored list is empty.
func (s *Service) Permissions(ctx context.Context, id string) ([]string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, domain.ErrInvalidID
	}

	permissions, err := cache.GetCached(ctx, s.facade, cache.UserPermissionsKey(id), s.ttl.Get().User, func(ctx context.Context) ([]string, error) {
		user, err := s.repo.FindByID(ctx, s.db, id)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, domain.ErrNotFound
		}
		if len(user.Permissions) == 0 {
			return domain.DefaultPermissions(user.Role), nil
		}
		return user.Permissions, nil
	})
	if err != nil {
		return nil, err
	}
	return permissions, nil
}

func (s *Service) List(ctx context.Context, req domain.ListUserRequest) ([]domain.User, error) {
	filter := domain.ListUserFilter{
		Role:     req.Role,
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		IsActive: req.IsActive,
	}
	page := req.Pagination.Normalize()

	key := cache.CollectionKey("users", struct {
		domain.ListUserFilter
		Page, PageSize int
	}{filter, page.Page, page.PageSize})

	items, err := cache.GetCached(ctx, s.facade, key, s.ttl.Get().User, func(ctx context.Context) ([]*domain.User, error) {
		return s.repo.List(ctx, s.db, filter, page)
	})
	if err != nil {
		return nil, err
	}

	users := make([]domain.User, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		users = append(users, *item)
	}
	return users, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateUserRequest) (domain.User, error) {
	id := strings.TrimSpace(req.ID)
	if id == "" {
		return domain.User{}, domain.ErrInvalidID
	}
	if req.Role != nil && !req.Role.Valid() {
		return domain.User{}, domain.ErrInvalidRole
	}

	updated, err := s.repo.Update(ctx, s.db, id, req.UpdateUserParams, s.clock.Now())
	if err != nil {
		return domain.User{}, err
	}
	if !updated {
		return domain.User{}, domain.ErrNotFound
	}

	s.facade.Invalidate(ctx, cache.UserKeys(id)...)

	user, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.User{}, err
	}
	if user == nil {
		return domain.User{}, domain.ErrNotFound
	}
	return *user, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.ErrInvalidID
	}

	deleted, err := s.repo.Delete(ctx, s.db, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrNotFound
	}

	s.facade.Invalidate(ctx, cache.UserKeys(id)...)
	return nil
}
