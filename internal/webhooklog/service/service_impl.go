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
	"github.com/omvsuite/omvadmin/internal/webhooklog/domain"
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
		log:    p.Log.Named("webhooklog.service"),
		genID:  p.GenID,
		clock:  p.Clock,
		repo:   p.Repo,
		facade: p.Facade,
		ttl:    p.TTL,
	}
}

func (s *service) Record(ctx context.Context, req domain.RecordRequest) (*domain.WebhookLog, error) {
	endpoint := strings.TrimSpace(req.Endpoint)
	if endpoint == "" {
		return nil, domain.ErrInvalidEndpoint
	}
	event := strings.TrimSpace(req.Event)
	if event == "" {
		return nil, domain.ErrInvalidEvent
	}
	status := req.Status
	if status == "" {
		status = domain.StatusPending
	}
	if !status.Valid() {
		return nil, domain.ErrInvalidStatus
	}
	method := req.Method
	if method == "" {
		method = "POST"
	}

	entry := &domain.WebhookLog{
		ID:           s.genID.Generate().String(),
		Endpoint:     endpoint,
		Event:        event,
		Method:       method,
		Status:       status,
		StatusCode:   req.StatusCode,
		ResponseTime: req.ResponseTime,
		Payload:      req.Payload,
		Response:     req.Response,
		RetryCount:   req.RetryCount,
		CreatedAt:    s.clock.Now(),
	}
	if err := s.repo.Insert(ctx, s.db, entry); err != nil {
		s.log.Error("record webhook log", zap.Error(err), zap.String("endpoint", endpoint))
		return nil, err
	}

	s.facade.Invalidate(ctx, cache.WebhookLogsKey(endpoint))
	return entry, nil
}

func (s *service) ListByEndpoint(ctx context.Context, endpoint string) ([]domain.WebhookLog, error) {
	if endpoint == "" {
		return nil, domain.ErrInvalidEndpoint
	}
	return cache.GetCached(ctx, s.facade, cache.WebhookLogsKey(endpoint), s.ttl.Get().Reports,
		func(ctx context.Context) ([]domain.WebhookLog, error) {
			return s.repo.ListByEndpoint(ctx, s.db, endpoint, 100)
		})
}
