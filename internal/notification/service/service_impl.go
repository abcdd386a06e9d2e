package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/omvsuite/omvadmin/internal/clock"
	"github.com/omvsuite/omvadmin/internal/notification/domain"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  domain.Repository
}

type service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &service{
		db:    p.DB,
		log:   p.Log.Named("notification.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *service) Send(ctx context.Context, req domain.SendRequest) (*domain.Notification, error) {
	if req.UserID == "" {
		return nil, domain.ErrInvalidUserID
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, domain.ErrInvalidTitle
	}
	typ := req.Type
	if typ == "" {
		typ = domain.TypeInfo
	}

	n := &domain.Notification{
		ID:        s.genID.Generate().String(),
		UserID:    req.UserID,
		Title:     title,
		Message:   req.Message,
		Type:      typ,
		CreatedAt: s.clock.Now(),
	}
	if err := s.repo.Insert(ctx, s.db, n); err != nil {
		s.log.Error("insert notification", zap.Error(err), zap.String("user_id", req.UserID))
		return nil, err
	}
	return n, nil
}

func (s *service) ListByUser(ctx context.Context, userID string, unreadOnly bool) ([]domain.Notification, error) {
	if userID == "" {
		return nil, domain.ErrInvalidUserID
	}
	return s.repo.ListByUser(ctx, s.db, userID, unreadOnly, 100)
}

func (s *service) MarkRead(ctx context.Context, id string) error {
	marked, err := s.repo.MarkRead(ctx, s.db, id, s.clock.Now())
	if err != nil {
		return err
	}
	if !marked {
		n, err := s.repo.FindByID(ctx, s.db, id)
		if err != nil {
			return err
		}
		if n == nil {
			return domain.ErrNotFound
		}
	}
	return nil
}

func (s *service) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	if userID == "" {
		return 0, domain.ErrInvalidUserID
	}
	return s.repo.MarkAllRead(ctx, s.db, userID, s.clock.Now())
}

func (s *service) UnreadCount(ctx context.Context, userID string) (int64, error) {
	if userID == "" {
		return 0, domain.ErrInvalidUserID
	}
	return s.repo.CountUnread(ctx, s.db, userID)
}
