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
	notifdomain "github.com/omvsuite/omvadmin/internal/notification/domain"
	"github.com/omvsuite/omvadmin/internal/ticket/domain"
	"github.com/omvsuite/omvadmin/pkg/db/pagination"
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Clock    clock.Clock
	Repo     domain.Repository
	Notifier notifdomain.Service
	Facade   *cache.Facade
	TTL      *config.TTLPolicyHolder
}

type service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	clock    clock.Clock
	repo     domain.Repository
	notifier notifdomain.Service
	facade   *cache.Facade
	ttl      *config.TTLPolicyHolder
}

func New(p Params) domain.Service {
	return &service{
		db:       p.DB,
		log:      p.Log.Named("ticket.service"),
		genID:    p.GenID,
		clock:    p.Clock,
		repo:     p.Repo,
		notifier: p.Notifier,
		facade:   p.Facade,
		ttl:      p.TTL,
	}
}

func (s *service) Create(ctx context.Context, req domain.CreateTicketRequest) (*domain.Ticket, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, domain.ErrInvalidTitle
	}
	category := req.Category
	if category == "" {
		category = domain.CategoryGeneral
	}
	if !category.Valid() {
		return nil, domain.ErrInvalidCategory
	}
	priority := req.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}
	if !priority.Valid() {
		return nil, domain.ErrInvalidPriority
	}

	now := s.clock.Now()
	ticket := &domain.Ticket{
		ID:          s.genID.Generate().String(),
		Title:       title,
		Description: req.Description,
		Category:    category,
		Priority:    priority,
		Status:      domain.StatusOpen,
		CustomerID:  req.CustomerID,
		CreatedBy:   req.CreatedBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Insert(ctx, s.db, ticket); err != nil {
		s.log.Error("insert ticket", zap.Error(err))
		return nil, err
	}
	return ticket, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	if id == "" {
		return nil, domain.ErrInvalidTicketID
	}
	ticket, err := cache.GetCached(ctx, s.facade, cache.TicketKey(id), s.ttl.Get().Tickets,
		func(ctx context.Context) (*domain.Ticket, error) {
			return s.repo.FindByID(ctx, s.db, id)
		})
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, domain.ErrNotFound
	}
	return ticket, nil
}

func (s *service) List(ctx context.Context, filter domain.ListTicketFilter, page pagination.Pagination) ([]domain.Ticket, error) {
	page = page.Normalize()
	key := cache.CollectionKey("tickets", struct {
		domain.ListTicketFilter
		Page     int
		PageSize int
	}{filter, page.Page, page.PageSize})

	return cache.GetCached(ctx, s.facade, key, s.ttl.Get().Tickets,
		func(ctx context.Context) ([]domain.Ticket, error) {
			return s.repo.List(ctx, s.db, filter, page)
		})
}

func (s *service) Update(ctx context.Context, id string, req domain.UpdateTicketRequest) (*domain.Ticket, error) {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Status != nil && !req.Status.Valid() {
		return nil, domain.ErrInvalidStatus
	}
	if req.Category != nil && !req.Category.Valid() {
		return nil, domain.ErrInvalidCategory
	}
	if req.Priority != nil && !req.Priority.Valid() {
		return nil, domain.ErrInvalidPriority
	}

	params := domain.UpdateTicketParams{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Priority:    req.Priority,
		Status:      req.Status,
		AssignedTo:  req.AssignedTo,
	}
	updated, err := s.repo.Update(ctx, s.db, id, params, s.clock.Now())
	if err != nil {
		s.log.Error("update ticket", zap.Error(err), zap.String("ticket_id", id))
		return nil, err
	}
	if !updated {
		return nil, domain.ErrNotFound
	}

	if req.AssignedTo != nil && *req.AssignedTo != "" && *req.AssignedTo != current.AssignedTo {
		s.notifyAssignment(ctx, current, *req.AssignedTo)
	}

	s.facade.Invalidate(ctx, cache.TicketKeys(id)...)
	return s.repo.FindByID(ctx, s.db, id)
}

func (s *service) AddComment(ctx context.Context, ticketID string, req domain.AddCommentRequest) (*domain.Comment, error) {
	if _, err := s.GetByID(ctx, ticketID); err != nil {
		return nil, err
	}
	message := strings.TrimSpace(req.Message)
	if req.Author == "" || message == "" {
		return nil, domain.ErrInvalidComment
	}

	comment := &domain.Comment{
		ID:        s.genID.Generate().String(),
		TicketID:  ticketID,
		Author:    req.Author,
		Message:   message,
		CreatedAt: s.clock.Now(),
	}
	if err := s.repo.AppendComment(ctx, s.db, comment); err != nil {
		s.log.Error("append comment", zap.Error(err), zap.String("ticket_id", ticketID))
		return nil, err
	}

	s.facade.Invalidate(ctx, cache.TicketKeys(ticketID)...)
	return comment, nil
}

// notifyAssignment is best-effort; a failed notification never fails the update.
func (s *service) notifyAssignment(ctx context.Context, ticket *domain.Ticket, assignee string) {
	_, err := s.notifier.Send(ctx, notifdomain.SendRequest{
		UserID:  assignee,
		Title:   "Ticket assigned: " + ticket.Title,
		Message: "You have been assigned ticket " + ticket.ID,
		Type:    notifdomain.TypeInfo,
	})
	if err != nil {
		s.log.Warn("assignment notification",
			zap.Error(err),
			zap.String("ticket_id", ticket.ID),
			zap.String("assignee", assignee))
	}
}
