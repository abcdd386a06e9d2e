package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/omvsuite/omvadmin/internal/cache"
	"github.com/omvsuite/omvadmin/internal/clock"
	"github.com/omvsuite/omvadmin/internal/config"
	notifdomain "github.com/omvsuite/omvadmin/internal/notification/domain"
	"github.com/omvsuite/omvadmin/internal/ticket/domain"
	"github.com/omvsuite/omvadmin/internal/ticket/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type notifierStub struct {
	mu   sync.Mutex
	sent []notifdomain.SendRequest
	err  error
}

func (n *notifierStub) Send(ctx context.Context, req notifdomain.SendRequest) (*notifdomain.Notification, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return nil, n.err
	}
	n.sent = append(n.sent, req)
	return &notifdomain.Notification{ID: "n1", UserID: req.UserID}, nil
}

func (n *notifierStub) ListByUser(ctx context.Context, userID string, unreadOnly bool) ([]notifdomain.Notification, error) {
	return nil, nil
}

func (n *notifierStub) MarkRead(ctx context.Context, id string) error { return nil }

func (n *notifierStub) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	return 0, nil
}

func (n *notifierStub) UnreadCount(ctx context.Context, userID string) (int64, error) {
	return 0, nil
}

func (n *notifierStub) Sent() []notifdomain.SendRequest {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notifdomain.SendRequest(nil), n.sent...)
}

func setupTicketService(t *testing.T, notifier notifdomain.Service) domain.Service {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	for _, ddl := range []string{
		`CREATE TABLE tickets (
			id VARCHAR(32) PRIMARY KEY,
			title VARCHAR(255) NOT NULL,
			description TEXT,
			category VARCHAR(16) NOT NULL,
			priority VARCHAR(16) NOT NULL,
			status VARCHAR(16) NOT NULL DEFAULT 'open',
			customer_id VARCHAR(32),
			created_by VARCHAR(32) NOT NULL,
			assigned_to VARCHAR(32),
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE ticket_comments (
			id VARCHAR(32) PRIMARY KEY,
			ticket_id VARCHAR(32) NOT NULL,
			author VARCHAR(32) NOT NULL,
			message TEXT NOT NULL,
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

	node, err := snowflake.NewNode(4)
	require.NoError(t, err)
	ttl, err := config.NewTTLPolicyHolder()
	require.NoError(t, err)

	return New(Params{
		DB:       db,
		Log:      zap.NewNop(),
		GenID:    node,
		Clock:    clk,
		Repo:     repository.Provide(),
		Notifier: notifier,
		Facade:   facade,
		TTL:      ttl,
	})
}

func TestCreateTicketDefaults(t *testing.T) {
	svc := setupTicketService(t, &notifierStub{})
	ctx := context.Background()

	ticket, err := svc.Create(ctx, domain.CreateTicketRequest{
		Title:     "No signal in zone 4",
		CreatedBy: "op-1",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryGeneral, ticket.Category)
	assert.Equal(t, domain.PriorityMedium, ticket.Priority)
	assert.Equal(t, domain.StatusOpen, ticket.Status)

	_, err = svc.Create(ctx, domain.CreateTicketRequest{CreatedBy: "op-1"})
	assert.ErrorIs(t, err, domain.ErrInvalidTitle)

	_, err = svc.Create(ctx, domain.CreateTicketRequest{
		Title:    "x",
		Category: domain.Category("bogus"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCategory)
}

func TestUpdateTicketAssignmentNotifies(t *testing.T) {
	notifier := &notifierStub{}
	svc := setupTicketService(t, notifier)
	ctx := context.Background()

	ticket, err := svc.Create(ctx, domain.CreateTicketRequest{
		Title:     "Port-in stuck",
		Category:  domain.CategoryTechnical,
		Priority:  domain.PriorityHigh,
		CreatedBy: "op-1",
	})
	require.NoError(t, err)

	assignee := "agent-7"
	updated, err := svc.Update(ctx, ticket.ID, domain.UpdateTicketRequest{AssignedTo: &assignee})
	require.NoError(t, err)
	assert.Equal(t, "agent-7", updated.AssignedTo)

	sent := notifier.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "agent-7", sent[0].UserID)

	// Re-assigning to the same agent is not a new assignment.
	_, err = svc.Update(ctx, ticket.ID, domain.UpdateTicketRequest{AssignedTo: &assignee})
	require.NoError(t, err)
	assert.Len(t, notifier.Sent(), 1)
}

func TestUpdateTicketSurvivesNotifierFailure(t *testing.T) {
	notifier := &notifierStub{err: fmt.Errorf("notifier down")}
	svc := setupTicketService(t, notifier)
	ctx := context.Background()

	ticket, err := svc.Create(ctx, domain.CreateTicketRequest{
		Title:     "Roaming dispute",
		CreatedBy: "op-1",
	})
	require.NoError(t, err)

	assignee := "agent-7"
	updated, err := svc.Update(ctx, ticket.ID, domain.UpdateTicketRequest{AssignedTo: &assignee})
	require.NoError(t, err, "a failed notification never fails the update")
	assert.Equal(t, "agent-7", updated.AssignedTo)
}

func TestUpdateTicketValidation(t *testing.T) {
	svc := setupTicketService(t, &notifierStub{})
	ctx := context.Background()

	ticket, err := svc.Create(ctx, domain.CreateTicketRequest{
		Title:     "Billing mismatch",
		CreatedBy: "op-1",
	})
	require.NoError(t, err)

	bad := domain.Status("archived")
	_, err = svc.Update(ctx, ticket.ID, domain.UpdateTicketRequest{Status: &bad})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)

	_, err = svc.Update(ctx, "ghost", domain.UpdateTicketRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAddCommentAppendsAndRefreshes(t *testing.T) {
	svc := setupTicketService(t, &notifierStub{})
	ctx := context.Background()

	ticket, err := svc.Create(ctx, domain.CreateTicketRequest{
		Title:     "APN misconfigured",
		CreatedBy: "op-1",
	})
	require.NoError(t, err)

	// Warm the entity cache before commenting.
	got, err := svc.GetByID(ctx, ticket.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Comments)

	comment, err := svc.AddComment(ctx, ticket.ID, domain.AddCommentRequest{
		Author:  "agent-7",
		Message: "pushed new APN profile",
	})
	require.NoError(t, err)
	assert.Equal(t, ticket.ID, comment.TicketID)

	got, err = svc.GetByID(ctx, ticket.ID)
	require.NoError(t, err)
	require.Len(t, got.Comments, 1)
	assert.Equal(t, "pushed new APN profile", got.Comments[0].Message)

	_, err = svc.AddComment(ctx, ticket.ID, domain.AddCommentRequest{Author: "agent-7"})
	assert.ErrorIs(t, err, domain.ErrInvalidComment)

	_, err = svc.AddComment(ctx, "ghost", domain.AddCommentRequest{Author: "a", Message: "m"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
