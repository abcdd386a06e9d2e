package domain

import (
	"context"
	"errors"

	"github.com/omvsuite/omvadmin/pkg/db/pagination"
)

type CreateTicketRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	Category    Category `json:"category"`
	Priority    Priority `json:"priority"`
	CustomerID  string   `json:"customerId"`
	CreatedBy   string   `json:"createdBy"`
}

type UpdateTicketRequest struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Category    *Category `json:"category"`
	Priority    *Priority `json:"priority"`
	Status      *Status   `json:"status"`
	AssignedTo  *string   `json:"assignedTo"`
}

type AddCommentRequest struct {
	Author  string `json:"author" binding:"required"`
	Message string `json:"message" binding:"required"`
}

type Service interface {
	Create(ctx context.Context, req CreateTicketRequest) (*Ticket, error)
	GetByID(ctx context.Context, id string) (*Ticket, error)
	List(ctx context.Context, filter ListTicketFilter, page pagination.Pagination) ([]Ticket, error)
	Update(ctx context.Context, id string, req UpdateTicketRequest) (*Ticket, error)
	AddComment(ctx context.Context, ticketID string, req AddCommentRequest) (*Comment, error)
}

var (
	ErrInvalidTitle    = errors.New("invalid_ticket_title")
	ErrInvalidCategory = errors.New("invalid_ticket_category")
	ErrInvalidPriority = errors.New("invalid_ticket_priority")
	ErrInvalidStatus   = errors.New("invalid_ticket_status")
	ErrInvalidTicketID = errors.New("invalid_ticket_id")
	ErrInvalidComment  = errors.New("invalid_ticket_comment")
	ErrNotFound        = errors.New("ticket_not_found")
)
