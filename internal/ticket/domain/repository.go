package domain

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/omvsuite/omvadmin/pkg/db/pagination"
)

type ListTicketFilter struct {
	Status     Status   `form:"status"`
	Category   Category `form:"category"`
	Priority   Priority `form:"priority"`
	CustomerID string   `form:"customerId"`
	AssignedTo string   `form:"assignedTo"`
}

type UpdateTicketParams struct {
	Title       *string
	Description *string
	Category    *Category
	Priority    *Priority
	Status      *Status
	AssignedTo  *string
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, ticket *Ticket) error
	FindByID(ctx context.Context, db *gorm.DB, id string) (*Ticket, error)
	List(ctx context.Context, db *gorm.DB, filter ListTicketFilter, page pagination.Pagination) ([]Ticket, error)
	Update(ctx context.Context, db *gorm.DB, id string, params UpdateTicketParams, now time.Time) (bool, error)
	AppendComment(ctx context.Context, db *gorm.DB, comment *Comment) error
	CountOpen(ctx context.Context, db *gorm.DB) (int64, error)
}
