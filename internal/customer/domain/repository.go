package domain

import (
	"context"
	"time"

	"github.com/omvsuite/omvadmin/pkg/db/pagination"
	"gorm.io/gorm"
)

type ListCustomerFilter struct {
	Email     string
	Phone     string
	Status    Status
	CreatedBy string
}

// UpdateCustomerParams carries the mutable customer fields; nil means unchanged.
type UpdateCustomerParams struct {
	Name         *string
	Email        *string
	Phone        *string
	Address      *string
	Status       *Status
	Notes        *string
	LastActivity *time.Time
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, customer *Customer) error
	FindByID(ctx context.Context, db *gorm.DB, id string) (*Customer, error)
	List(ctx context.Context, db *gorm.DB, filter ListCustomerFilter, page pagination.Pagination) ([]*Customer, error)
	Update(ctx context.Context, db *gorm.DB, id string, params UpdateCustomerParams, now time.Time) (bool, error)
	AddSpent(ctx context.Context, db *gorm.DB, id string, amount float64, at time.Time) (bool, error)
}
