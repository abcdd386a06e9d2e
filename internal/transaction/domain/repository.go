package domain

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/omvsuite/omvadmin/pkg/db/pagination"
)

type ListTransactionFilter struct {
	Type       Type   `form:"type"`
	Status     Status `form:"status"`
	CustomerID string `form:"customerId"`
	OperatorID string `form:"operatorId"`
	From       *time.Time
	To         *time.Time
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, txn *Transaction) error
	FindByID(ctx context.Context, db *gorm.DB, id string) (*Transaction, error)
	List(ctx context.Context, db *gorm.DB, filter ListTransactionFilter, page pagination.Pagination) ([]Transaction, error)
	ListByCustomer(ctx context.Context, db *gorm.DB, customerID string, limit int) ([]Transaction, error)
	CountSince(ctx context.Context, db *gorm.DB, since time.Time) (int64, error)
	SumCompletedSince(ctx context.Context, db *gorm.DB, since time.Time) (float64, error)
}
