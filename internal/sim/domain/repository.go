package domain

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/omvsuite/omvadmin/pkg/db/pagination"
)

type ListSimFilter struct {
	Status      Status `form:"status"`
	Operator    string `form:"operator"`
	WarehouseID string `form:"warehouseId"`
	CustomerID  string `form:"customerId"`
}

type UpdateSimParams struct {
	Operator       *string
	Status         *Status
	CustomerID     *string
	PlanID         *string
	WarehouseID    *string
	ActivationDate *time.Time
	ExpiryDate     *time.Time
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, sim *Sim) error
	FindByID(ctx context.Context, db *gorm.DB, id string) (*Sim, error)
	FindByICCID(ctx context.Context, db *gorm.DB, iccid string) (*Sim, error)
	List(ctx context.Context, db *gorm.DB, filter ListSimFilter, page pagination.Pagination) ([]Sim, error)
	ListByWarehouse(ctx context.Context, db *gorm.DB, warehouseID string) ([]Sim, error)
	Update(ctx context.Context, db *gorm.DB, id string, params UpdateSimParams) error
	Delete(ctx context.Context, db *gorm.DB, id string) error
	CountByStatus(ctx context.Context, db *gorm.DB) (map[Status]int64, error)
}
