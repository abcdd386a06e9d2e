package domain

import (
	"context"

	"gorm.io/gorm"

	"github.com/omvsuite/omvadmin/pkg/db/pagination"
)

type ListWarehouseFilter struct {
	Status Status `form:"status"`
}

type UpdateWarehouseParams struct {
	Name     *string
	Location *string
	Manager  *string
	Status   *Status
}

// CounterDelta adjusts the denormalized stock counters atomically.
type CounterDelta struct {
	Total     int64
	Available int64
	Assigned  int64
	Reserved  int64
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, wh *Warehouse) error
	FindByID(ctx context.Context, db *gorm.DB, id string) (*Warehouse, error)
	List(ctx context.Context, db *gorm.DB, filter ListWarehouseFilter, page pagination.Pagination) ([]Warehouse, error)
	Update(ctx context.Context, db *gorm.DB, id string, params UpdateWarehouseParams) error
	AdjustCounters(ctx context.Context, db *gorm.DB, id string, delta CounterDelta) error
}
