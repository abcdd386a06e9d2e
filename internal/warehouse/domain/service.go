package domain

import (
	"context"
	"errors"

	"github.com/omvsuite/omvadmin/pkg/db/pagination"
)

type CreateWarehouseRequest struct {
	Name     string `json:"name" binding:"required"`
	Location string `json:"location"`
	Manager  string `json:"manager"`
}

type UpdateWarehouseRequest struct {
	Name     *string `json:"name"`
	Location *string `json:"location"`
	Manager  *string `json:"manager"`
	Status   *Status `json:"status"`
}

type Service interface {
	Create(ctx context.Context, req CreateWarehouseRequest) (*Warehouse, error)
	GetByID(ctx context.Context, id string) (*Warehouse, error)
	List(ctx context.Context, filter ListWarehouseFilter, page pagination.Pagination) ([]Warehouse, error)
	Update(ctx context.Context, id string, req UpdateWarehouseRequest) (*Warehouse, error)
	AdjustCounters(ctx context.Context, id string, delta CounterDelta) error
}

var (
	ErrInvalidName        = errors.New("invalid_warehouse_name")
	ErrInvalidWarehouseID = errors.New("invalid_warehouse_id")
	ErrNotFound           = errors.New("warehouse_not_found")
)
