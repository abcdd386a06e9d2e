package domain

import (
	"context"
	"errors"
	"time"

	"github.com/omvsuite/omvadmin/pkg/db/pagination"
)

type CreateSimRequest struct {
	ICCID       string `json:"iccid" binding:"required"`
	MSISDN      string `json:"msisdn" binding:"required"`
	Operator    string `json:"operator" binding:"required"`
	WarehouseID string `json:"warehouseId"`
	CreatedBy   string `json:"createdBy"`
}

type UpdateSimRequest struct {
	Operator    *string `json:"operator"`
	Status      *Status `json:"status"`
	PlanID      *string `json:"planId"`
	WarehouseID *string `json:"warehouseId"`
}

type Service interface {
	Create(ctx context.Context, req CreateSimRequest) (*Sim, error)
	GetByID(ctx context.Context, id string) (*Sim, error)
	List(ctx context.Context, filter ListSimFilter, page pagination.Pagination) ([]Sim, error)
	ListByWarehouse(ctx context.Context, warehouseID string) ([]Sim, error)
	Update(ctx context.Context, id string, req UpdateSimRequest) (*Sim, error)
	Delete(ctx context.Context, id string) error

	// Activate binds the card to a customer and plan. The card must be
	// available. Suspend requires active, Release requires suspended or
	// inactive and clears the customer linkage.
	Activate(ctx context.Context, id, customerID, planID string, expiry *time.Time) (*Sim, error)
	Suspend(ctx context.Context, id string) (*Sim, error)
	Release(ctx context.Context, id string) (*Sim, error)
}

var (
	ErrInvalidICCID    = errors.New("invalid_iccid")
	ErrInvalidMSISDN   = errors.New("invalid_msisdn")
	ErrInvalidOperator = errors.New("invalid_operator")
	ErrInvalidStatus   = errors.New("invalid_status")
	ErrInvalidSimID    = errors.New("invalid_sim_id")
	ErrICCIDTaken      = errors.New("iccid_taken")
	ErrNotFound        = errors.New("sim_not_found")
	ErrNotAvailable    = errors.New("sim_not_available")
	ErrNotActive       = errors.New("sim_not_active")
	ErrNotSuspended    = errors.New("sim_not_suspended")
)
