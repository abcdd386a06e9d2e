package domain

import (
	"context"
	"errors"

	"github.com/omvsuite/omvadmin/pkg/db/pagination"
)

type CreatePlanRequest struct {
	Name         string  `json:"name" binding:"required"`
	Type         Type    `json:"type" binding:"required"`
	DataMB       int     `json:"dataMb"`
	Minutes      int     `json:"minutes"`
	SMS          int     `json:"sms"`
	ValidityDays int     `json:"validityDays"`
	BaseCost     float64 `json:"baseCost"`
	RetailPrice  float64 `json:"retailPrice"`
}

type UpdatePlanRequest struct {
	Name         *string  `json:"name"`
	DataMB       *int     `json:"dataMb"`
	Minutes      *int     `json:"minutes"`
	SMS          *int     `json:"sms"`
	ValidityDays *int     `json:"validityDays"`
	BaseCost     *float64 `json:"baseCost"`
	RetailPrice  *float64 `json:"retailPrice"`
	Status       *Status  `json:"status"`
}

type Service interface {
	Create(ctx context.Context, req CreatePlanRequest) (*Plan, error)
	GetByID(ctx context.Context, id string) (*Plan, error)
	List(ctx context.Context, filter ListPlanFilter, page pagination.Pagination) ([]Plan, error)
	Update(ctx context.Context, id string, req UpdatePlanRequest) (*Plan, error)
}

var (
	ErrInvalidName   = errors.New("invalid_plan_name")
	ErrInvalidType   = errors.New("invalid_plan_type")
	ErrInvalidPrice  = errors.New("invalid_plan_price")
	ErrInvalidPlanID = errors.New("invalid_plan_id")
	ErrNotFound      = errors.New("plan_not_found")
)
