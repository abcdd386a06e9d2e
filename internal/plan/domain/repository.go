package domain

import (
	"context"

	"gorm.io/gorm"

	"github.com/omvsuite/omvadmin/pkg/db/pagination"
)

type ListPlanFilter struct {
	Type   Type   `form:"type"`
	Status Status `form:"status"`
}

type UpdatePlanParams struct {
	Name         *string
	DataMB       *int
	Minutes      *int
	SMS          *int
	ValidityDays *int
	BaseCost     *float64
	RetailPrice  *float64
	Status       *Status
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, plan *Plan) error
	FindByID(ctx context.Context, db *gorm.DB, id string) (*Plan, error)
	List(ctx context.Context, db *gorm.DB, filter ListPlanFilter, page pagination.Pagination) ([]Plan, error)
	Update(ctx context.Context, db *gorm.DB, id string, params UpdatePlanParams) error
}
