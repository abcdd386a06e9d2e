package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/omvsuite/omvadmin/internal/plan/domain"
	"github.com/omvsuite/omvadmin/pkg/db/pagination"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, plan *domain.Plan) error {
	return db.WithContext(ctx).Create(plan).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id string) (*domain.Plan, error) {
	var plan domain.Plan
	if err := db.WithContext(ctx).Take(&plan, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &plan, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListPlanFilter, page pagination.Pagination) ([]domain.Plan, error) {
	stmt := db.WithContext(ctx).Model(&domain.Plan{})
	if filter.Type != "" {
		stmt = stmt.Where("type = ?", filter.Type)
	}
	if filter.Status != "" {
		stmt = stmt.Where("status = ?", filter.Status)
	}

	var plans []domain.Plan
	if err := page.Apply(stmt).
		Order("created_at desc, id desc").
		Find(&plans).Error; err != nil {
		return nil, err
	}
	return plans, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, id string, params domain.UpdatePlanParams) error {
	updates := map[string]interface{}{}
	if params.Name != nil {
		updates["name"] = *params.Name
	}
	if params.DataMB != nil {
		updates["data_mb"] = *params.DataMB
	}
	if params.Minutes != nil {
		updates["minutes"] = *params.Minutes
	}
	if params.SMS != nil {
		updates["sms"] = *params.SMS
	}
	if params.ValidityDays != nil {
		updates["validity_days"] = *params.ValidityDays
	}
	if params.BaseCost != nil {
		updates["base_cost"] = *params.BaseCost
	}
	if params.RetailPrice != nil {
		updates["retail_price"] = *params.RetailPrice
	}
	if params.Status != nil {
		updates["status"] = *params.Status
	}
	if len(updates) == 0 {
		return nil
	}
	return db.WithContext(ctx).
		Model(&domain.Plan{}).
		Where("id = ?", id).
		Updates(updates).Error
}
