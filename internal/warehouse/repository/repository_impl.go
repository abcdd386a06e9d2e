package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/omvsuite/omvadmin/internal/warehouse/domain"
	"github.com/omvsuite/omvadmin/pkg/db/pagination"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, wh *domain.Warehouse) error {
	return db.WithContext(ctx).Create(wh).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id string) (*domain.Warehouse, error) {
	var wh domain.Warehouse
	if err := db.WithContext(ctx).Take(&wh, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &wh, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListWarehouseFilter, page pagination.Pagination) ([]domain.Warehouse, error) {
	stmt := db.WithContext(ctx).Model(&domain.Warehouse{})
	if filter.Status != "" {
		stmt = stmt.Where("status = ?", filter.Status)
	}

	var whs []domain.Warehouse
	if err := page.Apply(stmt).
		Order("created_at desc, id desc").
		Find(&whs).Error; err != nil {
		return nil, err
	}
	return whs, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, id string, params domain.UpdateWarehouseParams) error {
	updates := map[string]interface{}{}
	if params.Name != nil {
		updates["name"] = *params.Name
	}
	if params.Location != nil {
		updates["location"] = *params.Location
	}
	if params.Manager != nil {
		updates["manager"] = *params.Manager
	}
	if params.Status != nil {
		updates["status"] = *params.Status
	}
	if len(updates) == 0 {
		return nil
	}
	return db.WithContext(ctx).
		Model(&domain.Warehouse{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repo) AdjustCounters(ctx context.Context, db *gorm.DB, id string, delta domain.CounterDelta) error {
	updates := map[string]interface{}{}
	if delta.Total != 0 {
		updates["total_sims"] = gorm.Expr("total_sims + ?", delta.Total)
	}
	if delta.Available != 0 {
		updates["available_sims"] = gorm.Expr("available_sims + ?", delta.Available)
	}
	if delta.Assigned != 0 {
		updates["assigned_sims"] = gorm.Expr("assigned_sims + ?", delta.Assigned)
	}
	if delta.Reserved != 0 {
		updates["reserved_sims"] = gorm.Expr("reserved_sims + ?", delta.Reserved)
	}
	if len(updates) == 0 {
		return nil
	}
	return db.WithContext(ctx).
		Model(&domain.Warehouse{}).
		Where("id = ?", id).
		Updates(updates).Error
}
