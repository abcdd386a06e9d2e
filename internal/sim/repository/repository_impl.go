package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/omvsuite/omvadmin/internal/sim/domain"
	"github.com/omvsuite/omvadmin/pkg/db/pagination"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, sim *domain.Sim) error {
	return db.WithContext(ctx).Create(sim).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id string) (*domain.Sim, error) {
	var sim domain.Sim
	if err := db.WithContext(ctx).Take(&sim, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sim, nil
}

func (r *repo) FindByICCID(ctx context.Context, db *gorm.DB, iccid string) (*domain.Sim, error) {
	var sim domain.Sim
	if err := db.WithContext(ctx).Take(&sim, "iccid = ?", iccid).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sim, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListSimFilter, page pagination.Pagination) ([]domain.Sim, error) {
	stmt := db.WithContext(ctx).Model(&domain.Sim{})
	if filter.Status != "" {
		stmt = stmt.Where("status = ?", filter.Status)
	}
	if filter.Operator != "" {
		stmt = stmt.Where("operator = ?", filter.Operator)
	}
	if filter.WarehouseID != "" {
		stmt = stmt.Where("warehouse_id = ?", filter.WarehouseID)
	}
	if filter.CustomerID != "" {
		stmt = stmt.Where("customer_id = ?", filter.CustomerID)
	}

	var sims []domain.Sim
	if err := page.Apply(stmt).
		Order("created_at desc, id desc").
		Find(&sims).Error; err != nil {
		return nil, err
	}
	return sims, nil
}

func (r *repo) ListByWarehouse(ctx context.Context, db *gorm.DB, warehouseID string) ([]domain.Sim, error) {
	var sims []domain.Sim
	if err := db.WithContext(ctx).
		Where("warehouse_id = ?", warehouseID).
		Order("created_at desc, id desc").
		Find(&sims).Error; err != nil {
		return nil, err
	}
	return sims, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, id string, params domain.UpdateSimParams) error {
	updates := map[string]interface{}{}
	if params.Operator != nil {
		updates["operator"] = *params.Operator
	}
	if params.Status != nil {
		updates["status"] = *params.Status
	}
	if params.CustomerID != nil {
		updates["customer_id"] = *params.CustomerID
	}
	if params.PlanID != nil {
		updates["plan_id"] = *params.PlanID
	}
	if params.WarehouseID != nil {
		updates["warehouse_id"] = *params.WarehouseID
	}
	if params.ActivationDate != nil {
		updates["activation_date"] = *params.ActivationDate
	}
	if params.ExpiryDate != nil {
		updates["expiry_date"] = *params.ExpiryDate
	}
	if len(updates) == 0 {
		return nil
	}
	return db.WithContext(ctx).
		Model(&domain.Sim{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id string) error {
	return db.WithContext(ctx).Delete(&domain.Sim{}, "id = ?", id).Error
}

func (r *repo) CountByStatus(ctx context.Context, db *gorm.DB) (map[domain.Status]int64, error) {
	var rows []struct {
		Status domain.Status
		Total  int64
	}
	if err := db.WithContext(ctx).
		Model(&domain.Sim{}).
		Select("status, count(*) as total").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	counts := make(map[domain.Status]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Total
	}
	return counts, nil
}
