package repository

import (
	"context"
	"time"

	"github.com/omvsuite/omvadmin/internal/customer/domain"
	"github.com/omvsuite/omvadmin/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, customer *domain.Customer) error {
	return db.WithContext(ctx).Create(customer).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id string) (*domain.Customer, error) {
	var customer domain.Customer
	err := db.WithContext(ctx).Where("id = ?", id).Take(&customer).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &customer, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListCustomerFilter, page pagination.Pagination) ([]*domain.Customer, error) {
	var customers []*domain.Customer
	stmt := db.WithContext(ctx).Model(&domain.Customer{})
	if filter.Email != "" {
		stmt = stmt.Where("email = ?", filter.Email)
	}
	if filter.Phone != "" {
		stmt = stmt.Where("phone = ?", filter.Phone)
	}
	if filter.Status != "" {
		stmt = stmt.Where("status = ?", filter.Status)
	}
	if filter.CreatedBy != "" {
		stmt = stmt.Where("created_by = ?", filter.CreatedBy)
	}
	err := page.Apply(stmt).
		Order("created_at desc, id desc").
		Find(&customers).Error
	if err != nil {
		return nil, err
	}
	return customers, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, id string, params domain.UpdateCustomerParams, now time.Time) (bool, error) {
	values := map[string]any{"updated_at": now}
	if params.Name != nil {
		values["name"] = *params.Name
	}
	if params.Email != nil {
		values["email"] = *params.Email
	}
	if params.Phone != nil {
		values["phone"] = *params.Phone
	}
	if params.Address != nil {
		values["address"] = *params.Address
	}
	if params.Status != nil {
		values["status"] = *params.Status
	}
	if params.Notes != nil {
		values["notes"] = *params.Notes
	}
	if params.LastActivity != nil {
		values["last_activity"] = *params.LastActivity
	}

	res := db.WithContext(ctx).Model(&domain.Customer{}).Where("id = ?", id).Updates(values)
	return res.RowsAffected > 0, res.Error
}

func (r *repo) AddSpent(ctx context.Context, db *gorm.DB, id string, amount float64, at time.Time) (bool, error) {
	res := db.WithContext(ctx).Model(&domain.Customer{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"total_spent":   gorm.Expr("total_spent + ?", amount),
			"last_activity": at,
			"updated_at":    at,
		})
	return res.RowsAffected > 0, res.Error
}
