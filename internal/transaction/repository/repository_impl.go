package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/omvsuite/omvadmin/internal/transaction/domain"
	"github.com/omvsuite/omvadmin/pkg/db/pagination"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, txn *domain.Transaction) error {
	return db.WithContext(ctx).Create(txn).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id string) (*domain.Transaction, error) {
	var txn domain.Transaction
	if err := db.WithContext(ctx).Take(&txn, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &txn, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListTransactionFilter, page pagination.Pagination) ([]domain.Transaction, error) {
	stmt := db.WithContext(ctx).Model(&domain.Transaction{})
	if filter.Type != "" {
		stmt = stmt.Where("type = ?", filter.Type)
	}
	if filter.Status != "" {
		stmt = stmt.Where("status = ?", filter.Status)
	}
	if filter.CustomerID != "" {
		stmt = stmt.Where("customer_id = ?", filter.CustomerID)
	}
	if filter.OperatorID != "" {
		stmt = stmt.Where("operator_id = ?", filter.OperatorID)
	}
	if filter.From != nil {
		stmt = stmt.Where("created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		stmt = stmt.Where("created_at < ?", *filter.To)
	}

	var txns []domain.Transaction
	if err := page.Apply(stmt).
		Order("created_at desc, id desc").
		Find(&txns).Error; err != nil {
		return nil, err
	}
	return txns, nil
}

func (r *repo) ListByCustomer(ctx context.Context, db *gorm.DB, customerID string, limit int) ([]domain.Transaction, error) {
	stmt := db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at desc, id desc")
	if limit > 0 {
		stmt = stmt.Limit(limit)
	}

	var txns []domain.Transaction
	if err := stmt.Find(&txns).Error; err != nil {
		return nil, err
	}
	return txns, nil
}

func (r *repo) CountSince(ctx context.Context, db *gorm.DB, since time.Time) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&domain.Transaction{}).
		Where("created_at >= ?", since).
		Count(&count).Error
	return count, err
}

func (r *repo) SumCompletedSince(ctx context.Context, db *gorm.DB, since time.Time) (float64, error) {
	var total float64
	err := db.WithContext(ctx).
		Model(&domain.Transaction{}).
		Select("coalesce(sum(amount), 0)").
		Where("status = ? AND amount > 0 AND created_at >= ?", domain.StatusCompleted, since).
		Scan(&total).Error
	return total, err
}
