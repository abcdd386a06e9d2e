package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/omvsuite/omvadmin/internal/webhooklog/domain"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, log *domain.WebhookLog) error {
	return db.WithContext(ctx).Create(log).Error
}

func (r *repo) ListByEndpoint(ctx context.Context, db *gorm.DB, endpoint string, limit int) ([]domain.WebhookLog, error) {
	stmt := db.WithContext(ctx).
		Where("endpoint = ?", endpoint).
		Order("created_at desc, id desc")
	if limit > 0 {
		stmt = stmt.Limit(limit)
	}

	var logs []domain.WebhookLog
	if err := stmt.Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}
