package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, log *WebhookLog) error
	ListByEndpoint(ctx context.Context, db *gorm.DB, endpoint string, limit int) ([]WebhookLog, error)
}
