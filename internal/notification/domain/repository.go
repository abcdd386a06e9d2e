package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, n *Notification) error
	FindByID(ctx context.Context, db *gorm.DB, id string) (*Notification, error)
	ListByUser(ctx context.Context, db *gorm.DB, userID string, unreadOnly bool, limit int) ([]Notification, error)
	MarkRead(ctx context.Context, db *gorm.DB, id string, at time.Time) (bool, error)
	MarkAllRead(ctx context.Context, db *gorm.DB, userID string, at time.Time) (int64, error)
	CountUnread(ctx context.Context, db *gorm.DB, userID string) (int64, error)
}
