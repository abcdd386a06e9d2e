package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, activity *Activity) error
	UserDailyStats(ctx context.Context, db *gorm.DB, userID string, fromDay string) ([]DailyStat, error)
	GlobalActivityCounts(ctx context.Context, db *gorm.DB, fromDay string) ([]ActivityCount, error)
	CountActiveUsers(ctx context.Context, db *gorm.DB) (int64, error)
	CountCustomers(ctx context.Context, db *gorm.DB) (total int64, active int64, err error)
}
