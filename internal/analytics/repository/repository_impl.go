package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/omvsuite/omvadmin/internal/analytics/domain"
	customerdomain "github.com/omvsuite/omvadmin/internal/customer/domain"
	userdomain "github.com/omvsuite/omvadmin/internal/user/domain"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, activity *domain.Activity) error {
	return db.WithContext(ctx).Create(activity).Error
}

func (r *repo) UserDailyStats(ctx context.Context, db *gorm.DB, userID string, fromDay string) ([]domain.DailyStat, error) {
	var stats []domain.DailyStat
	err := db.WithContext(ctx).
		Model(&domain.Activity{}).
		Select("day, count(*) as count").
		Where("user_id = ? AND day >= ?", userID, fromDay).
		Group("day").
		Order("day asc").
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func (r *repo) GlobalActivityCounts(ctx context.Context, db *gorm.DB, fromDay string) ([]domain.ActivityCount, error) {
	var counts []domain.ActivityCount
	err := db.WithContext(ctx).
		Model(&domain.Activity{}).
		Select("activity, count(*) as count").
		Where("day >= ?", fromDay).
		Group("activity").
		Order("count desc").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	return counts, nil
}

func (r *repo) CountActiveUsers(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&userdomain.User{}).
		Where("is_active = ?", true).
		Count(&count).Error
	return count, err
}

func (r *repo) CountCustomers(ctx context.Context, db *gorm.DB) (int64, int64, error) {
	var total, active int64
	if err := db.WithContext(ctx).
		Model(&customerdomain.Customer{}).
		Count(&total).Error; err != nil {
		return 0, 0, err
	}
	if err := db.WithContext(ctx).
		Model(&customerdomain.Customer{}).
		Where("status = ?", customerdomain.StatusActive).
		Count(&active).Error; err != nil {
		return 0, 0, err
	}
	return total, active, nil
}
