package domain

import (
	"context"
	"errors"
)

type TrackRequest struct {
	UserID   string         `json:"userId" binding:"required"`
	Activity string         `json:"activity" binding:"required"`
	Metadata map[string]any `json:"metadata"`
}

type Service interface {
	Track(ctx context.Context, req TrackRequest) error
	UserDailyStats(ctx context.Context, userID string, days int) ([]DailyStat, error)
	GlobalActivity(ctx context.Context, days int) ([]ActivityCount, error)
	SystemMetrics(ctx context.Context) (*SystemMetrics, error)
}

var (
	ErrInvalidUserID   = errors.New("invalid_user_id")
	ErrInvalidActivity = errors.New("invalid_activity")
	ErrInvalidWindow   = errors.New("invalid_window")
)
