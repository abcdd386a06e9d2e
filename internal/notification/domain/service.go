package domain

import (
	"context"
	"errors"
)

type SendRequest struct {
	UserID  string `json:"userId" binding:"required"`
	Title   string `json:"title" binding:"required"`
	Message string `json:"message"`
	Type    Type   `json:"type"`
}

type Service interface {
	Send(ctx context.Context, req SendRequest) (*Notification, error)
	ListByUser(ctx context.Context, userID string, unreadOnly bool) ([]Notification, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context, userID string) (int64, error)
	UnreadCount(ctx context.Context, userID string) (int64, error)
}

var (
	ErrInvalidUserID = errors.New("invalid_user_id")
	ErrInvalidTitle  = errors.New("invalid_title")
	ErrNotFound      = errors.New("notification_not_found")
)
