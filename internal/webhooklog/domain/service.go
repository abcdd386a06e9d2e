package domain

import (
	"context"
	"errors"
)

type RecordRequest struct {
	Endpoint     string         `json:"endpoint" binding:"required"`
	Event        string         `json:"event" binding:"required"`
	Method       string         `json:"method"`
	Status       Status         `json:"status"`
	StatusCode   int            `json:"statusCode"`
	ResponseTime int64          `json:"responseTimeMs"`
	Payload      map[string]any `json:"payload"`
	Response     string         `json:"response"`
	RetryCount   int            `json:"retryCount"`
}

type Service interface {
	Record(ctx context.Context, req RecordRequest) (*WebhookLog, error)
	ListByEndpoint(ctx context.Context, endpoint string) ([]WebhookLog, error)
}

var (
	ErrInvalidEndpoint = errors.New("invalid_endpoint")
	ErrInvalidEvent    = errors.New("invalid_event")
	ErrInvalidStatus   = errors.New("invalid_webhook_status")
)
