package domain

import (
	"time"

	"gorm.io/datatypes"
)

type Status string

const (
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
	StatusPending Status = "pending"
	StatusTimeout Status = "timeout"
)

func (s Status) Valid() bool {
	switch s {
	case StatusSuccess, StatusFailed, StatusPending, StatusTimeout:
		return true
	default:
		return false
	}
}

// WebhookLog records one outbound delivery attempt against a partner endpoint.
type WebhookLog struct {
	ID           string            `gorm:"primaryKey" json:"id"`
	Endpoint     string            `gorm:"not null;index" json:"endpoint"`
	Event        string            `gorm:"not null" json:"event"`
	Method       string            `gorm:"not null" json:"method"`
	Status       Status            `gorm:"not null;index" json:"status"`
	StatusCode   int               `json:"statusCode"`
	ResponseTime int64             `json:"responseTimeMs"`
	Payload      datatypes.JSONMap `json:"payload,omitempty"`
	Response     string            `json:"response,omitempty"`
	RetryCount   int               `gorm:"not null;default:0" json:"retryCount"`
	CreatedAt    time.Time         `gorm:"not null;index" json:"createdAt"`
}

func (WebhookLog) TableName() string { return "webhook_logs" }
