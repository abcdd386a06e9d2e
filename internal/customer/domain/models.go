package domain

import "time"

type Status string

const (
	StatusActive    Status = "active"
	StatusSuspended Status = "suspended"
	StatusInactive  Status = "inactive"
)

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusSuspended, StatusInactive:
		return true
	default:
		return false
	}
}

// Customer is a subscriber record. TotalSpent is an accumulator adjusted by
// completed transactions; customers are status-flagged, never deleted.
type Customer struct {
	ID           string     `gorm:"primaryKey" json:"id"`
	Name         string     `gorm:"not null" json:"name"`
	Email        string     `gorm:"not null;index" json:"email"`
	Phone        string     `gorm:"not null;index" json:"phone"`
	Address      string     `json:"address,omitempty"`
	CreatedBy    string     `gorm:"not null;index" json:"createdBy"`
	Status       Status     `gorm:"not null;default:active;index" json:"status"`
	TotalSpent   float64    `gorm:"not null;default:0" json:"totalSpent"`
	LastActivity *time.Time `json:"lastActivity,omitempty"`
	Notes        string     `json:"notes,omitempty"`
	CreatedAt    time.Time  `gorm:"not null" json:"createdAt"`
	UpdatedAt    time.Time  `gorm:"not null" json:"updatedAt"`
}
