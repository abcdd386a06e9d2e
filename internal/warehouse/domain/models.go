package domain

import "time"

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Warehouse tracks a physical SIM stock location. The counters are
// denormalized from the sims table and adjusted on activation flows.
type Warehouse struct {
	ID           string    `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	Location     string    `json:"location"`
	Manager      string    `json:"manager"`
	TotalSims    int64     `gorm:"not null;default:0" json:"totalSims"`
	AvailableSims int64    `gorm:"not null;default:0" json:"availableSims"`
	AssignedSims int64     `gorm:"not null;default:0" json:"assignedSims"`
	ReservedSims int64     `gorm:"not null;default:0" json:"reservedSims"`
	Status       Status    `gorm:"not null;default:active" json:"status"`
	CreatedAt    time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"not null" json:"updatedAt"`
}
