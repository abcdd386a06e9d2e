package domain

import "time"

type Status string

const (
	StatusAvailable Status = "available"
	StatusActive    Status = "active"
	StatusSuspended Status = "suspended"
	StatusInactive  Status = "inactive"
)

func (s Status) Valid() bool {
	switch s {
	case StatusAvailable, StatusActive, StatusSuspended, StatusInactive:
		return true
	default:
		return false
	}
}

// Sim is a card in inventory. ICCID and MSISDN are unique; customer/plan
// linkage only exists while the card is activated.
type Sim struct {
	ID             string     `gorm:"primaryKey" json:"id"`
	ICCID          string     `gorm:"column:iccid;not null;uniqueIndex" json:"iccid"`
	MSISDN         string     `gorm:"column:msisdn;not null;uniqueIndex" json:"msisdn"`
	Operator       string     `gorm:"not null" json:"operator"`
	Status         Status     `gorm:"not null;default:available;index" json:"status"`
	CustomerID     string     `gorm:"index" json:"customerId,omitempty"`
	PlanID         string     `json:"planId,omitempty"`
	WarehouseID    string     `gorm:"index" json:"warehouseId,omitempty"`
	ActivationDate *time.Time `json:"activationDate,omitempty"`
	ExpiryDate     *time.Time `json:"expiryDate,omitempty"`
	CreatedBy      string     `gorm:"not null" json:"createdBy"`
	CreatedAt      time.Time  `gorm:"not null" json:"createdAt"`
	UpdatedAt      time.Time  `gorm:"not null" json:"updatedAt"`
}
