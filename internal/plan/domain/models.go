package domain

import "time"

type Type string

const (
	TypePrincipal     Type = "principal"
	TypeComplementary Type = "complementary"
)

func (t Type) Valid() bool {
	return t == TypePrincipal || t == TypeComplementary
}

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

type Plan struct {
	ID           string    `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	Type         Type      `gorm:"not null;index" json:"type"`
	DataMB       int       `gorm:"column:data_mb" json:"dataMb"`
	Minutes      int       `json:"minutes"`
	SMS          int       `gorm:"column:sms" json:"sms"`
	ValidityDays int       `json:"validityDays"`
	BaseCost     float64   `gorm:"not null" json:"baseCost"`
	RetailPrice  float64   `gorm:"not null" json:"retailPrice"`
	Status       Status    `gorm:"not null;default:active;index" json:"status"`
	CreatedAt    time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"not null" json:"updatedAt"`
}
