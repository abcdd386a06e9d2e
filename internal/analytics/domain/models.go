package domain

import (
	"time"

	"gorm.io/datatypes"

	simdomain "github.com/omvsuite/omvadmin/internal/sim/domain"
)

// Activity is a tracked user action, bucketed by calendar day for the
// grouped reports.
type Activity struct {
	ID        string            `gorm:"primaryKey" json:"id"`
	UserID    string            `gorm:"not null;index:idx_activities_user_day" json:"userId"`
	Activity  string            `gorm:"not null;index" json:"activity"`
	Metadata  datatypes.JSONMap `json:"metadata,omitempty"`
	Day       string            `gorm:"not null;index:idx_activities_user_day" json:"day"`
	CreatedAt time.Time         `gorm:"not null" json:"createdAt"`
}

func (Activity) TableName() string { return "activities" }

// DailyStat is one day of a user's activity count.
type DailyStat struct {
	Day   string `json:"day"`
	Count int64  `json:"count"`
}

// ActivityCount aggregates one activity type over a reporting window.
type ActivityCount struct {
	Activity string `json:"activity"`
	Count    int64  `json:"count"`
}

// SystemMetrics is the operational overview served by the reports endpoint.
type SystemMetrics struct {
	ActiveUsers       int64                       `json:"activeUsers"`
	TotalCustomers    int64                       `json:"totalCustomers"`
	ActiveCustomers   int64                       `json:"activeCustomers"`
	SimsByStatus      map[simdomain.Status]int64  `json:"simsByStatus"`
	TransactionsToday int64                       `json:"transactionsToday"`
	RevenueToday      float64                     `json:"revenueToday"`
	OpenTickets       int64                       `json:"openTickets"`
	GeneratedAt       time.Time                   `json:"generatedAt"`
}
