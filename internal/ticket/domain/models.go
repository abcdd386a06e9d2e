package domain

import "time"

type Category string

const (
	CategoryTechnical  Category = "technical"
	CategoryCommercial Category = "commercial"
	CategoryBilling    Category = "billing"
	CategoryGeneral    Category = "general"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryTechnical, CategoryCommercial, CategoryBilling, CategoryGeneral:
		return true
	default:
		return false
	}
}

type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	default:
		return false
	}
}

type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusResolved   Status = "resolved"
	StatusClosed     Status = "closed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusResolved, StatusClosed:
		return true
	default:
		return false
	}
}

type Ticket struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description"`
	Category    Category  `gorm:"not null;index" json:"category"`
	Priority    Priority  `gorm:"not null;index" json:"priority"`
	Status      Status    `gorm:"not null;default:open;index" json:"status"`
	CustomerID  string    `gorm:"index" json:"customerId,omitempty"`
	CreatedBy   string    `gorm:"not null" json:"createdBy"`
	AssignedTo  string    `gorm:"index" json:"assignedTo,omitempty"`
	Comments    []Comment `gorm:"foreignKey:TicketID" json:"comments,omitempty"`
	CreatedAt   time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"not null" json:"updatedAt"`
}

// Comment is append-only; rows are never updated or deleted.
type Comment struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	TicketID  string    `gorm:"not null;index" json:"ticketId"`
	Author    string    `gorm:"not null" json:"author"`
	Message   string    `gorm:"not null" json:"message"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
}

func (Comment) TableName() string { return "ticket_comments" }
