package domain

import (
	"time"

	"gorm.io/datatypes"
)

type Type string

const (
	TypeActivation Type = "activation"
	TypeRecharge   Type = "recharge"
	TypeTransfer   Type = "transfer"
	TypeSuspension Type = "suspension"
)

func (t Type) Valid() bool {
	switch t {
	case TypeActivation, TypeRecharge, TypeTransfer, TypeSuspension:
		return true
	default:
		return false
	}
}

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Transaction is an immutable ledger entry. Transfers are recorded as two
// rows sharing a reference: a negative amount for the sender and a positive
// one for the recipient.
type Transaction struct {
	ID          string            `gorm:"primaryKey" json:"id"`
	Type        Type              `gorm:"not null;index" json:"type"`
	CustomerID  string            `gorm:"not null;index" json:"customerId"`
	SimID       string            `gorm:"index" json:"simId,omitempty"`
	Amount      float64           `gorm:"not null" json:"amount"`
	Commission  float64           `json:"commission"`
	Status      Status            `gorm:"not null;index" json:"status"`
	OperatorID  string            `gorm:"not null;index" json:"operatorId"`
	Reference   string            `gorm:"index" json:"reference,omitempty"`
	Description string            `json:"description,omitempty"`
	Metadata    datatypes.JSONMap `json:"metadata,omitempty"`
	CreatedAt   time.Time         `gorm:"not null;index" json:"createdAt"`
}
