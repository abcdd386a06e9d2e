package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Role is one of the six dashboard roles. The role picks the default
// permission set at creation time.
type Role string

const (
	RoleSuperadmin     Role = "superadmin"
	RoleAdmin          Role = "admin"
	RoleGerente        Role = "gerente"
	RoleOperator       Role = "operator"
	RoleSubdistributor Role = "subdistributor"
	RoleVendor         Role = "vendor"
)

func (r Role) Valid() bool {
	switch r {
	case RoleSuperadmin, RoleAdmin, RoleGerente, RoleOperator, RoleSubdistributor, RoleVendor:
		return true
	default:
		return false
	}
}

// DefaultPermissions returns the permission set a role starts with.
func DefaultPermissions(role Role) []string {
	switch role {
	case RoleSuperadmin:
		return []string{"*"}
	case RoleAdmin:
		return []string{"users.read", "users.write", "customers.read", "customers.write", "sims.read", "sims.write", "transactions.read", "transactions.write", "tickets.read", "tickets.write", "reports.read"}
	case RoleGerente:
		return []string{"customers.read", "customers.write", "sims.read", "transactions.read", "tickets.read", "tickets.write", "reports.read"}
	case RoleOperator:
		return []string{"customers.read", "customers.write", "sims.read", "sims.write", "transactions.read", "transactions.write", "tickets.read", "tickets.write"}
	case RoleSubdistributor:
		return []string{"customers.read", "sims.read", "transactions.read"}
	case RoleVendor:
		return []string{"customers.read", "transactions.read"}
	default:
		return nil
	}
}

type User struct {
	ID          string                       `gorm:"primaryKey" json:"id"`
	Name        string                       `gorm:"not null" json:"name"`
	Email       string                       `gorm:"not null;uniqueIndex" json:"email"`
	Role        Role                         `gorm:"not null" json:"role"`
	Permissions datatypes.JSONSlice[string]  `gorm:"not null" json:"permissions"`
	Department  string                       `json:"department,omitempty"`
	Supervisor  string                       `json:"supervisor,omitempty"`
	Avatar      string                       `json:"avatar,omitempty"`
	IsActive    bool                         `gorm:"not null;default:true" json:"isActive"`
	LastLogin   *time.Time                   `json:"lastLogin,omitempty"`
	CreatedAt   time.Time                    `gorm:"not null" json:"createdAt"`
	UpdatedAt   time.Time                    `gorm:"not null" json:"updatedAt"`
}
