package domain

import (
	"context"
	"time"

	"github.com/omvsuite/omvadmin/pkg/db/pagination"
	"gorm.io/gorm"
)

type ListUserFilter struct {
	Role     Role
	Email    string
	IsActive *bool
}

// UpdateUserParams carries the mutable user fields; nil means unchanged.
type UpdateUserParams struct {
	Name        *string
	Role        *Role
	Permissions []string
	Department  *string
	Supervisor  *string
	Avatar      *string
	IsActive    *bool
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, user *User) error
	FindByID(ctx context.Context, db *gorm.DB, id string) (*User, error)
	FindByEmail(ctx context.Context, db *gorm.DB, email string) (*User, error)
	List(ctx context.Context, db *gorm.DB, filter ListUserFilter, page pagination.Pagination) ([]*User, error)
	Update(ctx context.Context, db *gorm.DB, id string, params UpdateUserParams, now time.Time) (bool, error)
	Delete(ctx context.Context, db *gorm.DB, id string) (bool, error)
	TouchLastLogin(ctx context.Context, db *gorm.DB, id string, now time.Time) error
}
