package domain

import (
	"context"
	"errors"

	"github.com/omvsuite/omvadmin/pkg/db/pagination"
)

type CreateUserRequest struct {
	Name        string
	Email       string
	Role        Role
	Permissions []string
	Department  string
	Supervisor  string
}

type ListUserRequest struct {
	pagination.Pagination
	Role     Role
	Email    string
	IsActive *bool
}

type UpdateUserRequest struct {
	ID string
	UpdateUserParams
}

type Service interface {
	Create(ctx context.Context, req CreateUserRequest) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	Permissions(ctx context.Context, id string) ([]string, error)
	List(ctx context.Context, req ListUserRequest) ([]User, error)
	Update(ctx context.Context, req UpdateUserRequest) (User, error)
	Delete(ctx context.Context, id string) error
}

var (
	ErrInvalidName  = errors.New("invalid_name")
	ErrInvalidEmail = errors.New("invalid_email")
	ErrInvalidRole  = errors.New("invalid_role")
	ErrInvalidID    = errors.New("invalid_id")
	ErrEmailTaken   = errors.New("email_taken")
	ErrNotFound     = errors.New("not_found")
)
