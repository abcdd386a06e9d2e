package domain

import (
	"context"
	"errors"

	"github.com/omvsuite/omvadmin/pkg/db/pagination"
)

type CreateCustomerRequest struct {
	Name      string
	Email     string
	Phone     string
	Address   string
	CreatedBy string
	Notes     string
}

type ListCustomerRequest struct {
	pagination.Pagination
	Email     string
	Phone     string
	Status    Status
	CreatedBy string
}

type UpdateCustomerRequest struct {
	ID string
	UpdateCustomerParams
}

type Service interface {
	Create(ctx context.Context, req CreateCustomerRequest) (Customer, error)
	GetByID(ctx context.Context, id string) (Customer, error)
	List(ctx context.Context, req ListCustomerRequest) ([]Customer, error)
	Update(ctx context.Context, req UpdateCustomerRequest) (Customer, error)
}

var (
	ErrInvalidName   = errors.New("invalid_name")
	ErrInvalidEmail  = errors.New("invalid_email")
	ErrInvalidPhone  = errors.New("invalid_phone")
	ErrInvalidStatus = errors.New("invalid_status")
	ErrInvalidID     = errors.New("invalid_id")
	ErrNotFound      = errors.New("not_found")
)
