package domain

import (
	"context"
	"errors"
	"time"

	"github.com/omvsuite/omvadmin/pkg/db/pagination"
)

type ActivationRequest struct {
	CustomerID  string     `json:"customerId" binding:"required"`
	SimID       string     `json:"simId" binding:"required"`
	PlanID      string     `json:"planId" binding:"required"`
	Amount      float64    `json:"amount"`
	Commission  float64    `json:"commission"`
	OperatorID  string     `json:"operatorId"`
	Description string     `json:"description"`
	Expiry      *time.Time `json:"expiry"`
}

type RechargeRequest struct {
	CustomerID  string  `json:"customerId" binding:"required"`
	SimID       string  `json:"simId"`
	Amount      float64 `json:"amount" binding:"required"`
	Commission  float64 `json:"commission"`
	OperatorID  string  `json:"operatorId"`
	Reference   string  `json:"reference"`
	Description string  `json:"description"`
}

type TransferRequest struct {
	FromCustomerID string  `json:"fromCustomerId" binding:"required"`
	ToCustomerID   string  `json:"toCustomerId" binding:"required"`
	Amount         float64 `json:"amount" binding:"required"`
	OperatorID     string  `json:"operatorId"`
	Reference      string  `json:"reference"`
	Description    string  `json:"description"`
}

type SuspendRequest struct {
	CustomerID string `json:"customerId" binding:"required"`
	SimID      string `json:"simId" binding:"required"`
	OperatorID string `json:"operatorId"`
	Reason     string `json:"reason"`
}

// TransferResult pairs the double-entry rows a transfer produces.
type TransferResult struct {
	Debit  *Transaction `json:"debit"`
	Credit *Transaction `json:"credit"`
}

type Service interface {
	GetByID(ctx context.Context, id string) (*Transaction, error)
	List(ctx context.Context, filter ListTransactionFilter, page pagination.Pagination) ([]Transaction, error)
	History(ctx context.Context, customerID string) ([]Transaction, error)

	Activate(ctx context.Context, req ActivationRequest) (*Transaction, error)
	Recharge(ctx context.Context, req RechargeRequest) (*Transaction, error)
	Transfer(ctx context.Context, req TransferRequest) (*TransferResult, error)
	Suspend(ctx context.Context, req SuspendRequest) (*Transaction, error)
}

var (
	ErrInvalidAmount        = errors.New("invalid_amount")
	ErrInvalidCustomerID    = errors.New("invalid_customer_id")
	ErrInvalidTransactionID = errors.New("invalid_transaction_id")
	ErrSameCustomer         = errors.New("transfer_same_customer")
	ErrNotFound             = errors.New("transaction_not_found")
	ErrCustomerNotFound     = errors.New("customer_not_found")
	ErrSimNotFound          = errors.New("sim_not_found")
	ErrSimNotAvailable      = errors.New("sim_not_available")
	ErrSimNotActive         = errors.New("sim_not_active")
)
