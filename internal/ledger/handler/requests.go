package handler

import (
	"strings"

	"github.com/shopspring/decimal"

	"teller/internal/ledger"
	"teller/internal/ledger/models"
	dErrors "teller/pkg/domain-errors"
)

// CreateCustomerRequest is the HTTP request body for POST /customers.
type CreateCustomerRequest struct {
	Name       string `json:"name"`
	CustomerID string `json:"customer_id"`
}

// Validate validates and normalizes the request.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *CreateCustomerRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return dErrors.New(dErrors.CodeValidation, "name is required")
	}
	if err := models.ValidateName(r.Name); err != nil {
		return err
	}
	r.CustomerID = strings.TrimSpace(r.CustomerID)
	if r.CustomerID == "" {
		return dErrors.New(dErrors.CodeValidation, "customer_id is required")
	}
	return models.ValidateExternalID(r.CustomerID)
}

// AmountRequest is the HTTP request body for deposits and withdrawals.
type AmountRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

func (r *AmountRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if !r.Amount.IsPositive() {
		return ledger.ErrInvalidAmount
	}
	return nil
}

// TransferRequest is the HTTP request body for POST /transfers.
type TransferRequest struct {
	FromCustomerID string          `json:"from_customer_id"`
	ToCustomerID   string          `json:"to_customer_id"`
	Amount         decimal.Decimal `json:"amount"`
}

func (r *TransferRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	r.FromCustomerID = strings.TrimSpace(r.FromCustomerID)
	r.ToCustomerID = strings.TrimSpace(r.ToCustomerID)
	if r.FromCustomerID == "" {
		return dErrors.New(dErrors.CodeValidation, "from_customer_id is required")
	}
	if r.ToCustomerID == "" {
		return dErrors.New(dErrors.CodeValidation, "to_customer_id is required")
	}
	if r.FromCustomerID == r.ToCustomerID {
		return ledger.ErrSameAccount
	}
	if !r.Amount.IsPositive() {
		return ledger.ErrInvalidAmount
	}
	return nil
}
