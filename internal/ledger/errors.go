// Package ledger defines the error kinds shared by the ledger's models,
// store, and service layers.
package ledger

import (
	dErrors "teller/pkg/domain-errors"
)

// Coded sentinels for every way a ledger operation can fail. Callers can
// branch with errors.Is against these values or with dErrors.HasCode; the
// HTTP layer maps the codes onto status codes.
var (
	// ErrInvalidAmount rejects deposits, withdrawals, and transfers of a
	// non-positive amount.
	ErrInvalidAmount = dErrors.New(dErrors.CodeValidation, "amount must be greater than zero")

	// ErrInsufficientFunds rejects withdrawals and transfers exceeding the
	// current balance. Distinct from ErrInvalidAmount so callers can tell a
	// malformed request from an overdraft attempt.
	ErrInsufficientFunds = dErrors.New(dErrors.CodeUnprocessable, "insufficient funds")

	// ErrSameAccount rejects transfers where source and target are the same
	// account.
	ErrSameAccount = dErrors.New(dErrors.CodeValidation, "cannot transfer to the same account")

	// ErrInvalidName rejects customer names that are not space-separated
	// capitalized words.
	ErrInvalidName = dErrors.New(dErrors.CodeValidation, "name must be space-separated capitalized words")

	// ErrInvalidID rejects customer IDs containing anything but ASCII
	// letters and digits.
	ErrInvalidID = dErrors.New(dErrors.CodeValidation, "customer id must be alphanumeric")

	// ErrDuplicateID rejects creation of a customer whose ID is already
	// registered.
	ErrDuplicateID = dErrors.New(dErrors.CodeConflict, "customer id already exists")

	// ErrCustomerNotFound reports that no customer matches the given ID.
	ErrCustomerNotFound = dErrors.New(dErrors.CodeNotFound, "customer not found")
)
