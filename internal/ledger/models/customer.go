package models

import (
	"regexp"
	"time"

	"github.com/asaskevich/govalidator"

	"teller/internal/ledger"
)

// accountNumberBase is added to a customer's sequence number to derive the
// account number, so account numbers start at 1001.
const accountNumberBase = 1000

// nameRe accepts space-separated words, each a capital letter followed by
// zero or more lowercase letters ("John", "Mary Ann"). Rejects lowercase
// first letters, digits, and irregular spacing.
var nameRe = regexp.MustCompile(`^([A-Z][a-z]*)( [A-Z][a-z]*)*$`)

// ValidateName checks the display-name format.
func ValidateName(name string) error {
	if !nameRe.MatchString(name) {
		return ledger.ErrInvalidName
	}
	return nil
}

// ValidateExternalID checks that the customer ID is non-empty ASCII
// letters and digits. Matching elsewhere is exact and case-sensitive.
func ValidateExternalID(externalID string) error {
	if externalID == "" || !govalidator.IsAlphanumeric(externalID) {
		return ledger.ErrInvalidID
	}
	return nil
}

// Customer is an immutable identity that exclusively owns exactly one
// Account for its entire lifetime. The account is created at construction
// time and never reassigned.
type Customer struct {
	ExternalID string
	Name       string
	Sequence   int64
	CreatedAt  time.Time

	account *Account
}

// NewCustomer validates the identity fields and creates the customer with
// its account. The account number is derived deterministically from the
// sequence number.
func NewCustomer(name, externalID string, sequence int64, now time.Time) (*Customer, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	if err := ValidateExternalID(externalID); err != nil {
		return nil, err
	}
	return &Customer{
		ExternalID: externalID,
		Name:       name,
		Sequence:   sequence,
		CreatedAt:  now,
		account:    NewAccount(sequence + accountNumberBase),
	}, nil
}

// Account returns the customer's account for mutation by the registry on
// the customer's behalf. Read-only callers should use Account().Snapshot().
func (c *Customer) Account() *Account { return c.account }

// AccountNumber returns the number of the owned account.
func (c *Customer) AccountNumber() int64 { return c.account.Number() }
