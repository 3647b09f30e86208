// Package store defines the customer registry's persistence boundary.
//
// Stores are interface-driven to keep the service testable and to allow
// swapping the in-memory implementation for an external one without
// rewiring business code.
//
// Error contract: store methods return sentinel errors
// (pkg/platform/sentinel), optionally wrapped — ErrConflict when the
// external ID is already registered, ErrNotFound when no customer matches.
// The service layer translates these facts into coded domain errors.
package store

import (
	"context"

	"teller/internal/ledger/models"
)

// CustomerStore is the registry of customers keyed by external ID.
type CustomerStore interface {
	// Create registers a new customer. It assigns the next sequence number
	// only after the uniqueness check passes, so failed attempts never
	// consume a sequence.
	Create(ctx context.Context, name, externalID string) (*models.Customer, error)

	// Find resolves an external ID to a customer. Exact, case-sensitive
	// match.
	Find(ctx context.Context, externalID string) (*models.Customer, error)

	// List returns all customers in creation order.
	List(ctx context.Context) ([]*models.Customer, error)
}
