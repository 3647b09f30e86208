// Package memory provides the in-memory customer store. State lives for
// the lifetime of the process; there is no durable backend.
package memory

import (
	"context"
	"fmt"
	"sync"

	"teller/internal/ledger/models"
	"teller/pkg/platform/sentinel"
	"teller/pkg/requestcontext"
)

// InMemoryCustomerStore keeps customers in a map keyed by external ID plus
// an insertion-ordered slice for listing. A single RWMutex guards the
// ID-uniqueness and sequence-counter invariants; lookups take the read
// lock since they vastly outnumber creations.
type InMemoryCustomerStore struct {
	mu      sync.RWMutex
	byID    map[string]*models.Customer
	ordered []*models.Customer
	nextSeq int64
}

// New constructs an empty in-memory customer store. Sequence numbers start
// at 1.
func New() *InMemoryCustomerStore {
	return &InMemoryCustomerStore{
		byID:    make(map[string]*models.Customer),
		nextSeq: 1,
	}
}

// Create registers a customer under the write lock: duplicate check,
// sequence assignment, and append happen as one critical section.
// Sequence numbers are never reused; a failed attempt (duplicate ID or
// invalid fields) leaves the counter untouched.
func (s *InMemoryCustomerStore) Create(ctx context.Context, name, externalID string) (*models.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byID[externalID]; exists {
		return nil, fmt.Errorf("customer id %q: %w", externalID, sentinel.ErrConflict)
	}

	customer, err := models.NewCustomer(name, externalID, s.nextSeq, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}

	s.nextSeq++
	s.byID[externalID] = customer
	s.ordered = append(s.ordered, customer)
	return customer, nil
}

func (s *InMemoryCustomerStore) Find(_ context.Context, externalID string) (*models.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if customer, ok := s.byID[externalID]; ok {
		return customer, nil
	}
	return nil, fmt.Errorf("customer id %q: %w", externalID, sentinel.ErrNotFound)
}

func (s *InMemoryCustomerStore) List(_ context.Context) ([]*models.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Customer, len(s.ordered))
	copy(out, s.ordered)
	return out, nil
}
