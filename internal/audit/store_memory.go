package audit

import (
	"context"
	"sync"
)

// InMemoryStore keeps audit events in memory, globally ordered by append
// with a per-customer index for trail lookups.
type InMemoryStore struct {
	mu         sync.RWMutex
	events     []Event
	byCustomer map[string][]Event
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{byCustomer: make(map[string][]Event)}
}

func (s *InMemoryStore) Append(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	if event.CustomerID != "" {
		s.byCustomer[event.CustomerID] = append(s.byCustomer[event.CustomerID], event)
	}
	return nil
}

func (s *InMemoryStore) ListByCustomer(_ context.Context, customerID string) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Event{}, s.byCustomer[customerID]...), nil
}

// ListRecent returns the most recent limit events across all customers.
// Non-positive limits yield an empty slice.
func (s *InMemoryStore) ListRecent(_ context.Context, limit int) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if limit < 0 {
		limit = 0
	}
	start := len(s.events) - limit
	if start < 0 {
		start = 0
	}
	return append([]Event{}, s.events[start:]...), nil
}
