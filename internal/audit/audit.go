// Package audit records ledger activity as an append-only trail, decoupled
// from the request path by a buffered channel and a background worker.
package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Action names the ledger operation an event describes.
type Action string

const (
	ActionCustomerCreated  Action = "customer_created"
	ActionDeposit          Action = "deposit"
	ActionWithdrawal       Action = "withdrawal"
	ActionTransferSent     Action = "transfer_sent"
	ActionTransferReceived Action = "transfer_received"
)

// Event is emitted from the ledger service to capture key actions. It is
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	ID            uuid.UUID
	Action        Action
	CustomerID    string
	AccountNumber int64
	Amount        decimal.Decimal
	// Counterparty is the other account's number for transfer events.
	Counterparty int64
	// RequestID correlates the event with HTTP request logs.
	RequestID string
	// ClientIP and UserAgent identify the caller, taken from the request
	// context when the metadata middleware ran.
	ClientIP   string
	UserAgent  string
	OccurredAt time.Time
}

// Store persists audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByCustomer(ctx context.Context, customerID string) ([]Event, error)
	ListRecent(ctx context.Context, limit int) ([]Event, error)
}
