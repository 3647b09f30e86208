package audit

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// Publisher hands events to the worker through a buffered channel without
// blocking the request path. When the buffer is full the event is dropped
// and logged; ledger operations never fail because of audit pressure.
type Publisher struct {
	inbox  chan Event
	logger *slog.Logger
}

func NewPublisher(bufferSize int, logger *slog.Logger) *Publisher {
	return &Publisher{
		inbox:  make(chan Event, bufferSize),
		logger: logger,
	}
}

// Emit enqueues the event, assigning an ID when the caller left it zero.
func (p *Publisher) Emit(ctx context.Context, event Event) {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	select {
	case p.inbox <- event:
	default:
		p.logger.WarnContext(ctx, "audit buffer full, dropping event",
			"action", event.Action,
			"customer_id", event.CustomerID,
		)
	}
}

// Events exposes the inbox for the worker.
func (p *Publisher) Events() <-chan Event { return p.inbox }
