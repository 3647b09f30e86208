package audit

import (
	"context"
)

// Worker consumes audit events from a channel and persists them. It keeps
// background processing testable without wiring a queue implementation.
type Worker struct {
	store Store
	inbox <-chan Event
}

func NewWorker(store Store, inbox <-chan Event) *Worker {
	return &Worker{store: store, inbox: inbox}
}

// Run processes events until the context is cancelled, then drains whatever
// is already buffered before returning so shutdown does not lose the tail.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.drain()
			return ctx.Err()
		case event := <-w.inbox:
			if err := w.store.Append(ctx, event); err != nil {
				return err
			}
		}
	}
}

func (w *Worker) drain() {
	for {
		select {
		case event := <-w.inbox:
			// Context is gone; append with a background context so the
			// tail still lands in the store.
			_ = w.store.Append(context.Background(), event)
		default:
			return
		}
	}
}
