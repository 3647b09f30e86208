// Package requesttime provides middleware for request-scoped time.
// All operations within a single HTTP request use the same "now" timestamp,
// ensuring consistency across ledger entries, audit events, and logs.
package requesttime

import (
	"net/http"
	"time"

	"teller/pkg/requestcontext"
)

// Middleware captures the current time at the start of the request and
// stores it in the context for consistent time references throughout the
// request. A clock already pinned on the context (tests) is left in place.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if _, ok := requestcontext.Time(ctx); !ok {
			ctx = requestcontext.WithTime(ctx, time.Now())
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
