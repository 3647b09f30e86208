// Package requestid assigns a correlation ID to every request so logs and
// audit events from one call can be tied together.
package requestid

import (
	"net/http"

	"github.com/google/uuid"

	"teller/pkg/requestcontext"
)

// Header is the response header carrying the request ID back to clients.
const Header = "X-Request-Id"

// Middleware reuses an inbound X-Request-Id when present, otherwise
// generates one, and stores it in the context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(Header)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(Header, requestID)
		ctx := requestcontext.WithRequestID(r.Context(), requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
