package testutil

import (
	"net/http"
	"time"

	"teller/pkg/requestcontext"
)

// WithRequestTime pins the request-scoped clock on a request, giving tests
// deterministic ledger timestamps. The requesttime middleware leaves a
// pinned clock in place.
func WithRequestTime(req *http.Request, t time.Time) *http.Request {
	return req.WithContext(requestcontext.WithTime(req.Context(), t))
}
