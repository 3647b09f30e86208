// Package httpapi assembles the public HTTP surface: ledger endpoints,
// health, and Prometheus metrics behind the shared middleware chain.
package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"teller/internal/ledger/handler"
	"teller/pkg/platform/middleware/metadata"
	"teller/pkg/platform/middleware/requestid"
	"teller/pkg/platform/middleware/requesttime"
)

// NewRouter wires all public endpoints. Transport concerns stop here; the
// ledger handler delegates straight to the registry service.
func NewRouter(ledger *handler.Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(requestid.Middleware)
	r.Use(requesttime.Middleware)
	r.Use(metadata.ClientMetadata)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	ledger.Register(r)

	return r
}
