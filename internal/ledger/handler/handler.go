// Package handler is the thin HTTP layer over the ledger service. It
// decodes and validates request bodies, delegates to the service, and maps
// results and errors onto JSON responses; no business logic lives here.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"teller/internal/audit"
	"teller/internal/ledger/models"
	"teller/internal/ledger/service"
	dErrors "teller/pkg/domain-errors"
	"teller/pkg/platform/httputil"
	"teller/pkg/requestcontext"
)

// Service defines the ledger operations the HTTP layer depends on.
type Service interface {
	CreateCustomer(ctx context.Context, name, externalID string) (*models.Customer, error)
	FindCustomer(ctx context.Context, externalID string) (*models.Customer, error)
	ListCustomers(ctx context.Context) ([]*models.Customer, error)
	ViewAccount(ctx context.Context, externalID string) (service.CustomerAccount, error)
	Transactions(ctx context.Context, externalID string) ([]models.Transaction, error)
	Deposit(ctx context.Context, externalID string, amount decimal.Decimal) (models.AccountView, error)
	Withdraw(ctx context.Context, externalID string, amount decimal.Decimal) (models.AccountView, error)
	Transfer(ctx context.Context, fromID, toID string, amount decimal.Decimal) (service.TransferResult, error)
}

// AuditLog is the read side of the audit trail.
type AuditLog interface {
	ListByCustomer(ctx context.Context, customerID string) ([]audit.Event, error)
	ListRecent(ctx context.Context, limit int) ([]audit.Event, error)
}

// Handler wires ledger endpoints to the registry service.
type Handler struct {
	service  Service
	auditLog AuditLog
	logger   *slog.Logger
}

// New constructs a ledger handler with its dependencies.
func New(service Service, auditLog AuditLog, logger *slog.Logger) *Handler {
	return &Handler{service: service, auditLog: auditLog, logger: logger}
}

// Register mounts ledger endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/customers", h.HandleCreateCustomer)
	r.Get("/customers", h.HandleListCustomers)
	r.Get("/customers/{customerID}", h.HandleViewAccount)
	r.Get("/customers/{customerID}/transactions", h.HandleTransactions)
	r.Get("/customers/{customerID}/audit", h.HandleAuditTrail)
	r.Get("/audit", h.HandleRecentAudit)
	r.Post("/customers/{customerID}/deposits", h.HandleDeposit)
	r.Post("/customers/{customerID}/withdrawals", h.HandleWithdraw)
	r.Post("/transfers", h.HandleTransfer)
}

// HandleCreateCustomer handles POST /customers.
func (h *Handler) HandleCreateCustomer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[CreateCustomerRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	customer, err := h.service.CreateCustomer(ctx, req.Name, req.CustomerID)
	if err != nil {
		h.logger.WarnContext(ctx, "customer creation failed",
			"request_id", requestID,
			"customer_id", req.CustomerID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, FromCustomer(customer))
}

// HandleListCustomers handles GET /customers.
func (h *Handler) HandleListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.service.ListCustomers(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromCustomers(customers))
}

// HandleViewAccount handles GET /customers/{customerID}.
func (h *Handler) HandleViewAccount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	view, err := h.service.ViewAccount(ctx, chi.URLParam(r, "customerID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromCustomerAccount(view))
}

// HandleTransactions handles GET /customers/{customerID}/transactions.
func (h *Handler) HandleTransactions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	history, err := h.service.Transactions(ctx, chi.URLParam(r, "customerID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	transactions := make([]TransactionResponse, len(history))
	for i, entry := range history {
		transactions[i] = TransactionResponse{
			Kind:                string(entry.Kind),
			Amount:              entry.Amount,
			CounterpartyAccount: entry.Counterparty,
			OccurredAt:          entry.OccurredAt,
		}
	}
	httputil.WriteJSON(w, http.StatusOK, transactions)
}

// HandleAuditTrail handles GET /customers/{customerID}/audit.
func (h *Handler) HandleAuditTrail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	customerID := chi.URLParam(r, "customerID")

	// Resolve first so an unknown customer is a 404, not an empty trail.
	if _, err := h.service.FindCustomer(ctx, customerID); err != nil {
		httputil.WriteError(w, err)
		return
	}

	events, err := h.auditLog.ListByCustomer(ctx, customerID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromAuditEvents(events))
}

// defaultRecentAuditLimit caps GET /audit responses when the caller does
// not ask for a specific window.
const defaultRecentAuditLimit = 50

// HandleRecentAudit handles GET /audit, returning the most recent events
// across all customers.
func (h *Handler) HandleRecentAudit(w http.ResponseWriter, r *http.Request) {
	limit := defaultRecentAuditLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "limit must be a positive integer"))
			return
		}
		limit = n
	}

	events, err := h.auditLog.ListRecent(r.Context(), limit)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromAuditEvents(events))
}

// HandleDeposit handles POST /customers/{customerID}/deposits.
func (h *Handler) HandleDeposit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	customerID := chi.URLParam(r, "customerID")

	req, ok := httputil.DecodeAndPrepare[AmountRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	view, err := h.service.Deposit(ctx, customerID, req.Amount)
	if err != nil {
		h.logger.WarnContext(ctx, "deposit failed",
			"request_id", requestID,
			"customer_id", customerID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, FromBalance(view))
}

// HandleWithdraw handles POST /customers/{customerID}/withdrawals.
func (h *Handler) HandleWithdraw(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	customerID := chi.URLParam(r, "customerID")

	req, ok := httputil.DecodeAndPrepare[AmountRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	view, err := h.service.Withdraw(ctx, customerID, req.Amount)
	if err != nil {
		h.logger.WarnContext(ctx, "withdrawal failed",
			"request_id", requestID,
			"customer_id", customerID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, FromBalance(view))
}

// HandleTransfer handles POST /transfers.
func (h *Handler) HandleTransfer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[TransferRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.service.Transfer(ctx, req.FromCustomerID, req.ToCustomerID, req.Amount)
	if err != nil {
		h.logger.WarnContext(ctx, "transfer failed",
			"request_id", requestID,
			"from_customer_id", req.FromCustomerID,
			"to_customer_id", req.ToCustomerID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, FromTransferResult(result))
}
