// Package service implements the customer registry: the sole entry point
// through which external callers reach accounts. It validates inputs,
// resolves external IDs to customers, and delegates balance mutations to
// the customer's account.
package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"teller/internal/audit"
	"teller/internal/ledger"
	ledgermetrics "teller/internal/ledger/metrics"
	"teller/internal/ledger/models"
	"teller/internal/ledger/store"
	dErrors "teller/pkg/domain-errors"
	"teller/pkg/platform/sentinel"
	"teller/pkg/requestcontext"
)

var tracer = otel.Tracer("teller/internal/ledger/service")

// AuditEmitter receives audit events for completed ledger actions.
type AuditEmitter interface {
	Emit(ctx context.Context, event audit.Event)
}

// Service orchestrates ledger operations over the customer store. It does
// not itself touch balances; it looks up the customer and delegates to its
// account.
type Service struct {
	customers store.CustomerStore
	logger    *slog.Logger
	metrics   *ledgermetrics.Metrics
	audit     AuditEmitter
}

type serviceConfig struct {
	logger  *slog.Logger
	metrics *ledgermetrics.Metrics
	audit   AuditEmitter
}

// Option configures optional service dependencies.
type Option func(*serviceConfig)

func WithLogger(logger *slog.Logger) Option {
	return func(cfg *serviceConfig) { cfg.logger = logger }
}

func WithMetrics(m *ledgermetrics.Metrics) Option {
	return func(cfg *serviceConfig) { cfg.metrics = m }
}

func WithAudit(emitter AuditEmitter) Option {
	return func(cfg *serviceConfig) { cfg.audit = emitter }
}

// New constructs the registry service.
func New(customers store.CustomerStore, opts ...Option) *Service {
	cfg := &serviceConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{
		customers: customers,
		logger:    cfg.logger,
		metrics:   cfg.metrics,
		audit:     cfg.audit,
	}
}

// CustomerAccount pairs a customer's identity with a consistent view of
// its account.
type CustomerAccount struct {
	Customer *models.Customer
	Account  models.AccountView
}

// TransferResult carries both post-transfer account views.
type TransferResult struct {
	From models.AccountView
	To   models.AccountView
}

// CreateCustomer validates the identity fields and registers the customer
// with a fresh account. Fails with ErrInvalidName, ErrInvalidID, or
// ErrDuplicateID; failed attempts never consume a sequence number.
func (s *Service) CreateCustomer(ctx context.Context, name, externalID string) (*models.Customer, error) {
	ctx, span := tracer.Start(ctx, "ledger.CreateCustomer")
	defer span.End()

	name = strings.TrimSpace(name)
	externalID = strings.TrimSpace(externalID)
	if err := models.ValidateName(name); err != nil {
		return nil, err
	}
	if err := models.ValidateExternalID(externalID); err != nil {
		return nil, err
	}

	customer, err := s.customers.Create(ctx, name, externalID)
	if err != nil {
		span.RecordError(err)
		s.countError("create_customer")
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, ledger.ErrDuplicateID
		}
		if dErrors.HasCode(err, dErrors.CodeValidation) {
			return nil, err
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create customer")
	}

	if s.metrics != nil {
		s.metrics.IncrementCustomersCreated()
	}
	s.emit(ctx, audit.Event{
		Action:        audit.ActionCustomerCreated,
		CustomerID:    customer.ExternalID,
		AccountNumber: customer.AccountNumber(),
		OccurredAt:    customer.CreatedAt,
	})
	s.logger.InfoContext(ctx, "customer created",
		"request_id", requestcontext.RequestID(ctx),
		"customer_id", customer.ExternalID,
		"sequence", customer.Sequence,
		"account_number", customer.AccountNumber(),
	)
	return customer, nil
}

// FindCustomer resolves an external ID. Exact, case-sensitive match; fails
// with ErrCustomerNotFound.
func (s *Service) FindCustomer(ctx context.Context, externalID string) (*models.Customer, error) {
	return s.resolve(ctx, externalID)
}

// ListCustomers returns all customers in creation order.
func (s *Service) ListCustomers(ctx context.Context) ([]*models.Customer, error) {
	customers, err := s.customers.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list customers")
	}
	return customers, nil
}

// ViewAccount returns the customer's identity with a consistent snapshot
// of balance and full ordered history.
func (s *Service) ViewAccount(ctx context.Context, externalID string) (CustomerAccount, error) {
	customer, err := s.resolve(ctx, externalID)
	if err != nil {
		return CustomerAccount{}, err
	}
	return CustomerAccount{Customer: customer, Account: customer.Account().Snapshot()}, nil
}

// Transactions returns the full ordered history for the customer's account.
func (s *Service) Transactions(ctx context.Context, externalID string) ([]models.Transaction, error) {
	customer, err := s.resolve(ctx, externalID)
	if err != nil {
		return nil, err
	}
	return customer.Account().Snapshot().History, nil
}

// Deposit credits the customer's account and returns the updated view.
func (s *Service) Deposit(ctx context.Context, externalID string, amount decimal.Decimal) (models.AccountView, error) {
	ctx, span := tracer.Start(ctx, "ledger.Deposit",
		trace.WithAttributes(attribute.String("customer_id", externalID)))
	defer span.End()
	start := time.Now()

	customer, err := s.resolve(ctx, externalID)
	if err != nil {
		s.countError("deposit")
		return models.AccountView{}, err
	}

	now := requestcontext.Now(ctx)
	if err := customer.Account().Deposit(amount, now); err != nil {
		span.RecordError(err)
		s.countError("deposit")
		return models.AccountView{}, err
	}

	if s.metrics != nil {
		s.metrics.IncrementDeposits()
		s.metrics.ObserveMutation(start)
	}
	s.emit(ctx, audit.Event{
		Action:        audit.ActionDeposit,
		CustomerID:    customer.ExternalID,
		AccountNumber: customer.AccountNumber(),
		Amount:        amount,
		OccurredAt:    now,
	})
	view := customer.Account().Snapshot()
	s.logger.InfoContext(ctx, "deposit applied",
		"request_id", requestcontext.RequestID(ctx),
		"customer_id", customer.ExternalID,
		"amount", amount.String(),
		"balance", view.Balance.String(),
	)
	return view, nil
}

// Withdraw debits the customer's account and returns the updated view.
func (s *Service) Withdraw(ctx context.Context, externalID string, amount decimal.Decimal) (models.AccountView, error) {
	ctx, span := tracer.Start(ctx, "ledger.Withdraw",
		trace.WithAttributes(attribute.String("customer_id", externalID)))
	defer span.End()
	start := time.Now()

	customer, err := s.resolve(ctx, externalID)
	if err != nil {
		s.countError("withdraw")
		return models.AccountView{}, err
	}

	now := requestcontext.Now(ctx)
	if err := customer.Account().Withdraw(amount, now); err != nil {
		span.RecordError(err)
		s.countError("withdraw")
		return models.AccountView{}, err
	}

	if s.metrics != nil {
		s.metrics.IncrementWithdrawals()
		s.metrics.ObserveMutation(start)
	}
	s.emit(ctx, audit.Event{
		Action:        audit.ActionWithdrawal,
		CustomerID:    customer.ExternalID,
		AccountNumber: customer.AccountNumber(),
		Amount:        amount,
		OccurredAt:    now,
	})
	view := customer.Account().Snapshot()
	s.logger.InfoContext(ctx, "withdrawal applied",
		"request_id", requestcontext.RequestID(ctx),
		"customer_id", customer.ExternalID,
		"amount", amount.String(),
		"balance", view.Balance.String(),
	)
	return view, nil
}

// Transfer atomically moves amount between two customers' accounts. Either
// side missing short-circuits with ErrCustomerNotFound before any balance
// is touched.
func (s *Service) Transfer(ctx context.Context, fromID, toID string, amount decimal.Decimal) (TransferResult, error) {
	ctx, span := tracer.Start(ctx, "ledger.Transfer",
		trace.WithAttributes(
			attribute.String("from_customer_id", fromID),
			attribute.String("to_customer_id", toID),
		))
	defer span.End()
	start := time.Now()

	from, err := s.resolve(ctx, fromID)
	if err != nil {
		s.countError("transfer")
		return TransferResult{}, err
	}
	to, err := s.resolve(ctx, toID)
	if err != nil {
		s.countError("transfer")
		return TransferResult{}, err
	}

	now := requestcontext.Now(ctx)
	if err := from.Account().TransferTo(to.Account(), amount, now); err != nil {
		span.RecordError(err)
		s.countError("transfer")
		return TransferResult{}, err
	}

	if s.metrics != nil {
		s.metrics.IncrementTransfers()
		s.metrics.ObserveTransfer(start)
	}
	s.emit(ctx, audit.Event{
		Action:        audit.ActionTransferSent,
		CustomerID:    from.ExternalID,
		AccountNumber: from.AccountNumber(),
		Amount:        amount,
		Counterparty:  to.AccountNumber(),
		OccurredAt:    now,
	})
	s.emit(ctx, audit.Event{
		Action:        audit.ActionTransferReceived,
		CustomerID:    to.ExternalID,
		AccountNumber: to.AccountNumber(),
		Amount:        amount,
		Counterparty:  from.AccountNumber(),
		OccurredAt:    now,
	})
	s.logger.InfoContext(ctx, "transfer applied",
		"request_id", requestcontext.RequestID(ctx),
		"from_customer_id", from.ExternalID,
		"to_customer_id", to.ExternalID,
		"amount", amount.String(),
	)
	return TransferResult{
		From: from.Account().Snapshot(),
		To:   to.Account().Snapshot(),
	}, nil
}

// resolve translates store facts into the registry's caller-facing errors.
func (s *Service) resolve(ctx context.Context, externalID string) (*models.Customer, error) {
	customer, err := s.customers.Find(ctx, externalID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, ledger.ErrCustomerNotFound
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to resolve customer")
	}
	return customer, nil
}

// emit enriches the event with request-scoped caller facts before handing
// it to the publisher, so every event carries the same correlation fields.
func (s *Service) emit(ctx context.Context, event audit.Event) {
	if s.audit == nil {
		return
	}
	event.RequestID = requestcontext.RequestID(ctx)
	event.ClientIP = requestcontext.ClientIP(ctx)
	event.UserAgent = requestcontext.UserAgent(ctx)
	s.audit.Emit(ctx, event)
}

func (s *Service) countError(operation string) {
	if s.metrics != nil {
		s.metrics.IncrementOperationError(operation)
	}
}
