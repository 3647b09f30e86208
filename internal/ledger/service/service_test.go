package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"teller/internal/audit"
	"teller/internal/ledger"
	"teller/internal/ledger/models"
	"teller/internal/ledger/store/memory"
	dErrors "teller/pkg/domain-errors"
	"teller/pkg/requestcontext"
)

// captureEmitter records emitted audit events for assertions.
type captureEmitter struct {
	mu     sync.Mutex
	events []audit.Event
}

func (c *captureEmitter) Emit(_ context.Context, event audit.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, event)
}

func (c *captureEmitter) all() []audit.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]audit.Event(nil), c.events...)
}

func (c *captureEmitter) byAction(action audit.Action) []audit.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []audit.Event
	for _, e := range c.events {
		if e.Action == action {
			out = append(out, e)
		}
	}
	return out
}

type ServiceSuite struct {
	suite.Suite
	svc     *Service
	emitter *captureEmitter
	ctx     context.Context
	now     time.Time
}

func (s *ServiceSuite) SetupTest() {
	s.emitter = &captureEmitter{}
	s.svc = New(memory.New(), WithAudit(s.emitter))
	s.now = time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	s.ctx = requestcontext.WithTime(context.Background(), s.now)
}

func (s *ServiceSuite) amt(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func (s *ServiceSuite) TestCreateCustomer() {
	c, err := s.svc.CreateCustomer(s.ctx, "John Smith", "john1")
	s.Require().NoError(err)
	s.Equal("john1", c.ExternalID)
	s.Equal(int64(1), c.Sequence)
	s.Equal(int64(1001), c.AccountNumber())

	events := s.emitter.byAction(audit.ActionCustomerCreated)
	s.Require().Len(events, 1)
	s.Equal("john1", events[0].CustomerID)
}

func (s *ServiceSuite) TestCreateCustomerTrimsWhitespace() {
	c, err := s.svc.CreateCustomer(s.ctx, "  John Smith  ", " john1 ")
	s.Require().NoError(err)
	s.Equal("John Smith", c.Name)
	s.Equal("john1", c.ExternalID)
}

func (s *ServiceSuite) TestCreateCustomerValidation() {
	_, err := s.svc.CreateCustomer(s.ctx, "john", "john1")
	s.ErrorIs(err, ledger.ErrInvalidName)
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))

	_, err = s.svc.CreateCustomer(s.ctx, "John", "john 1")
	s.ErrorIs(err, ledger.ErrInvalidID)

	// Failed attempts do not register anything or consume a sequence.
	customers, err := s.svc.ListCustomers(s.ctx)
	s.Require().NoError(err)
	s.Empty(customers)

	c, err := s.svc.CreateCustomer(s.ctx, "John", "john1")
	s.Require().NoError(err)
	s.Equal(int64(1), c.Sequence)
}

func (s *ServiceSuite) TestCreateCustomerDuplicateID() {
	_, err := s.svc.CreateCustomer(s.ctx, "John", "john1")
	s.Require().NoError(err)

	_, err = s.svc.CreateCustomer(s.ctx, "Jane", "john1")
	s.ErrorIs(err, ledger.ErrDuplicateID)
	s.True(dErrors.HasCode(err, dErrors.CodeConflict))

	customers, listErr := s.svc.ListCustomers(s.ctx)
	s.Require().NoError(listErr)
	s.Len(customers, 1)
}

func (s *ServiceSuite) TestFindCustomer() {
	_, err := s.svc.CreateCustomer(s.ctx, "John", "john1")
	s.Require().NoError(err)

	c, err := s.svc.FindCustomer(s.ctx, "john1")
	s.Require().NoError(err)
	s.Equal("john1", c.ExternalID)

	_, err = s.svc.FindCustomer(s.ctx, "ghost")
	s.ErrorIs(err, ledger.ErrCustomerNotFound)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *ServiceSuite) TestDepositAndWithdraw() {
	_, err := s.svc.CreateCustomer(s.ctx, "John", "john1")
	s.Require().NoError(err)

	view, err := s.svc.Deposit(s.ctx, "john1", s.amt("500"))
	s.Require().NoError(err)
	s.True(view.Balance.Equal(s.amt("500")))

	view, err = s.svc.Withdraw(s.ctx, "john1", s.amt("200"))
	s.Require().NoError(err)
	s.True(view.Balance.Equal(s.amt("300")))
	s.Len(view.History, 2)

	s.Len(s.emitter.byAction(audit.ActionDeposit), 1)
	s.Len(s.emitter.byAction(audit.ActionWithdrawal), 1)
}

func (s *ServiceSuite) TestMutationsOnUnknownCustomer() {
	_, err := s.svc.Deposit(s.ctx, "ghost", s.amt("10"))
	s.ErrorIs(err, ledger.ErrCustomerNotFound)

	_, err = s.svc.Withdraw(s.ctx, "ghost", s.amt("10"))
	s.ErrorIs(err, ledger.ErrCustomerNotFound)
}

func (s *ServiceSuite) TestWithdrawErrorsPassThrough() {
	_, err := s.svc.CreateCustomer(s.ctx, "John", "john1")
	s.Require().NoError(err)

	_, err = s.svc.Withdraw(s.ctx, "john1", s.amt("0"))
	s.ErrorIs(err, ledger.ErrInvalidAmount)

	_, err = s.svc.Withdraw(s.ctx, "john1", s.amt("1"))
	s.ErrorIs(err, ledger.ErrInsufficientFunds)
	s.True(dErrors.HasCode(err, dErrors.CodeUnprocessable))
}

func (s *ServiceSuite) TestTransferMissingEitherSide() {
	_, err := s.svc.CreateCustomer(s.ctx, "John", "john1")
	s.Require().NoError(err)

	_, err = s.svc.Transfer(s.ctx, "john1", "ghost", s.amt("10"))
	s.ErrorIs(err, ledger.ErrCustomerNotFound)

	_, err = s.svc.Transfer(s.ctx, "ghost", "john1", s.amt("10"))
	s.ErrorIs(err, ledger.ErrCustomerNotFound)

	// Not-found short-circuits before any balance is touched.
	view, err := s.svc.ViewAccount(s.ctx, "john1")
	s.Require().NoError(err)
	s.True(view.Account.Balance.IsZero())
	s.Empty(view.Account.History)
}

func (s *ServiceSuite) TestTransferInsufficientFundsChangesNothing() {
	_, err := s.svc.CreateCustomer(s.ctx, "John", "john1")
	s.Require().NoError(err)
	_, err = s.svc.CreateCustomer(s.ctx, "Mary", "mary2")
	s.Require().NoError(err)
	_, err = s.svc.Deposit(s.ctx, "john1", s.amt("50"))
	s.Require().NoError(err)

	_, err = s.svc.Transfer(s.ctx, "john1", "mary2", s.amt("60"))
	s.ErrorIs(err, ledger.ErrInsufficientFunds)

	john, _ := s.svc.ViewAccount(s.ctx, "john1")
	mary, _ := s.svc.ViewAccount(s.ctx, "mary2")
	s.True(john.Account.Balance.Equal(s.amt("50")))
	s.True(mary.Account.Balance.IsZero())
	s.Len(john.Account.History, 1)
	s.Empty(mary.Account.History)
}

// TestWorkedExample walks the end-to-end scenario: create john1 (sequence 1,
// account 1001), deposit 500, withdraw 200, create mary2 (sequence 2,
// account 1002), transfer 100 — leaving 200/100 with one new history entry
// on each side.
func (s *ServiceSuite) TestWorkedExample() {
	john, err := s.svc.CreateCustomer(s.ctx, "John Smith", "john1")
	s.Require().NoError(err)
	s.Equal(int64(1), john.Sequence)
	s.Equal(int64(1001), john.AccountNumber())

	view, err := s.svc.Deposit(s.ctx, "john1", s.amt("500"))
	s.Require().NoError(err)
	s.True(view.Balance.Equal(s.amt("500")))

	view, err = s.svc.Withdraw(s.ctx, "john1", s.amt("200"))
	s.Require().NoError(err)
	s.True(view.Balance.Equal(s.amt("300")))

	mary, err := s.svc.CreateCustomer(s.ctx, "Mary Ann", "mary2")
	s.Require().NoError(err)
	s.Equal(int64(2), mary.Sequence)
	s.Equal(int64(1002), mary.AccountNumber())

	result, err := s.svc.Transfer(s.ctx, "john1", "mary2", s.amt("100"))
	s.Require().NoError(err)
	s.True(result.From.Balance.Equal(s.amt("200")))
	s.True(result.To.Balance.Equal(s.amt("100")))
	s.Len(result.From.History, 3)
	s.Len(result.To.History, 1)

	out := result.From.History[2]
	s.Equal(models.KindTransferOut, out.Kind)
	s.Equal(int64(1002), out.Counterparty)
	s.Equal(s.now, out.OccurredAt)

	in := result.To.History[0]
	s.Equal(models.KindTransferIn, in.Kind)
	s.Equal(int64(1001), in.Counterparty)

	sent := s.emitter.byAction(audit.ActionTransferSent)
	received := s.emitter.byAction(audit.ActionTransferReceived)
	s.Require().Len(sent, 1)
	s.Require().Len(received, 1)
	s.Equal("john1", sent[0].CustomerID)
	s.Equal("mary2", received[0].CustomerID)
}

func (s *ServiceSuite) TestAuditEventsCarryCallerMetadata() {
	ctx := requestcontext.WithRequestID(s.ctx, "req-42")
	ctx = requestcontext.WithClientMetadata(ctx, "203.0.113.9", "teller-cli/1.0")

	_, err := s.svc.CreateCustomer(ctx, "John", "john1")
	s.Require().NoError(err)
	_, err = s.svc.CreateCustomer(ctx, "Mary", "mary2")
	s.Require().NoError(err)
	_, err = s.svc.Deposit(ctx, "john1", s.amt("100"))
	s.Require().NoError(err)
	_, err = s.svc.Transfer(ctx, "john1", "mary2", s.amt("10"))
	s.Require().NoError(err)

	events := s.emitter.all()
	s.Require().Len(events, 5)
	for _, event := range events {
		s.Equal("req-42", event.RequestID, "action %s", event.Action)
		s.Equal("203.0.113.9", event.ClientIP, "action %s", event.Action)
		s.Equal("teller-cli/1.0", event.UserAgent, "action %s", event.Action)
	}
}

func (s *ServiceSuite) TestTransactionsProjection() {
	_, err := s.svc.CreateCustomer(s.ctx, "John", "john1")
	s.Require().NoError(err)
	_, err = s.svc.Deposit(s.ctx, "john1", s.amt("10"))
	s.Require().NoError(err)

	history, err := s.svc.Transactions(s.ctx, "john1")
	s.Require().NoError(err)
	s.Require().Len(history, 1)
	s.Equal(models.KindDeposit, history[0].Kind)

	_, err = s.svc.Transactions(s.ctx, "ghost")
	s.ErrorIs(err, ledger.ErrCustomerNotFound)
}

func (s *ServiceSuite) TestListCustomersCreationOrder() {
	for _, id := range []string{"c1", "c2", "c3"} {
		_, err := s.svc.CreateCustomer(s.ctx, "John", id)
		s.Require().NoError(err)
	}
	customers, err := s.svc.ListCustomers(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(customers, 3)
	s.Equal("c1", customers[0].ExternalID)
	s.Equal("c3", customers[2].ExternalID)
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}
