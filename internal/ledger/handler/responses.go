package handler

import (
	"time"

	"github.com/shopspring/decimal"

	"teller/internal/audit"
	"teller/internal/ledger/models"
	"teller/internal/ledger/service"
)

// CustomerResponse is the identity portion of customer-facing responses.
type CustomerResponse struct {
	CustomerID    string    `json:"customer_id"`
	Name          string    `json:"name"`
	Sequence      int64     `json:"sequence"`
	AccountNumber int64     `json:"account_number"`
	CreatedAt     time.Time `json:"created_at"`
}

// FromCustomer converts a domain customer to its HTTP representation.
func FromCustomer(c *models.Customer) CustomerResponse {
	return CustomerResponse{
		CustomerID:    c.ExternalID,
		Name:          c.Name,
		Sequence:      c.Sequence,
		AccountNumber: c.AccountNumber(),
		CreatedAt:     c.CreatedAt,
	}
}

// FromCustomers converts a creation-ordered customer list.
func FromCustomers(customers []*models.Customer) []CustomerResponse {
	out := make([]CustomerResponse, len(customers))
	for i, c := range customers {
		out[i] = FromCustomer(c)
	}
	return out
}

// TransactionResponse is one ledger entry.
type TransactionResponse struct {
	Kind                string          `json:"kind"`
	Amount              decimal.Decimal `json:"amount"`
	CounterpartyAccount int64           `json:"counterparty_account,omitempty"`
	OccurredAt          time.Time       `json:"occurred_at"`
}

// AccountResponse is the full account projection: balance plus ordered
// history.
type AccountResponse struct {
	AccountNumber int64                 `json:"account_number"`
	Balance       decimal.Decimal       `json:"balance"`
	Transactions  []TransactionResponse `json:"transactions"`
}

// FromAccountView converts an account snapshot.
func FromAccountView(view models.AccountView) AccountResponse {
	transactions := make([]TransactionResponse, len(view.History))
	for i, entry := range view.History {
		transactions[i] = TransactionResponse{
			Kind:                string(entry.Kind),
			Amount:              entry.Amount,
			CounterpartyAccount: entry.Counterparty,
			OccurredAt:          entry.OccurredAt,
		}
	}
	return AccountResponse{
		AccountNumber: view.Number,
		Balance:       view.Balance,
		Transactions:  transactions,
	}
}

// BalanceResponse is the slim result of a balance mutation.
type BalanceResponse struct {
	AccountNumber int64           `json:"account_number"`
	Balance       decimal.Decimal `json:"balance"`
}

// FromBalance converts an account snapshot to the mutation result shape.
func FromBalance(view models.AccountView) BalanceResponse {
	return BalanceResponse{AccountNumber: view.Number, Balance: view.Balance}
}

// ViewAccountResponse is the GET /customers/{id} projection.
type ViewAccountResponse struct {
	Customer CustomerResponse `json:"customer"`
	Account  AccountResponse  `json:"account"`
}

// FromCustomerAccount converts the viewAccount service result.
func FromCustomerAccount(ca service.CustomerAccount) ViewAccountResponse {
	return ViewAccountResponse{
		Customer: FromCustomer(ca.Customer),
		Account:  FromAccountView(ca.Account),
	}
}

// TransferResponse carries both post-transfer balances.
type TransferResponse struct {
	From BalanceResponse `json:"from"`
	To   BalanceResponse `json:"to"`
}

// FromTransferResult converts the transfer service result.
func FromTransferResult(result service.TransferResult) TransferResponse {
	return TransferResponse{
		From: FromBalance(result.From),
		To:   FromBalance(result.To),
	}
}

// AuditEventResponse is one entry of the audit trail.
type AuditEventResponse struct {
	ID                  string          `json:"id"`
	Action              string          `json:"action"`
	CustomerID          string          `json:"customer_id"`
	AccountNumber       int64           `json:"account_number"`
	Amount              decimal.Decimal `json:"amount"`
	CounterpartyAccount int64           `json:"counterparty_account,omitempty"`
	RequestID           string          `json:"request_id,omitempty"`
	ClientIP            string          `json:"client_ip,omitempty"`
	UserAgent           string          `json:"user_agent,omitempty"`
	OccurredAt          time.Time       `json:"occurred_at"`
}

// FromAuditEvents converts an ordered slice of audit events.
func FromAuditEvents(events []audit.Event) []AuditEventResponse {
	out := make([]AuditEventResponse, len(events))
	for i, e := range events {
		out[i] = AuditEventResponse{
			ID:                  e.ID.String(),
			Action:              string(e.Action),
			CustomerID:          e.CustomerID,
			AccountNumber:       e.AccountNumber,
			Amount:              e.Amount,
			CounterpartyAccount: e.Counterparty,
			RequestID:           e.RequestID,
			ClientIP:            e.ClientIP,
			UserAgent:           e.UserAgent,
			OccurredAt:          e.OccurredAt,
		}
	}
	return out
}
