package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind classifies a ledger entry.
type TransactionKind string

const (
	KindDeposit     TransactionKind = "deposit"
	KindWithdrawal  TransactionKind = "withdrawal"
	KindTransferOut TransactionKind = "transfer_out"
	KindTransferIn  TransactionKind = "transfer_in"
)

// Credits reports whether entries of this kind add to the balance.
// Deposits and incoming transfers credit; withdrawals and outgoing
// transfers debit.
func (k TransactionKind) Credits() bool {
	return k == KindDeposit || k == KindTransferIn
}

// Transaction is one completed ledger event. It is a value type constructed
// by Account internals only; histories hand out copies, so a Transaction is
// never mutated after append.
//
// Invariant: Amount > 0. The sign of the balance effect is carried by Kind,
// not by Amount.
type Transaction struct {
	Kind   TransactionKind
	Amount decimal.Decimal
	// Counterparty is the other account's number for transfer entries:
	// the receiver on KindTransferOut, the sender on KindTransferIn.
	// Zero for deposits and withdrawals.
	Counterparty int64
	OccurredAt   time.Time
}
