package models

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"teller/internal/ledger"
)

// Account owns a balance and its ordered transaction history.
//
// Invariants:
//   - balance is never negative
//   - balance always equals the net effect of the entries in history
//     (credits add, debits subtract)
//   - history is append-only; insertion order is chronological order
//
// Each account carries its own mutex: operations on the same account are
// mutually exclusive while operations on different accounts proceed
// independently. Transfers lock both accounts in ascending account-number
// order so two opposing transfers between the same pair cannot deadlock.
type Account struct {
	number int64

	mu      sync.Mutex
	balance decimal.Decimal
	history []Transaction
}

// NewAccount creates an empty account with the given number. Accounts are
// created exactly once, by their owning Customer.
func NewAccount(number int64) *Account {
	return &Account{number: number, balance: decimal.Zero}
}

// Number returns the immutable account number.
func (a *Account) Number() int64 { return a.number }

// Balance returns the current balance.
func (a *Account) Balance() decimal.Decimal {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.balance
}

// Deposit credits the account. Fails with ErrInvalidAmount when the amount
// is not positive; never fails due to balance size. Balance update and
// history append happen atomically inside the critical section.
func (a *Account) Deposit(amount decimal.Decimal, now time.Time) error {
	if !amount.IsPositive() {
		return ledger.ErrInvalidAmount
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.apply(Transaction{Kind: KindDeposit, Amount: amount, OccurredAt: now})
	return nil
}

// Withdraw debits the account. Fails with ErrInvalidAmount when the amount
// is not positive and with ErrInsufficientFunds when it exceeds the
// balance; in both cases balance and history are left untouched.
func (a *Account) Withdraw(amount decimal.Decimal, now time.Time) error {
	if !amount.IsPositive() {
		return ledger.ErrInvalidAmount
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.balance.LessThan(amount) {
		return ledger.ErrInsufficientFunds
	}
	a.apply(Transaction{Kind: KindWithdrawal, Amount: amount, OccurredAt: now})
	return nil
}

// TransferTo atomically moves amount from a to target. Failure modes are
// those of Withdraw plus ErrSameAccount; on any failure neither account
// changes. On success each side records exactly one entry: a TransferOut
// on the source and a TransferIn on the target, each tagged with the other
// side's account number.
func (a *Account) TransferTo(target *Account, amount decimal.Decimal, now time.Time) error {
	if target == nil || target == a || target.number == a.number {
		return ledger.ErrSameAccount
	}
	if !amount.IsPositive() {
		return ledger.ErrInvalidAmount
	}

	// Fixed global lock order: ascending account number.
	first, second := a, target
	if second.number < first.number {
		first, second = second, first
	}
	first.mu.Lock()
	defer first.mu.Unlock()
	second.mu.Lock()
	defer second.mu.Unlock()

	if a.balance.LessThan(amount) {
		return ledger.ErrInsufficientFunds
	}
	a.apply(Transaction{Kind: KindTransferOut, Amount: amount, Counterparty: target.number, OccurredAt: now})
	target.apply(Transaction{Kind: KindTransferIn, Amount: amount, Counterparty: a.number, OccurredAt: now})
	return nil
}

// apply mutates balance and history together. Callers hold the mutex.
func (a *Account) apply(entry Transaction) {
	if entry.Kind.Credits() {
		a.balance = a.balance.Add(entry.Amount)
	} else {
		a.balance = a.balance.Sub(entry.Amount)
	}
	a.history = append(a.history, entry)
}

// AccountView is a consistent read-only projection of an account.
type AccountView struct {
	Number  int64
	Balance decimal.Decimal
	History []Transaction
}

// Snapshot returns the balance and a copy of the full ordered history,
// captured under the account's lock so the pair is consistent.
func (a *Account) Snapshot() AccountView {
	a.mu.Lock()
	defer a.mu.Unlock()
	history := make([]Transaction, len(a.history))
	copy(history, a.history)
	return AccountView{Number: a.number, Balance: a.balance, History: history}
}
