// Package metrics provides observability for the ledger module.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// opBuckets cover in-memory operations: everything should land well under
// a millisecond, with headroom for lock contention.
var opBuckets = []float64{0.00005, 0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.05}

// Metrics tracks ledger operation counts and critical path durations.
type Metrics struct {
	CustomersCreated prometheus.Counter
	Deposits         prometheus.Counter
	Withdrawals      prometheus.Counter
	Transfers        prometheus.Counter
	OperationErrors  *prometheus.CounterVec
	TransferDuration prometheus.Histogram
	MutationDuration prometheus.Histogram
}

// New creates a Metrics instance with all ledger metrics registered on the
// default registry. Construct once per process.
func New() *Metrics {
	return &Metrics{
		CustomersCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "teller_customers_created_total",
			Help: "Total number of customers created",
		}),
		Deposits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "teller_deposits_total",
			Help: "Total number of successful deposits",
		}),
		Withdrawals: promauto.NewCounter(prometheus.CounterOpts{
			Name: "teller_withdrawals_total",
			Help: "Total number of successful withdrawals",
		}),
		Transfers: promauto.NewCounter(prometheus.CounterOpts{
			Name: "teller_transfers_total",
			Help: "Total number of successful transfers",
		}),
		OperationErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "teller_operation_errors_total",
			Help: "Total number of failed ledger operations by operation name",
		}, []string{"operation"}),
		TransferDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "teller_transfer_duration_seconds",
			Help:    "Duration of transfer operations (two-account critical path)",
			Buckets: opBuckets,
		}),
		MutationDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "teller_mutation_duration_seconds",
			Help:    "Duration of single-account deposit/withdraw operations",
			Buckets: opBuckets,
		}),
	}
}

// IncrementCustomersCreated records a successful customer creation.
func (m *Metrics) IncrementCustomersCreated() { m.CustomersCreated.Inc() }

// IncrementDeposits records a successful deposit.
func (m *Metrics) IncrementDeposits() { m.Deposits.Inc() }

// IncrementWithdrawals records a successful withdrawal.
func (m *Metrics) IncrementWithdrawals() { m.Withdrawals.Inc() }

// IncrementTransfers records a successful transfer.
func (m *Metrics) IncrementTransfers() { m.Transfers.Inc() }

// IncrementOperationError records a failed operation by name.
func (m *Metrics) IncrementOperationError(operation string) {
	m.OperationErrors.WithLabelValues(operation).Inc()
}

// ObserveTransfer records the duration of a transfer. Call with time.Now()
// captured at the start of the operation.
func (m *Metrics) ObserveTransfer(start time.Time) {
	m.TransferDuration.Observe(time.Since(start).Seconds())
}

// ObserveMutation records the duration of a deposit or withdrawal.
func (m *Metrics) ObserveMutation(start time.Time) {
	m.MutationDuration.Observe(time.Since(start).Seconds())
}
