package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the ledger's Prometheus metrics.
type Metrics struct {
	AccountsOpened       prometheus.Counter
	TransactionsApplied  prometheus.Counter
	TransactionsRejected *prometheus.CounterVec
	TransactionAmount    prometheus.Histogram
	HistoryQueries       prometheus.Counter
}

// New creates and registers all ledger metrics on the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		AccountsOpened: factory.NewCounter(prometheus.CounterOpts{
			Name: "tinyledger_accounts_opened_total",
			Help: "Total number of accounts opened",
		}),
		TransactionsApplied: factory.NewCounter(prometheus.CounterOpts{
			Name: "tinyledger_transactions_applied_total",
			Help: "Total number of transactions applied",
		}),
		TransactionsRejected: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tinyledger_transactions_rejected_total",
				Help: "Total number of rejected transactions by reason",
			},
			[]string{"reason"},
		),
		TransactionAmount: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "tinyledger_transaction_amount",
			Help:    "Absolute transaction amounts",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000},
		}),
		HistoryQueries: factory.NewCounter(prometheus.CounterOpts{
			Name: "tinyledger_history_queries_total",
			Help: "Total number of transaction history queries",
		}),
	}
}
