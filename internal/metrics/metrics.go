// Package metrics holds the Prometheus collectors exported by the ledger.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "splitledger"

// Metrics groups the ledger's collectors.
type Metrics struct {
	ExpensesRecorded *prometheus.CounterVec
	RPCRequests      *prometheus.CounterVec
	RPCDuration      *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ExpensesRecorded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "expenses_recorded_total",
			Help:      "Expenses successfully recorded, by split method.",
		}, []string{"split_method"}),
		RPCRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rpc_requests_total",
			Help:      "Handled RPCs, by procedure and result code.",
		}, []string{"procedure", "code"}),
		RPCDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_duration_seconds",
			Help:      "RPC handling latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure"}),
	}

	reg.MustRegister(m.ExpensesRecorded, m.RPCRequests, m.RPCDuration)

	return m
}

// ObserveExpense counts one recorded expense.
func (m *Metrics) ObserveExpense(method string) {
	m.ExpensesRecorded.WithLabelValues(method).Inc()
}

// ObserveRPC records the outcome and latency of one RPC. code is "ok" for
// successful calls.
func (m *Metrics) ObserveRPC(procedure, code string, elapsed time.Duration) {
	m.RPCRequests.WithLabelValues(procedure, code).Inc()
	m.RPCDuration.WithLabelValues(procedure).Observe(elapsed.Seconds())
}
