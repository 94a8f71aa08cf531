package metrics

import "github.com/prometheus/client_golang/prometheus"

// RegisterMetrics holds Prometheus metrics for the register session lifecycle.
type RegisterMetrics struct {
	SessionsStarted  prometheus.Counter
	SessionsClosed   prometheus.Counter
	Transactions     *prometheus.CounterVec
	Rejected         *prometheus.CounterVec
	CloseVariance    prometheus.Histogram
	SessionOpen      prometheus.Gauge
	TransactionValue *prometheus.CounterVec
}

// NewRegisterMetrics creates and registers lifecycle metrics on the given registry.
func NewRegisterMetrics(reg prometheus.Registerer) *RegisterMetrics {
	m := &RegisterMetrics{
		SessionsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "register",
			Name:      "sessions_started_total",
			Help:      "Total number of register sessions opened.",
		}),
		SessionsClosed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "register",
			Name:      "sessions_closed_total",
			Help:      "Total number of register sessions closed.",
		}),
		Transactions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "register",
			Name:      "transactions_total",
			Help:      "Total number of transactions recorded, by type and payment method.",
		}, []string{"type", "payment_method"}),
		TransactionValue: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "register",
			Name:      "transaction_amount_total",
			Help:      "Sum of recorded transaction amounts in major currency units, by type and payment method.",
		}, []string{"type", "payment_method"}),
		Rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "register",
			Name:      "rejected_operations_total",
			Help:      "Total number of lifecycle operations rejected, by operation and reason.",
		}, []string{"operation", "reason"}),
		CloseVariance: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "register",
			Name:      "close_variance",
			Help:      "Counted minus expected cash at close, in major currency units.",
			Buckets:   []float64{-100, -20, -5, -1, -0.01, 0, 0.01, 1, 5, 20, 100},
		}),
		SessionOpen: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "register",
			Name:      "session_open",
			Help:      "1 while a register session is open, 0 otherwise.",
		}),
	}

	reg.MustRegister(m.SessionsStarted, m.SessionsClosed, m.Transactions, m.TransactionValue, m.Rejected, m.CloseVariance, m.SessionOpen)
	return m
}
