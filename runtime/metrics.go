package runtime

import (
	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	executed prometheus.Counter
	failed   prometheus.Counter
	latency  prometheus.Histogram
}

func newMetrics(r prometheus.Registerer) (*metrics, error) {
	m := &metrics{
		executed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "runtime",
			Name:      "transactions_executed",
			Help:      "number of transactions committed",
		}),
		failed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "runtime",
			Name:      "transactions_failed",
			Help:      "number of transactions rolled back",
		}),
		latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "runtime",
			Name:      "transaction_seconds",
			Help:      "time spent executing a transaction, lock wait included",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
	}
	if r == nil {
		return m, nil
	}
	for _, c := range []prometheus.Collector{m.executed, m.failed, m.latency} {
		if err := r.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}
