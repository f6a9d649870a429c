// internal/httpserver/metrics.go
//
// Prometheus collectors, registered on the server's registry.

package httpserver

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	verdicts *prometheus.CounterVec
	skips    prometheus.Counter
	balance  prometheus.Histogram
	sessions prometheus.Gauge
}

func newMetrics(reg prometheus.Registerer) *metrics {
	f := promauto.With(reg)
	return &metrics{
		verdicts: f.NewCounterVec(prometheus.CounterOpts{
			Name: "spellbank_verdicts_total",
			Help: "Checked answers by verdict.",
		}, []string{"verdict"}),
		skips: f.NewCounter(prometheus.CounterOpts{
			Name: "spellbank_skips_total",
			Help: "Words skipped without an answer.",
		}),
		balance: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "spellbank_balance_after_check",
			Help:    "Player balance right after a verdict.",
			Buckets: prometheus.ExponentialBuckets(10, 2, 8),
		}),
		sessions: f.NewGauge(prometheus.GaugeOpts{
			Name: "spellbank_active_sessions",
			Help: "Players with a live round in memory.",
		}),
	}
}
