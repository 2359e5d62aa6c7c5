package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// RelayPrometheusMetrics observes outbox relay runs: how long each poll
// cycle takes and how many rows it pushed out.
type RelayPrometheusMetrics struct {
	relayRunDurationHist *prometheus.HistogramVec
	relayedTotal         *prometheus.CounterVec
}

func newRelayPrometheusMetrics(reg prometheus.Registerer) *RelayPrometheusMetrics {
	relayRunDurationHist := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "outbox_relay_run_duration_seconds",
			Help:    "Duration of one outbox relay poll cycle in seconds.",
			Buckets: []float64{0, 0.0001, 0.001, 0.010, 0.100, 0.200, 0.500, 1, 2, 5, 10, 100, 1000},
		},
		[]string{"success"},
	)

	relayedTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "outbox_relay_messages_total",
			Help: "Transactions relayed from the outbox to the broker.",
		},
		[]string{"outcome"},
	)

	reg.MustRegister(relayRunDurationHist, relayedTotal)

	return &RelayPrometheusMetrics{relayRunDurationHist, relayedTotal}
}

func (m *RelayPrometheusMetrics) GenerateMetrics(startTime time.Time, published, failed int, runErr error) {
	duration := time.Since(startTime).Seconds()

	m.relayRunDurationHist.WithLabelValues(strconv.FormatBool(runErr == nil)).Observe(duration)
	m.relayedTotal.WithLabelValues("published").Add(float64(published))
	m.relayedTotal.WithLabelValues("failed").Add(float64(failed))
}
