package telemetry

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "studentrecords"

// Summary outcomes recorded by ObserveSummary.
const (
	OutcomeSuccess = "success"
	OutcomeCached  = "cached"
	OutcomeFailure = "failure"
)

// Metrics owns a private registry so that independent servers, as in tests,
// never collide on registration.
type Metrics struct {
	Registry *prometheus.Registry

	summaryRequests *prometheus.CounterVec
	summaryDuration *prometheus.HistogramVec
	fragments       prometheus.Counter
}

func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		summaryRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "summary_requests_total",
			Help:      "Summary generations by report kind and outcome.",
		}, []string{"kind", "outcome"}),
		summaryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "summary_duration_seconds",
			Help:      "Time spent producing a summary, including cache lookups.",
			Buckets:   []float64{0.01, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}, []string{"kind"}),
		fragments: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "summary_stream_fragments_total",
			Help:      "Fragments relayed to websocket clients.",
		}),
	}

	m.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.summaryRequests,
		m.summaryDuration,
		m.fragments,
	)
	return m
}

func (m *Metrics) ObserveSummary(kind, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.summaryRequests.WithLabelValues(kind, outcome).Inc()
	m.summaryDuration.WithLabelValues(kind).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveFragment() {
	if m == nil {
		return
	}
	m.fragments.Inc()
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}
