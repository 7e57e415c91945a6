package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for signal generation.
type Metrics struct {
	SignalsTotal  *prometheus.CounterVec // labels: instrument, direction
	FailuresTotal *prometheus.CounterVec // labels: reason
	GenerateDur   prometheus.Histogram
	Confidence    prometheus.Histogram
	CommandsTotal *prometheus.CounterVec // labels: command
	HistoryPruned prometheus.Counter
	registry      *prometheus.Registry
}

// NewMetrics registers and returns all metrics on a private registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		SignalsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pipsignal_signals_total",
			Help: "Signals generated, by instrument and direction",
		}, []string{"instrument", "direction"}),
		FailuresTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pipsignal_signal_failures_total",
			Help: "Signal requests that did not produce a signal",
		}, []string{"reason"}),
		GenerateDur: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "pipsignal_generate_duration_seconds",
			Help:    "Time to assemble one signal",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		Confidence: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "pipsignal_signal_confidence",
			Help:    "Reported confidence of generated signals",
			Buckets: prometheus.LinearBuckets(60, 5, 8),
		}),
		CommandsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pipsignal_commands_total",
			Help: "Bot commands received",
		}, []string{"command"}),
		HistoryPruned: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pipsignal_history_pruned_total",
			Help: "Signal history rows removed by the prune job",
		}),
		registry: prometheus.NewRegistry(),
	}
	m.registry.MustRegister(
		m.SignalsTotal, m.FailuresTotal, m.GenerateDur, m.Confidence,
		m.CommandsTotal, m.HistoryPruned,
		collectors.NewGoCollector(),
	)
	return m
}

// Handler serves the metrics in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
