// Package metrics exposes run counters in Prometheus format. A run writes
// them once to a node-exporter textfile when it finishes.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/rustyeddy/regime/strategy"
)

// Metrics holds the collectors of one process. A nil *Metrics ignores
// every observation.
type Metrics struct {
	Registry *prometheus.Registry

	Bars             prometheus.Counter
	Decisions        *prometheus.CounterVec // labels: action
	Trades           *prometheus.CounterVec // labels: reason
	PipelineDuration prometheus.Histogram
	GatewayRequests  *prometheus.CounterVec // labels: status
}

// New registers the collectors on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		Bars: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "regime_bars_total",
			Help: "Bars processed by the indicator pipeline",
		}),
		Decisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "regime_decisions_total",
			Help: "Per-bar decisions by action",
		}, []string{"action"}),
		Trades: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "regime_trades_total",
			Help: "Trades by exit reason",
		}, []string{"reason"}),
		PipelineDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "regime_pipeline_duration_seconds",
			Help:    "Indicator pipeline and state machine wall time",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}),
		GatewayRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "regime_gateway_requests_total",
			Help: "Backtest gateway submissions by outcome",
		}, []string{"status"}),
	}

	m.Registry.MustRegister(
		m.Bars,
		m.Decisions,
		m.Trades,
		m.PipelineDuration,
		m.GatewayRequests,
	)
	return m
}

// ObserveRun counts the bars, decisions and trades of a finished run.
func (m *Metrics) ObserveRun(res strategy.Result) {
	if m == nil {
		return
	}
	m.Bars.Add(float64(len(res.Decisions)))
	for _, d := range res.Decisions {
		label := d.Action.Label()
		if label == "" {
			label = "hold"
		}
		m.Decisions.WithLabelValues(label).Inc()
	}
	for _, t := range res.Trades {
		m.Trades.WithLabelValues(string(t.Reason)).Inc()
	}
}

func (m *Metrics) ObservePipeline(d time.Duration) {
	if m == nil {
		return
	}
	m.PipelineDuration.Observe(d.Seconds())
}

// ObserveGateway records a submission as ok or error.
func (m *Metrics) ObserveGateway(err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.GatewayRequests.WithLabelValues(status).Inc()
}

// WriteTextfile writes every collector to path in the text exposition
// format, replacing the file atomically.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.Registry)
}
