package monitor

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts the monitor's work for the /metrics endpoint.
type Metrics struct {
	PassesTotal  prometheus.Counter
	AlertsSent   prometheus.Counter
	SymbolErrors prometheus.Counter
}

func NewMetrics() *Metrics {
	m := &Metrics{
		PassesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "aktienalarm",
			Subsystem: "monitor",
			Name:      "passes_total",
			Help:      "The total number of completed polling passes",
		}),
		AlertsSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "aktienalarm",
			Subsystem: "monitor",
			Name:      "alerts_sent",
			Help:      "The total number of alert messages sent",
		}),
		SymbolErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "aktienalarm",
			Subsystem: "monitor",
			Name:      "symbol_errors",
			Help:      "The total number of per-symbol failures during polling passes",
		}),
	}

	prometheus.MustRegister(m.PassesTotal)
	prometheus.MustRegister(m.AlertsSent)
	prometheus.MustRegister(m.SymbolErrors)

	return m
}
