package icons

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics are the prometheus collectors of an Icons context. A nil
// *Metrics is valid and records nothing.
type Metrics struct {
	cacheLookups *prometheus.CounterVec
	loadFailures *prometheus.CounterVec
	inputChanges *prometheus.CounterVec
	resolutions  prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg. A nil reg
// leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		cacheLookups: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "inputicons",
			Name:      "cache_lookups_total",
			Help:      "Icon cache lookups by result.",
		}, []string{"result"}),
		loadFailures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "inputicons",
			Name:      "load_failures_total",
			Help:      "Failed icon candidate loads by reason.",
		}, []string{"reason"}),
		inputChanges: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "inputicons",
			Name:      "input_method_changes_total",
			Help:      "Input method change notifications by method.",
		}, []string{"method"}),
		resolutions: f.NewCounter(prometheus.CounterOpts{
			Namespace: "inputicons",
			Name:      "resolutions_total",
			Help:      "Icon path resolutions.",
		}),
	}
}

func (m *Metrics) lookup(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.WithLabelValues(result).Inc()
}

func (m *Metrics) failure(reason string) {
	if m == nil {
		return
	}
	m.loadFailures.WithLabelValues(reason).Inc()
}

func (m *Metrics) inputChanged(method string) {
	if m == nil {
		return
	}
	m.inputChanges.WithLabelValues(method).Inc()
}

func (m *Metrics) resolved() {
	if m == nil {
		return
	}
	m.resolutions.Inc()
}
