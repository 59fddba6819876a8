package metrics

import "github.com/prometheus/client_golang/prometheus"

// ExtractionMetrics counts text extraction attempts per document kind
// and outcome. It implements the extraction gateway's Recorder
// interface.
type ExtractionMetrics struct {
	service string

	attemptsTotal *prometheus.CounterVec
}

func newExtractionMetrics(registry *prometheus.Registry, service string) *ExtractionMetrics {
	attemptsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "intake",
			Subsystem: "extract",
			Name:      "attempts_total",
			Help:      "Total extraction attempts by document kind and outcome.",
		},
		[]string{"service", "kind", "outcome"},
	)

	registry.MustRegister(attemptsTotal)

	return &ExtractionMetrics{
		service:       service,
		attemptsTotal: attemptsTotal,
	}
}

func (m *ExtractionMetrics) ObserveExtraction(kind, outcome string) {
	m.attemptsTotal.WithLabelValues(m.service, kind, outcome).Inc()
}
