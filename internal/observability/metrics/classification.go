package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kirillkom/document-intake/internal/core/classify"
	"github.com/kirillkom/document-intake/internal/core/domain"
)

// ClassificationMetrics counts classification verdicts by pipeline
// mode. Both the api and the worker register one into their own
// registry, since both run the pipeline.
type ClassificationMetrics struct {
	service string

	verdictsTotal *prometheus.CounterVec
	duration      *prometheus.HistogramVec
}

func newClassificationMetrics(registry *prometheus.Registry, service string) *ClassificationMetrics {
	verdictsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "intake",
			Subsystem: "classify",
			Name:      "verdicts_total",
			Help:      "Total classification verdicts by mode, category and priority.",
		},
		[]string{"service", "mode", "category", "priority"},
	)
	duration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "intake",
			Subsystem: "classify",
			Name:      "duration_seconds",
			Help:      "Classification duration in seconds by mode.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "mode"},
	)

	registry.MustRegister(verdictsTotal, duration)

	return &ClassificationMetrics{
		service:       service,
		verdictsTotal: verdictsTotal,
		duration:      duration,
	}
}

func (m *ClassificationMetrics) ObserveClassification(mode classify.Mode, result domain.Classification, elapsed time.Duration) {
	m.verdictsTotal.WithLabelValues(
		m.service,
		string(mode),
		string(result.Category),
		string(result.Priority),
	).Inc()
	m.duration.WithLabelValues(m.service, string(mode)).Observe(elapsed.Seconds())
}
