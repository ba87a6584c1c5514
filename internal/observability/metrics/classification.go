package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kirillkom/document-triage/internal/core/domain"
)

// ClassificationMetrics tracks the hybrid classifier from the outside: which
// path answered, how long it took, and how often the model path gave way to
// the rules. Uses a private registry so tests never collide on the global one.
type ClassificationMetrics struct {
	registry *prometheus.Registry

	classifyTotal    *prometheus.CounterVec
	classifyDuration *prometheus.HistogramVec
	classifyInFlight prometheus.Gauge
	modelFallback    prometheus.Counter
	appendFailures   prometheus.Counter
}

func NewClassificationMetrics(service string) *ClassificationMetrics {
	registry := prometheus.NewRegistry()

	classifyTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "triage",
			Name:      "classify_total",
			Help:      "Total classifications by answering method and status.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
		[]string{"method", "status"},
	)
	classifyDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "triage",
			Name:      "classify_duration_seconds",
			Help:      "Classification duration in seconds by answering method.",
			Buckets:   prometheus.DefBuckets,
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
		[]string{"method"},
	)
	classifyInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "triage",
			Name:      "classify_in_flight",
			Help:      "Number of in-flight classifications.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	modelFallback := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "triage",
			Name:      "model_fallback_total",
			Help:      "Classifications answered by rules after a failed model attempt.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	appendFailures := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "triage",
			Name:      "record_append_failures_total",
			Help:      "Record log appends that failed after a successful classification.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)

	registry.MustRegister(classifyTotal, classifyDuration, classifyInFlight, modelFallback, appendFailures)

	return &ClassificationMetrics{
		registry:         registry,
		classifyTotal:    classifyTotal,
		classifyDuration: classifyDuration,
		classifyInFlight: classifyInFlight,
		modelFallback:    modelFallback,
		appendFailures:   appendFailures,
	}
}

func (m *ClassificationMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *ClassificationMetrics) StartClassification() {
	m.classifyInFlight.Inc()
}

func (m *ClassificationMetrics) FinishClassification(result domain.ClassificationResult, duration time.Duration) {
	m.classifyInFlight.Dec()

	status := "success"
	if !result.Success {
		status = "error"
	}
	method := string(result.Method)
	if method == "" {
		method = "none"
	}

	m.classifyTotal.WithLabelValues(method, status).Inc()
	m.classifyDuration.WithLabelValues(method).Observe(duration.Seconds())
}

func (m *ClassificationMetrics) ObserveModelFallback() {
	m.modelFallback.Inc()
}

func (m *ClassificationMetrics) ObserveAppendFailure() {
	m.appendFailures.Inc()
}
