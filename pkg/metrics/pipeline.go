package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PipelineMetrics records analytics pipeline runs.
type PipelineMetrics struct {
	duration *prometheus.HistogramVec
	outcomes *prometheus.CounterVec
}

// NewPipelineMetrics registers the pipeline metrics on the provided registerer.
func NewPipelineMetrics(reg prometheus.Registerer) *PipelineMetrics {
	if reg == nil {
		return &PipelineMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "analytics_pipeline_duration_seconds",
		Help:    "Duration of analytics pipeline runs in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"source"})
	outcomes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "analytics_pipeline_outcomes_total",
		Help: "Analytics pipeline runs by outcome code.",
	}, []string{"source", "outcome"})
	reg.MustRegister(duration, outcomes)
	return &PipelineMetrics{
		duration: duration,
		outcomes: outcomes,
	}
}

// ObserveDuration records how long a run against source took.
func (m *PipelineMetrics) ObserveDuration(source string, duration time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(normalizeLabel(source)).Observe(duration.Seconds())
}

// IncOutcome counts a finished run. Successful runs use the "ok" outcome.
func (m *PipelineMetrics) IncOutcome(source, outcome string) {
	if m == nil || m.outcomes == nil {
		return
	}
	m.outcomes.WithLabelValues(normalizeLabel(source), normalizeLabel(outcome)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
