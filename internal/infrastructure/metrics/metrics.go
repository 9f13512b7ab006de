package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Stage outcomes
const (
	OutcomeOK      = "ok"
	OutcomeError   = "error"
	OutcomeTimeout = "timeout"
	OutcomeSkipped = "skipped"
)

// Webhook outcomes
const (
	OutcomeAccepted  = "accepted"
	OutcomeDuplicate = "duplicate"
	OutcomeRejected  = "rejected"
)

// PipelineMetrics holds the Prometheus metrics for webhook ingress and the
// outputs pipeline. A nil *PipelineMetrics is a no-op.
type PipelineMetrics struct {
	WebhookEventsTotal   *prometheus.CounterVec
	StageDurationSeconds *prometheus.HistogramVec
	RunsTotal            *prometheus.CounterVec
}

// NewPipelineMetrics registers the metrics with reg
func NewPipelineMetrics(reg prometheus.Registerer) *PipelineMetrics {
	factory := promauto.With(reg)

	return &PipelineMetrics{
		WebhookEventsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webhook_events_total",
				Help: "Webhook deliveries by event type and outcome",
			},
			[]string{"event_type", "outcome"},
		),
		StageDurationSeconds: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "outputs_stage_duration_seconds",
				Help:    "Outputs pipeline stage latency",
				Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 20, 30, 60, 120},
			},
			[]string{"stage", "outcome"},
		),
		RunsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "outputs_runs_total",
				Help: "Outputs pipeline runs by result",
			},
			[]string{"result"},
		),
	}
}

// ObserveWebhook counts one webhook delivery
func (m *PipelineMetrics) ObserveWebhook(eventType, outcome string) {
	if m == nil {
		return
	}
	m.WebhookEventsTotal.WithLabelValues(eventType, outcome).Inc()
}

// ObserveStage records how long a stage took
func (m *PipelineMetrics) ObserveStage(stage, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.StageDurationSeconds.WithLabelValues(stage, outcome).Observe(d.Seconds())
}

// ObserveRun counts one finished pipeline run
func (m *PipelineMetrics) ObserveRun(result string) {
	if m == nil {
		return
	}
	m.RunsTotal.WithLabelValues(result).Inc()
}
