// Package observability holds the Prometheus metrics for the
// automation engine and its queue.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// EngineMetrics holds all Prometheus metrics for the automation engine.
type EngineMetrics struct {
	ExecutionsTotal     *prometheus.CounterVec
	ActionOutcomesTotal *prometheus.CounterVec
	ExecutionDuration   prometheus.Histogram
	QueueDepth          prometheus.Gauge
	QueuedTotal         prometheus.Counter
}

// NewEngineMetrics initializes and registers the engine metrics with
// the given registerer. A nil registerer leaves the metrics
// unregistered, which tests use to avoid duplicate registration.
func NewEngineMetrics(reg prometheus.Registerer) *EngineMetrics {
	factory := promauto.With(reg)
	return &EngineMetrics{
		ExecutionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "autopilot",
			Subsystem: "engine",
			Name:      "executions_total",
			Help:      "Total number of rule executions by final status.",
		}, []string{"status"}), // status: success, partial, failed, skipped
		ActionOutcomesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "autopilot",
			Subsystem: "engine",
			Name:      "action_outcomes_total",
			Help:      "Total number of dispatched actions by type and outcome.",
		}, []string{"action", "outcome"}),
		ExecutionDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "autopilot",
			Subsystem: "engine",
			Name:      "execution_duration_seconds",
			Help:      "Wall-clock duration of rule executions.",
			Buckets:   prometheus.DefBuckets,
		}),
		QueueDepth: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "autopilot",
			Subsystem: "queue",
			Name:      "depth",
			Help:      "Number of rule ids waiting in the execution queue.",
		}),
		QueuedTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "autopilot",
			Subsystem: "queue",
			Name:      "enqueued_total",
			Help:      "Total number of rule executions enqueued.",
		}),
	}
}
