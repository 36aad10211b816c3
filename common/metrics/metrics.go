// Package metrics holds the Prometheus collectors for the feedback pipeline
// and the worker that drives it.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "pulse"

var (
	// stageDuration measures each pipeline stage.
	// Labels: stage (extract, route, categorize_employee, categorize_manager, coach, persist), status (ok, error)
	stageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "pipeline",
		Name:      "stage_duration_seconds",
		Help:      "Feedback pipeline stage latency in seconds",
		Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 20, 30, 60, 120},
	}, []string{"stage", "status"})

	// stageFallbacks counts stages that swallowed a completion failure.
	// Labels: stage
	stageFallbacks = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "pipeline",
		Name:      "fallbacks_total",
		Help:      "Total stage fallbacks after a completion failure",
	}, []string{"stage"})

	// runs counts finished pipeline runs.
	// Labels: status (succeeded, failed)
	runs = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "pipeline",
		Name:      "runs_total",
		Help:      "Total feedback pipeline runs by outcome",
	}, []string{"status"})

	// plansWritten counts persisted plan records.
	// Labels: role (employee, manager)
	plansWritten = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "pipeline",
		Name:      "plans_written_total",
		Help:      "Total plan-of-action records persisted",
	}, []string{"role"})

	// jobs counts worker outcomes per message.
	// Labels: outcome (acked, requeued, dead_lettered)
	jobs = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "worker",
		Name:      "jobs_total",
		Help:      "Total feedback jobs handled by the worker",
	}, []string{"outcome"})
)

func ObserveStage(stage string, d time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	stageDuration.WithLabelValues(stage, status).Observe(d.Seconds())
}

func RecordFallback(stage string) {
	stageFallbacks.WithLabelValues(stage).Inc()
}

func RecordRun(status string) {
	runs.WithLabelValues(status).Inc()
}

func RecordPlanWritten(role string) {
	plansWritten.WithLabelValues(role).Inc()
}

func RecordJob(outcome string) {
	jobs.WithLabelValues(outcome).Inc()
}
