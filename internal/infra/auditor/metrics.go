package auditor

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/thedevarpan/dot-developer/internal/pkg/config"
)

// Metrics provides Prometheus metrics for the audit job. It embeds the
// standard ConfigMetrics for configuration monitoring and adds job-level
// metrics for each audit pass.
//
// Audit-specific metrics:
//   - auditor_job_runs_total: Total audit passes by status (success/failure)
//   - auditor_job_duration_seconds: Duration histogram of audit passes
//   - auditor_repairs_resolved_total: Repair records resolved across all passes
//   - auditor_drift_corrected_total: Owners whose aggregates were rewritten
//   - auditor_job_last_success_timestamp: Unix timestamp of the last successful pass
type Metrics struct {
	*config.ConfigMetrics

	JobRunsTotal            *prometheus.CounterVec
	JobDurationSeconds      prometheus.Histogram
	RepairsResolvedTotal    prometheus.Counter
	DriftCorrectedTotal     prometheus.Counter
	JobLastSuccessTimestamp prometheus.Gauge
}

// NewMetrics creates the auditor metrics. Registration happens via promauto
// at creation time.
func NewMetrics() *Metrics {
	return &Metrics{
		ConfigMetrics: config.NewConfigMetrics("auditor"),

		JobRunsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "auditor_job_runs_total",
			Help: "Total number of audit passes by status (success/failure)",
		}, []string{"status"}),

		JobDurationSeconds: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "auditor_job_duration_seconds",
			Help:    "Duration of audit passes in seconds",
			Buckets: []float64{0.1, 0.5, 1, 5, 30, 60, 300},
		}),

		RepairsResolvedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "auditor_repairs_resolved_total",
			Help: "Total repair records resolved across all audit passes",
		}),

		DriftCorrectedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "auditor_drift_corrected_total",
			Help: "Total owners whose stored aggregates were rewritten by the drift sweep",
		}),

		JobLastSuccessTimestamp: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "auditor_job_last_success_timestamp",
			Help: "Unix timestamp of the last successful audit pass",
		}),
	}
}

// RecordJobRun increments the pass counter for the given status
// ("success" or "failure").
func (m *Metrics) RecordJobRun(status string) {
	m.JobRunsTotal.WithLabelValues(status).Inc()
}

// RecordJobDuration observes the duration of one audit pass in seconds.
func (m *Metrics) RecordJobDuration(seconds float64) {
	m.JobDurationSeconds.Observe(seconds)
}

// RecordRepairsResolved adds the number of repair records resolved in one pass.
func (m *Metrics) RecordRepairsResolved(count int) {
	m.RepairsResolvedTotal.Add(float64(count))
}

// RecordDriftCorrected adds the number of owners corrected in one pass.
func (m *Metrics) RecordDriftCorrected(count int) {
	m.DriftCorrectedTotal.Add(float64(count))
}

// RecordLastSuccess records the current time as the last successful pass.
func (m *Metrics) RecordLastSuccess() {
	m.JobLastSuccessTimestamp.SetToCurrentTime()
}
