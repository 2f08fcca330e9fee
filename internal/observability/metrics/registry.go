// Package metrics provides centralized Prometheus metrics for the application.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics track HTTP request patterns and performance
var (
	// HTTPRequestsTotal counts total HTTP requests by method, path, and status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration measures HTTP request duration in seconds
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)

// Engagement metrics track the counter-moving operations: reactions,
// reading-list membership, visits, and blog create/delete.
var (
	// EngagementOpsTotal counts engagement operations by outcome.
	// Labels: op (add-reaction, remove-reaction, save-blog, unsave-blog,
	// record-visit, create-blog, delete-blog), status (ok, rejected, error)
	EngagementOpsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "engagement_operations_total",
			Help: "Total number of engagement operations by outcome",
		},
		[]string{"op", "status"},
	)

	// PairedWriteFailuresTotal counts paired counter units left half applied
	// because a later write failed after an earlier one succeeded.
	PairedWriteFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "counter_paired_write_failures_total",
			Help: "Paired counter writes left half applied",
		},
		[]string{"op"},
	)

	// CounterRepairsResolvedTotal counts repair records resolved by the audit job.
	CounterRepairsResolvedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "counter_repairs_resolved_total",
			Help: "Counter repair records resolved by the audit job",
		},
	)

	// AggregateDriftTotal counts users whose stored aggregates disagreed with
	// the recomputed sums during an audit sweep.
	AggregateDriftTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aggregate_drift_detected_total",
			Help: "Users whose stored aggregates drifted from recomputed sums",
		},
		[]string{"field"},
	)

	// BlogsTotal tracks the current number of blogs. Updated on each home
	// page COUNT query.
	BlogsTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "blogs_total",
			Help: "Current total number of blogs",
		},
	)

	// ImageUploadsTotal counts image host uploads by outcome.
	// Labels: status (success, failure)
	ImageUploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "image_uploads_total",
			Help: "Total number of image host uploads",
		},
		[]string{"status"},
	)
)

// Session metrics
var (
	// SessionsIssuedTotal counts sessions created at login.
	SessionsIssuedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sessions_issued_total",
			Help: "Total number of sessions issued",
		},
	)

	// SessionsPurgedTotal counts expired sessions removed by cleanup.
	SessionsPurgedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sessions_purged_total",
			Help: "Total number of expired sessions purged",
		},
	)
)
