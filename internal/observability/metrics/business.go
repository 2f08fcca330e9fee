package metrics

import "time"

// RecordEngagementOp records the outcome of an engagement operation.
// Status should be "ok", "rejected" (precondition failed) or "error".
func RecordEngagementOp(op, status string) {
	EngagementOpsTotal.WithLabelValues(op, status).Inc()
}

// RecordPairedWriteFailure records a paired counter unit left half applied.
func RecordPairedWriteFailure(op string) {
	PairedWriteFailuresTotal.WithLabelValues(op).Inc()
}

// RecordRepairResolved records one repair record resolved by the audit job.
func RecordRepairResolved() {
	CounterRepairsResolvedTotal.Inc()
}

// RecordAggregateDrift records drift detected on one aggregate field
// ("blog_published", "total_visits" or "total_reactions").
func RecordAggregateDrift(field string) {
	AggregateDriftTotal.WithLabelValues(field).Inc()
}

// UpdateBlogsTotal updates the total count of blogs.
// Updated on each home page COUNT query rather than on a timer.
func UpdateBlogsTotal(count int64) {
	BlogsTotal.Set(float64(count))
}

// RecordImageUpload records the result of an image host upload.
func RecordImageUpload(success bool) {
	status := "success"
	if !success {
		status = "failure"
	}
	ImageUploadsTotal.WithLabelValues(status).Inc()
}

// RecordSessionIssued records a session created at login.
func RecordSessionIssued() {
	SessionsIssuedTotal.Inc()
}

// RecordSessionsPurged records expired sessions removed by cleanup.
func RecordSessionsPurged(n int64) {
	SessionsPurgedTotal.Add(float64(n))
}

// RecordHTTPRequest records an HTTP request with its duration.
// The path should be the route pattern, not the raw URL, to bound cardinality.
func RecordHTTPRequest(method, path, status string, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}
