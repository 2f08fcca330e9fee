package pagination

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts the total number of paginated listing requests.
	// Labels: listing (home, profile, readinglist), page_range (page bucket)
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blog_pagination_requests_total",
			Help: "Total number of paginated listing requests",
		},
		[]string{"listing", "page_range"},
	)

	// ErrorsTotal counts pagination errors by type.
	// Labels: listing, type (validation, database)
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blog_pagination_errors_total",
			Help: "Total number of pagination errors",
		},
		[]string{"listing", "type"},
	)
)

// RecordRequest records a paginated listing request.
func RecordRequest(listing string, page int) {
	RequestsTotal.WithLabelValues(listing, getPageRangeBucket(page)).Inc()
}

// RecordError records a pagination error by type.
func RecordError(listing, errType string) {
	ErrorsTotal.WithLabelValues(listing, errType).Inc()
}

// getPageRangeBucket buckets page numbers to bound label cardinality.
func getPageRangeBucket(page int) string {
	switch {
	case page <= 10:
		return "1-10"
	case page <= 50:
		return "11-50"
	case page <= 100:
		return "51-100"
	default:
		return fmt.Sprintf("%d+", 101)
	}
}
