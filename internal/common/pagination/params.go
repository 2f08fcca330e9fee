package pagination

import (
	"fmt"
	"net/http"
	"strconv"
)

// ParsePageNumber reads the {pageNumber} path value from a request routed
// through a ".../page/{pageNumber}" pattern. A request without the wildcard
// (the bare listing route) yields page 1.
//
// The original accepted any numeric page and let out-of-range values fall
// through to an empty result; here non-numeric and non-positive pages are
// rejected at the edge so the calculator itself can stay unclamped.
func ParsePageNumber(r *http.Request) (int, error) {
	raw := r.PathValue("pageNumber")
	if raw == "" {
		return 1, nil
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 0, fmt.Errorf("invalid page number: must be a positive integer")
	}
	return page, nil
}
