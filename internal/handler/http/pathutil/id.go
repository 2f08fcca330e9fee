package pathutil

import (
	"errors"
	"net/http"
	"strconv"
)

// ErrInvalidID is returned when the ID in the URL path is invalid.
var ErrInvalidID = errors.New("invalid id")

// BlogID extracts and parses the blog ID path value from a request routed
// through a pattern containing {blogID}.
//
// Returns ErrInvalidID if the value is missing, non-numeric or <= 0.
func BlogID(r *http.Request) (int64, error) {
	return ParseID(r.PathValue("blogID"))
}

// PageNumber extracts the page number path value from a request routed
// through a pattern containing {pageNumber}. A missing value means the
// unpaged form of the route and resolves to page 1.
func PageNumber(r *http.Request) (int64, error) {
	raw := r.PathValue("pageNumber")
	if raw == "" {
		return 1, nil
	}
	return ParseID(raw)
}

// ParseID parses a positive int64 from its decimal string form.
func ParseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}
	return id, nil
}
