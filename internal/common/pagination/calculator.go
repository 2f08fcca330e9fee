package pagination

import "fmt"

// Window describes one page of a paginated listing together with the
// navigation links the templates render. Next and Prev are route paths of the
// form "<baseRoute>page/<n>"; an empty string means the link is absent.
type Window struct {
	Next        string
	Prev        string
	TotalPages  int
	CurrentPage int
	Skip        int
	Limit       int
}

// HasNext reports whether a next-page link exists.
func (w Window) HasNext() bool { return w.Next != "" }

// HasPrev reports whether a previous-page link exists.
func (w Window) HasPrev() bool { return w.Prev != "" }

// Paginate computes the navigation window for a listing.
//
// Rules:
//   - currentPage defaults to 1 when requestedPage is 0 (absent)
//   - skip = limit * (currentPage - 1)
//   - totalPages = ceil(total / limit)
//   - next exists while items remain beyond the current page
//   - prev exists while skip > 0 and currentPage has not run past the last page
//
// The function is pure and performs no range clamping; callers validate the
// requested page before handing it in (see ParsePageNumber).
//
// Examples:
//   - Paginate("/x/", 1, 10, 25) -> {Next: "/x/page/2", TotalPages: 3, Skip: 0}
//   - Paginate("/x/", 3, 10, 25) -> {Prev: "/x/page/2", TotalPages: 3, Skip: 20}
func Paginate(baseRoute string, requestedPage int, limit int, total int64) Window {
	currentPage := requestedPage
	if currentPage == 0 {
		currentPage = 1
	}

	skip := limit * (currentPage - 1)
	totalPages := CalculateTotalPages(total, limit)

	w := Window{
		TotalPages:  totalPages,
		CurrentPage: currentPage,
		Skip:        skip,
		Limit:       limit,
	}
	if total > int64(currentPage)*int64(limit) {
		w.Next = fmt.Sprintf("%spage/%d", baseRoute, currentPage+1)
	}
	if skip > 0 && currentPage <= totalPages {
		w.Prev = fmt.Sprintf("%spage/%d", baseRoute, currentPage-1)
	}
	return w
}

// CalculateOffset calculates the database OFFSET value based on page number and limit.
// Page numbers are 1-based, so page 1 has offset 0.
func CalculateOffset(page, limit int) int {
	return (page - 1) * limit
}

// CalculateTotalPages calculates the total number of pages using ceiling division.
// A total of 0 yields 0 pages, matching ceil(0/limit).
func CalculateTotalPages(total int64, limit int) int {
	if total <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
