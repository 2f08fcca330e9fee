package pagination

import "testing"

func TestPaginate_FirstPage(t *testing.T) {
	w := Paginate("/x/", 1, 10, 25)

	if w.Skip != 0 {
		t.Errorf("Skip = %d, want 0", w.Skip)
	}
	if w.Next != "/x/page/2" {
		t.Errorf("Next = %q, want %q", w.Next, "/x/page/2")
	}
	if w.Prev != "" {
		t.Errorf("Prev = %q, want absent", w.Prev)
	}
	if w.TotalPages != 3 {
		t.Errorf("TotalPages = %d, want 3", w.TotalPages)
	}
	if w.CurrentPage != 1 {
		t.Errorf("CurrentPage = %d, want 1", w.CurrentPage)
	}
}

func TestPaginate_LastPage(t *testing.T) {
	w := Paginate("/x/", 3, 10, 25)

	if w.Skip != 20 {
		t.Errorf("Skip = %d, want 20", w.Skip)
	}
	if w.Next != "" {
		t.Errorf("Next = %q, want absent", w.Next)
	}
	if w.Prev != "/x/page/2" {
		t.Errorf("Prev = %q, want %q", w.Prev, "/x/page/2")
	}
	if w.TotalPages != 3 {
		t.Errorf("TotalPages = %d, want 3", w.TotalPages)
	}
	if w.CurrentPage != 3 {
		t.Errorf("CurrentPage = %d, want 3", w.CurrentPage)
	}
}

func TestPaginate_SinglePage(t *testing.T) {
	w := Paginate("/x/", 1, 10, 5)

	if w.Next != "" || w.Prev != "" {
		t.Errorf("Next = %q, Prev = %q, want both absent", w.Next, w.Prev)
	}
	if w.TotalPages != 1 {
		t.Errorf("TotalPages = %d, want 1", w.TotalPages)
	}
}

func TestPaginate_DefaultsToPageOne(t *testing.T) {
	w := Paginate("/", 0, 18, 40)

	if w.CurrentPage != 1 {
		t.Errorf("CurrentPage = %d, want 1", w.CurrentPage)
	}
	if w.Skip != 0 {
		t.Errorf("Skip = %d, want 0", w.Skip)
	}
	if w.Next != "/page/2" {
		t.Errorf("Next = %q, want %q", w.Next, "/page/2")
	}
}

// Paginate performs no clamping: a page beyond the last yields an empty
// window with neither link (prev is suppressed once currentPage > totalPages).
func TestPaginate_BeyondLastPage(t *testing.T) {
	w := Paginate("/x/", 5, 10, 25)

	if w.Next != "" {
		t.Errorf("Next = %q, want absent", w.Next)
	}
	if w.Prev != "" {
		t.Errorf("Prev = %q, want absent", w.Prev)
	}
	if w.Skip != 40 {
		t.Errorf("Skip = %d, want 40", w.Skip)
	}
}

func TestPaginate_Deterministic(t *testing.T) {
	a := Paginate("/readinglist/", 2, 20, 55)
	b := Paginate("/readinglist/", 2, 20, 55)
	if a != b {
		t.Fatalf("identical inputs produced different windows: %+v vs %+v", a, b)
	}
}

// TotalPages must equal ceil(total/limit) for every combination.
func TestCalculateTotalPages_CeilingProperty(t *testing.T) {
	for total := int64(0); total <= 200; total++ {
		for _, limit := range []int{1, 3, 10, 18, 20} {
			got := CalculateTotalPages(total, limit)
			want := int((total + int64(limit) - 1) / int64(limit))
			if got != want {
				t.Fatalf("CalculateTotalPages(%d, %d) = %d, want %d", total, limit, got, want)
			}
		}
	}
}

func TestCalculateOffset(t *testing.T) {
	tests := []struct {
		page, limit, want int
	}{
		{1, 20, 0},
		{2, 20, 20},
		{3, 10, 20},
		{1, 18, 0},
		{4, 18, 54},
	}
	for _, tt := range tests {
		if got := CalculateOffset(tt.page, tt.limit); got != tt.want {
			t.Errorf("CalculateOffset(%d, %d) = %d, want %d", tt.page, tt.limit, got, tt.want)
		}
	}
}
