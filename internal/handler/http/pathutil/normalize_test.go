package pathutil

import "testing"

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{name: "blog detail", path: "/blogs/123", want: "/blogs/:id"},
		{name: "blog reactions", path: "/blogs/123/reactions", want: "/blogs/:id/reactions"},
		{name: "blog reading list", path: "/blogs/45/readingList", want: "/blogs/:id/readingList"},
		{name: "blog visit", path: "/blogs/9/visit", want: "/blogs/:id/visit"},
		{name: "blog edit", path: "/blogs/9/edit", want: "/blogs/:id/edit"},
		{name: "blog delete", path: "/blogs/9/delete", want: "/blogs/:id/delete"},
		{name: "home page number", path: "/page/4", want: "/page/:page"},
		{name: "reading list page number", path: "/readingList/page/2", want: "/readingList/page/:page"},
		{name: "profile", path: "/profile/ada-lovelace-x1", want: "/profile/:username"},
		{name: "profile page number", path: "/profile/ada-lovelace-x1/page/3", want: "/profile/:username/page/:page"},
		{name: "root unchanged", path: "/", want: "/"},
		{name: "create blog unchanged", path: "/createblog", want: "/createblog"},
		{name: "reading list unchanged", path: "/readingList", want: "/readingList"},
		{name: "health unchanged", path: "/health", want: "/health"},
		{name: "metrics unchanged", path: "/metrics", want: "/metrics"},
		{name: "unknown path unchanged", path: "/unknown/path/123", want: "/unknown/path/123"},
		{name: "query stripped", path: "/blogs/123?ref=home", want: "/blogs/:id"},
		{name: "trailing slash stripped", path: "/blogs/123/", want: "/blogs/:id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizePath(tt.path); got != tt.want {
				t.Errorf("NormalizePath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func BenchmarkNormalizePath(b *testing.B) {
	paths := []string{
		"/blogs/123",
		"/blogs/123/reactions",
		"/profile/ada-lovelace-x1",
		"/page/4",
		"/createblog",
		"/health",
	}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		NormalizePath(paths[i%len(paths)])
	}
}
