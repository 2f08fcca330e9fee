package text

import (
	"strings"
	"testing"
)

func TestReadingTime(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
	}{
		{"empty", "", 0},
		{"whitespace only", "   \n\t  ", 0},
		{"single word", "hello", 1},
		{"under one minute", strings.Repeat("word ", 199), 1},
		{"exactly one minute", strings.Repeat("word ", 200), 1},
		{"just over one minute", strings.Repeat("word ", 201), 2},
		{"three minutes", strings.Repeat("word ", 600), 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ReadingTime(tt.content); got != tt.want {
				t.Fatalf("ReadingTime() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestGenerateUsername(t *testing.T) {
	got := GenerateUsername("Code With Sadee")

	if !strings.HasPrefix(got, "codewithsadee-") {
		t.Fatalf("username = %q, want prefix %q", got, "codewithsadee-")
	}
	suffix := strings.TrimPrefix(got, "codewithsadee-")
	if len(suffix) < 13 {
		t.Fatalf("timestamp suffix %q looks too short for unix millis", suffix)
	}
	for _, r := range suffix {
		if r < '0' || r > '9' {
			t.Fatalf("timestamp suffix %q contains non-digit", suffix)
		}
	}
}

func TestGenerateUsernameDistinctNames(t *testing.T) {
	a := GenerateUsername("Alice")
	b := GenerateUsername("Bob")
	if strings.Split(a, "-")[0] == strings.Split(b, "-")[0] {
		t.Fatalf("different names produced identical bases: %q vs %q", a, b)
	}
}
