// Package text provides small text-derived values used when publishing:
// estimated reading time and generated usernames.
package text

import "strings"

// avgReadWPM is the assumed average reading speed in words per minute.
const avgReadWPM = 200

// ReadingTime estimates the reading time of a blog body in minutes,
// rounding up so short posts still report one minute.
func ReadingTime(content string) int {
	words := len(strings.Fields(content))
	if words == 0 {
		return 0
	}
	return (words + avgReadWPM - 1) / avgReadWPM
}
