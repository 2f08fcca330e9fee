package text

import (
	"fmt"
	"strings"
	"time"
)

// GenerateUsername derives a registration username from a display name:
// the name lowercased with spaces removed, suffixed with the current Unix
// time in milliseconds. The suffix keeps generated usernames effectively
// unique without a round trip to the store; the unique index remains the
// final arbiter.
func GenerateUsername(name string) string {
	base := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "")
	return fmt.Sprintf("%s-%d", base, time.Now().UnixMilli())
}
