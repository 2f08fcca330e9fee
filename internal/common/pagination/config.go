// Package pagination computes page windows for the listing pages: the home
// feed, profiles and the reading list. The calculator is pure; parsing and
// validation of the requested page happen at the HTTP edge.
package pagination

import (
	"os"
	"strconv"
)

// Config holds the per-listing page sizes.
// Defaults: 18 blogs on the home feed, 20 everywhere else.
type Config struct {
	HomeLimit    int // Blogs per page on the home feed
	ListLimit    int // Blogs per page on profile and reading-list pages
	OwnerPreview int // Recent blogs shown beside a blog detail page
}

// DefaultConfig returns the default pagination configuration.
func DefaultConfig() Config {
	return Config{
		HomeLimit:    18,
		ListLimit:    20,
		OwnerPreview: 3,
	}
}

// LoadFromEnv loads pagination config from environment variables.
// Supported environment variables:
//   - PAGINATION_HOME_LIMIT: Blogs per page on the home feed
//   - PAGINATION_LIST_LIMIT: Blogs per page on profile/reading-list pages
//
// Falls back to DefaultConfig() if environment variables are not set.
func LoadFromEnv() Config {
	cfg := DefaultConfig()
	cfg.HomeLimit = getEnvAsInt("PAGINATION_HOME_LIMIT", cfg.HomeLimit)
	cfg.ListLimit = getEnvAsInt("PAGINATION_LIST_LIMIT", cfg.ListLimit)
	return cfg
}

// getEnvAsInt retrieves an environment variable and parses it as an integer.
// Returns the default value if the variable is not set, not parseable, or not positive.
func getEnvAsInt(key string, defaultValue int) int {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultValue
	}
	val, err := strconv.Atoi(valStr)
	if err != nil || val <= 0 {
		return defaultValue
	}
	return val
}
