package entity

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
)

const (
	// maxTitleLength bounds blog titles to keep list pages and link previews sane.
	maxTitleLength = 180

	// maxContentLength bounds the raw markdown body (roughly matches the
	// original 10 MB request body limit minus banner payload headroom).
	maxContentLength = 1 << 20

	// minPasswordLength is the minimum accepted password length at registration.
	minPasswordLength = 8

	maxUsernameLength = 40
	maxBioLength      = 240
)

var usernamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9._-]*$`)

// ValidateTitle checks that a blog title is present and within bounds.
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return &ValidationError{Field: "title", Message: "is required"}
	}
	if len(title) > maxTitleLength {
		return &ValidationError{
			Field:   "title",
			Message: fmt.Sprintf("must not exceed %d characters", maxTitleLength),
		}
	}
	return nil
}

// ValidateContent checks that a blog body is present and within bounds.
func ValidateContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return &ValidationError{Field: "content", Message: "is required"}
	}
	if len(content) > maxContentLength {
		return &ValidationError{
			Field:   "content",
			Message: fmt.Sprintf("must not exceed %d bytes", maxContentLength),
		}
	}
	return nil
}

// ValidateEmail checks that an address parses per RFC 5322.
// Addresses are stored lowercased; callers normalize before persisting.
func ValidateEmail(email string) error {
	if email == "" {
		return &ValidationError{Field: "email", Message: "is required"}
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return &ValidationError{Field: "email", Message: "is not a valid email address"}
	}
	return nil
}

// ValidateUsername checks handle shape: lowercase letters, digits and ._-
// separators, starting with an alphanumeric.
func ValidateUsername(username string) error {
	if username == "" {
		return &ValidationError{Field: "username", Message: "is required"}
	}
	if len(username) > maxUsernameLength {
		return &ValidationError{
			Field:   "username",
			Message: fmt.Sprintf("must not exceed %d characters", maxUsernameLength),
		}
	}
	if !usernamePattern.MatchString(username) {
		return &ValidationError{
			Field:   "username",
			Message: "may only contain lowercase letters, digits, '.', '_' and '-'",
		}
	}
	return nil
}

// ValidatePassword enforces the minimum password policy for registration
// and password changes.
func ValidatePassword(password string) error {
	if password == "" {
		return &ValidationError{Field: "password", Message: "is required"}
	}
	if len(password) < minPasswordLength {
		return &ValidationError{
			Field:   "password",
			Message: fmt.Sprintf("must be at least %d characters", minPasswordLength),
		}
	}
	return nil
}

// ValidateBio bounds the profile bio.
func ValidateBio(bio string) error {
	if len(bio) > maxBioLength {
		return &ValidationError{
			Field:   "bio",
			Message: fmt.Sprintf("must not exceed %d characters", maxBioLength),
		}
	}
	return nil
}
