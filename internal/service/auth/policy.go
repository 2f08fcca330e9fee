// Package auth provides the credential policy shared by the account flows.
// Basic shape checks (required, minimum length) live in the entity package;
// this adds the deny list of passwords too common to accept.
package auth

import (
	"strings"

	"github.com/thedevarpan/dot-developer/internal/domain/entity"
)

// Policy defines password requirements beyond the entity minimum.
type Policy struct {
	// WeakPasswords is a deny list compared case-insensitively.
	WeakPasswords []string
}

// DefaultPolicy returns the built-in deny list.
func DefaultPolicy() Policy {
	return Policy{
		WeakPasswords: []string{
			"password",
			"password1",
			"12345678",
			"123456789",
			"qwertyuiop",
			"letmein",
			"iloveyou",
		},
	}
}

// Validate rejects passwords on the deny list. Length and presence are
// checked by entity.ValidatePassword; callers run both.
func (p Policy) Validate(password string) error {
	lowered := strings.ToLower(password)
	for _, weak := range p.WeakPasswords {
		if lowered == weak {
			return &entity.ValidationError{Field: "password", Message: "is too common"}
		}
	}
	return nil
}
