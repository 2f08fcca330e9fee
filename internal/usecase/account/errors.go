// Package account implements registration, authentication and profile
// management. The sentinel errors below carry the exact user-facing messages
// the HTTP layer returns verbatim, so their texts are full sentences.
package account

import "errors"

var (
	ErrUserNotFound = errors.New("user not found")

	// Registration conflicts.
	ErrEmailTaken    = errors.New("This email is already associated with an account.")
	ErrUsernameTaken = errors.New("This username is already in use.")

	// Login failures.
	ErrEmailNotFound   = errors.New("No user found with this email address.")
	ErrInvalidPassword = errors.New("Invalid password. Please ensure you've entered the correct password and try again.")

	// Settings conflicts.
	ErrEmailInUse         = errors.New("Sorry, an account is already associated with this email address.")
	ErrUsernameInUse      = errors.New("Sorry, that username is already taken. Please choose a different one.")
	ErrOldPasswordInvalid = errors.New("Your old password is not valid.")
)
