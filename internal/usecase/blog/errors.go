// Package blog provides use cases for authoring and reading blog posts:
// creation, editing, deletion, the paginated listings, and visit recording.
// Every operation that moves an engagement counter performs the blog-side and
// owner-side writes as a named paired unit (see pairedwrite.go).
package blog

import "errors"

// Sentinel errors for blog use case operations.
var (
	// ErrBlogNotFound indicates that the requested blog was not found.
	ErrBlogNotFound = errors.New("blog not found")

	// ErrInvalidBlogID indicates that the provided blog ID is invalid.
	// Blog IDs must be positive integers.
	ErrInvalidBlogID = errors.New("invalid blog ID")

	// ErrNotBlogOwner indicates that the acting user does not own the blog
	// they are trying to edit or delete.
	ErrNotBlogOwner = errors.New("not the owner of this blog")
)
