// Package engagement implements the reader-side interactions with a blog:
// reactions, the reading list and their denormalized counters. Every
// counter-moving operation runs as a paired unit (see internal/common/pairedwrite).
package engagement

import "errors"

var (
	// ErrAlreadyReacted is returned when the user's reaction set already
	// contains the blog.
	ErrAlreadyReacted = errors.New("blog already reacted")
	// ErrNotReacted is returned when removing a reaction that was never added.
	ErrNotReacted = errors.New("blog not reacted")
	// ErrAlreadySaved is returned when the blog is already on the reading list.
	ErrAlreadySaved = errors.New("blog already saved")
	// ErrNotSaved is returned when removing a blog that is not on the list.
	ErrNotSaved = errors.New("blog not saved")
	// ErrBlogNotFound is returned when the target blog does not exist.
	ErrBlogNotFound = errors.New("blog not found")
)
