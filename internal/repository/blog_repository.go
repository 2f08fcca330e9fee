// Package repository declares the persistence contracts the use cases depend
// on. Implementations live under internal/infra/adapter/persistence.
package repository

import (
	"context"

	"github.com/thedevarpan/dot-developer/internal/domain/entity"
)

// Author is the owner projection attached to listed blogs: just enough to
// render a byline without loading the full user record.
type Author struct {
	ID       int64
	Name     string
	Username string
	PhotoURL string
}

// BlogWithAuthor pairs a blog with its author's byline fields.
type BlogWithAuthor struct {
	Blog   *entity.Blog
	Author Author
}

// BlogRepository is the Item Store: blog rows plus the blog-side halves of the
// paired counter writes. All counter mutations are atomic in-place increments
// (SET c = c + delta); callers never read-modify-write a counter.
type BlogRepository interface {
	// Create inserts a blog with zeroed counters and fills in ID and timestamps.
	Create(ctx context.Context, blog *entity.Blog) error
	// Get returns (nil, nil) when the blog does not exist.
	Get(ctx context.Context, id int64) (*entity.Blog, error)
	// GetWithAuthor returns the blog together with its author's byline fields.
	// Returns (nil, nil) when the blog does not exist.
	GetWithAuthor(ctx context.Context, id int64) (*BlogWithAuthor, error)
	Exists(ctx context.Context, id int64) (bool, error)

	// ListLatest returns blogs ordered by creation time descending.
	ListLatest(ctx context.Context, offset, limit int) ([]BlogWithAuthor, error)
	CountBlogs(ctx context.Context) (int64, error)

	// ListByOwner returns one owner's blogs, newest first.
	ListByOwner(ctx context.Context, ownerID int64, offset, limit int) ([]BlogWithAuthor, error)
	CountByOwner(ctx context.Context, ownerID int64) (int64, error)

	// ListRecentByOwnerExcluding returns up to limit of an owner's newest
	// blogs, skipping the one being viewed. Used for the "more from this
	// author" strip on the detail page.
	ListRecentByOwnerExcluding(ctx context.Context, ownerID, excludeID int64, limit int) ([]BlogWithAuthor, error)

	// ListSaved returns the blogs on a user's reading list, newest saved first.
	ListSaved(ctx context.Context, userID int64, offset, limit int) ([]BlogWithAuthor, error)
	CountSaved(ctx context.Context, userID int64) (int64, error)

	// UpdateContent replaces title, content, banner URL and reading time.
	// Engagement counters are never touched by an edit.
	UpdateContent(ctx context.Context, blog *entity.Blog) error

	// IncrementReaction, IncrementBookmark and IncrementVisit apply an atomic
	// in-place delta to the respective counter.
	IncrementReaction(ctx context.Context, id int64, delta int64) error
	IncrementBookmark(ctx context.Context, id int64, delta int64) error
	IncrementVisit(ctx context.Context, id int64, delta int64) error

	Delete(ctx context.Context, id int64) error
	// DeleteByOwner removes every blog owned by a user (account deletion cascade).
	DeleteByOwner(ctx context.Context, ownerID int64) error
}
