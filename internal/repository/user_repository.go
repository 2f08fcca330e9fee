package repository

import (
	"context"

	"github.com/thedevarpan/dot-developer/internal/domain/entity"
)

// UserRepository is the Owner Store: user rows, the reaction and reading-list
// membership sets, and the owner-side halves of the paired counter writes.
//
// Lookup methods return (nil, nil) when no row matches, mirroring the
// find-or-not-found contract of the document store this replaces.
type UserRepository interface {
	// Create inserts a user and fills in ID and timestamps.
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// UpdateProfile persists name, username, email, bio and profile photo.
	// Aggregate counters are not written by profile updates.
	UpdateProfile(ctx context.Context, user *entity.User) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	Delete(ctx context.Context, id int64) error

	// Reaction membership set: a user has reacted to a blog at most once.
	HasReacted(ctx context.Context, userID, blogID int64) (bool, error)
	AddReacted(ctx context.Context, userID, blogID int64) error
	RemoveReacted(ctx context.Context, userID, blogID int64) error

	// Reading-list membership set.
	HasSaved(ctx context.Context, userID, blogID int64) (bool, error)
	AddSaved(ctx context.Context, userID, blogID int64) error
	RemoveSaved(ctx context.Context, userID, blogID int64) error

	// AdjustAggregates applies deltas to the denormalized owner aggregates in
	// one atomic write. Deletion reconciliation passes all three deltas at
	// once so the owner row is written exactly once.
	AdjustAggregates(ctx context.Context, userID, publishedDelta, visitsDelta, reactionsDelta int64) error

	// ListIDs and ComputedAggregates support the consistency audit: the
	// computed values are live sums over the blogs table, to be compared
	// against the stored aggregates.
	ListIDs(ctx context.Context) ([]int64, error)
	ComputedAggregates(ctx context.Context, userID int64) (published, visits, reactions int64, err error)
	// SetAggregates overwrites the stored aggregates with recomputed values.
	SetAggregates(ctx context.Context, userID, published, visits, reactions int64) error
}
