// Package entity defines the core domain entities and validation logic for the application.
// It contains the fundamental business objects such as Blog and User, along with
// their validation rules and domain-specific errors.
package entity

import "time"

// Banner holds the hosted banner image of a blog.
// PublicID is the image-host identifier used to overwrite the asset on update.
type Banner struct {
	URL      string
	PublicID string
}

// Blog represents a published blog post.
// The engagement counters (Reaction, TotalBookmark, TotalVisit) are denormalized:
// they are maintained by paired writes together with the owner's aggregate
// counters, never recomputed from membership rows on the read path.
type Blog struct {
	ID            int64
	OwnerID       int64
	Title         string
	Content       string
	Banner        Banner
	ReadingTime   int
	Reaction      int64
	TotalBookmark int64
	TotalVisit    int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
