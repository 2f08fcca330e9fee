package entity

import "time"

// ProfilePhoto holds the hosted profile image of a user.
type ProfilePhoto struct {
	URL      string
	PublicID string
}

// User represents a registered account.
// BlogPublished, TotalVisits and TotalReactions are owner-level aggregates
// derived from the user's blogs. They are eventually-consistent invariants
// maintained by paired writes:
//
//	BlogPublished  == number of owned blogs
//	TotalReactions == sum of Reaction over owned blogs
//	TotalVisits    == sum of TotalVisit over owned blogs
type User struct {
	ID             int64
	Name           string
	Username       string
	Email          string
	PasswordHash   string
	Bio            string
	ProfilePhoto   ProfilePhoto
	BlogPublished  int64
	TotalVisits    int64
	TotalReactions int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
