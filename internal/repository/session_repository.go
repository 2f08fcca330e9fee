package repository

import (
	"context"
	"time"
)

// Session is the server-side record behind a session cookie. Name, Username
// and PhotoURL are mirrored copies of user fields so pages can render the
// signed-in chrome without a user fetch; settings changes rewrite the mirror.
type Session struct {
	ID        string
	UserID    int64
	Name      string
	Username  string
	PhotoURL  string
	ExpiresAt time.Time
}

// SessionRepository stores sessions keyed by opaque token.
type SessionRepository interface {
	Create(ctx context.Context, s *Session) error
	// Get returns (nil, nil) when the session does not exist or has expired.
	Get(ctx context.Context, id string) (*Session, error)
	// UpdateMirror refreshes the mirrored profile fields on every session
	// belonging to the user.
	UpdateMirror(ctx context.Context, userID int64, name, username, photoURL string) error
	Delete(ctx context.Context, id string) error
	// DeleteByUser destroys the user's sessions on every device.
	DeleteByUser(ctx context.Context, userID int64) error
	// DeleteExpired removes expired sessions and reports how many were purged.
	DeleteExpired(ctx context.Context) (int64, error)
}
