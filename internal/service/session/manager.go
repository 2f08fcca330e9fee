// Package session issues and resolves cookie-backed sessions. Tokens are
// opaque UUIDs; the server-side record mirrors the signed-in user's display
// fields so pages render the chrome without a user fetch.
package session

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/thedevarpan/dot-developer/internal/domain/entity"
	"github.com/thedevarpan/dot-developer/internal/observability/metrics"
	"github.com/thedevarpan/dot-developer/internal/repository"
)

// CookieName is the session cookie.
const CookieName = "session_id"

// DefaultTTL matches the original one-week session lifetime.
const DefaultTTL = 7 * 24 * time.Hour

// Viewer is the request's resolved session state. The zero value is an
// anonymous visitor.
type Viewer struct {
	Authenticated bool
	SessionID     string
	UserID        int64
	Name          string
	Username      string
	PhotoURL      string
}

type ctxKey struct{}

// NewContext returns ctx carrying the viewer.
func NewContext(ctx context.Context, v Viewer) context.Context {
	return context.WithValue(ctx, ctxKey{}, v)
}

// FromContext returns the viewer attached by the session middleware. The
// zero Viewer is returned when none is attached.
func FromContext(ctx context.Context) Viewer {
	v, _ := ctx.Value(ctxKey{}).(Viewer)
	return v
}

// Manager creates, resolves and destroys sessions.
type Manager struct {
	Store  repository.SessionRepository
	TTL    time.Duration
	Secure bool // mark cookies Secure; on behind TLS
}

// Issue creates a session for the user and sets the cookie on the response.
func (m *Manager) Issue(ctx context.Context, w http.ResponseWriter, u *entity.User) (*repository.Session, error) {
	ttl := m.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	s := &repository.Session{
		ID:        uuid.NewString(),
		UserID:    u.ID,
		Name:      u.Name,
		Username:  u.Username,
		PhotoURL:  u.ProfilePhoto.URL,
		ExpiresAt: time.Now().Add(ttl),
	}
	if err := m.Store.Create(ctx, s); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    s.ID,
		Path:     "/",
		MaxAge:   int(ttl / time.Second),
		HttpOnly: true,
		Secure:   m.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	metrics.RecordSessionIssued()
	return s, nil
}

// Resolve looks up the request's session cookie and returns the viewer.
// Missing, unknown and expired cookies all resolve to the anonymous viewer;
// resolution never fails the request.
func (m *Manager) Resolve(ctx context.Context, r *http.Request) (Viewer, error) {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return Viewer{}, nil
	}
	s, err := m.Store.Get(ctx, c.Value)
	if err != nil {
		return Viewer{}, fmt.Errorf("get session: %w", err)
	}
	if s == nil {
		return Viewer{}, nil
	}
	return Viewer{
		Authenticated: true,
		SessionID:     s.ID,
		UserID:        s.UserID,
		Name:          s.Name,
		Username:      s.Username,
		PhotoURL:      s.PhotoURL,
	}, nil
}

// Destroy removes the session and expires the cookie.
func (m *Manager) Destroy(ctx context.Context, w http.ResponseWriter, sessionID string) error {
	if err := m.Store.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	m.clearCookie(w)
	return nil
}

// DestroyAll removes every session belonging to the user, signing them out
// on all devices. Used on account deletion.
func (m *Manager) DestroyAll(ctx context.Context, w http.ResponseWriter, userID int64) error {
	if err := m.Store.DeleteByUser(ctx, userID); err != nil {
		return fmt.Errorf("delete sessions: %w", err)
	}
	if w != nil {
		m.clearCookie(w)
	}
	return nil
}

// Mirror rewrites the mirrored display fields on all of the user's sessions
// after a settings change.
func (m *Manager) Mirror(ctx context.Context, u *entity.User) error {
	if err := m.Store.UpdateMirror(ctx, u.ID, u.Name, u.Username, u.ProfilePhoto.URL); err != nil {
		return fmt.Errorf("update session mirror: %w", err)
	}
	return nil
}

// PurgeExpired removes expired sessions. Run periodically by the audit job.
func (m *Manager) PurgeExpired(ctx context.Context) (int64, error) {
	n, err := m.Store.DeleteExpired(ctx)
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	if n > 0 {
		metrics.RecordSessionsPurged(n)
	}
	return n, nil
}

func (m *Manager) clearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
