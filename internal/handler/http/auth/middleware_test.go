package auth

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/thedevarpan/dot-developer/internal/domain/entity"
	"github.com/thedevarpan/dot-developer/internal/repository/repotest"
	"github.com/thedevarpan/dot-developer/internal/service/session"
)

func TestSession_AttachesViewer(t *testing.T) {
	mgr := &session.Manager{Store: repotest.NewSessionStore()}

	// セッションを発行してクッキーを取得
	issueRec := httptest.NewRecorder()
	s, err := mgr.Issue(context.Background(), issueRec, &entity.User{
		ID:       7,
		Name:     "Ada",
		Username: "ada",
	})
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	var got session.Viewer
	handler := Session(mgr, slog.Default())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = session.FromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: s.ID})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if !got.Authenticated {
		t.Fatal("expected authenticated viewer")
	}
	if got.UserID != 7 || got.Username != "ada" {
		t.Errorf("viewer = %+v, want user 7 / ada", got)
	}
}

func TestSession_AnonymousWithoutCookie(t *testing.T) {
	mgr := &session.Manager{Store: repotest.NewSessionStore()}

	var got session.Viewer
	handler := Session(mgr, slog.Default())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = session.FromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got.Authenticated {
		t.Error("expected anonymous viewer without cookie")
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestSession_UnknownCookieIsAnonymous(t *testing.T) {
	mgr := &session.Manager{Store: repotest.NewSessionStore()}

	var got session.Viewer
	handler := Session(mgr, slog.Default())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = session.FromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "no-such-session"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got.Authenticated {
		t.Error("expected anonymous viewer for unknown session")
	}
}

func TestRequirePage_RedirectsAnonymous(t *testing.T) {
	handler := RequirePage(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not run for anonymous request")
	}))

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Errorf("Location = %q, want /login", loc)
	}
}

func TestRequireAPI_RejectsAnonymousWithJSON(t *testing.T) {
	handler := RequireAPI(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not run for anonymous request")
	}))

	req := httptest.NewRequest(http.MethodPut, "/blogs/1/reactions", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "signed in") {
		t.Errorf("body = %q, want sign-in message", rec.Body.String())
	}
}

func TestRequireAPI_PassesAuthenticated(t *testing.T) {
	handler := RequireAPI(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodPut, "/blogs/1/reactions", nil)
	ctx := session.NewContext(req.Context(), session.Viewer{Authenticated: true, UserID: 7})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req.WithContext(ctx))

	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
}
