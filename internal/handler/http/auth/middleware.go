// Package auth provides the session middleware for the HTTP layer: resolving
// the session cookie into a viewer and guarding routes that require one.
package auth

import (
	"log/slog"
	"net/http"

	"github.com/thedevarpan/dot-developer/internal/handler/http/respond"
	"github.com/thedevarpan/dot-developer/internal/service/session"
)

// Session returns middleware that resolves the session cookie and attaches
// the viewer to the request context. Resolution failures are logged and the
// request continues as anonymous; pages degrade to signed-out chrome rather
// than erroring.
func Session(mgr *session.Manager, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			viewer, err := mgr.Resolve(r.Context(), r)
			if err != nil {
				logger.Warn("session resolution failed",
					slog.String("path", r.URL.Path),
					slog.Any("error", respond.SanitizeError(err)))
				viewer = session.Viewer{}
			}
			next.ServeHTTP(w, r.WithContext(session.NewContext(r.Context(), viewer)))
		})
	}
}

// RequirePage wraps a page handler, redirecting anonymous visitors to the
// login form.
func RequirePage(next http.Handler) http.Handler {
	return require(next, func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	})
}

// RequireAPI wraps an API-style handler, rejecting anonymous requests with a
// 401 JSON body.
func RequireAPI(next http.Handler) http.Handler {
	return require(next, func(w http.ResponseWriter, r *http.Request) {
		respond.JSON(w, http.StatusUnauthorized, map[string]string{
			"message": "You must be signed in to perform this action.",
		})
	})
}

func require(next http.Handler, reject http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !session.FromContext(r.Context()).Authenticated {
			reject(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}
