package account

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/thedevarpan/dot-developer/internal/handler/http/respond"
	"github.com/thedevarpan/dot-developer/internal/service/session"
	accUC "github.com/thedevarpan/dot-developer/internal/usecase/account"
)

// LoginHandler signs a user in: on success a session is issued and the
// browser is sent to the home feed. Unknown email and wrong password each
// answer 400 with their own message.
type LoginHandler struct {
	Svc      *accUC.Service
	Sessions *session.Manager
	Logger   *slog.Logger
}

func (h LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var in loginInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.SafeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body"))
		return
	}

	u, err := h.Svc.Login(r.Context(), in.Email, in.Password)
	if err != nil {
		if errors.Is(err, accUC.ErrEmailNotFound) || errors.Is(err, accUC.ErrInvalidPassword) {
			respond.JSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
			return
		}
		h.Logger.Error("failed to sign in",
			slog.String("email", in.Email),
			slog.Any("error", respond.SanitizeError(err)))
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	if _, err := h.Sessions.Issue(r.Context(), w, u); err != nil {
		h.Logger.Error("failed to issue session",
			slog.Int64("user_id", u.ID),
			slog.Any("error", respond.SanitizeError(err)))
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// LogoutHandler destroys the viewer's session and sends the browser home.
type LogoutHandler struct {
	Sessions *session.Manager
	Logger   *slog.Logger
}

func (h LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	viewer := session.FromContext(r.Context())
	if viewer.Authenticated {
		if err := h.Sessions.Destroy(r.Context(), w, viewer.SessionID); err != nil {
			h.Logger.Warn("failed to destroy session",
				slog.Int64("user_id", viewer.UserID),
				slog.Any("error", respond.SanitizeError(err)))
		}
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
