package account

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/thedevarpan/dot-developer/internal/domain/entity"
	"github.com/thedevarpan/dot-developer/internal/handler/http/render"
	"github.com/thedevarpan/dot-developer/internal/handler/http/respond"
	"github.com/thedevarpan/dot-developer/internal/service/session"
	accUC "github.com/thedevarpan/dot-developer/internal/usecase/account"
)

// SettingsPageHandler renders the settings forms prefilled with the stored
// account fields.
type SettingsPageHandler struct {
	Svc      *accUC.Service
	Renderer *render.Renderer
	Logger   *slog.Logger
}

func (h SettingsPageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	viewer := session.FromContext(r.Context())

	u, err := h.Svc.Account(r.Context(), viewer.UserID)
	if err != nil {
		h.Logger.Error("failed to load settings",
			slog.Int64("user_id", viewer.UserID),
			slog.Any("error", err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.Renderer.HTML(w, http.StatusOK, "settings", render.Page{
		Title:  "Settings",
		Viewer: viewer,
		Data: settingsData{
			Name:     u.Name,
			Username: u.Username,
			Email:    u.Email,
			Bio:      u.Bio,
		},
	})
}

// BasicInfoHandler applies the basic-info settings form. Conflicting email
// and username answer 400 with their own messages; on success the session
// mirror is refreshed so the chrome shows the new fields immediately.
type BasicInfoHandler struct {
	Svc      *accUC.Service
	Sessions *session.Manager
	Logger   *slog.Logger
}

func (h BasicInfoHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	viewer := session.FromContext(r.Context())

	var in basicInfoInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.SafeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body"))
		return
	}

	u, err := h.Svc.UpdateBasicInfo(r.Context(), accUC.BasicInfoInput{
		UserID:       viewer.UserID,
		Name:         in.Name,
		Username:     in.Username,
		Email:        in.Email,
		Bio:          in.Bio,
		ProfilePhoto: in.ProfilePhoto,
	})
	if err != nil {
		var vErr *entity.ValidationError
		switch {
		case errors.Is(err, accUC.ErrEmailInUse), errors.Is(err, accUC.ErrUsernameInUse):
			respond.JSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
		case errors.As(err, &vErr):
			respond.SafeError(w, http.StatusBadRequest, err)
		default:
			h.Logger.Error("failed to update basic info",
				slog.Int64("user_id", viewer.UserID),
				slog.Any("error", respond.SanitizeError(err)))
			respond.SafeError(w, http.StatusInternalServerError, err)
		}
		return
	}

	if err := h.Sessions.Mirror(r.Context(), u); err != nil {
		h.Logger.Warn("failed to refresh session mirror",
			slog.Int64("user_id", u.ID),
			slog.Any("error", respond.SanitizeError(err)))
	}

	w.WriteHeader(http.StatusOK)
}

// PasswordHandler applies the password settings form. A wrong old password
// answers 400 with its message.
type PasswordHandler struct {
	Svc    *accUC.Service
	Logger *slog.Logger
}

func (h PasswordHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	viewer := session.FromContext(r.Context())

	var in passwordInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.SafeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body"))
		return
	}

	err := h.Svc.UpdatePassword(r.Context(), viewer.UserID, in.OldPassword, in.NewPassword)
	if err != nil {
		var vErr *entity.ValidationError
		switch {
		case errors.Is(err, accUC.ErrOldPasswordInvalid):
			respond.JSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
		case errors.As(err, &vErr):
			respond.SafeError(w, http.StatusBadRequest, err)
		default:
			h.Logger.Error("failed to update password",
				slog.Int64("user_id", viewer.UserID),
				slog.Any("error", respond.SanitizeError(err)))
			respond.SafeError(w, http.StatusInternalServerError, err)
		}
		return
	}

	w.WriteHeader(http.StatusOK)
}

// DeleteAccountHandler removes the account, its blogs and every session the
// user holds, signing them out on all devices.
type DeleteAccountHandler struct {
	Svc      *accUC.Service
	Sessions *session.Manager
	Logger   *slog.Logger
}

func (h DeleteAccountHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	viewer := session.FromContext(r.Context())

	if err := h.Svc.DeleteAccount(r.Context(), viewer.UserID); err != nil {
		h.Logger.Error("failed to delete account",
			slog.Int64("user_id", viewer.UserID),
			slog.Any("error", respond.SanitizeError(err)))
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	if err := h.Sessions.DestroyAll(r.Context(), w, viewer.UserID); err != nil {
		h.Logger.Warn("failed to destroy sessions after account deletion",
			slog.Int64("user_id", viewer.UserID),
			slog.Any("error", respond.SanitizeError(err)))
	}

	w.WriteHeader(http.StatusOK)
}
