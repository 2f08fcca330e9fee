package account

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/thedevarpan/dot-developer/internal/domain/entity"
	"github.com/thedevarpan/dot-developer/internal/handler/http/respond"
	accUC "github.com/thedevarpan/dot-developer/internal/usecase/account"
)

// SignupHandler creates a new account and sends the browser to the login
// form. Duplicate email and username answer 400 with the reason.
type SignupHandler struct {
	Svc    *accUC.Service
	Logger *slog.Logger
}

func (h SignupHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var in registerInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.SafeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body"))
		return
	}

	_, err := h.Svc.Register(r.Context(), accUC.RegisterInput{
		Name:     in.Name,
		Email:    in.Email,
		Password: in.Password,
	})
	if err != nil {
		var vErr *entity.ValidationError
		switch {
		case errors.Is(err, accUC.ErrEmailTaken), errors.Is(err, accUC.ErrUsernameTaken):
			respond.JSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
		case errors.As(err, &vErr):
			respond.SafeError(w, http.StatusBadRequest, err)
		default:
			h.Logger.Error("failed to register account",
				slog.String("email", in.Email),
				slog.Any("error", respond.SanitizeError(err)))
			respond.SafeError(w, http.StatusInternalServerError, err)
		}
		return
	}

	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
