package blog

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
	blogUC "github.com/thedevarpan/dot-developer/internal/usecase/blog"
)

// CreateFormHandler renders the blog authoring form.
type CreateFormHandler struct {
	Renderer *render.Renderer
}

func (h CreateFormHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.Renderer.HTML(w, http.StatusOK, "createblog", render.Page{
		Title:  "Write a blog",
		Viewer: session.FromContext(r.Context()),
	})
}

// CreateHandler publishes a new blog and redirects to its detail page.
type CreateHandler struct {
	Svc    *blogUC.Service
	Logger *slog.Logger
}

func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	viewer := session.FromContext(r.Context())

	var in postInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.SafeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body"))
		return
	}

	created, err := h.Svc.Create(r.Context(), blogUC.CreateInput{
		OwnerID: viewer.UserID,
		Title:   in.Title,
		Content: in.Content,
		Banner:  in.Banner,
	})
	if err != nil {
		var vErr *entity.ValidationError
		if errors.As(err, &vErr) {
			respond.SafeError(w, http.StatusBadRequest, err)
			return
		}
		h.Logger.Error("failed to create blog",
			slog.Int64("owner_id", viewer.UserID),
			slog.Any("error", respond.SanitizeError(err)))
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/blogs/%d", created.ID), http.StatusSeeOther)
}
