package blog

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/thedevarpan/dot-developer/internal/domain/entity"
	"github.com/thedevarpan/dot-developer/internal/handler/http/pathutil"
	"github.com/thedevarpan/dot-developer/internal/handler/http/render"
	"github.com/thedevarpan/dot-developer/internal/handler/http/respond"
	"github.com/thedevarpan/dot-developer/internal/service/session"
	blogUC "github.com/thedevarpan/dot-developer/internal/usecase/blog"
)

// notAuthorMessage matches the page shown when someone opens the edit form
// for a blog they do not own.
const notAuthorMessage = "<h2>Sorry, you don't have permission to edit this article as you're not the author.</h2>"

// EditFormHandler renders the edit form prefilled with the stored post.
// Only the author may open it.
type EditFormHandler struct {
	Svc      *blogUC.Service
	Renderer *render.Renderer
	Logger   *slog.Logger
}

func (h EditFormHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	viewer := session.FromContext(r.Context())

	id, err := pathutil.BlogID(r)
	if err != nil {
		h.Renderer.NotFound(w, viewer)
		return
	}

	result, err := h.Svc.Detail(r.Context(), id, 0)
	if err != nil {
		if errors.Is(err, blogUC.ErrBlogNotFound) {
			h.Renderer.NotFound(w, viewer)
			return
		}
		h.Logger.Error("failed to load blog for edit",
			slog.Int64("blog_id", id),
			slog.Any("error", err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	b := result.Blog.Blog
	if b.OwnerID != viewer.UserID {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(notAuthorMessage))
		return
	}

	h.Renderer.HTML(w, http.StatusOK, "editblog", render.Page{
		Title:  "Edit blog",
		Viewer: viewer,
		Data: editData{
			ID:        b.ID,
			Title:     b.Title,
			Content:   b.Content,
			BannerURL: b.Banner.URL,
		},
	})
}

// UpdateHandler applies an edit to a blog. The engagement counters are left
// untouched; a submitted banner replaces the hosted asset in place.
type UpdateHandler struct {
	Svc    *blogUC.Service
	Logger *slog.Logger
}

func (h UpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	viewer := session.FromContext(r.Context())

	id, err := pathutil.BlogID(r)
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	var in postInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.SafeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body"))
		return
	}

	err = h.Svc.Update(r.Context(), blogUC.UpdateInput{
		ActorID: viewer.UserID,
		BlogID:  id,
		Title:   in.Title,
		Content: in.Content,
		Banner:  in.Banner,
	})
	if err != nil {
		var vErr *entity.ValidationError
		switch {
		case errors.Is(err, blogUC.ErrBlogNotFound):
			respond.SafeError(w, http.StatusNotFound, err)
		case errors.Is(err, blogUC.ErrNotBlogOwner):
			respond.Error(w, http.StatusForbidden, err)
		case errors.As(err, &vErr):
			respond.SafeError(w, http.StatusBadRequest, err)
		default:
			h.Logger.Error("failed to update blog",
				slog.Int64("blog_id", id),
				slog.Any("error", respond.SanitizeError(err)))
			respond.SafeError(w, http.StatusInternalServerError, err)
		}
		return
	}

	w.WriteHeader(http.StatusOK)
}
