package blog

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/thedevarpan/dot-developer/internal/handler/http/pathutil"
	"github.com/thedevarpan/dot-developer/internal/handler/http/respond"
	"github.com/thedevarpan/dot-developer/internal/service/session"
	blogUC "github.com/thedevarpan/dot-developer/internal/usecase/blog"
)

// DeleteHandler deletes a blog. The owner's aggregates are reconciled in the
// same unit: published count, and the deleted post's accumulated visits and
// reactions all come off the author's totals.
type DeleteHandler struct {
	Svc    *blogUC.Service
	Logger *slog.Logger
}

func (h DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	viewer := session.FromContext(r.Context())

	id, err := pathutil.BlogID(r)
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	if err := h.Svc.Delete(r.Context(), viewer.UserID, id); err != nil {
		switch {
		case errors.Is(err, blogUC.ErrBlogNotFound):
			respond.SafeError(w, http.StatusNotFound, err)
		case errors.Is(err, blogUC.ErrNotBlogOwner):
			respond.Error(w, http.StatusForbidden, err)
		default:
			h.Logger.Error("failed to delete blog",
				slog.Int64("blog_id", id),
				slog.Any("error", respond.SanitizeError(err)))
			respond.SafeError(w, http.StatusInternalServerError, err)
		}
		return
	}

	w.WriteHeader(http.StatusOK)
}

// VisitHandler records one view of a blog. Fired by the detail page script;
// anonymous visits count too.
type VisitHandler struct {
	Svc    *blogUC.Service
	Logger *slog.Logger
}

func (h VisitHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.BlogID(r)
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	if err := h.Svc.RecordVisit(r.Context(), id); err != nil {
		if errors.Is(err, blogUC.ErrBlogNotFound) {
			respond.SafeError(w, http.StatusNotFound, err)
			return
		}
		h.Logger.Error("failed to record visit",
			slog.Int64("blog_id", id),
			slog.Any("error", respond.SanitizeError(err)))
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}
