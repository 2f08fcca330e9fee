// Package engagement provides the HTTP endpoints for reactions and the
// reading list. The mutation endpoints are called from page scripts and
// answer with bare status codes; the reading list itself is a rendered page.
package engagement

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/thedevarpan/dot-developer/internal/handler/http/pathutil"
	"github.com/thedevarpan/dot-developer/internal/handler/http/respond"
	"github.com/thedevarpan/dot-developer/internal/service/session"
	engUC "github.com/thedevarpan/dot-developer/internal/usecase/engagement"
)

// ReactionHandler adds or removes the viewer's reaction to a blog. PUT adds,
// DELETE removes; a duplicate in either direction is rejected with 400 and
// moves no counter.
type ReactionHandler struct {
	Svc    *engUC.Service
	Logger *slog.Logger
}

func (h ReactionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	viewer := session.FromContext(r.Context())

	id, err := pathutil.BlogID(r)
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	if r.Method == http.MethodDelete {
		err = h.Svc.RemoveReaction(r.Context(), viewer.UserID, id)
	} else {
		err = h.Svc.AddReaction(r.Context(), viewer.UserID, id)
	}
	respondEngagement(w, h.Logger, "reaction", id, err)
}

// SaveHandler adds or removes a blog from the viewer's reading list. PUT
// saves, DELETE unsaves.
type SaveHandler struct {
	Svc    *engUC.Service
	Logger *slog.Logger
}

func (h SaveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	viewer := session.FromContext(r.Context())

	id, err := pathutil.BlogID(r)
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	if r.Method == http.MethodDelete {
		err = h.Svc.Unsave(r.Context(), viewer.UserID, id)
	} else {
		err = h.Svc.Save(r.Context(), viewer.UserID, id)
	}
	respondEngagement(w, h.Logger, "reading list", id, err)
}

// respondEngagement maps an engagement result to its response. Precondition
// failures are 400s with the reason; half-applied paired writes surface as
// 500s after the runner has already logged and recorded them.
func respondEngagement(w http.ResponseWriter, logger *slog.Logger, what string, blogID int64, err error) {
	switch {
	case err == nil:
		w.WriteHeader(http.StatusOK)
	case errors.Is(err, engUC.ErrBlogNotFound):
		respond.SafeError(w, http.StatusNotFound, err)
	case errors.Is(err, engUC.ErrAlreadyReacted),
		errors.Is(err, engUC.ErrNotReacted),
		errors.Is(err, engUC.ErrAlreadySaved),
		errors.Is(err, engUC.ErrNotSaved):
		respond.JSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
	default:
		logger.Error("engagement operation failed",
			slog.String("target", what),
			slog.Int64("blog_id", blogID),
			slog.Any("error", respond.SanitizeError(err)))
		respond.SafeError(w, http.StatusInternalServerError, err)
	}
}
