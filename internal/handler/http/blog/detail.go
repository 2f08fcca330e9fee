package blog

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/thedevarpan/dot-developer/internal/handler/http/pathutil"
	"github.com/thedevarpan/dot-developer/internal/handler/http/render"
	"github.com/thedevarpan/dot-developer/internal/service/session"
	blogUC "github.com/thedevarpan/dot-developer/internal/usecase/blog"
)

// DetailHandler renders a single blog page: the post body converted from
// markdown, the author byline, the viewer's engagement state and up to three
// more posts by the same author.
type DetailHandler struct {
	Svc      *blogUC.Service
	Renderer *render.Renderer
	Logger   *slog.Logger
}

func (h DetailHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	viewer := session.FromContext(r.Context())

	id, err := pathutil.BlogID(r)
	if err != nil {
		h.Renderer.NotFound(w, viewer)
		return
	}

	result, err := h.Svc.Detail(r.Context(), id, viewer.UserID)
	if err != nil {
		if errors.Is(err, blogUC.ErrBlogNotFound) || errors.Is(err, blogUC.ErrInvalidBlogID) {
			h.Renderer.NotFound(w, viewer)
			return
		}
		h.Logger.Error("failed to load blog detail",
			slog.Int64("blog_id", id),
			slog.Any("error", err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	body, err := h.Renderer.Markdown(result.Blog.Blog.Content)
	if err != nil {
		h.Logger.Error("failed to convert blog body",
			slog.Int64("blog_id", id),
			slog.Any("error", err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	b := result.Blog.Blog
	h.Renderer.HTML(w, http.StatusOK, "detail", render.Page{
		Title:  b.Title,
		Viewer: viewer,
		Data: detailData{
			ID:             b.ID,
			Title:          b.Title,
			Body:           body,
			BannerURL:      b.Banner.URL,
			ReadingTime:    b.ReadingTime,
			Reaction:       b.Reaction,
			TotalVisit:     b.TotalVisit,
			AuthorName:     result.Blog.Author.Name,
			AuthorUsername: result.Blog.Author.Username,
			AuthorPhotoURL: result.Blog.Author.PhotoURL,
			ViewerOwns:     viewer.Authenticated && viewer.UserID == b.OwnerID,
			ViewerReacted:  result.ViewerReacted,
			ViewerSaved:    result.ViewerSaved,
			OwnerBlogs:     render.BlogCards(result.OwnerBlogs),
		},
	})
}
