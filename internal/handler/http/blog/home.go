package blog

import (
	"log/slog"
	"net/http"

	"github.com/thedevarpan/dot-developer/internal/common/pagination"
	"github.com/thedevarpan/dot-developer/internal/handler/http/render"
	"github.com/thedevarpan/dot-developer/internal/service/session"
	blogUC "github.com/thedevarpan/dot-developer/internal/usecase/blog"
)

// HomeHandler renders the home feed: the latest blogs, newest first, with
// the pagination window.
type HomeHandler struct {
	Svc           *blogUC.Service
	Renderer      *render.Renderer
	PaginationCfg pagination.Config
	Logger        *slog.Logger
}

func (h HomeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	viewer := session.FromContext(r.Context())

	page, err := pagination.ParsePageNumber(r)
	if err != nil {
		h.Renderer.NotFound(w, viewer)
		return
	}
	pagination.RecordRequest("home", page)

	result, err := h.Svc.Home(r.Context(), page, h.PaginationCfg.HomeLimit)
	if err != nil {
		pagination.RecordError("home", "database")
		h.Logger.Error("failed to load home feed", slog.Any("error", err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	window := pagination.Paginate("/", page, h.PaginationCfg.HomeLimit, result.Total)
	h.Renderer.HTML(w, http.StatusOK, "home", render.Page{
		Title:  "inktale",
		Viewer: viewer,
		Data: feedData{
			Blogs:  render.BlogCards(result.Blogs),
			Window: window,
		},
	})
}
