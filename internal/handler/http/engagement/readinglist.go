package engagement

import (
	"log/slog"
	"net/http"

	"github.com/thedevarpan/dot-developer/internal/common/pagination"
	"github.com/thedevarpan/dot-developer/internal/handler/http/render"
	"github.com/thedevarpan/dot-developer/internal/service/session"
	engUC "github.com/thedevarpan/dot-developer/internal/usecase/engagement"
)

// readingListData is the payload of the reading-list page.
type readingListData struct {
	Blogs  []render.BlogCard
	Window pagination.Window
}

// ReadingListHandler renders the viewer's saved blogs, newest saved first.
type ReadingListHandler struct {
	Svc           *engUC.Service
	Renderer      *render.Renderer
	PaginationCfg pagination.Config
	Logger        *slog.Logger
}

func (h ReadingListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	viewer := session.FromContext(r.Context())

	page, err := pagination.ParsePageNumber(r)
	if err != nil {
		h.Renderer.NotFound(w, viewer)
		return
	}
	pagination.RecordRequest("reading_list", page)

	result, err := h.Svc.ReadingList(r.Context(), viewer.UserID, page, h.PaginationCfg.ListLimit)
	if err != nil {
		pagination.RecordError("reading_list", "database")
		h.Logger.Error("failed to load reading list",
			slog.Int64("user_id", viewer.UserID),
			slog.Any("error", err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	window := pagination.Paginate("/readingList/", page, h.PaginationCfg.ListLimit, result.Total)
	h.Renderer.HTML(w, http.StatusOK, "readinglist", render.Page{
		Title:  "Reading list",
		Viewer: viewer,
		Data: readingListData{
			Blogs:  render.BlogCards(result.Blogs),
			Window: window,
		},
	})
}
