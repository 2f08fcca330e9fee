package engagement

import (
	"log/slog"
	"net/http"

	"github.com/thedevarpan/dot-developer/internal/common/pagination"
	"github.com/thedevarpan/dot-developer/internal/handler/http/auth"
	"github.com/thedevarpan/dot-developer/internal/handler/http/render"
	engUC "github.com/thedevarpan/dot-developer/internal/usecase/engagement"
)

// Register registers the engagement routes with the given mux. All of them
// require a signed-in viewer; the mutation endpoints answer 401 JSON to
// anonymous callers while the reading-list page redirects to the login form.
func Register(mux *http.ServeMux, svc *engUC.Service, rnd *render.Renderer, paginationCfg pagination.Config, logger *slog.Logger) {
	reactions := auth.RequireAPI(ReactionHandler{Svc: svc, Logger: logger})
	mux.Handle("PUT /blogs/{blogID}/reactions", reactions)
	mux.Handle("DELETE /blogs/{blogID}/reactions", reactions)

	saves := auth.RequireAPI(SaveHandler{Svc: svc, Logger: logger})
	mux.Handle("PUT /blogs/{blogID}/readingList", saves)
	mux.Handle("DELETE /blogs/{blogID}/readingList", saves)

	list := auth.RequirePage(ReadingListHandler{
		Svc:           svc,
		Renderer:      rnd,
		PaginationCfg: paginationCfg,
		Logger:        logger,
	})
	mux.Handle("GET /readingList", list)
	mux.Handle("GET /readingList/page/{pageNumber}", list)
}
