package blog

import (
	"log/slog"
	"net/http"

	"github.com/thedevarpan/dot-developer/internal/common/pagination"
	"github.com/thedevarpan/dot-developer/internal/handler/http/auth"
	"github.com/thedevarpan/dot-developer/internal/handler/http/render"
	blogUC "github.com/thedevarpan/dot-developer/internal/usecase/blog"
)

// Register registers the blog page and authoring routes with the given mux.
// Authoring routes (create, edit, delete) require a signed-in viewer; the
// feed, detail page and visit counter are open to everyone.
func Register(mux *http.ServeMux, svc *blogUC.Service, rnd *render.Renderer, paginationCfg pagination.Config, logger *slog.Logger) {
	home := HomeHandler{
		Svc:           svc,
		Renderer:      rnd,
		PaginationCfg: paginationCfg,
		Logger:        logger,
	}
	mux.Handle("GET /{$}", home)
	mux.Handle("GET /page/{pageNumber}", home)

	mux.Handle("GET /blogs/{blogID}", DetailHandler{Svc: svc, Renderer: rnd, Logger: logger})
	mux.Handle("PUT /blogs/{blogID}/visit", VisitHandler{Svc: svc, Logger: logger})

	mux.Handle("GET /createblog", auth.RequirePage(CreateFormHandler{Renderer: rnd}))
	mux.Handle("POST /createblog", auth.RequirePage(CreateHandler{Svc: svc, Logger: logger}))

	mux.Handle("GET /blogs/{blogID}/edit", auth.RequirePage(EditFormHandler{Svc: svc, Renderer: rnd, Logger: logger}))
	mux.Handle("PUT /blogs/{blogID}/edit", auth.RequireAPI(UpdateHandler{Svc: svc, Logger: logger}))
	mux.Handle("DELETE /blogs/{blogID}/delete", auth.RequireAPI(DeleteHandler{Svc: svc, Logger: logger}))
}
