package account

import (
	"log/slog"
	"net/http"

	"github.com/thedevarpan/dot-developer/internal/common/pagination"
	"github.com/thedevarpan/dot-developer/internal/handler/http/auth"
	"github.com/thedevarpan/dot-developer/internal/handler/http/render"
	"github.com/thedevarpan/dot-developer/internal/service/session"
	accUC "github.com/thedevarpan/dot-developer/internal/usecase/account"
)

// Register registers the account routes with the given mux: the auth forms,
// public profiles, the dashboard and the settings endpoints.
func Register(mux *http.ServeMux, svc *accUC.Service, sessions *session.Manager, rnd *render.Renderer, paginationCfg pagination.Config, logger *slog.Logger) {
	mux.Handle("GET /register", FormHandler{Renderer: rnd, Page: "register", Title: "Create account"})
	mux.Handle("POST /register", SignupHandler{Svc: svc, Logger: logger})

	mux.Handle("GET /login", FormHandler{Renderer: rnd, Page: "login", Title: "Sign in"})
	mux.Handle("POST /login", LoginHandler{Svc: svc, Sessions: sessions, Logger: logger})
	mux.Handle("POST /logout", LogoutHandler{Sessions: sessions, Logger: logger})

	profile := ProfileHandler{
		Svc:           svc,
		Renderer:      rnd,
		PaginationCfg: paginationCfg,
		Logger:        logger,
	}
	mux.Handle("GET /profile/{username}", profile)
	mux.Handle("GET /profile/{username}/page/{pageNumber}", profile)

	mux.Handle("GET /dashboard", auth.RequirePage(DashboardHandler{
		Svc:           svc,
		Renderer:      rnd,
		PaginationCfg: paginationCfg,
		Logger:        logger,
	}))

	mux.Handle("GET /settings", auth.RequirePage(SettingsPageHandler{Svc: svc, Renderer: rnd, Logger: logger}))
	mux.Handle("PUT /settings/basic_info", auth.RequireAPI(BasicInfoHandler{Svc: svc, Sessions: sessions, Logger: logger}))
	mux.Handle("PUT /settings/password", auth.RequireAPI(PasswordHandler{Svc: svc, Logger: logger}))
	mux.Handle("DELETE /settings/account", auth.RequireAPI(DeleteAccountHandler{Svc: svc, Sessions: sessions, Logger: logger}))
}

// FormHandler renders an auth form page. Signed-in viewers are sent back to
// the home feed.
type FormHandler struct {
	Renderer *render.Renderer
	Page     string
	Title    string
}

func (h FormHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	viewer := session.FromContext(r.Context())
	if viewer.Authenticated {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	h.Renderer.HTML(w, http.StatusOK, h.Page, render.Page{Title: h.Title, Viewer: viewer})
}
