package account

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/thedevarpan/dot-developer/internal/common/pagination"
	"github.com/thedevarpan/dot-developer/internal/handler/http/render"
	"github.com/thedevarpan/dot-developer/internal/service/session"
	accUC "github.com/thedevarpan/dot-developer/internal/usecase/account"
)

// ProfileHandler renders a user's public profile: the stored aggregate
// totals and one page of their blogs.
type ProfileHandler struct {
	Svc           *accUC.Service
	Renderer      *render.Renderer
	PaginationCfg pagination.Config
	Logger        *slog.Logger
}

func (h ProfileHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	viewer := session.FromContext(r.Context())
	username := r.PathValue("username")

	page, err := pagination.ParsePageNumber(r)
	if err != nil {
		h.Renderer.NotFound(w, viewer)
		return
	}
	pagination.RecordRequest("profile", page)

	result, err := h.Svc.Profile(r.Context(), username, page, h.PaginationCfg.ListLimit)
	if err != nil {
		if errors.Is(err, accUC.ErrUserNotFound) {
			h.Renderer.NotFound(w, viewer)
			return
		}
		pagination.RecordError("profile", "database")
		h.Logger.Error("failed to load profile",
			slog.String("username", username),
			slog.Any("error", err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	window := pagination.Paginate("/profile/"+username+"/", page, h.PaginationCfg.ListLimit, result.Total)
	u := result.User
	h.Renderer.HTML(w, http.StatusOK, "profile", render.Page{
		Title:  u.Name,
		Viewer: viewer,
		Data: profileData{
			Name:           u.Name,
			Username:       u.Username,
			Bio:            u.Bio,
			PhotoURL:       u.ProfilePhoto.URL,
			BlogPublished:  u.BlogPublished,
			TotalVisits:    u.TotalVisits,
			TotalReactions: u.TotalReactions,
			Blogs:          render.BlogCards(result.Blogs),
			Window:         window,
		},
	})
}

// DashboardHandler renders the signed-in user's own blogs with their
// engagement counters and the stored aggregate totals.
type DashboardHandler struct {
	Svc           *accUC.Service
	Renderer      *render.Renderer
	PaginationCfg pagination.Config
	Logger        *slog.Logger
}

func (h DashboardHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	viewer := session.FromContext(r.Context())

	result, err := h.Svc.Dashboard(r.Context(), viewer.UserID, 1, h.PaginationCfg.ListLimit)
	if err != nil {
		h.Logger.Error("failed to load dashboard",
			slog.Int64("user_id", viewer.UserID),
			slog.Any("error", err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	rows := make([]dashboardRow, 0, len(result.Blogs))
	for _, b := range result.Blogs {
		rows = append(rows, dashboardRow{
			ID:            b.Blog.ID,
			Title:         b.Blog.Title,
			Reaction:      b.Blog.Reaction,
			TotalBookmark: b.Blog.TotalBookmark,
			TotalVisit:    b.Blog.TotalVisit,
		})
	}

	u := result.User
	h.Renderer.HTML(w, http.StatusOK, "dashboard", render.Page{
		Title:  "Dashboard",
		Viewer: viewer,
		Data: dashboardData{
			BlogPublished:  u.BlogPublished,
			TotalVisits:    u.TotalVisits,
			TotalReactions: u.TotalReactions,
			Blogs:          rows,
		},
	})
}
