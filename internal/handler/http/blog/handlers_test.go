package blog_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/thedevarpan/dot-developer/internal/common/pagination"
	"github.com/thedevarpan/dot-developer/internal/common/pairedwrite"
	"github.com/thedevarpan/dot-developer/internal/domain/entity"
	"github.com/thedevarpan/dot-developer/internal/handler/http/blog"
	"github.com/thedevarpan/dot-developer/internal/handler/http/render"
	"github.com/thedevarpan/dot-developer/internal/repository"
	"github.com/thedevarpan/dot-developer/internal/repository/repotest"
	"github.com/thedevarpan/dot-developer/internal/service/session"
	blogUC "github.com/thedevarpan/dot-developer/internal/usecase/blog"
)

/* ───────── テスト用セットアップ ───────── */

type stubImages struct{}

func (stubImages) Upload(_ context.Context, _, publicID string) (string, error) {
	return "https://img.example/" + publicID, nil
}

func newMux(t *testing.T) (*http.ServeMux, *repotest.BlogStore, *repotest.UserStore) {
	t.Helper()

	blogs := repotest.NewBlogStore()
	users := repotest.NewUserStore()
	svc := &blogUC.Service{
		Blogs:  blogs,
		Users:  users,
		Images: stubImages{},
		Paired: &pairedwrite.Runner{Repairs: repotest.NewRepairStore()},
	}

	rnd, err := render.New(slog.Default())
	if err != nil {
		t.Fatalf("render.New() error = %v", err)
	}

	mux := http.NewServeMux()
	blog.Register(mux, svc, rnd, pagination.DefaultConfig(), slog.Default())
	return mux, blogs, users
}

func seedBlog(blogs *repotest.BlogStore, users *repotest.UserStore, id int64) *entity.Blog {
	users.Seed(&entity.User{ID: 1, Name: "Ada", Username: "ada", Email: "ada@example.com"})
	blogs.Authors[1] = repository.Author{ID: 1, Name: "Ada", Username: "ada"}
	return blogs.Seed(&entity.Blog{
		ID:      id,
		OwnerID: 1,
		Title:   "Counters without transactions",
		Content: "Paired writes keep the sums close enough.",
	})
}

func asUser(r *http.Request, userID int64) *http.Request {
	ctx := session.NewContext(r.Context(), session.Viewer{
		Authenticated: true,
		UserID:        userID,
		Name:          "Ada",
		Username:      "ada",
	})
	return r.WithContext(ctx)
}

/* ───────── ホームフィード ───────── */

func TestHomeHandler_RendersFeed(t *testing.T) {
	mux, blogs, users := newMux(t)
	seedBlog(blogs, users, 1)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Counters without transactions") {
		t.Error("feed should list the seeded blog")
	}
}

func TestHomeHandler_InvalidPageRenders404(t *testing.T) {
	mux, _, _ := newMux(t)

	req := httptest.NewRequest(http.MethodGet, "/page/zero", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

/* ───────── ブログ詳細 ───────── */

func TestDetailHandler_RendersPost(t *testing.T) {
	mux, blogs, users := newMux(t)
	seedBlog(blogs, users, 1)

	req := httptest.NewRequest(http.MethodGet, "/blogs/1", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Counters without transactions") {
		t.Error("detail page should show the title")
	}
	if !strings.Contains(body, "ada") {
		t.Error("detail page should show the author byline")
	}
}

func TestDetailHandler_Missing404(t *testing.T) {
	mux, _, _ := newMux(t)

	req := httptest.NewRequest(http.MethodGet, "/blogs/99", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

/* ───────── 作成 ───────── */

func TestCreateHandler_PublishesAndRedirects(t *testing.T) {
	mux, blogs, users := newMux(t)
	users.Seed(&entity.User{ID: 1, Name: "Ada", Username: "ada", Email: "ada@example.com"})
	blogs.Authors[1] = repository.Author{ID: 1, Name: "Ada", Username: "ada"}

	body := `{"title":"New post","content":"Some words worth reading.","banner":"data:image/png;base64,xxxx"}`
	req := asUser(httptest.NewRequest(http.MethodPost, "/createblog", strings.NewReader(body)), 1)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303: %s", rec.Code, rec.Body.String())
	}
	if loc := rec.Header().Get("Location"); !strings.HasPrefix(loc, "/blogs/") {
		t.Errorf("Location = %q, want /blogs/{id}", loc)
	}
}

func TestCreateHandler_ValidationError(t *testing.T) {
	mux, _, users := newMux(t)
	users.Seed(&entity.User{ID: 1, Name: "Ada", Username: "ada", Email: "ada@example.com"})

	body := `{"title":"","content":"words","banner":"data:image/png;base64,xxxx"}`
	req := asUser(httptest.NewRequest(http.MethodPost, "/createblog", strings.NewReader(body)), 1)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestCreateHandler_AnonymousRedirectsToLogin(t *testing.T) {
	mux, _, _ := newMux(t)

	req := httptest.NewRequest(http.MethodGet, "/createblog", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Errorf("Location = %q, want /login", loc)
	}
}

/* ───────── 編集 ───────── */

func TestEditFormHandler_NotAuthor403(t *testing.T) {
	mux, blogs, users := newMux(t)
	seedBlog(blogs, users, 1)
	users.Seed(&entity.User{ID: 2, Name: "Bob", Username: "bob", Email: "bob@example.com"})

	req := asUser(httptest.NewRequest(http.MethodGet, "/blogs/1/edit", nil), 2)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "not the author") {
		t.Errorf("body = %q, want not-the-author message", rec.Body.String())
	}
}

func TestUpdateHandler_OwnerUpdates(t *testing.T) {
	mux, blogs, users := newMux(t)
	seedBlog(blogs, users, 1)

	body := `{"title":"Retitled","content":"Edited body."}`
	req := asUser(httptest.NewRequest(http.MethodPut, "/blogs/1/edit", strings.NewReader(body)), 1)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	got, _ := blogs.Get(context.Background(), 1)
	if got.Title != "Retitled" {
		t.Errorf("title = %q, want Retitled", got.Title)
	}
}

func TestUpdateHandler_NotOwner403(t *testing.T) {
	mux, blogs, users := newMux(t)
	seedBlog(blogs, users, 1)
	users.Seed(&entity.User{ID: 2, Name: "Bob", Username: "bob", Email: "bob@example.com"})

	body := `{"title":"Hijacked","content":"nope"}`
	req := asUser(httptest.NewRequest(http.MethodPut, "/blogs/1/edit", strings.NewReader(body)), 2)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
}

/* ───────── 削除・訪問 ───────── */

func TestDeleteHandler_OwnerDeletes(t *testing.T) {
	mux, blogs, users := newMux(t)
	seedBlog(blogs, users, 1)

	req := asUser(httptest.NewRequest(http.MethodDelete, "/blogs/1/delete", nil), 1)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	got, _ := blogs.Get(context.Background(), 1)
	if got != nil {
		t.Error("blog should be gone")
	}
}

func TestDeleteHandler_Anonymous401(t *testing.T) {
	mux, blogs, users := newMux(t)
	seedBlog(blogs, users, 1)

	req := httptest.NewRequest(http.MethodDelete, "/blogs/1/delete", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestVisitHandler_CountsAnonymousViews(t *testing.T) {
	mux, blogs, users := newMux(t)
	seedBlog(blogs, users, 1)

	req := httptest.NewRequest(http.MethodPut, "/blogs/1/visit", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	got, _ := blogs.Get(context.Background(), 1)
	if got.TotalVisit != 1 {
		t.Errorf("TotalVisit = %d, want 1", got.TotalVisit)
	}
}

func TestVisitHandler_Missing404(t *testing.T) {
	mux, _, _ := newMux(t)

	req := httptest.NewRequest(http.MethodPut, "/blogs/42/visit", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
