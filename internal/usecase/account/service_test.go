package account_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/thedevarpan/dot-developer/internal/domain/entity"
	"github.com/thedevarpan/dot-developer/internal/repository/repotest"
	accUC "github.com/thedevarpan/dot-developer/internal/usecase/account"
)

type stubImages struct {
	err      error
	uploaded []string
}

func (s *stubImages) Upload(_ context.Context, _, publicID string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.uploaded = append(s.uploaded, publicID)
	return "https://img.example.com/" + publicID, nil
}

func newService() (*accUC.Service, *repotest.UserStore, *repotest.BlogStore, *stubImages) {
	users := repotest.NewUserStore()
	blogs := repotest.NewBlogStore()
	images := &stubImages{}
	return &accUC.Service{Users: users, Blogs: blogs, Images: images}, users, blogs, images
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	return string(h)
}

/* ───────── 1. Register ───────── */

func TestService_Register_success(t *testing.T) {
	svc, users, _, _ := newService()

	u, err := svc.Register(context.Background(), accUC.RegisterInput{
		Name: "Ada Lovelace", Email: "ada@example.com", Password: "secret-pass",
	})
	if err != nil {
		t.Fatalf("Register err=%v", err)
	}
	if u.ID == 0 {
		t.Fatalf("want assigned ID")
	}
	// 表示名から導出されたユーザー名 + ミリ秒サフィックス
	if !strings.HasPrefix(u.Username, "ada-lovelace-") {
		t.Fatalf("unexpected username %q", u.Username)
	}
	if u.PasswordHash == "secret-pass" {
		t.Fatalf("password must be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret-pass")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if len(users.Data) != 1 {
		t.Fatalf("want 1 user stored")
	}
}

func TestService_Register_emailTaken(t *testing.T) {
	svc, users, _, _ := newService()
	users.Seed(&entity.User{Name: "Ada", Username: "ada-1", Email: "ada@example.com"})

	_, err := svc.Register(context.Background(), accUC.RegisterInput{
		Name: "Other Ada", Email: "ada@example.com", Password: "secret-pass",
	})
	if !errors.Is(err, accUC.ErrEmailTaken) {
		t.Fatalf("want ErrEmailTaken, got %v", err)
	}
}

func TestService_Register_validation(t *testing.T) {
	svc, _, _, _ := newService()

	_, err := svc.Register(context.Background(), accUC.RegisterInput{
		Name: "Ada", Email: "not-an-email", Password: "secret-pass",
	})
	var ve *entity.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("want validation error, got %v", err)
	}

	_, err = svc.Register(context.Background(), accUC.RegisterInput{
		Name: "Ada", Email: "ada@example.com", Password: "short",
	})
	if !errors.As(err, &ve) {
		t.Fatalf("want validation error for short password, got %v", err)
	}

	// 拒否リストのパスワードは長さが足りていても弾かれる
	_, err = svc.Register(context.Background(), accUC.RegisterInput{
		Name: "Ada", Email: "ada@example.com", Password: "password1",
	})
	if !errors.As(err, &ve) {
		t.Fatalf("want validation error for weak password, got %v", err)
	}
}

/* ───────── 2. Login ───────── */

func TestService_Login(t *testing.T) {
	svc, users, _, _ := newService()
	users.Seed(&entity.User{
		Name: "Ada", Username: "ada-1", Email: "ada@example.com",
		PasswordHash: mustHash(t, "secret-pass"),
	})

	u, err := svc.Login(context.Background(), "ada@example.com", "secret-pass")
	if err != nil {
		t.Fatalf("Login err=%v", err)
	}
	if u.Username != "ada-1" {
		t.Fatalf("wrong user returned: %+v", u)
	}

	if _, err := svc.Login(context.Background(), "nobody@example.com", "secret-pass"); !errors.Is(err, accUC.ErrEmailNotFound) {
		t.Fatalf("want ErrEmailNotFound, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "ada@example.com", "wrong"); !errors.Is(err, accUC.ErrInvalidPassword) {
		t.Fatalf("want ErrInvalidPassword, got %v", err)
	}
}

/* ───────── 3. Profile / Dashboard ───────── */

func TestService_Profile(t *testing.T) {
	svc, users, blogs, _ := newService()
	u := users.Seed(&entity.User{Name: "Ada", Username: "ada-1", Email: "ada@example.com"})
	for i := 0; i < 25; i++ {
		blogs.Seed(&entity.Blog{OwnerID: u.ID, Title: "t"})
	}

	res, err := svc.Profile(context.Background(), "ada-1", 2, 20)
	if err != nil {
		t.Fatalf("Profile err=%v", err)
	}
	if res.Total != 25 || len(res.Blogs) != 5 {
		t.Fatalf("want total 25 / 5 on page 2, got %d / %d", res.Total, len(res.Blogs))
	}

	if _, err := svc.Profile(context.Background(), "nobody", 1, 20); !errors.Is(err, accUC.ErrUserNotFound) {
		t.Fatalf("want ErrUserNotFound, got %v", err)
	}
}

/* ───────── 4. UpdateBasicInfo ───────── */

func TestService_UpdateBasicInfo(t *testing.T) {
	svc, users, _, images := newService()
	u := users.Seed(&entity.User{Name: "Ada", Username: "ada-1", Email: "ada@example.com"})
	users.Seed(&entity.User{Name: "Bob", Username: "bob-1", Email: "bob@example.com"})

	// 他人のメールアドレスへは変更できない
	_, err := svc.UpdateBasicInfo(context.Background(), accUC.BasicInfoInput{
		UserID: u.ID, Name: "Ada", Email: "bob@example.com",
	})
	if !errors.Is(err, accUC.ErrEmailInUse) {
		t.Fatalf("want ErrEmailInUse, got %v", err)
	}

	// ユーザー名変更 + 写真アップロード
	got, err := svc.UpdateBasicInfo(context.Background(), accUC.BasicInfoInput{
		UserID: u.ID, Name: "Ada L.", Username: "ada-new", Bio: "writes here",
		ProfilePhoto: "data:image/png;base64,xxxx",
	})
	if err != nil {
		t.Fatalf("UpdateBasicInfo err=%v", err)
	}
	if got.Username != "ada-new" || got.Name != "Ada L." || got.Bio != "writes here" {
		t.Fatalf("fields not applied: %+v", got)
	}
	// 写真の public ID は変更後のユーザー名
	if len(images.uploaded) != 1 || images.uploaded[0] != "ada-new" {
		t.Fatalf("photo must be uploaded under the username, got %v", images.uploaded)
	}
	if users.Data[u.ID].Username != "ada-new" {
		t.Fatalf("store not updated")
	}
}

func TestService_UpdateBasicInfo_sameEmailNoConflict(t *testing.T) {
	svc, users, _, _ := newService()
	u := users.Seed(&entity.User{Name: "Ada", Username: "ada-1", Email: "ada@example.com"})

	_, err := svc.UpdateBasicInfo(context.Background(), accUC.BasicInfoInput{
		UserID: u.ID, Name: "Ada", Email: "ada@example.com",
	})
	if err != nil {
		t.Fatalf("keeping the same email must not conflict: %v", err)
	}
}

/* ───────── 5. UpdatePassword ───────── */

func TestService_UpdatePassword(t *testing.T) {
	svc, users, _, _ := newService()
	u := users.Seed(&entity.User{
		Name: "Ada", Username: "ada-1", Email: "ada@example.com",
		PasswordHash: mustHash(t, "old-password"),
	})

	if err := svc.UpdatePassword(context.Background(), u.ID, "wrong", "new-password"); !errors.Is(err, accUC.ErrOldPasswordInvalid) {
		t.Fatalf("want ErrOldPasswordInvalid, got %v", err)
	}

	if err := svc.UpdatePassword(context.Background(), u.ID, "old-password", "new-password"); err != nil {
		t.Fatalf("UpdatePassword err=%v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(users.Data[u.ID].PasswordHash), []byte("new-password")); err != nil {
		t.Fatalf("new password not stored: %v", err)
	}
}

/* ───────── 6. DeleteAccount ───────── */

func TestService_DeleteAccount_cascades(t *testing.T) {
	svc, users, blogs, _ := newService()
	u := users.Seed(&entity.User{Name: "Ada", Username: "ada-1", Email: "ada@example.com"})
	other := users.Seed(&entity.User{Name: "Bob", Username: "bob-1", Email: "bob@example.com"})
	blogs.Seed(&entity.Blog{OwnerID: u.ID})
	blogs.Seed(&entity.Blog{OwnerID: u.ID})
	kept := blogs.Seed(&entity.Blog{OwnerID: other.ID})

	if err := svc.DeleteAccount(context.Background(), u.ID); err != nil {
		t.Fatalf("DeleteAccount err=%v", err)
	}
	if _, ok := users.Data[u.ID]; ok {
		t.Fatalf("user must be gone")
	}
	if len(blogs.Data) != 1 {
		t.Fatalf("owned blogs must cascade, got %d remaining", len(blogs.Data))
	}
	if _, ok := blogs.Data[kept.ID]; !ok {
		t.Fatalf("other user's blog must survive")
	}
}
