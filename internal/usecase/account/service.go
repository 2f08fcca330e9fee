package account

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/thedevarpan/dot-developer/internal/common/pagination"
	"github.com/thedevarpan/dot-developer/internal/domain/entity"
	"github.com/thedevarpan/dot-developer/internal/repository"
	"github.com/thedevarpan/dot-developer/internal/service/auth"
	"github.com/thedevarpan/dot-developer/internal/utils/text"
)

const bcryptCost = 10

// ImageHost uploads a base64-encoded image and returns the hosted URL.
type ImageHost interface {
	Upload(ctx context.Context, base64Image, publicID string) (string, error)
}

// RegisterInput is the sign-up form.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// BasicInfoInput is the settings form for profile fields. Empty Email,
// Username and ProfilePhoto leave the stored values unchanged; Name and Bio
// always replace them.
type BasicInfoInput struct {
	UserID       int64
	Name         string
	Username     string
	Email        string
	Bio          string
	ProfilePhoto string
}

// ProfileResult is a user's public profile page: the user and one page of
// their blogs.
type ProfileResult struct {
	User  *entity.User
	Blogs []repository.BlogWithAuthor
	Total int64
}

// DashboardResult is the signed-in user's own blog list with the stored
// aggregate totals.
type DashboardResult struct {
	User  *entity.User
	Blogs []repository.BlogWithAuthor
	Total int64
}

// Service provides account use cases.
type Service struct {
	Users  repository.UserRepository
	Blogs  repository.BlogRepository
	Images ImageHost

	// Passwords optionally overrides the default credential policy.
	Passwords auth.Policy
}

func (s *Service) passwordPolicy() auth.Policy {
	if s.Passwords.WeakPasswords != nil {
		return s.Passwords
	}
	return auth.DefaultPolicy()
}

// Register creates a new account. The username is derived from the name with
// a millisecond suffix so two users with the same display name never collide;
// the password is stored as a bcrypt hash.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	if err := entity.ValidateEmail(in.Email); err != nil {
		return nil, err
	}
	if err := entity.ValidatePassword(in.Password); err != nil {
		return nil, err
	}
	if err := s.passwordPolicy().Validate(in.Password); err != nil {
		return nil, err
	}
	if in.Name == "" {
		return nil, &entity.ValidationError{Field: "name", Message: "is required"}
	}

	if taken, err := s.Users.ExistsByEmail(ctx, in.Email); err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	} else if taken {
		return nil, ErrEmailTaken
	}

	username := text.GenerateUsername(in.Name)
	if taken, err := s.Users.ExistsByUsername(ctx, username); err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	} else if taken {
		return nil, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &entity.User{
		Name:         in.Name,
		Username:     username,
		Email:        in.Email,
		PasswordHash: string(hash),
	}
	if err := s.Users.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// Login verifies the credentials and returns the user. The two failure modes
// are distinguished so the form can point at the offending field.
func (s *Service) Login(ctx context.Context, email, password string) (*entity.User, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if u == nil {
		return nil, ErrEmailNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidPassword
	}
	return u, nil
}

// Account loads a user by ID for the settings page. Returns ErrUserNotFound
// when the account no longer exists.
func (s *Service) Account(ctx context.Context, userID int64) (*entity.User, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// Profile loads a user's public profile by username with one page of their
// blogs, newest first.
func (s *Service) Profile(ctx context.Context, username string, page, limit int) (*ProfileResult, error) {
	u, err := s.Users.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if u == nil {
		return nil, ErrUserNotFound
	}

	total, err := s.Blogs.CountByOwner(ctx, u.ID)
	if err != nil {
		return nil, fmt.Errorf("count blogs: %w", err)
	}
	blogs, err := s.Blogs.ListByOwner(ctx, u.ID, pagination.CalculateOffset(page, limit), limit)
	if err != nil {
		return nil, fmt.Errorf("list blogs: %w", err)
	}
	return &ProfileResult{User: u, Blogs: blogs, Total: total}, nil
}

// Dashboard loads the signed-in user's own blogs and stored totals.
func (s *Service) Dashboard(ctx context.Context, userID int64, page, limit int) (*DashboardResult, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if u == nil {
		return nil, ErrUserNotFound
	}

	total, err := s.Blogs.CountByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count blogs: %w", err)
	}
	blogs, err := s.Blogs.ListByOwner(ctx, userID, pagination.CalculateOffset(page, limit), limit)
	if err != nil {
		return nil, fmt.Errorf("list blogs: %w", err)
	}
	return &DashboardResult{User: u, Blogs: blogs, Total: total}, nil
}

// UpdateBasicInfo applies the settings form. Email and username changes are
// checked for uniqueness first; a new profile photo is uploaded under the
// username as its public ID. Returns the updated user so the caller can
// refresh the session mirror.
func (s *Service) UpdateBasicInfo(ctx context.Context, in BasicInfoInput) (*entity.User, error) {
	u, err := s.Users.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if u == nil {
		return nil, ErrUserNotFound
	}

	if in.Email != "" && in.Email != u.Email {
		if err := entity.ValidateEmail(in.Email); err != nil {
			return nil, err
		}
		if taken, err := s.Users.ExistsByEmail(ctx, in.Email); err != nil {
			return nil, fmt.Errorf("check email: %w", err)
		} else if taken {
			return nil, ErrEmailInUse
		}
		u.Email = in.Email
	}

	if in.Username != "" && in.Username != u.Username {
		if err := entity.ValidateUsername(in.Username); err != nil {
			return nil, err
		}
		if taken, err := s.Users.ExistsByUsername(ctx, in.Username); err != nil {
			return nil, fmt.Errorf("check username: %w", err)
		} else if taken {
			return nil, ErrUsernameInUse
		}
		u.Username = in.Username
	}

	if in.ProfilePhoto != "" {
		publicID := u.Username
		url, err := s.Images.Upload(ctx, in.ProfilePhoto, publicID)
		if err != nil {
			return nil, fmt.Errorf("upload profile photo: %w", err)
		}
		u.ProfilePhoto = entity.ProfilePhoto{URL: url, PublicID: publicID}
	}

	if err := entity.ValidateBio(in.Bio); err != nil {
		return nil, err
	}
	u.Name = in.Name
	u.Bio = in.Bio

	if err := s.Users.UpdateProfile(ctx, u); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return u, nil
}

// UpdatePassword verifies the old password and stores a hash of the new one.
func (s *Service) UpdatePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("get user: %w", err)
	}
	if u == nil {
		return ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(oldPassword)); err != nil {
		return ErrOldPasswordInvalid
	}
	if err := entity.ValidatePassword(newPassword); err != nil {
		return err
	}
	if err := s.passwordPolicy().Validate(newPassword); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.Users.UpdatePassword(ctx, userID, string(hash)); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

// DeleteAccount removes the user and every blog they own. The caller is
// responsible for destroying the user's sessions afterward.
func (s *Service) DeleteAccount(ctx context.Context, userID int64) error {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("get user: %w", err)
	}
	if u == nil {
		return ErrUserNotFound
	}

	if err := s.Blogs.DeleteByOwner(ctx, userID); err != nil {
		return fmt.Errorf("delete blogs: %w", err)
	}
	if err := s.Users.Delete(ctx, userID); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}
