package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/thedevarpan/dot-developer/internal/domain/entity"
	"github.com/thedevarpan/dot-developer/internal/repository"
)

const userColumns = `id, name, username, email, password_hash, bio,
       profile_photo_url, profile_photo_public_id,
       blog_published, total_visits, total_reactions, created_at, updated_at`

type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) repository.UserRepository {
	return &UserRepo{db: db}
}

func (repo *UserRepo) Create(ctx context.Context, user *entity.User) error {
	const query = `
INSERT INTO users
	   (name, username, email, password_hash, bio, profile_photo_url, profile_photo_public_id)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id, created_at, updated_at`
	err := repo.db.QueryRowContext(ctx, query,
		user.Name, user.Username, user.Email, user.PasswordHash,
		user.Bio, user.ProfilePhoto.URL, user.ProfilePhoto.PublicID,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (repo *UserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	const query = `
SELECT ` + userColumns + `
FROM users
WHERE id = $1
LIMIT 1`
	return repo.getOne(ctx, "GetByID", query, id)
}

func (repo *UserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	const query = `
SELECT ` + userColumns + `
FROM users
WHERE username = $1
LIMIT 1`
	return repo.getOne(ctx, "GetByUsername", query, username)
}

func (repo *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	const query = `
SELECT ` + userColumns + `
FROM users
WHERE email = $1
LIMIT 1`
	return repo.getOne(ctx, "GetByEmail", query, email)
}

func (repo *UserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`
	var exists bool
	if err := repo.db.QueryRowContext(ctx, query, username).Scan(&exists); err != nil {
		return false, fmt.Errorf("ExistsByUsername: %w", err)
	}
	return exists, nil
}

func (repo *UserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`
	var exists bool
	if err := repo.db.QueryRowContext(ctx, query, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("ExistsByEmail: %w", err)
	}
	return exists, nil
}

func (repo *UserRepo) UpdateProfile(ctx context.Context, user *entity.User) error {
	const query = `
UPDATE users
SET name                    = $1,
    username                = $2,
    email                   = $3,
    bio                     = $4,
    profile_photo_url       = $5,
    profile_photo_public_id = $6,
    updated_at              = NOW()
WHERE id = $7`
	res, err := repo.db.ExecContext(ctx, query,
		user.Name, user.Username, user.Email, user.Bio,
		user.ProfilePhoto.URL, user.ProfilePhoto.PublicID, user.ID,
	)
	if err != nil {
		return fmt.Errorf("UpdateProfile: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("UpdateProfile: user %d not found", user.ID)
	}
	return nil
}

func (repo *UserRepo) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	const query = `UPDATE users SET password_hash = $1, updated_at = NOW() WHERE id = $2`
	res, err := repo.db.ExecContext(ctx, query, passwordHash, id)
	if err != nil {
		return fmt.Errorf("UpdatePassword: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("UpdatePassword: user %d not found", id)
	}
	return nil
}

// Delete relies on ON DELETE CASCADE for the user's membership rows and
// sessions; owned blogs are removed separately before this call.
func (repo *UserRepo) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM users WHERE id = $1`
	res, err := repo.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("Delete: user %d not found", id)
	}
	return nil
}

func (repo *UserRepo) HasReacted(ctx context.Context, userID, blogID int64) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM reacted_blogs WHERE user_id = $1 AND blog_id = $2)`
	var exists bool
	if err := repo.db.QueryRowContext(ctx, query, userID, blogID).Scan(&exists); err != nil {
		return false, fmt.Errorf("HasReacted: %w", err)
	}
	return exists, nil
}

func (repo *UserRepo) AddReacted(ctx context.Context, userID, blogID int64) error {
	const query = `INSERT INTO reacted_blogs (user_id, blog_id) VALUES ($1, $2)`
	if _, err := repo.db.ExecContext(ctx, query, userID, blogID); err != nil {
		return fmt.Errorf("AddReacted: %w", err)
	}
	return nil
}

func (repo *UserRepo) RemoveReacted(ctx context.Context, userID, blogID int64) error {
	const query = `DELETE FROM reacted_blogs WHERE user_id = $1 AND blog_id = $2`
	if _, err := repo.db.ExecContext(ctx, query, userID, blogID); err != nil {
		return fmt.Errorf("RemoveReacted: %w", err)
	}
	return nil
}

func (repo *UserRepo) HasSaved(ctx context.Context, userID, blogID int64) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM reading_list WHERE user_id = $1 AND blog_id = $2)`
	var exists bool
	if err := repo.db.QueryRowContext(ctx, query, userID, blogID).Scan(&exists); err != nil {
		return false, fmt.Errorf("HasSaved: %w", err)
	}
	return exists, nil
}

func (repo *UserRepo) AddSaved(ctx context.Context, userID, blogID int64) error {
	const query = `INSERT INTO reading_list (user_id, blog_id) VALUES ($1, $2)`
	if _, err := repo.db.ExecContext(ctx, query, userID, blogID); err != nil {
		return fmt.Errorf("AddSaved: %w", err)
	}
	return nil
}

func (repo *UserRepo) RemoveSaved(ctx context.Context, userID, blogID int64) error {
	const query = `DELETE FROM reading_list WHERE user_id = $1 AND blog_id = $2`
	if _, err := repo.db.ExecContext(ctx, query, userID, blogID); err != nil {
		return fmt.Errorf("RemoveSaved: %w", err)
	}
	return nil
}

// AdjustAggregates is one in-place UPDATE, so concurrent adjustments to the
// same owner serialize inside the database and none is lost.
func (repo *UserRepo) AdjustAggregates(ctx context.Context, userID, publishedDelta, visitsDelta, reactionsDelta int64) error {
	const query = `
UPDATE users
SET blog_published  = blog_published + $1,
    total_visits    = total_visits + $2,
    total_reactions = total_reactions + $3
WHERE id = $4`
	res, err := repo.db.ExecContext(ctx, query, publishedDelta, visitsDelta, reactionsDelta, userID)
	if err != nil {
		return fmt.Errorf("AdjustAggregates: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("AdjustAggregates: user %d not found", userID)
	}
	return nil
}

func (repo *UserRepo) ListIDs(ctx context.Context) ([]int64, error) {
	const query = `SELECT id FROM users ORDER BY id`
	rows, err := repo.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ListIDs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	ids := make([]int64, 0, 100)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("ListIDs: Scan: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (repo *UserRepo) ComputedAggregates(ctx context.Context, userID int64) (int64, int64, int64, error) {
	const query = `
SELECT COUNT(*), COALESCE(SUM(total_visit), 0), COALESCE(SUM(reaction), 0)
FROM blogs
WHERE owner_id = $1`
	var published, visits, reactions int64
	err := repo.db.QueryRowContext(ctx, query, userID).Scan(&published, &visits, &reactions)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("ComputedAggregates: %w", err)
	}
	return published, visits, reactions, nil
}

func (repo *UserRepo) SetAggregates(ctx context.Context, userID, published, visits, reactions int64) error {
	const query = `
UPDATE users
SET blog_published  = $1,
    total_visits    = $2,
    total_reactions = $3
WHERE id = $4`
	res, err := repo.db.ExecContext(ctx, query, published, visits, reactions, userID)
	if err != nil {
		return fmt.Errorf("SetAggregates: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("SetAggregates: user %d not found", userID)
	}
	return nil
}

func (repo *UserRepo) getOne(ctx context.Context, op, query string, arg any) (*entity.User, error) {
	var user entity.User
	err := repo.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID, &user.Name, &user.Username, &user.Email,
		&user.PasswordHash, &user.Bio,
		&user.ProfilePhoto.URL, &user.ProfilePhoto.PublicID,
		&user.BlogPublished, &user.TotalVisits, &user.TotalReactions,
		&user.CreatedAt, &user.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &user, nil
}
