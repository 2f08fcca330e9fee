package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/thedevarpan/dot-developer/internal/domain/entity"
	"github.com/thedevarpan/dot-developer/internal/repository"
)

const blogColumns = `b.id, b.owner_id, b.title, b.content, b.banner_url, b.banner_public_id,
       b.reading_time, b.reaction, b.total_bookmark, b.total_visit, b.created_at, b.updated_at`

type BlogRepo struct {
	db *sql.DB
}

func NewBlogRepo(db *sql.DB) repository.BlogRepository {
	return &BlogRepo{db: db}
}

func (repo *BlogRepo) Create(ctx context.Context, blog *entity.Blog) error {
	const query = `
INSERT INTO blogs
	   (owner_id, title, content, banner_url, banner_public_id, reading_time)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, created_at, updated_at`
	err := repo.db.QueryRowContext(ctx, query,
		blog.OwnerID, blog.Title, blog.Content,
		blog.Banner.URL, blog.Banner.PublicID, blog.ReadingTime,
	).Scan(&blog.ID, &blog.CreatedAt, &blog.UpdatedAt)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (repo *BlogRepo) Get(ctx context.Context, id int64) (*entity.Blog, error) {
	const query = `
SELECT ` + blogColumns + `
FROM blogs b
WHERE b.id = $1
LIMIT 1`
	var blog entity.Blog
	err := repo.db.QueryRowContext(ctx, query, id).Scan(
		&blog.ID, &blog.OwnerID, &blog.Title, &blog.Content,
		&blog.Banner.URL, &blog.Banner.PublicID, &blog.ReadingTime,
		&blog.Reaction, &blog.TotalBookmark, &blog.TotalVisit,
		&blog.CreatedAt, &blog.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return &blog, nil
}

func (repo *BlogRepo) GetWithAuthor(ctx context.Context, id int64) (*repository.BlogWithAuthor, error) {
	const query = `
SELECT ` + blogColumns + `,
       u.id, u.name, u.username, u.profile_photo_url
FROM blogs b
INNER JOIN users u ON b.owner_id = u.id
WHERE b.id = $1
LIMIT 1`
	var blog entity.Blog
	var author repository.Author
	err := repo.db.QueryRowContext(ctx, query, id).Scan(
		&blog.ID, &blog.OwnerID, &blog.Title, &blog.Content,
		&blog.Banner.URL, &blog.Banner.PublicID, &blog.ReadingTime,
		&blog.Reaction, &blog.TotalBookmark, &blog.TotalVisit,
		&blog.CreatedAt, &blog.UpdatedAt,
		&author.ID, &author.Name, &author.Username, &author.PhotoURL)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("GetWithAuthor: %w", err)
	}
	return &repository.BlogWithAuthor{Blog: &blog, Author: author}, nil
}

func (repo *BlogRepo) Exists(ctx context.Context, id int64) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM blogs WHERE id = $1)`
	var exists bool
	if err := repo.db.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("Exists: %w", err)
	}
	return exists, nil
}

func (repo *BlogRepo) ListLatest(ctx context.Context, offset, limit int) ([]repository.BlogWithAuthor, error) {
	const query = `
SELECT ` + blogColumns + `,
       u.id, u.name, u.username, u.profile_photo_url
FROM blogs b
INNER JOIN users u ON b.owner_id = u.id
ORDER BY b.created_at DESC, b.id DESC
LIMIT $1 OFFSET $2`
	return repo.queryBlogsWithAuthor(ctx, "ListLatest", query, limit, offset)
}

func (repo *BlogRepo) CountBlogs(ctx context.Context) (int64, error) {
	const query = `SELECT COUNT(*) FROM blogs`
	var count int64
	if err := repo.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("CountBlogs: %w", err)
	}
	return count, nil
}

func (repo *BlogRepo) ListByOwner(ctx context.Context, ownerID int64, offset, limit int) ([]repository.BlogWithAuthor, error) {
	const query = `
SELECT ` + blogColumns + `,
       u.id, u.name, u.username, u.profile_photo_url
FROM blogs b
INNER JOIN users u ON b.owner_id = u.id
WHERE b.owner_id = $1
ORDER BY b.created_at DESC, b.id DESC
LIMIT $2 OFFSET $3`
	return repo.queryBlogsWithAuthor(ctx, "ListByOwner", query, ownerID, limit, offset)
}

func (repo *BlogRepo) CountByOwner(ctx context.Context, ownerID int64) (int64, error) {
	const query = `SELECT COUNT(*) FROM blogs WHERE owner_id = $1`
	var count int64
	if err := repo.db.QueryRowContext(ctx, query, ownerID).Scan(&count); err != nil {
		return 0, fmt.Errorf("CountByOwner: %w", err)
	}
	return count, nil
}

func (repo *BlogRepo) ListRecentByOwnerExcluding(ctx context.Context, ownerID, excludeID int64, limit int) ([]repository.BlogWithAuthor, error) {
	const query = `
SELECT ` + blogColumns + `,
       u.id, u.name, u.username, u.profile_photo_url
FROM blogs b
INNER JOIN users u ON b.owner_id = u.id
WHERE b.owner_id = $1 AND b.id <> $2
ORDER BY b.created_at DESC, b.id DESC
LIMIT $3`
	return repo.queryBlogsWithAuthor(ctx, "ListRecentByOwnerExcluding", query, ownerID, excludeID, limit)
}

// ListSaved orders by when the blog was saved, not when it was written.
func (repo *BlogRepo) ListSaved(ctx context.Context, userID int64, offset, limit int) ([]repository.BlogWithAuthor, error) {
	const query = `
SELECT ` + blogColumns + `,
       u.id, u.name, u.username, u.profile_photo_url
FROM reading_list rl
INNER JOIN blogs b ON rl.blog_id = b.id
INNER JOIN users u ON b.owner_id = u.id
WHERE rl.user_id = $1
ORDER BY rl.created_at DESC, b.id DESC
LIMIT $2 OFFSET $3`
	return repo.queryBlogsWithAuthor(ctx, "ListSaved", query, userID, limit, offset)
}

func (repo *BlogRepo) CountSaved(ctx context.Context, userID int64) (int64, error) {
	const query = `SELECT COUNT(*) FROM reading_list WHERE user_id = $1`
	var count int64
	if err := repo.db.QueryRowContext(ctx, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("CountSaved: %w", err)
	}
	return count, nil
}

func (repo *BlogRepo) UpdateContent(ctx context.Context, blog *entity.Blog) error {
	const query = `
UPDATE blogs
SET title            = $1,
    content          = $2,
    banner_url       = $3,
    banner_public_id = $4,
    reading_time     = $5,
    updated_at       = NOW()
WHERE id = $6`
	res, err := repo.db.ExecContext(ctx, query,
		blog.Title, blog.Content, blog.Banner.URL,
		blog.Banner.PublicID, blog.ReadingTime, blog.ID,
	)
	if err != nil {
		return fmt.Errorf("UpdateContent: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("UpdateContent: blog %d not found", blog.ID)
	}
	return nil
}

// The increments are single in-place UPDATEs. Concurrent deltas to the same
// counter serialize inside the database, so none is lost.

func (repo *BlogRepo) IncrementReaction(ctx context.Context, id, delta int64) error {
	const query = `UPDATE blogs SET reaction = reaction + $1 WHERE id = $2`
	return repo.increment(ctx, "IncrementReaction", query, id, delta)
}

func (repo *BlogRepo) IncrementBookmark(ctx context.Context, id, delta int64) error {
	const query = `UPDATE blogs SET total_bookmark = total_bookmark + $1 WHERE id = $2`
	return repo.increment(ctx, "IncrementBookmark", query, id, delta)
}

func (repo *BlogRepo) IncrementVisit(ctx context.Context, id, delta int64) error {
	const query = `UPDATE blogs SET total_visit = total_visit + $1 WHERE id = $2`
	return repo.increment(ctx, "IncrementVisit", query, id, delta)
}

func (repo *BlogRepo) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM blogs WHERE id = $1`
	res, err := repo.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("Delete: blog %d not found", id)
	}
	return nil
}

func (repo *BlogRepo) DeleteByOwner(ctx context.Context, ownerID int64) error {
	const query = `DELETE FROM blogs WHERE owner_id = $1`
	if _, err := repo.db.ExecContext(ctx, query, ownerID); err != nil {
		return fmt.Errorf("DeleteByOwner: %w", err)
	}
	return nil
}

func (repo *BlogRepo) increment(ctx context.Context, op, query string, id, delta int64) error {
	res, err := repo.db.ExecContext(ctx, query, delta, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%s: blog %d not found", op, id)
	}
	return nil
}

func (repo *BlogRepo) queryBlogsWithAuthor(ctx context.Context, op, query string, args ...any) ([]repository.BlogWithAuthor, error) {
	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	result := make([]repository.BlogWithAuthor, 0, 20)
	for rows.Next() {
		var blog entity.Blog
		var author repository.Author
		if err := rows.Scan(
			&blog.ID, &blog.OwnerID, &blog.Title, &blog.Content,
			&blog.Banner.URL, &blog.Banner.PublicID, &blog.ReadingTime,
			&blog.Reaction, &blog.TotalBookmark, &blog.TotalVisit,
			&blog.CreatedAt, &blog.UpdatedAt,
			&author.ID, &author.Name, &author.Username, &author.PhotoURL); err != nil {
			return nil, fmt.Errorf("%s: Scan: %w", op, err)
		}
		result = append(result, repository.BlogWithAuthor{Blog: &blog, Author: author})
	}
	return result, rows.Err()
}
