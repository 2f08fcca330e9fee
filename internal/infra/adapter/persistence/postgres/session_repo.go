package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/thedevarpan/dot-developer/internal/repository"
)

type SessionRepo struct {
	db *sql.DB
}

func NewSessionRepo(db *sql.DB) repository.SessionRepository {
	return &SessionRepo{db: db}
}

func (repo *SessionRepo) Create(ctx context.Context, s *repository.Session) error {
	const query = `
INSERT INTO sessions (id, user_id, name, username, photo_url, expires_at)
VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := repo.db.ExecContext(ctx, query,
		s.ID, s.UserID, s.Name, s.Username, s.PhotoURL, s.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

// Get treats expired rows as absent; DeleteExpired removes them later.
func (repo *SessionRepo) Get(ctx context.Context, id string) (*repository.Session, error) {
	const query = `
SELECT id, user_id, name, username, photo_url, expires_at
FROM sessions
WHERE id = $1 AND expires_at > NOW()
LIMIT 1`
	var s repository.Session
	err := repo.db.QueryRowContext(ctx, query, id).Scan(
		&s.ID, &s.UserID, &s.Name, &s.Username, &s.PhotoURL, &s.ExpiresAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return &s, nil
}

func (repo *SessionRepo) UpdateMirror(ctx context.Context, userID int64, name, username, photoURL string) error {
	const query = `
UPDATE sessions
SET name      = $1,
    username  = $2,
    photo_url = $3
WHERE user_id = $4`
	if _, err := repo.db.ExecContext(ctx, query, name, username, photoURL, userID); err != nil {
		return fmt.Errorf("UpdateMirror: %w", err)
	}
	return nil
}

func (repo *SessionRepo) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM sessions WHERE id = $1`
	if _, err := repo.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	return nil
}

func (repo *SessionRepo) DeleteByUser(ctx context.Context, userID int64) error {
	const query = `DELETE FROM sessions WHERE user_id = $1`
	if _, err := repo.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("DeleteByUser: %w", err)
	}
	return nil
}

func (repo *SessionRepo) DeleteExpired(ctx context.Context) (int64, error) {
	const query = `DELETE FROM sessions WHERE expires_at <= NOW()`
	res, err := repo.db.ExecContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("DeleteExpired: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
