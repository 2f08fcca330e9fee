package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/thedevarpan/dot-developer/internal/repository"
)

type RepairRepo struct {
	db *sql.DB
}

func NewRepairRepo(db *sql.DB) repository.RepairRepository {
	return &RepairRepo{db: db}
}

func (repo *RepairRepo) Create(ctx context.Context, r *repository.CounterRepair) error {
	const query = `
INSERT INTO counter_repairs (op, blog_id, user_id, detail)
VALUES ($1, $2, $3, $4)
RETURNING id, created_at`
	err := repo.db.QueryRowContext(ctx, query,
		r.Op, r.BlogID, r.UserID, r.Detail,
	).Scan(&r.ID, &r.CreatedAt)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (repo *RepairRepo) ListUnresolved(ctx context.Context, limit int) ([]*repository.CounterRepair, error) {
	const query = `
SELECT id, op, blog_id, user_id, detail, created_at, resolved_at
FROM counter_repairs
WHERE resolved_at IS NULL
ORDER BY created_at
LIMIT $1`
	rows, err := repo.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("ListUnresolved: %w", err)
	}
	defer func() { _ = rows.Close() }()

	result := make([]*repository.CounterRepair, 0, limit)
	for rows.Next() {
		var r repository.CounterRepair
		var resolvedAt sql.NullTime
		if err := rows.Scan(&r.ID, &r.Op, &r.BlogID, &r.UserID,
			&r.Detail, &r.CreatedAt, &resolvedAt); err != nil {
			return nil, fmt.Errorf("ListUnresolved: Scan: %w", err)
		}
		if resolvedAt.Valid {
			t := resolvedAt.Time
			r.ResolvedAt = &t
		}
		result = append(result, &r)
	}
	return result, rows.Err()
}

func (repo *RepairRepo) Resolve(ctx context.Context, id int64) error {
	const query = `UPDATE counter_repairs SET resolved_at = NOW() WHERE id = $1 AND resolved_at IS NULL`
	res, err := repo.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("Resolve: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("Resolve: repair %d not found or already resolved", id)
	}
	return nil
}
