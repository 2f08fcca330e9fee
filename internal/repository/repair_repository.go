package repository

import (
	"context"
	"time"
)

// CounterRepair records a paired write whose second half failed after the
// first succeeded, leaving the owner aggregates out of step with the blog
// counters. No cross-record transaction exists, so the record is the only
// durable trace of the gap; the audit pass recomputes the affected owner's
// aggregates and resolves the record.
type CounterRepair struct {
	ID         int64
	Op         string // operation name, e.g. "add-reaction", "record-visit"
	BlogID     int64
	UserID     int64 // owner whose aggregates may be stale
	Detail     string
	CreatedAt  time.Time
	ResolvedAt *time.Time
}

// RepairRepository stores counter repair records.
type RepairRepository interface {
	Create(ctx context.Context, r *CounterRepair) error
	ListUnresolved(ctx context.Context, limit int) ([]*CounterRepair, error)
	Resolve(ctx context.Context, id int64) error
}
