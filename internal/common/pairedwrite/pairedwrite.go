// Package pairedwrite names and runs the two-sided counter updates that keep
// a blog's engagement counters and its owner's aggregates in step. The stores
// offer no cross-record transaction, so a unit is just an ordered sequence of
// independent writes: when a later write fails after an earlier one succeeded,
// the unit cannot be rolled back. Instead the failure is logged with the unit
// name and an idempotent repair record is stored for the audit pass.
package pairedwrite

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/thedevarpan/dot-developer/internal/observability/metrics"
	"github.com/thedevarpan/dot-developer/internal/repository"
)

// Write is one side of a paired unit.
type Write func(ctx context.Context) error

// Runner executes paired units and records repair state for half-applied ones.
type Runner struct {
	Repairs repository.RepairRepository
	Logger  *slog.Logger
}

// Do executes the writes of the unit named op in order, stopping at the first
// failure.
//
// A failure of the first write leaves both records untouched and is returned
// as-is. A failure of any later write leaves the unit half applied: the
// failure is returned, a structured warning is logged, and a repair record
// keyed by (op, blogID, ownerID) is created so the audit job can recompute
// the owner's aggregates later. Repair bookkeeping is best effort; its own
// failure is logged but never masks the original error.
func (r *Runner) Do(ctx context.Context, op string, blogID, ownerID int64, writes ...Write) error {
	for i, write := range writes {
		err := write(ctx)
		if err == nil {
			continue
		}
		if i == 0 {
			return fmt.Errorf("%s: %w", op, err)
		}

		logger := r.logger()
		logger.Warn("paired write half applied, counters inconsistent until audit",
			slog.String("op", op),
			slog.Int64("blog_id", blogID),
			slog.Int64("owner_id", ownerID),
			slog.Int("failed_write", i+1),
			slog.Int("total_writes", len(writes)),
			slog.Any("error", err))
		metrics.RecordPairedWriteFailure(op)

		if r.Repairs != nil {
			repair := &repository.CounterRepair{
				Op:     op,
				BlogID: blogID,
				UserID: ownerID,
				Detail: err.Error(),
			}
			if repairErr := r.Repairs.Create(ctx, repair); repairErr != nil {
				logger.Error("failed to store counter repair record",
					slog.String("op", op),
					slog.Int64("blog_id", blogID),
					slog.Int64("owner_id", ownerID),
					slog.Any("error", repairErr))
			}
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}
