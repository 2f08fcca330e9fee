// Package audit restores consistency between the blog counters and the
// denormalized owner aggregates. Paired writes can be left half applied when
// a later write fails; the runner records those gaps as repair records, and
// this service recomputes the affected owners from the blogs table.
package audit

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/thedevarpan/dot-developer/internal/observability/metrics"
	"github.com/thedevarpan/dot-developer/internal/repository"
)

// DefaultBatchSize bounds how many repair records one pass picks up.
const DefaultBatchSize = 100

// Service recomputes owner aggregates from the blogs table.
type Service struct {
	Users   repository.UserRepository
	Repairs repository.RepairRepository
	Logger  *slog.Logger
}

// ResolvePending processes up to limit unresolved repair records. Each
// record's owner gets their aggregates recomputed from live sums and the
// record is marked resolved. Recomputation is idempotent, so a record for an
// owner who was already repaired simply rewrites the same values. Returns how
// many records were resolved; a failing record is logged and skipped so one
// bad row cannot stall the rest of the batch.
func (s *Service) ResolvePending(ctx context.Context, limit int) (int, error) {
	if limit <= 0 {
		limit = DefaultBatchSize
	}
	records, err := s.Repairs.ListUnresolved(ctx, limit)
	if err != nil {
		return 0, fmt.Errorf("list unresolved repairs: %w", err)
	}

	logger := s.logger()
	resolved := 0
	for _, r := range records {
		if err := s.recompute(ctx, r.UserID); err != nil {
			logger.Error("failed to repair owner aggregates",
				slog.Int64("repair_id", r.ID),
				slog.String("op", r.Op),
				slog.Int64("owner_id", r.UserID),
				slog.Any("error", err))
			continue
		}
		if err := s.Repairs.Resolve(ctx, r.ID); err != nil {
			logger.Error("failed to mark repair resolved",
				slog.Int64("repair_id", r.ID),
				slog.Any("error", err))
			continue
		}
		metrics.RecordRepairResolved()
		resolved++
	}
	return resolved, nil
}

// SweepDrift compares every user's stored aggregates against live sums over
// the blogs table and rewrites any that drifted. This catches inconsistencies
// that never produced a repair record, such as a crash between the two halves
// of a unit. Returns how many users were corrected.
func (s *Service) SweepDrift(ctx context.Context) (int, error) {
	ids, err := s.Users.ListIDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("list users: %w", err)
	}

	logger := s.logger()
	corrected := 0
	for _, id := range ids {
		u, err := s.Users.GetByID(ctx, id)
		if err != nil {
			return corrected, fmt.Errorf("get user %d: %w", id, err)
		}
		if u == nil {
			continue
		}

		published, visits, reactions, err := s.Users.ComputedAggregates(ctx, id)
		if err != nil {
			return corrected, fmt.Errorf("compute aggregates for user %d: %w", id, err)
		}
		if u.BlogPublished == published && u.TotalVisits == visits && u.TotalReactions == reactions {
			continue
		}

		if u.BlogPublished != published {
			metrics.RecordAggregateDrift("blog_published")
		}
		if u.TotalVisits != visits {
			metrics.RecordAggregateDrift("total_visits")
		}
		if u.TotalReactions != reactions {
			metrics.RecordAggregateDrift("total_reactions")
		}
		logger.Warn("owner aggregates drifted, rewriting",
			slog.Int64("owner_id", id),
			slog.Int64("stored_published", u.BlogPublished),
			slog.Int64("computed_published", published),
			slog.Int64("stored_visits", u.TotalVisits),
			slog.Int64("computed_visits", visits),
			slog.Int64("stored_reactions", u.TotalReactions),
			slog.Int64("computed_reactions", reactions))

		if err := s.Users.SetAggregates(ctx, id, published, visits, reactions); err != nil {
			return corrected, fmt.Errorf("set aggregates for user %d: %w", id, err)
		}
		corrected++
	}
	return corrected, nil
}

func (s *Service) recompute(ctx context.Context, userID int64) error {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("get user: %w", err)
	}
	if u == nil {
		// Owner deleted since the record was written; nothing left to repair.
		return nil
	}

	published, visits, reactions, err := s.Users.ComputedAggregates(ctx, userID)
	if err != nil {
		return fmt.Errorf("compute aggregates: %w", err)
	}
	if err := s.Users.SetAggregates(ctx, userID, published, visits, reactions); err != nil {
		return fmt.Errorf("set aggregates: %w", err)
	}
	return nil
}

func (s *Service) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}
