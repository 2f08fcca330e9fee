package engagement

import (
	"context"
	"fmt"

	"github.com/thedevarpan/dot-developer/internal/common/pagination"
	"github.com/thedevarpan/dot-developer/internal/common/pairedwrite"
	"github.com/thedevarpan/dot-developer/internal/observability/metrics"
	"github.com/thedevarpan/dot-developer/internal/repository"
)

// ReadingListResult is one page of a user's reading list plus the total the
// pagination window is computed from.
type ReadingListResult struct {
	Blogs []repository.BlogWithAuthor
	Total int64
}

// Service provides reactions and reading-list operations. Each mutation is a
// paired unit; when one half fails after another succeeded the runner records
// the gap for the audit pass.
type Service struct {
	Blogs  repository.BlogRepository
	Users  repository.UserRepository
	Paired *pairedwrite.Runner
}

// AddReaction registers the user's reaction to a blog. A user reacts to a
// blog at most once; a duplicate add returns ErrAlreadyReacted and moves no
// counter. On success the blog's reaction counter, the actor's reaction set
// and the author's reaction total all advance by one.
func (s *Service) AddReaction(ctx context.Context, userID, blogID int64) error {
	b, err := s.Blogs.Get(ctx, blogID)
	if err != nil {
		return fmt.Errorf("get blog: %w", err)
	}
	if b == nil {
		return ErrBlogNotFound
	}

	reacted, err := s.Users.HasReacted(ctx, userID, blogID)
	if err != nil {
		return fmt.Errorf("check reacted: %w", err)
	}
	if reacted {
		metrics.RecordEngagementOp("add-reaction", "rejected")
		return ErrAlreadyReacted
	}

	err = s.Paired.Do(ctx, "add-reaction", blogID, b.OwnerID,
		func(ctx context.Context) error { return s.Blogs.IncrementReaction(ctx, blogID, 1) },
		func(ctx context.Context) error { return s.Users.AddReacted(ctx, userID, blogID) },
		func(ctx context.Context) error { return s.Users.AdjustAggregates(ctx, b.OwnerID, 0, 0, 1) },
	)
	if err != nil {
		metrics.RecordEngagementOp("add-reaction", "error")
		return err
	}
	metrics.RecordEngagementOp("add-reaction", "ok")
	return nil
}

// RemoveReaction withdraws a previously added reaction. Removing a reaction
// that was never added returns ErrNotReacted and moves no counter.
func (s *Service) RemoveReaction(ctx context.Context, userID, blogID int64) error {
	b, err := s.Blogs.Get(ctx, blogID)
	if err != nil {
		return fmt.Errorf("get blog: %w", err)
	}
	if b == nil {
		return ErrBlogNotFound
	}

	reacted, err := s.Users.HasReacted(ctx, userID, blogID)
	if err != nil {
		return fmt.Errorf("check reacted: %w", err)
	}
	if !reacted {
		metrics.RecordEngagementOp("remove-reaction", "rejected")
		return ErrNotReacted
	}

	err = s.Paired.Do(ctx, "remove-reaction", blogID, b.OwnerID,
		func(ctx context.Context) error { return s.Blogs.IncrementReaction(ctx, blogID, -1) },
		func(ctx context.Context) error { return s.Users.RemoveReacted(ctx, userID, blogID) },
		func(ctx context.Context) error { return s.Users.AdjustAggregates(ctx, b.OwnerID, 0, 0, -1) },
	)
	if err != nil {
		metrics.RecordEngagementOp("remove-reaction", "error")
		return err
	}
	metrics.RecordEngagementOp("remove-reaction", "ok")
	return nil
}

// Save puts a blog on the user's reading list. The membership write leads and
// the blog's bookmark counter follows; a blog is saved at most once per user.
func (s *Service) Save(ctx context.Context, userID, blogID int64) error {
	b, err := s.Blogs.Get(ctx, blogID)
	if err != nil {
		return fmt.Errorf("get blog: %w", err)
	}
	if b == nil {
		return ErrBlogNotFound
	}

	saved, err := s.Users.HasSaved(ctx, userID, blogID)
	if err != nil {
		return fmt.Errorf("check saved: %w", err)
	}
	if saved {
		metrics.RecordEngagementOp("save-blog", "rejected")
		return ErrAlreadySaved
	}

	err = s.Paired.Do(ctx, "save-blog", blogID, b.OwnerID,
		func(ctx context.Context) error { return s.Users.AddSaved(ctx, userID, blogID) },
		func(ctx context.Context) error { return s.Blogs.IncrementBookmark(ctx, blogID, 1) },
	)
	if err != nil {
		metrics.RecordEngagementOp("save-blog", "error")
		return err
	}
	metrics.RecordEngagementOp("save-blog", "ok")
	return nil
}

// Unsave removes a blog from the user's reading list.
func (s *Service) Unsave(ctx context.Context, userID, blogID int64) error {
	b, err := s.Blogs.Get(ctx, blogID)
	if err != nil {
		return fmt.Errorf("get blog: %w", err)
	}
	if b == nil {
		return ErrBlogNotFound
	}

	saved, err := s.Users.HasSaved(ctx, userID, blogID)
	if err != nil {
		return fmt.Errorf("check saved: %w", err)
	}
	if !saved {
		metrics.RecordEngagementOp("unsave-blog", "rejected")
		return ErrNotSaved
	}

	err = s.Paired.Do(ctx, "unsave-blog", blogID, b.OwnerID,
		func(ctx context.Context) error { return s.Users.RemoveSaved(ctx, userID, blogID) },
		func(ctx context.Context) error { return s.Blogs.IncrementBookmark(ctx, blogID, -1) },
	)
	if err != nil {
		metrics.RecordEngagementOp("unsave-blog", "error")
		return err
	}
	metrics.RecordEngagementOp("unsave-blog", "ok")
	return nil
}

// ReadingList returns one page of the user's saved blogs, newest saved first.
func (s *Service) ReadingList(ctx context.Context, userID int64, page, limit int) (*ReadingListResult, error) {
	total, err := s.Blogs.CountSaved(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count saved: %w", err)
	}

	offset := pagination.CalculateOffset(page, limit)
	blogs, err := s.Blogs.ListSaved(ctx, userID, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("list saved: %w", err)
	}
	return &ReadingListResult{Blogs: blogs, Total: total}, nil
}
