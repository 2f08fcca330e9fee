package blog

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/thedevarpan/dot-developer/internal/common/pagination"
	"github.com/thedevarpan/dot-developer/internal/common/pairedwrite"
	"github.com/thedevarpan/dot-developer/internal/domain/entity"
	"github.com/thedevarpan/dot-developer/internal/observability/metrics"
	"github.com/thedevarpan/dot-developer/internal/repository"
	"github.com/thedevarpan/dot-developer/internal/utils/text"
)

// ImageHost uploads a base64-encoded image under the given public ID and
// returns the hosted URL. Uploading under an existing public ID overwrites
// the asset in place.
type ImageHost interface {
	Upload(ctx context.Context, base64Image, publicID string) (string, error)
}

// CreateInput carries the authenticated author and the submitted post.
// Banner is the image payload as a base64 data string.
type CreateInput struct {
	OwnerID int64
	Title   string
	Content string
	Banner  string
}

// UpdateInput carries an edit to an existing post. An empty Banner keeps the
// current banner; title and content always replace the stored values.
type UpdateInput struct {
	ActorID int64
	BlogID  int64
	Title   string
	Content string
	Banner  string
}

// DetailResult is everything the blog detail page renders: the post, up to
// three more posts by the same author, and the viewer's engagement state.
type DetailResult struct {
	Blog          repository.BlogWithAuthor
	OwnerBlogs    []repository.BlogWithAuthor
	ViewerReacted bool
	ViewerSaved   bool
}

// ListResult is one page of a blog listing plus the total the pagination
// window is computed from.
type ListResult struct {
	Blogs []repository.BlogWithAuthor
	Total int64
}

// Service provides blog authoring and reading use cases. Persistence is
// delegated to the blog and user repositories; every counter-moving operation
// goes through the paired-write runner.
type Service struct {
	Blogs  repository.BlogRepository
	Users  repository.UserRepository
	Images ImageHost
	Paired *pairedwrite.Runner
}

// Home returns one page of the latest blogs. The limit comes from the
// pagination config (18 on the original home feed).
func (s *Service) Home(ctx context.Context, page, limit int) (*ListResult, error) {
	total, err := s.Blogs.CountBlogs(ctx)
	if err != nil {
		return nil, fmt.Errorf("count blogs: %w", err)
	}
	metrics.UpdateBlogsTotal(total)

	offset := pagination.CalculateOffset(page, limit)
	blogs, err := s.Blogs.ListLatest(ctx, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("list latest blogs: %w", err)
	}
	return &ListResult{Blogs: blogs, Total: total}, nil
}

// Detail loads a blog for its detail page. viewerID is zero for anonymous
// visitors; for signed-in viewers the reacted/saved flags reflect their
// membership sets. Returns ErrBlogNotFound when the id is unknown.
func (s *Service) Detail(ctx context.Context, blogID, viewerID int64) (*DetailResult, error) {
	if blogID <= 0 {
		return nil, ErrInvalidBlogID
	}

	bwa, err := s.Blogs.GetWithAuthor(ctx, blogID)
	if err != nil {
		return nil, fmt.Errorf("get blog: %w", err)
	}
	if bwa == nil {
		return nil, ErrBlogNotFound
	}

	ownerBlogs, err := s.Blogs.ListRecentByOwnerExcluding(ctx, bwa.Blog.OwnerID, blogID, 3)
	if err != nil {
		return nil, fmt.Errorf("list owner blogs: %w", err)
	}

	result := &DetailResult{Blog: *bwa, OwnerBlogs: ownerBlogs}
	if viewerID > 0 {
		if result.ViewerReacted, err = s.Users.HasReacted(ctx, viewerID, blogID); err != nil {
			return nil, fmt.Errorf("check reacted: %w", err)
		}
		if result.ViewerSaved, err = s.Users.HasSaved(ctx, viewerID, blogID); err != nil {
			return nil, fmt.Errorf("check saved: %w", err)
		}
	}
	return result, nil
}

// Create publishes a new blog: the banner is uploaded first (a failed upload
// aborts the whole operation), then the blog row is inserted with zeroed
// counters and the owner's published count is incremented as a paired unit.
func (s *Service) Create(ctx context.Context, in CreateInput) (*entity.Blog, error) {
	if err := entity.ValidateTitle(in.Title); err != nil {
		return nil, err
	}
	if err := entity.ValidateContent(in.Content); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Banner) == "" {
		return nil, &entity.ValidationError{Field: "banner", Message: "is required"}
	}

	publicID := uuid.NewString()
	bannerURL, err := s.Images.Upload(ctx, in.Banner, publicID)
	if err != nil {
		metrics.RecordEngagementOp("create-blog", "error")
		return nil, fmt.Errorf("upload banner: %w", err)
	}

	b := &entity.Blog{
		OwnerID:     in.OwnerID,
		Title:       in.Title,
		Content:     in.Content,
		Banner:      entity.Banner{URL: bannerURL, PublicID: publicID},
		ReadingTime: text.ReadingTime(in.Content),
	}

	err = s.Paired.Do(ctx, "create-blog", 0, in.OwnerID,
		func(ctx context.Context) error { return s.Blogs.Create(ctx, b) },
		func(ctx context.Context) error { return s.Users.AdjustAggregates(ctx, in.OwnerID, 1, 0, 0) },
	)
	if err != nil {
		metrics.RecordEngagementOp("create-blog", "error")
		return nil, err
	}
	metrics.RecordEngagementOp("create-blog", "ok")
	return b, nil
}

// Update replaces a blog's content fields. Only the owner may edit; the
// engagement counters are never touched. A new banner is uploaded under the
// existing public ID so the hosted asset is replaced rather than duplicated.
func (s *Service) Update(ctx context.Context, in UpdateInput) error {
	if in.BlogID <= 0 {
		return ErrInvalidBlogID
	}
	if err := entity.ValidateTitle(in.Title); err != nil {
		return err
	}
	if err := entity.ValidateContent(in.Content); err != nil {
		return err
	}

	b, err := s.Blogs.Get(ctx, in.BlogID)
	if err != nil {
		return fmt.Errorf("get blog: %w", err)
	}
	if b == nil {
		return ErrBlogNotFound
	}
	if b.OwnerID != in.ActorID {
		return ErrNotBlogOwner
	}

	if in.Banner != "" {
		bannerURL, err := s.Images.Upload(ctx, in.Banner, b.Banner.PublicID)
		if err != nil {
			return fmt.Errorf("upload banner: %w", err)
		}
		b.Banner.URL = bannerURL
	}

	b.Title = in.Title
	b.Content = in.Content
	b.ReadingTime = text.ReadingTime(in.Content)

	if err := s.Blogs.UpdateContent(ctx, b); err != nil {
		return fmt.Errorf("update blog: %w", err)
	}
	return nil
}

// Delete removes a blog and reconciles the owner's aggregates. The blog's
// counters are read before the row is deleted; the reconciliation subtracts
// them from the owner in a single write as the second half of the paired unit.
func (s *Service) Delete(ctx context.Context, actorID, blogID int64) error {
	if blogID <= 0 {
		return ErrInvalidBlogID
	}

	b, err := s.Blogs.Get(ctx, blogID)
	if err != nil {
		return fmt.Errorf("get blog: %w", err)
	}
	if b == nil {
		return ErrBlogNotFound
	}
	if b.OwnerID != actorID {
		metrics.RecordEngagementOp("delete-blog", "rejected")
		return ErrNotBlogOwner
	}

	// Counters captured above; after the delete they are gone.
	visits, reactions := b.TotalVisit, b.Reaction

	err = s.Paired.Do(ctx, "delete-blog", blogID, b.OwnerID,
		func(ctx context.Context) error { return s.Blogs.Delete(ctx, blogID) },
		func(ctx context.Context) error {
			return s.Users.AdjustAggregates(ctx, b.OwnerID, -1, -visits, -reactions)
		},
	)
	if err != nil {
		metrics.RecordEngagementOp("delete-blog", "error")
		return err
	}
	metrics.RecordEngagementOp("delete-blog", "ok")
	return nil
}

// RecordVisit counts one view of a blog. Every view counts, repeats included;
// the operation has no precondition and is never rejected. The blog's visit
// counter and the owner's total are incremented as a paired unit.
func (s *Service) RecordVisit(ctx context.Context, blogID int64) error {
	if blogID <= 0 {
		return ErrInvalidBlogID
	}

	b, err := s.Blogs.Get(ctx, blogID)
	if err != nil {
		return fmt.Errorf("get blog: %w", err)
	}
	if b == nil {
		return ErrBlogNotFound
	}

	err = s.Paired.Do(ctx, "record-visit", blogID, b.OwnerID,
		func(ctx context.Context) error { return s.Blogs.IncrementVisit(ctx, blogID, 1) },
		func(ctx context.Context) error { return s.Users.AdjustAggregates(ctx, b.OwnerID, 0, 1, 0) },
	)
	if err != nil {
		metrics.RecordEngagementOp("record-visit", "error")
		return err
	}
	metrics.RecordEngagementOp("record-visit", "ok")
	return nil
}
