package ports

import (
	"context"
	"time"

	"github.com/inkwell/blog-platform/internal/core/domain"
)

// Post list sort orders. Newest is the default.
const (
	SortNewest   = "newest"
	SortOldest   = "oldest"
	SortPopular  = "popular"
	SortTrending = "trending"
)

// ListPostsFilter carries all query parameters for listing posts.
// UserID is the resolved local id of the author filter, if any.
type ListPostsFilter struct {
	Category     string    // optional: exact category match
	UserID       string    // optional: scope to one author
	Search       string    // optional: case-insensitive title match
	FeaturedOnly bool      // optional: only featured posts
	CreatedAfter time.Time // optional: created_at >= CreatedAfter (trending window)
	Sort         string    // one of the Sort* constants
	Page         int       // 1-based
	Limit        int       // rows per page (capped by the service)
}

// PostStatsRow is the projection the stats aggregator works over: everything
// it needs and nothing more (content is included for reading-time math).
type PostStatsRow struct {
	ID       string
	UserID   string
	Title    string
	Slug     string
	Content  string
	Category string
	Visit    int64
}

// PostRepository defines persistence operations for posts.
type PostRepository interface {
	// Create inserts the post. A duplicate slug (unique index) surfaces as
	// domain.ErrSlugConflict so the service can regenerate and retry.
	Create(ctx context.Context, post *domain.Post) (*domain.Post, error)
	FindByID(ctx context.Context, id string) (*domain.Post, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Post, error)
	// SlugExists reports whether any post other than excludeID holds the slug.
	// Pass excludeID == "" for creation checks.
	SlugExists(ctx context.Context, slug, excludeID string) (bool, error)
	// List returns one page of posts matching filter plus the total count.
	List(ctx context.Context, filter ListPostsFilter) ([]*domain.Post, int64, error)
	FindByIDs(ctx context.Context, ids []string) ([]*domain.Post, error)
	Update(ctx context.Context, post *domain.Post) error
	SetFeatured(ctx context.Context, id string, featured bool) error
	IncrementVisit(ctx context.Context, slug string) error
	Delete(ctx context.Context, id string) error
	// DeleteByUser removes every post owned by userID, returning the count.
	DeleteByUser(ctx context.Context, userID string) (int64, error)
	// ListStats streams the minimal projection used by the stats aggregator.
	ListStats(ctx context.Context) ([]PostStatsRow, error)
	EnsureIndexes(ctx context.Context) error
}
