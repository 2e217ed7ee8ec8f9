package ports

import (
	"context"

	"github.com/inkwell/blog-platform/internal/core/domain"
)

// CommentRepository defines persistence operations for comments.
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) (*domain.Comment, error)
	FindByID(ctx context.Context, id string) (*domain.Comment, error)
	// ListByPost returns the post's comments newest-first.
	ListByPost(ctx context.Context, postID string) ([]*domain.Comment, error)
	Delete(ctx context.Context, id string) error
	// DeleteByUser removes every comment authored by userID.
	DeleteByUser(ctx context.Context, userID string) (int64, error)
	CountAll(ctx context.Context) (int64, error)
	// CountByPost groups comments by post id (aggregation pipeline in the
	// Mongo implementation). Used by the stats aggregator to resolve
	// comments-received per post owner.
	CountByPost(ctx context.Context) (map[string]int64, error)
	EnsureIndexes(ctx context.Context) error
}
