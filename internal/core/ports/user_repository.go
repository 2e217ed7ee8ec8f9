package ports

import (
	"context"

	"github.com/inkwell/blog-platform/internal/core/domain"
)

// UserRepository persists the local mirror of identity-provider accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByClerkID(ctx context.Context, clerkUserID string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// FindByIDs resolves a set of local ids; unknown ids are silently skipped.
	FindByIDs(ctx context.Context, ids []string) ([]*domain.User, error)
	// DeleteByClerkID removes the user and returns the deleted record so the
	// caller can cascade to owned content.
	DeleteByClerkID(ctx context.Context, clerkUserID string) (*domain.User, error)
	AddSavedPost(ctx context.Context, userID, postID string) error
	RemoveSavedPost(ctx context.Context, userID, postID string) error
	EnsureIndexes(ctx context.Context) error
}
