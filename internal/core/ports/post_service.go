package ports

import (
	"context"

	"github.com/inkwell/blog-platform/internal/core/domain"
)

// AuthorInfo is the subset of the author's profile embedded in post and
// comment views.
type AuthorInfo struct {
	Username    string
	Img         string
	ClerkUserID string
}

// PostView is a post together with its resolved author.
type PostView struct {
	Post   domain.Post
	Author AuthorInfo
}

// ListPostsInput carries the raw query parameters from the transport layer.
// Author is a username; the service resolves it to a local user id.
type ListPostsInput struct {
	Category string
	Author   string
	Search   string
	Sort     string
	Featured bool
	Page     int
	Limit    int
}

// PostPage is one page of the post listing.
type PostPage struct {
	Posts   []PostView
	HasMore bool
}

// CreatePostInput carries everything needed to create a post. ClerkUserID and
// Role identify the actor; the service resolves the local user record.
type CreatePostInput struct {
	ClerkUserID string
	Role        string
	Title       string
	Content     string
	Category    string
	Description string
	Img         string
}

// UpdatePostInput is a partial update: nil fields are left unchanged.
// A title change regenerates the slug.
type UpdatePostInput struct {
	ClerkUserID string
	Role        string
	PostID      string
	Title       *string
	Content     *string
	Category    *string
	Description *string
	Img         *string
}

// ActorInput identifies the actor for single-resource mutations.
type ActorInput struct {
	ClerkUserID string
	Role        string
}

// PostService defines use-case operations for posts.
type PostService interface {
	List(ctx context.Context, input ListPostsInput) (*PostPage, error)
	// GetBySlug increments the visit counter and returns the post.
	GetBySlug(ctx context.Context, slug string) (*PostView, error)
	Create(ctx context.Context, input CreatePostInput) (*domain.Post, error)
	Update(ctx context.Context, input UpdatePostInput) (*domain.Post, error)
	Delete(ctx context.Context, actor ActorInput, postID string) error
	// ToggleFeature flips the featured flag; admin-only.
	ToggleFeature(ctx context.Context, actor ActorInput, postID string) (*domain.Post, error)
}
