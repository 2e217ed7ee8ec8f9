package ports

import (
	"context"

	"github.com/inkwell/blog-platform/internal/core/domain"
)

// CommentView is a comment with its resolved author. Author is zero-valued
// for comments whose owner account was deleted.
type CommentView struct {
	Comment domain.Comment
	Author  AuthorInfo
}

// AddCommentInput carries a new comment. The parent post must exist.
type AddCommentInput struct {
	ClerkUserID string
	PostID      string
	Desc        string
}

// CommentService defines use-case operations for comments.
type CommentService interface {
	ListByPost(ctx context.Context, postID string) ([]CommentView, error)
	Add(ctx context.Context, input AddCommentInput) (*domain.Comment, error)
	Delete(ctx context.Context, actor ActorInput, commentID string) error
}
