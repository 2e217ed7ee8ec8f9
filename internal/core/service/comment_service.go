package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/inkwell/blog-platform/internal/core/domain"
	"github.com/inkwell/blog-platform/internal/core/ports"
)

type CommentService struct {
	comments ports.CommentRepository
	posts    ports.PostRepository
	users    ports.UserRepository
	logger   zerolog.Logger
}

func NewCommentService(
	comments ports.CommentRepository,
	posts ports.PostRepository,
	users ports.UserRepository,
	logger zerolog.Logger,
) *CommentService {
	return &CommentService{comments: comments, posts: posts, users: users, logger: logger}
}

// ListByPost returns a post's comments newest-first with authors resolved.
// Comments from deleted accounts keep a zero-valued author.
func (s *CommentService) ListByPost(ctx context.Context, postID string) ([]ports.CommentView, error) {
	if _, err := s.posts.FindByID(ctx, postID); err != nil {
		return nil, err
	}

	comments, err := s.comments.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(comments))
	seen := make(map[string]struct{}, len(comments))
	for _, c := range comments {
		if c.UserID == "" {
			continue
		}
		if _, ok := seen[c.UserID]; !ok {
			seen[c.UserID] = struct{}{}
			ids = append(ids, c.UserID)
		}
	}
	authors, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*domain.User, len(authors))
	for _, u := range authors {
		byID[u.ID] = u
	}

	views := make([]ports.CommentView, len(comments))
	for i, c := range comments {
		views[i] = ports.CommentView{Comment: *c}
		if u, ok := byID[c.UserID]; ok {
			views[i].Author = ports.AuthorInfo{
				Username:    u.Username,
				Img:         u.Img,
				ClerkUserID: u.ClerkUserID,
			}
		}
	}
	return views, nil
}

// Add creates a comment. The parent post must exist at creation time.
func (s *CommentService) Add(ctx context.Context, input ports.AddCommentInput) (*domain.Comment, error) {
	user, err := s.users.FindByClerkID(ctx, input.ClerkUserID)
	if err != nil {
		return nil, err
	}
	if input.Desc == "" {
		return nil, domain.ErrCommentBodyRequired
	}
	if _, err := s.posts.FindByID(ctx, input.PostID); err != nil {
		return nil, err
	}

	created, err := s.comments.Create(ctx, &domain.Comment{
		UserID:    user.ID,
		PostID:    input.PostID,
		Desc:      input.Desc,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("comment_id", created.ID).Str("post_id", input.PostID).Str("user_id", user.ID).Msg("comment added")
	return created, nil
}

// Delete removes a comment when the actor is an admin, the parent post's
// owner, or the comment's own author. An orphaned comment (parent post gone)
// is a not-found condition: the owner rule cannot be evaluated on partial data.
func (s *CommentService) Delete(ctx context.Context, actorInput ports.ActorInput, commentID string) error {
	user, err := s.users.FindByClerkID(ctx, actorInput.ClerkUserID)
	if err != nil {
		return err
	}
	actor := domain.Actor{UserID: user.ID, Role: actorInput.Role}

	comment, err := s.comments.FindByID(ctx, commentID)
	if err != nil {
		return err
	}
	post, err := s.posts.FindByID(ctx, comment.PostID)
	if err != nil {
		return err
	}

	if !domain.CanDeleteComment(actor, comment, post) {
		return domain.ErrForbidden
	}

	if err := s.comments.Delete(ctx, commentID); err != nil {
		return err
	}

	s.logger.Info().Str("comment_id", commentID).Str("actor_id", actor.UserID).Msg("comment deleted")
	return nil
}
