package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/inkwell/blog-platform/internal/core/domain"
	"github.com/inkwell/blog-platform/internal/core/ports"
)

// DeliveryDedup abstracts the webhook delivery dedup store (Redis). The
// provider retries deliveries, so every message id is marked after processing
// and duplicates are skipped.
type DeliveryDedup interface {
	IsDuplicate(ctx context.Context, messageID string) (bool, error)
	Mark(ctx context.Context, messageID string) error
}

type identityEventService struct {
	users    ports.UserRepository
	posts    ports.PostRepository
	comments ports.CommentRepository
	dedup    DeliveryDedup
	log      zerolog.Logger
}

// NewIdentityEventService returns an IdentityEventService implementation.
func NewIdentityEventService(
	users ports.UserRepository,
	posts ports.PostRepository,
	comments ports.CommentRepository,
	dedup DeliveryDedup,
	log zerolog.Logger,
) ports.IdentityEventService {
	return &identityEventService{
		users:    users,
		posts:    posts,
		comments: comments,
		dedup:    dedup,
		log:      log,
	}
}

// Process applies a single identity-provider lifecycle event to the local mirror.
func (s *identityEventService) Process(ctx context.Context, in ports.IdentityEventInput) error {
	isDup, err := s.dedup.IsDuplicate(ctx, in.MessageID)
	if err != nil {
		s.log.Warn().Err(err).Str("message_id", in.MessageID).Msg("dedup check failed, processing anyway")
	} else if isDup {
		s.log.Debug().Str("message_id", in.MessageID).Str("type", in.Type).Msg("duplicate delivery skipped")
		return nil
	}

	switch in.Type {
	case ports.EventUserCreated:
		err = s.createUser(ctx, in)
	case ports.EventUserDeleted:
		err = s.deleteUser(ctx, in)
	default:
		s.log.Debug().Str("type", in.Type).Msg("ignoring unhandled event type")
		return nil
	}
	if err != nil {
		return fmt.Errorf("process %s: %w", in.Type, err)
	}

	if markErr := s.dedup.Mark(ctx, in.MessageID); markErr != nil {
		s.log.Warn().Err(markErr).Str("message_id", in.MessageID).Msg("failed to set dedup key")
	}

	return nil
}

func (s *identityEventService) createUser(ctx context.Context, in ports.IdentityEventInput) error {
	_, err := s.users.Create(ctx, &domain.User{
		ClerkUserID: in.ClerkUserID,
		Username:    in.Username,
		Email:       in.Email,
		Img:         in.Img,
		CreatedAt:   time.Now().UTC(),
	})
	if errors.Is(err, domain.ErrUserExists) {
		// Redelivery after a lost dedup key; the mirror is already in sync.
		s.log.Debug().Str("clerk_user_id", in.ClerkUserID).Msg("user already mirrored")
		return nil
	}
	if err != nil {
		return err
	}

	s.log.Info().Str("clerk_user_id", in.ClerkUserID).Str("username", in.Username).Msg("user mirrored from identity provider")
	return nil
}

// deleteUser removes the local user and cascades: owned posts are deleted,
// comments authored by the user are deleted. Comments on the user's posts are
// left behind and become orphaned.
func (s *identityEventService) deleteUser(ctx context.Context, in ports.IdentityEventInput) error {
	user, err := s.users.DeleteByClerkID(ctx, in.ClerkUserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.log.Debug().Str("clerk_user_id", in.ClerkUserID).Msg("user already absent")
			return nil
		}
		return err
	}

	postsDeleted, err := s.posts.DeleteByUser(ctx, user.ID)
	if err != nil {
		return fmt.Errorf("cascade posts: %w", err)
	}
	commentsDeleted, err := s.comments.DeleteByUser(ctx, user.ID)
	if err != nil {
		return fmt.Errorf("cascade comments: %w", err)
	}

	s.log.Info().
		Str("clerk_user_id", in.ClerkUserID).
		Int64("posts_deleted", postsDeleted).
		Int64("comments_deleted", commentsDeleted).
		Msg("user and owned content deleted")
	return nil
}
