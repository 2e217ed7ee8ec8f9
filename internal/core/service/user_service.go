package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/inkwell/blog-platform/internal/core/domain"
	"github.com/inkwell/blog-platform/internal/core/ports"
)

type UserService struct {
	users  ports.UserRepository
	posts  ports.PostRepository
	logger zerolog.Logger
}

func NewUserService(users ports.UserRepository, posts ports.PostRepository, logger zerolog.Logger) *UserService {
	return &UserService{users: users, posts: posts, logger: logger}
}

// SavedPosts resolves the actor's saved post ids to full posts. Ids pointing
// at since-deleted posts are dropped by the $in lookup.
func (s *UserService) SavedPosts(ctx context.Context, clerkUserID string) ([]ports.PostView, error) {
	user, err := s.users.FindByClerkID(ctx, clerkUserID)
	if err != nil {
		return nil, err
	}
	if len(user.SavedPostIDs) == 0 {
		return []ports.PostView{}, nil
	}

	posts, err := s.posts.FindByIDs(ctx, user.SavedPostIDs)
	if err != nil {
		return nil, err
	}

	return s.resolveAuthors(ctx, posts)
}

func (s *UserService) resolveAuthors(ctx context.Context, posts []*domain.Post) ([]ports.PostView, error) {
	ids := make([]string, 0, len(posts))
	seen := make(map[string]struct{}, len(posts))
	for _, p := range posts {
		if _, ok := seen[p.UserID]; !ok {
			seen[p.UserID] = struct{}{}
			ids = append(ids, p.UserID)
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

	views := make([]ports.PostView, len(posts))
	for i, p := range posts {
		views[i] = ports.PostView{Post: *p}
		if u, ok := byID[p.UserID]; ok {
			views[i].Author = ports.AuthorInfo{Username: u.Username, Img: u.Img, ClerkUserID: u.ClerkUserID}
		}
	}
	return views, nil
}

// ToggleSavedPost saves the post when absent and unsaves it when present.
// Returns true when the post ended up saved.
func (s *UserService) ToggleSavedPost(ctx context.Context, clerkUserID, postID string) (bool, error) {
	user, err := s.users.FindByClerkID(ctx, clerkUserID)
	if err != nil {
		return false, err
	}
	if _, err := s.posts.FindByID(ctx, postID); err != nil {
		return false, err
	}

	saved := false
	for _, id := range user.SavedPostIDs {
		if id == postID {
			saved = true
			break
		}
	}

	if saved {
		if err := s.users.RemoveSavedPost(ctx, user.ID, postID); err != nil {
			return false, err
		}
		s.logger.Info().Str("user_id", user.ID).Str("post_id", postID).Msg("post unsaved")
		return false, nil
	}

	if err := s.users.AddSavedPost(ctx, user.ID, postID); err != nil {
		return false, err
	}
	s.logger.Info().Str("user_id", user.ID).Str("post_id", postID).Msg("post saved")
	return true, nil
}
