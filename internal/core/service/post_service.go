package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/inkwell/blog-platform/internal/core/domain"
	"github.com/inkwell/blog-platform/internal/core/ports"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100

	// slugCreateAttempts bounds the insert retry loop that resolves the
	// check-then-insert race on the unique slug index.
	slugCreateAttempts = 3

	trendingWindow = 7 * 24 * time.Hour
)

type PostService struct {
	posts  ports.PostRepository
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewPostService(posts ports.PostRepository, users ports.UserRepository, logger zerolog.Logger) *PostService {
	return &PostService{posts: posts, users: users, logger: logger}
}

// List returns one page of posts with authors resolved.
func (s *PostService) List(ctx context.Context, input ports.ListPostsInput) (*ports.PostPage, error) {
	filter := ports.ListPostsFilter{
		Category:     input.Category,
		Search:       input.Search,
		FeaturedOnly: input.Featured,
		Sort:         input.Sort,
		Page:         input.Page,
		Limit:        input.Limit,
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultPageLimit
	}
	if filter.Limit > maxPageLimit {
		filter.Limit = maxPageLimit
	}
	if filter.Sort == "" {
		filter.Sort = ports.SortNewest
	}
	if filter.Sort == ports.SortTrending {
		filter.CreatedAfter = time.Now().UTC().Add(-trendingWindow)
	}

	if input.Author != "" {
		author, err := s.users.FindByUsername(ctx, input.Author)
		if err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				// Unknown author filter yields an empty page, not a 404.
				return &ports.PostPage{Posts: []ports.PostView{}}, nil
			}
			return nil, err
		}
		filter.UserID = author.ID
	}

	posts, total, err := s.posts.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	views, err := s.withAuthors(ctx, posts)
	if err != nil {
		return nil, err
	}

	return &ports.PostPage{
		Posts:   views,
		HasMore: int64(filter.Page*filter.Limit) < total,
	}, nil
}

// GetBySlug increments the post's visit counter and returns it with the
// author resolved. The increment failing is not fatal to the read.
func (s *PostService) GetBySlug(ctx context.Context, slug string) (*ports.PostView, error) {
	if err := s.posts.IncrementVisit(ctx, slug); err != nil && !errors.Is(err, domain.ErrPostNotFound) {
		s.logger.Warn().Err(err).Str("slug", slug).Msg("visit increment failed")
	}

	post, err := s.posts.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	views, err := s.withAuthors(ctx, []*domain.Post{post})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// Create makes a new post owned by the actor. The slug is derived from the
// title; a lost race on the unique index regenerates and retries.
func (s *PostService) Create(ctx context.Context, input ports.CreatePostInput) (*domain.Post, error) {
	user, err := s.users.FindByClerkID(ctx, input.ClerkUserID)
	if err != nil {
		return nil, err
	}
	if input.Title == "" {
		return nil, domain.ErrTitleRequired
	}

	category := input.Category
	if category == "" {
		category = domain.CategoryGeneral
	}

	for attempt := 0; attempt < slugCreateAttempts; attempt++ {
		slug, err := uniqueSlug(ctx, s.posts, input.Title, "")
		if err != nil {
			return nil, err
		}

		created, err := s.posts.Create(ctx, &domain.Post{
			UserID:      user.ID,
			Title:       input.Title,
			Slug:        slug,
			Category:    category,
			Description: input.Description,
			Content:     input.Content,
			Img:         input.Img,
			CreatedAt:   time.Now().UTC(),
		})
		if errors.Is(err, domain.ErrSlugConflict) {
			s.logger.Info().Str("slug", slug).Msg("slug taken by concurrent insert, regenerating")
			continue
		}
		if err != nil {
			return nil, err
		}

		s.logger.Info().Str("post_id", created.ID).Str("slug", created.Slug).Str("user_id", user.ID).Msg("post created")
		return created, nil
	}

	return nil, domain.ErrSlugConflict
}

// Update applies a partial update. Only the owner or an admin may edit; a
// title change regenerates the slug, excluding the post's own record from the
// collision check.
func (s *PostService) Update(ctx context.Context, input ports.UpdatePostInput) (*domain.Post, error) {
	actor, err := s.resolveActor(ctx, input.ClerkUserID, input.Role)
	if err != nil {
		return nil, err
	}

	post, err := s.posts.FindByID(ctx, input.PostID)
	if err != nil {
		return nil, err
	}
	if !domain.CanEditPost(actor, post) {
		return nil, domain.ErrForbidden
	}

	if input.Title != nil {
		if *input.Title == "" {
			return nil, domain.ErrTitleRequired
		}
		if *input.Title != post.Title {
			slug, err := uniqueSlug(ctx, s.posts, *input.Title, post.ID)
			if err != nil {
				return nil, err
			}
			post.Slug = slug
		}
		post.Title = *input.Title
	}
	if input.Content != nil {
		post.Content = *input.Content
	}
	if input.Category != nil {
		post.Category = *input.Category
	}
	if input.Description != nil {
		post.Description = *input.Description
	}
	if input.Img != nil {
		post.Img = *input.Img
	}

	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}

	s.logger.Info().Str("post_id", post.ID).Str("actor_id", actor.UserID).Msg("post updated")
	return post, nil
}

// Delete removes a post. Comments are left in place and become orphaned.
func (s *PostService) Delete(ctx context.Context, actorInput ports.ActorInput, postID string) error {
	actor, err := s.resolveActor(ctx, actorInput.ClerkUserID, actorInput.Role)
	if err != nil {
		return err
	}

	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return err
	}
	if !domain.CanDeletePost(actor, post) {
		return domain.ErrForbidden
	}

	if err := s.posts.Delete(ctx, postID); err != nil {
		return err
	}

	s.logger.Info().Str("post_id", postID).Str("actor_id", actor.UserID).Msg("post deleted")
	return nil
}

// ToggleFeature flips the featured flag. Admin-only; the decision needs only
// the session role, no local record.
func (s *PostService) ToggleFeature(ctx context.Context, actorInput ports.ActorInput, postID string) (*domain.Post, error) {
	if !domain.CanFeaturePost(domain.Actor{Role: actorInput.Role}) {
		return nil, domain.ErrForbidden
	}

	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	post.IsFeatured = !post.IsFeatured
	if err := s.posts.SetFeatured(ctx, post.ID, post.IsFeatured); err != nil {
		return nil, err
	}

	s.logger.Info().Str("post_id", post.ID).Bool("featured", post.IsFeatured).Msg("post feature toggled")
	return post, nil
}

// resolveActor maps the session identity to a local actor. A missing local
// record is a not-found condition, distinct from an authorization failure.
func (s *PostService) resolveActor(ctx context.Context, clerkUserID, role string) (domain.Actor, error) {
	user, err := s.users.FindByClerkID(ctx, clerkUserID)
	if err != nil {
		return domain.Actor{}, err
	}
	return domain.Actor{UserID: user.ID, Role: role}, nil
}

// withAuthors resolves each post's author in one batched lookup.
func (s *PostService) withAuthors(ctx context.Context, posts []*domain.Post) ([]ports.PostView, error) {
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
			views[i].Author = ports.AuthorInfo{
				Username:    u.Username,
				Img:         u.Img,
				ClerkUserID: u.ClerkUserID,
			}
		}
	}
	return views, nil
}
