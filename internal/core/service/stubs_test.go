package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/inkwell/blog-platform/internal/core/domain"
	"github.com/inkwell/blog-platform/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// In-memory stub user repository
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	byID    map[string]*domain.User
	seq     int
	findErr error // if set, every lookup returns this error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[string]*domain.User)}
}

// seed inserts a user directly, bypassing Create.
func (r *stubUserRepo) seed(u domain.User) *domain.User {
	if u.ID == "" {
		r.seq++
		u.ID = fmt.Sprintf("user_%d", r.seq)
	}
	clone := u
	r.byID[clone.ID] = &clone
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	for _, existing := range r.byID {
		if existing.ClerkUserID == u.ClerkUserID {
			return nil, domain.ErrUserExists
		}
	}
	return r.seed(*u), nil
}

func (r *stubUserRepo) FindByClerkID(_ context.Context, clerkUserID string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, u := range r.byID {
		if u.ClerkUserID == clerkUserID {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, u := range r.byID {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByIDs(_ context.Context, ids []string) ([]*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	var out []*domain.User
	for _, id := range ids {
		if u, ok := r.byID[id]; ok {
			clone := *u
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubUserRepo) DeleteByClerkID(_ context.Context, clerkUserID string) (*domain.User, error) {
	for id, u := range r.byID {
		if u.ClerkUserID == clerkUserID {
			clone := *u
			delete(r.byID, id)
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) AddSavedPost(_ context.Context, userID, postID string) error {
	u, ok := r.byID[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	for _, id := range u.SavedPostIDs {
		if id == postID {
			return nil
		}
	}
	u.SavedPostIDs = append(u.SavedPostIDs, postID)
	return nil
}

func (r *stubUserRepo) RemoveSavedPost(_ context.Context, userID, postID string) error {
	u, ok := r.byID[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	kept := u.SavedPostIDs[:0]
	for _, id := range u.SavedPostIDs {
		if id != postID {
			kept = append(kept, id)
		}
	}
	u.SavedPostIDs = kept
	return nil
}

func (r *stubUserRepo) EnsureIndexes(context.Context) error { return nil }

// ---------------------------------------------------------------------------
// In-memory stub post repository
// ---------------------------------------------------------------------------

type stubPostRepo struct {
	byID map[string]*domain.Post
	seq  int
	// conflictOnCreate makes the next N Create calls fail with
	// ErrSlugConflict, simulating a lost race on the unique index.
	conflictOnCreate int
	listErr          error
}

func newStubPostRepo() *stubPostRepo {
	return &stubPostRepo{byID: make(map[string]*domain.Post)}
}

func (r *stubPostRepo) seed(p domain.Post) *domain.Post {
	if p.ID == "" {
		r.seq++
		p.ID = fmt.Sprintf("post_%d", r.seq)
	}
	clone := p
	r.byID[clone.ID] = &clone
	return &clone
}

func (r *stubPostRepo) Create(_ context.Context, p *domain.Post) (*domain.Post, error) {
	if r.conflictOnCreate > 0 {
		r.conflictOnCreate--
		return nil, domain.ErrSlugConflict
	}
	for _, existing := range r.byID {
		if existing.Slug == p.Slug {
			return nil, domain.ErrSlugConflict
		}
	}
	return r.seed(*p), nil
}

func (r *stubPostRepo) FindByID(_ context.Context, id string) (*domain.Post, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubPostRepo) FindBySlug(_ context.Context, slug string) (*domain.Post, error) {
	for _, p := range r.byID {
		if p.Slug == slug {
			clone := *p
			return &clone, nil
		}
	}
	return nil, domain.ErrPostNotFound
}

func (r *stubPostRepo) SlugExists(_ context.Context, slug, excludeID string) (bool, error) {
	for _, p := range r.byID {
		if p.Slug == slug && p.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

// List applies the same filters the real Mongo repo would use.
func (r *stubPostRepo) List(_ context.Context, f ports.ListPostsFilter) ([]*domain.Post, int64, error) {
	if r.listErr != nil {
		return nil, 0, r.listErr
	}

	var matched []*domain.Post
	for _, p := range r.byID {
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if f.UserID != "" && p.UserID != f.UserID {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(p.Title), strings.ToLower(f.Search)) {
			continue
		}
		if f.FeaturedOnly && !p.IsFeatured {
			continue
		}
		if !f.CreatedAfter.IsZero() && p.CreatedAt.Before(f.CreatedAfter) {
			continue
		}
		clone := *p
		matched = append(matched, &clone)
	}

	switch f.Sort {
	case ports.SortOldest:
		sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.Before(matched[j].CreatedAt) })
	case ports.SortPopular, ports.SortTrending:
		sort.Slice(matched, func(i, j int) bool { return matched[i].Visit > matched[j].Visit })
	default:
		sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })
	}

	total := int64(len(matched))

	skip := (f.Page - 1) * f.Limit
	if skip < 0 {
		skip = 0
	}
	if skip >= len(matched) {
		return []*domain.Post{}, total, nil
	}
	end := skip + f.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[skip:end], total, nil
}

func (r *stubPostRepo) FindByIDs(_ context.Context, ids []string) ([]*domain.Post, error) {
	var out []*domain.Post
	for _, id := range ids {
		if p, ok := r.byID[id]; ok {
			clone := *p
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubPostRepo) Update(_ context.Context, p *domain.Post) error {
	if _, ok := r.byID[p.ID]; !ok {
		return domain.ErrPostNotFound
	}
	for _, existing := range r.byID {
		if existing.Slug == p.Slug && existing.ID != p.ID {
			return domain.ErrSlugConflict
		}
	}
	clone := *p
	r.byID[p.ID] = &clone
	return nil
}

func (r *stubPostRepo) SetFeatured(_ context.Context, id string, featured bool) error {
	p, ok := r.byID[id]
	if !ok {
		return domain.ErrPostNotFound
	}
	p.IsFeatured = featured
	return nil
}

func (r *stubPostRepo) IncrementVisit(_ context.Context, slug string) error {
	for _, p := range r.byID {
		if p.Slug == slug {
			p.Visit++
			return nil
		}
	}
	return domain.ErrPostNotFound
}

func (r *stubPostRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrPostNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *stubPostRepo) DeleteByUser(_ context.Context, userID string) (int64, error) {
	var n int64
	for id, p := range r.byID {
		if p.UserID == userID {
			delete(r.byID, id)
			n++
		}
	}
	return n, nil
}

func (r *stubPostRepo) ListStats(_ context.Context) ([]ports.PostStatsRow, error) {
	ids := make([]string, 0, len(r.byID))
	for id := range r.byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	rows := make([]ports.PostStatsRow, 0, len(ids))
	for _, id := range ids {
		p := r.byID[id]
		rows = append(rows, ports.PostStatsRow{
			ID:       p.ID,
			UserID:   p.UserID,
			Title:    p.Title,
			Slug:     p.Slug,
			Content:  p.Content,
			Category: p.Category,
			Visit:    p.Visit,
		})
	}
	return rows, nil
}

func (r *stubPostRepo) EnsureIndexes(context.Context) error { return nil }

// ---------------------------------------------------------------------------
// In-memory stub comment repository
// ---------------------------------------------------------------------------

type stubCommentRepo struct {
	byID map[string]*domain.Comment
	seq  int
}

func newStubCommentRepo() *stubCommentRepo {
	return &stubCommentRepo{byID: make(map[string]*domain.Comment)}
}

func (r *stubCommentRepo) seed(c domain.Comment) *domain.Comment {
	if c.ID == "" {
		r.seq++
		c.ID = fmt.Sprintf("comment_%d", r.seq)
	}
	clone := c
	r.byID[clone.ID] = &clone
	return &clone
}

func (r *stubCommentRepo) Create(_ context.Context, c *domain.Comment) (*domain.Comment, error) {
	return r.seed(*c), nil
}

func (r *stubCommentRepo) FindByID(_ context.Context, id string) (*domain.Comment, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrCommentNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubCommentRepo) ListByPost(_ context.Context, postID string) ([]*domain.Comment, error) {
	var out []*domain.Comment
	for _, c := range r.byID {
		if c.PostID == postID {
			clone := *c
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *stubCommentRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrCommentNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *stubCommentRepo) DeleteByUser(_ context.Context, userID string) (int64, error) {
	var n int64
	for id, c := range r.byID {
		if c.UserID == userID {
			delete(r.byID, id)
			n++
		}
	}
	return n, nil
}

func (r *stubCommentRepo) CountAll(context.Context) (int64, error) {
	return int64(len(r.byID)), nil
}

func (r *stubCommentRepo) CountByPost(context.Context) (map[string]int64, error) {
	out := make(map[string]int64)
	for _, c := range r.byID {
		out[c.PostID]++
	}
	return out, nil
}

func (r *stubCommentRepo) EnsureIndexes(context.Context) error { return nil }

// ---------------------------------------------------------------------------
// Stub delivery dedup
// ---------------------------------------------------------------------------

type stubDedup struct {
	seen     map[string]bool
	checkErr error
}

func newStubDedup() *stubDedup {
	return &stubDedup{seen: make(map[string]bool)}
}

func (d *stubDedup) IsDuplicate(_ context.Context, messageID string) (bool, error) {
	if d.checkErr != nil {
		return false, d.checkErr
	}
	return d.seen[messageID], nil
}

func (d *stubDedup) Mark(_ context.Context, messageID string) error {
	d.seen[messageID] = true
	return nil
}

// seededAt is a convenience for building posts with distinct timestamps.
func seededAt(minutesAgo int) time.Time {
	return time.Now().UTC().Add(-time.Duration(minutesAgo) * time.Minute)
}
