package service

import (
	"context"
	"errors"
	"testing"

	"github.com/inkwell/blog-platform/internal/core/domain"
)

func newUserFixture() (*stubUserRepo, *stubPostRepo, *UserService) {
	users := newStubUserRepo()
	posts := newStubPostRepo()
	return users, posts, NewUserService(users, posts, discardLogger)
}

func TestUserService_ToggleSavedPost_SaveThenUnsave(t *testing.T) {
	users, posts, svc := newUserFixture()
	user := users.seed(domain.User{ClerkUserID: "clerk_1"})
	post := posts.seed(domain.Post{UserID: "someone", Slug: "t"})

	saved, err := svc.ToggleSavedPost(context.Background(), "clerk_1", post.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !saved {
		t.Error("first toggle must save")
	}
	if got := users.byID[user.ID].SavedPostIDs; len(got) != 1 || got[0] != post.ID {
		t.Errorf("saved list wrong after save: %v", got)
	}

	saved, err = svc.ToggleSavedPost(context.Background(), "clerk_1", post.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved {
		t.Error("second toggle must unsave")
	}
	if got := users.byID[user.ID].SavedPostIDs; len(got) != 0 {
		t.Errorf("saved list must be empty after unsave: %v", got)
	}
}

func TestUserService_ToggleSavedPost_UnknownPost(t *testing.T) {
	users, _, svc := newUserFixture()
	users.seed(domain.User{ClerkUserID: "clerk_1"})

	_, err := svc.ToggleSavedPost(context.Background(), "clerk_1", "missing")
	if !errors.Is(err, domain.ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
}

func TestUserService_ToggleSavedPost_MissingLocalUser(t *testing.T) {
	_, posts, svc := newUserFixture()
	post := posts.seed(domain.Post{Slug: "t"})

	_, err := svc.ToggleSavedPost(context.Background(), "clerk_ghost", post.ID)
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_SavedPosts_Empty(t *testing.T) {
	users, _, svc := newUserFixture()
	users.seed(domain.User{ClerkUserID: "clerk_1"})

	views, err := svc.SavedPosts(context.Background(), "clerk_1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if views == nil || len(views) != 0 {
		t.Errorf("expected an empty non-nil slice, got %v", views)
	}
}

func TestUserService_SavedPosts_DropsDeletedPosts(t *testing.T) {
	users, posts, svc := newUserFixture()
	author := users.seed(domain.User{ClerkUserID: "clerk_author", Username: "ada"})
	post := posts.seed(domain.Post{UserID: author.ID, Slug: "alive"})
	users.seed(domain.User{
		ClerkUserID:  "clerk_1",
		SavedPostIDs: []string{post.ID, "deleted_post_id"},
	})

	views, err := svc.SavedPosts(context.Background(), "clerk_1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("ids of deleted posts must be dropped, got %d views", len(views))
	}
	if views[0].Post.ID != post.ID {
		t.Errorf("wrong post resolved: %+v", views[0].Post)
	}
	if views[0].Author.Username != "ada" {
		t.Errorf("author not resolved: %+v", views[0].Author)
	}
}
