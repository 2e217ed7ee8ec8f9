package ports

import "context"

// UserService covers the saved-posts feature.
type UserService interface {
	SavedPosts(ctx context.Context, clerkUserID string) ([]PostView, error)
	// ToggleSavedPost saves the post when absent from the actor's list and
	// removes it when present. The returned bool is true when the post was saved.
	ToggleSavedPost(ctx context.Context, clerkUserID, postID string) (bool, error)
}
