package handler

import (
	"github.com/inkwell/blog-platform/internal/core/domain"
	"github.com/inkwell/blog-platform/internal/core/ports"
)

// --- Service result → HTTP response ---

func toPostResponse(v ports.PostView) postResponse {
	return postResponse{
		ID:          v.Post.ID,
		Title:       v.Post.Title,
		Slug:        v.Post.Slug,
		Category:    v.Post.Category,
		Description: v.Post.Description,
		Content:     v.Post.Content,
		Img:         v.Post.Img,
		Visit:       v.Post.Visit,
		IsFeatured:  v.Post.IsFeatured,
		CreatedAt:   v.Post.CreatedAt.UTC(),
		User: authorResponse{
			Username:    v.Author.Username,
			Img:         v.Author.Img,
			ClerkUserID: v.Author.ClerkUserID,
		},
	}
}

// toOwnPostResponse renders a post the actor just created or edited; the
// author block is not resolved by those service calls.
func toOwnPostResponse(p *domain.Post) postResponse {
	return toPostResponse(ports.PostView{Post: *p})
}

func toListResponse(page *ports.PostPage) listPostsResponse {
	posts := make([]postResponse, len(page.Posts))
	for i, v := range page.Posts {
		posts[i] = toPostResponse(v)
	}
	return listPostsResponse{Posts: posts, HasMore: page.HasMore}
}
