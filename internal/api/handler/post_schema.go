package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type createPostRequest struct {
	Title       string `json:"title"    validate:"required,max=200"`
	Content     string `json:"content"`
	Category    string `json:"category" validate:"omitempty,max=50"`
	Description string `json:"desc"     validate:"omitempty,max=500"`
	Img         string `json:"img"`
}

// updatePostRequest is a partial update: absent fields are left unchanged.
type updatePostRequest struct {
	Title       *string `json:"title"`
	Content     *string `json:"content"`
	Category    *string `json:"category"`
	Description *string `json:"desc"`
	Img         *string `json:"img"`
}

type listPostsQuery struct {
	Category string `query:"cat"`
	Author   string `query:"author"`
	Search   string `query:"search"`
	Sort     string `query:"sort" validate:"omitempty,oneof=newest oldest popular trending"`
	Featured bool   `query:"featured"`
	Page     int    `query:"page"`
	Limit    int    `query:"limit"`
}

// --- Response types ---
//
// Response-only types owned by the transport layer. These are intentionally
// separate from domain types so the JSON contract is not coupled to internal
// changes; field names match what the web client consumes.

type authorResponse struct {
	Username    string `json:"username"`
	Img         string `json:"img,omitempty"`
	ClerkUserID string `json:"clerkUserId,omitempty"`
}

type postResponse struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Slug        string         `json:"slug"`
	Category    string         `json:"category"`
	Description string         `json:"desc,omitempty"`
	Content     string         `json:"content,omitempty"`
	Img         string         `json:"img,omitempty"`
	Visit       int64          `json:"visit"`
	IsFeatured  bool           `json:"isFeatured"`
	CreatedAt   time.Time      `json:"createdAt"`
	User        authorResponse `json:"user"`
}

type listPostsResponse struct {
	Posts   []postResponse `json:"posts"`
	HasMore bool           `json:"hasMore"`
}

type deletedResponse struct {
	Message string `json:"message"`
}
