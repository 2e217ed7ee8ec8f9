package domain

import (
	"errors"
	"time"
)

var ErrPostNotFound = errors.New("post not found")
var ErrSlugConflict = errors.New("slug already taken")
var ErrTitleRequired = errors.New("post title is required")

// CategoryGeneral is assigned when a post is created without a category.
const CategoryGeneral = "general"

// Post is the core content aggregate. Slug is globally unique and derived
// from the title; Visit counts reads of the single-post endpoint.
type Post struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Category    string    `json:"category"`
	Description string    `json:"description,omitempty"`
	Content     string    `json:"content"`
	Img         string    `json:"img,omitempty"`
	Visit       int64     `json:"visit"`
	IsFeatured  bool      `json:"is_featured"`
	CreatedAt   time.Time `json:"created_at"`
}
