package domain

import (
	"errors"
	"time"
)

var ErrCommentNotFound = errors.New("comment not found")
var ErrCommentBodyRequired = errors.New("comment body is required")

// Comment belongs to a post. UserID is empty when the author's account was
// deleted upstream; PostID may point at a deleted post (orphaned comment).
type Comment struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id,omitempty"`
	PostID    string    `json:"post_id"`
	Desc      string    `json:"desc"`
	CreatedAt time.Time `json:"created_at"`
}
