package domain

import (
	"errors"
	"time"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")

// User is the local mirror of an identity-provider account. Role is
// intentionally absent: it is derived from session claims on every request,
// never persisted here.
type User struct {
	ID           string    `json:"id"`
	ClerkUserID  string    `json:"clerk_user_id"`
	Username     string    `json:"username"`
	Email        string    `json:"email,omitempty"`
	Img          string    `json:"img,omitempty"`
	SavedPostIDs []string  `json:"saved_posts,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
