package domain

import "errors"

var ErrForbidden = errors.New("access forbidden")

// Actor is the authenticated identity performing a request. UserID is the
// local user id (not the provider id); Role comes from the session claims.
type Actor struct {
	UserID string
	Role   string
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// CanEditPost reports whether the actor may update the post:
// admin, or the post's owner.
func CanEditPost(actor Actor, post *Post) bool {
	return actor.IsAdmin() || actor.UserID == post.UserID
}

// CanDeletePost follows the same rule as editing: admin or owner.
func CanDeletePost(actor Actor, post *Post) bool {
	return actor.IsAdmin() || actor.UserID == post.UserID
}

// CanFeaturePost is strictly admin-only.
func CanFeaturePost(actor Actor) bool {
	return actor.IsAdmin()
}

// CanDeleteComment permits the admin, the owner of the parent post, or the
// comment's own author. Callers must resolve the parent post first; an
// orphaned comment is a not-found condition, never an authorization decision.
func CanDeleteComment(actor Actor, comment *Comment, parentPost *Post) bool {
	if actor.IsAdmin() {
		return true
	}
	if actor.UserID == parentPost.UserID {
		return true
	}
	return comment.UserID != "" && actor.UserID == comment.UserID
}
