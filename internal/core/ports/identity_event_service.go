package ports

import "context"

// Identity-provider webhook event types this service consumes.
const (
	EventUserCreated = "user.created"
	EventUserDeleted = "user.deleted"
)

// IdentityEventInput is the DTO passed from the webhook transport to the
// sync service. MessageID is the provider's delivery id, used for dedup.
type IdentityEventInput struct {
	MessageID   string
	Type        string
	ClerkUserID string
	Username    string
	Email       string
	Img         string
}

// IdentityEventService applies identity-provider lifecycle events to the
// local user mirror, cascading deletions to owned content.
type IdentityEventService interface {
	Process(ctx context.Context, event IdentityEventInput) error
}
