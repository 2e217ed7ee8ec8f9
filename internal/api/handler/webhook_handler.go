package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/inkwell/blog-platform/internal/api/middleware"
	"github.com/inkwell/blog-platform/internal/core/ports"
)

// EventDispatcher accepts verified identity events for async processing.
type EventDispatcher interface {
	Enqueue(event ports.IdentityEventInput)
}

// WebhookHandler receives identity-provider (Clerk) lifecycle deliveries,
// verifies their signatures, and hands them to the dispatcher. Verification
// failures are rejected with 4xx so the provider retries only what may
// eventually succeed.
type WebhookHandler struct {
	verifier   *middleware.WebhookVerifier
	dispatcher EventDispatcher
	logger     zerolog.Logger
}

func NewWebhookHandler(verifier *middleware.WebhookVerifier, dispatcher EventDispatcher, logger zerolog.Logger) *WebhookHandler {
	return &WebhookHandler{verifier: verifier, dispatcher: dispatcher, logger: logger}
}

// clerkEvent is the provider's webhook envelope, limited to the fields the
// sync service consumes.
type clerkEvent struct {
	Type string `json:"type"`
	Data struct {
		ID             string `json:"id"`
		Username       string `json:"username"`
		FirstName      string `json:"first_name"`
		LastName       string `json:"last_name"`
		ImageURL       string `json:"image_url"`
		EmailAddresses []struct {
			EmailAddress string `json:"email_address"`
		} `json:"email_addresses"`
	} `json:"data"`
}

// Clerk handles POST /webhooks/clerk. The delivery is acknowledged as soon
// as it is verified and enqueued; processing happens on the dispatcher's
// workers so a slow database never causes provider-side retries.
func (h *WebhookHandler) Clerk(c echo.Context) error {
	payload, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable body")
	}

	headers := c.Request().Header
	messageID := headers.Get("svix-id")
	timestamp := headers.Get("svix-timestamp")
	signature := headers.Get("svix-signature")

	if err := h.verifier.Verify(messageID, timestamp, signature, payload); err != nil {
		switch {
		case errors.Is(err, middleware.ErrMissingSignatureHeaders):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, middleware.ErrStaleTimestamp), errors.Is(err, middleware.ErrBadSignature):
			h.logger.Warn().Err(err).Str("svix_id", messageID).Msg("webhook rejected")
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid webhook signature")
		default:
			return err
		}
	}

	var event clerkEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed event payload")
	}
	if event.Data.ID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "event missing user id")
	}

	switch event.Type {
	case ports.EventUserCreated, ports.EventUserDeleted:
		h.dispatcher.Enqueue(ports.IdentityEventInput{
			MessageID:   messageID,
			Type:        event.Type,
			ClerkUserID: event.Data.ID,
			Username:    usernameFrom(event),
			Email:       primaryEmail(event),
			Img:         event.Data.ImageURL,
		})
	default:
		// Unknown types are acknowledged and dropped so the provider does
		// not retry deliveries this service will never act on.
		h.logger.Debug().Str("type", event.Type).Msg("ignoring webhook event type")
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "received"})
}

// usernameFrom picks the provider username, falling back to the full name
// when the account has none.
func usernameFrom(e clerkEvent) string {
	if e.Data.Username != "" {
		return e.Data.Username
	}
	name := strings.TrimSpace(e.Data.FirstName + " " + e.Data.LastName)
	return name
}

func primaryEmail(e clerkEvent) string {
	if len(e.Data.EmailAddresses) == 0 {
		return ""
	}
	return e.Data.EmailAddresses[0].EmailAddress
}
