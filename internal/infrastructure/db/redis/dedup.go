package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const dedupTTL = 24 * time.Hour

// DeliveryDedup tracks processed webhook deliveries in Redis. The identity
// provider retries deliveries until acknowledged, so the same message id can
// arrive more than once.
// Key format: webhook:<message_id>
type DeliveryDedup struct {
	client *redis.Client
}

// NewDeliveryDedup creates a DeliveryDedup wrapping the given Redis client.
func NewDeliveryDedup(client *redis.Client) *DeliveryDedup {
	return &DeliveryDedup{client: client}
}

// IsDuplicate reports whether this delivery has already been processed.
func (d *DeliveryDedup) IsDuplicate(ctx context.Context, messageID string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(messageID)).Result()
	if err != nil {
		return false, fmt.Errorf("dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records that this delivery has been processed (expires after dedupTTL).
func (d *DeliveryDedup) Mark(ctx context.Context, messageID string) error {
	return d.client.Set(ctx, d.key(messageID), "1", dedupTTL).Err()
}

func (d *DeliveryDedup) key(messageID string) string {
	return "webhook:" + messageID
}
