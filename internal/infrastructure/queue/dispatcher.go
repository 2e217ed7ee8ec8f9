package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/inkwell/blog-platform/internal/api/metrics"
	"github.com/inkwell/blog-platform/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 128
)

// Dispatcher routes identity-provider events to a fixed set of workers using
// consistent hashing on the external user id, so a user's created/deleted
// events are always applied in delivery order.
type Dispatcher struct {
	workers []chan ports.IdentityEventInput
	service ports.IdentityEventService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.IdentityEventService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.IdentityEventInput, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.IdentityEventInput, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends an event to the worker responsible for its user id.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(event ports.IdentityEventInput) {
	idx := d.shardIndex(event.ClerkUserID)
	d.workers[idx] <- event
	metrics.WebhookQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
}

// shardIndex maps an external user id deterministically to a worker index.
func (d *Dispatcher) shardIndex(clerkUserID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(clerkUserID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.IdentityEventInput) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			if err := d.service.Process(ctx, event); err != nil {
				metrics.WebhookEventsTotal.WithLabelValues(event.Type, "error").Inc()
				d.log.Error().Err(err).
					Str("clerk_user_id", event.ClerkUserID).
					Str("type", event.Type).
					Int("worker_id", id).
					Msg("identity event processing failed")
			} else {
				metrics.WebhookEventsTotal.WithLabelValues(event.Type, "ok").Inc()
			}
			metrics.WebhookQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(ch)))
		}
	}
}
