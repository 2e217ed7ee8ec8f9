// Package metrics defines and registers all custom Prometheus metrics for the
// blog API. It is the single source of truth for metric names, labels, and
// help strings. Metrics register with the default registry at import time via
// promauto; the router exposes them on GET /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "blog"

// ── Content metrics ───────────────────────────────────────────────────────────

// PostsCreatedTotal counts newly created posts by category.
var PostsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "posts_created_total",
		Help:      "Total number of posts created, by category.",
	},
	[]string{"category"},
)

// CommentsCreatedTotal counts newly created comments.
var CommentsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "comments_created_total",
		Help:      "Total number of comments created.",
	},
)

// ── Identity webhook metrics ──────────────────────────────────────────────────

// WebhookEventsTotal counts identity-provider webhook events by outcome.
// Labels:
//   - type: the provider event type (e.g. "user.created")
//   - result: "ok" or "error"
var WebhookEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "webhook_events_total",
		Help:      "Total number of identity webhook events processed, by type and result.",
	},
	[]string{"type", "result"},
)

// WebhookQueueDepth tracks events waiting in each dispatcher worker channel.
var WebhookQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "webhook_queue_depth",
		Help:      "Current number of identity events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ── Stats metrics ─────────────────────────────────────────────────────────────

// StatsComputeDuration measures how long one stats aggregation pass takes.
var StatsComputeDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "stats_compute_duration_seconds",
		Help:      "Duration of one site-stats aggregation pass.",
		Buckets:   prometheus.DefBuckets,
	},
)
