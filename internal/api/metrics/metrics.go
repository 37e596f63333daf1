// Package metrics defines and registers all custom Prometheus metrics for the
// sellnet API. It is the single source of truth for metric names, labels, and
// help strings.
//
// Metrics are registered with the default Prometheus registry on import, the
// same registry /metrics serves.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "sellnet"

// ── Account metrics ───────────────────────────────────────────────────────────

// AccountsRegisteredTotal counts suppliers created through registration.
// Label:
//   - role: "Member" or "Admin"
var AccountsRegisteredTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "accounts_registered_total",
		Help:      "Total number of suppliers registered, by role.",
	},
	[]string{"role"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// TokensRefreshedTotal counts tokens re-issued through /api/account/refresh.
var TokensRefreshedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_refreshed_total",
		Help:      "Total number of tokens refreshed.",
	},
)

// ── Listing metrics ───────────────────────────────────────────────────────────

// ProductsCreatedTotal counts product creation requests that succeeded.
// Label:
//   - result: "created" or "replayed" (idempotency key hit)
var ProductsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "products_created_total",
		Help:      "Total number of products created, by result.",
	},
	[]string{"result"},
)

// ProductsDeletedTotal counts products removed by their owner.
var ProductsDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "products_deleted_total",
		Help:      "Total number of products deleted by their owner.",
	},
)

// SuppliersDeletedTotal counts suppliers removed by an administrator.
var SuppliersDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "suppliers_deleted_total",
		Help:      "Total number of suppliers deleted by administrators.",
	},
)

// ── Photo clean-up metrics ────────────────────────────────────────────────────

// PhotoCleanupTotal counts image removals attempted by the clean-up workers.
// Label:
//   - result: "ok", "error" or "dropped" (queue full)
var PhotoCleanupTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "photo_cleanup_total",
		Help:      "Total number of image removals, by result.",
	},
	[]string{"result"},
)

// CleanupQueueDepth tracks the number of jobs waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var CleanupQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "cleanup_queue_depth",
		Help:      "Current number of clean-up jobs pending in each worker channel.",
	},
	[]string{"worker_id"},
)

// CleanupDuration measures how long one clean-up job takes.
var CleanupDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "photo_cleanup_duration_seconds",
		Help:      "Duration of a clean-up job from dequeue to the last removal.",
		Buckets:   prometheus.DefBuckets,
	},
)
