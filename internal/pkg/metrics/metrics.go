// Package metrics defines and registers all custom Prometheus metrics for the
// ClientLens API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation via promauto; the HTTP request metrics come from the
// echoprometheus middleware and are not defined here.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "clientlens"

// ── Query metrics ─────────────────────────────────────────────────────────────

// QueriesTotal counts answered queries.
// Label:
//   - path: "filtered", "model", "fallback", or "free_tier"
var QueriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "queries_total",
		Help:      "Total number of queries answered, by answer path.",
	},
	[]string{"path"},
)

// SafetyRejectionsTotal counts texts rejected by the safety filter.
// Labels:
//   - direction: "input" (user query) or "output" (model reply)
//   - category: the rule family that matched (e.g. "sql", "prompt_injection")
var SafetyRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "safety_rejections_total",
		Help:      "Total number of texts rejected by the safety filter.",
	},
	[]string{"direction", "category"},
)

// QueryDuration measures end-to-end answer time inside the orchestrator.
// Label:
//   - path: the answer path that produced the reply
var QueryDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "query_duration_seconds",
		Help:      "Duration of the answer pipeline per query.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"path"},
)

// ── Model metrics ─────────────────────────────────────────────────────────────

// ModelRequestDuration measures how long the generative model took to reply,
// or how long we waited before giving up.
// Label:
//   - outcome: "ok", "timeout", or "error"
var ModelRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "model_request_duration_seconds",
		Help:      "Duration of generative model calls, by outcome.",
		Buckets:   []float64{.1, .25, .5, 1, 2, 3, 5, 10},
	},
	[]string{"outcome"},
)

// ── Scope cache metrics ───────────────────────────────────────────────────────

// ScopeCacheTotal counts scope cache lookups.
// Label:
//   - result: "hit", "miss", or "error"
var ScopeCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "scope_cache_total",
		Help:      "Total number of scope cache lookups, labelled by result (hit/miss/error).",
	},
	[]string{"result"},
)

// WarmQueueDepth tracks the number of users waiting in each warm-up worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var WarmQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "warm_queue_depth",
		Help:      "Current number of users pending in each cache warm-up worker channel.",
	},
	[]string{"worker_id"},
)

// ── Transport metrics ─────────────────────────────────────────────────────────

// RateLimitedTotal counts query requests refused by the per-user rate limiter.
var RateLimitedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limited_total",
		Help:      "Total number of query requests refused by the rate limiter.",
	},
)
