package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Core request/hit/miss counters per stats domain
	CacheRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stats_cache_requests_total",
			Help: "Total number of stats cache lookups",
		},
		[]string{"domain"},
	)

	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stats_cache_hits_total",
			Help: "Total number of stats cache hits",
		},
		[]string{"domain", "level"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stats_cache_misses_total",
			Help: "Total number of stats cache misses",
		},
		[]string{"domain"},
	)

	CacheNegativeHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stats_cache_negative_hits_total",
			Help: "Lookups answered by a negative (known-empty) entry",
		},
		[]string{"domain"},
	)

	CacheStaleServed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stats_cache_stale_served_total",
			Help: "Lookups answered with a stale entry after all fetches failed",
		},
		[]string{"domain"},
	)

	CacheErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stats_cache_errors_total",
			Help: "Cache encode/decode/backend errors",
		},
		[]string{"level", "kind"},
	)

	// Upstream traffic
	UpstreamRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_requests_total",
			Help: "Outbound requests to the analytics site",
		},
		[]string{"channel", "status"},
	)

	UpstreamDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "upstream_request_duration_seconds",
			Help:    "Duration of upstream requests including rate-limiter wait",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"channel"},
	)

	FallbackExhausted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fallback_exhausted_total",
			Help: "Queries for which every variant and retry failed",
		},
		[]string{"domain"},
	)

	RateLimiterWait = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "rate_limiter_wait_seconds",
			Help:    "Time callers spend waiting for a rate limiter token",
			Buckets: []float64{.005, .05, .25, .5, 1, 2.5, 5, 10},
		},
	)
)

// RecordCacheRequest records a cache lookup
func RecordCacheRequest(domain string) {
	CacheRequests.WithLabelValues(domain).Inc()
}

// RecordCacheHit records a cache hit at the given level ("l1", "l2")
func RecordCacheHit(domain, level string) {
	CacheHits.WithLabelValues(domain, level).Inc()
}

// RecordCacheMiss records a cache miss
func RecordCacheMiss(domain string) {
	CacheMisses.WithLabelValues(domain).Inc()
}

// RecordNegativeHit records a lookup answered by a negative entry
func RecordNegativeHit(domain string) {
	CacheNegativeHits.WithLabelValues(domain).Inc()
}

// RecordStaleServed records a stale value served after fetch failure
func RecordStaleServed(domain string) {
	CacheStaleServed.WithLabelValues(domain).Inc()
}

// RecordCacheError records a cache error by level and kind
func RecordCacheError(level, kind string) {
	CacheErrors.WithLabelValues(level, kind).Inc()
}

// RecordUpstreamRequest records one outbound request and its HTTP status.
// status 0 means the request never completed.
func RecordUpstreamRequest(channel string, status int) {
	UpstreamRequests.WithLabelValues(channel, strconv.Itoa(status)).Inc()
}

// TimeUpstreamRequest returns a timer function for one upstream request
func TimeUpstreamRequest(channel string) func() {
	timer := prometheus.NewTimer(UpstreamDuration.WithLabelValues(channel))
	return func() {
		timer.ObserveDuration()
	}
}

// RecordFallbackExhausted records a query that ran out of variants
func RecordFallbackExhausted(domain string) {
	FallbackExhausted.WithLabelValues(domain).Inc()
}

// ObserveLimiterWait records how long a caller waited for a token
func ObserveLimiterWait(seconds float64) {
	RateLimiterWait.Observe(seconds)
}
