package metrics

import (
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the collectors exposed on /metrics.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "delivery",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "delivery",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"service", "method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "delivery",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		},
		[]string{"service", "method", "path"},
	)

	routeCacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "delivery",
			Subsystem: "route_cache",
			Name:      "lookups_total",
			Help:      "Route cache lookups by result.",
		},
		[]string{"result"},
	)

	geoProviderCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "delivery",
			Subsystem: "geo_provider",
			Name:      "calls_total",
			Help:      "Calls to the geo provider by operation and outcome.",
		},
		[]string{"operation", "outcome"},
	)

	orderEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "delivery",
			Subsystem: "orders",
			Name:      "events_total",
			Help:      "Order events published by type and outcome.",
		},
		[]string{"type", "outcome"},
	)

	activeTrackings = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "delivery",
			Subsystem: "tracking",
			Name:      "active_records",
			Help:      "Tracking records currently held by the store.",
		},
	)
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		routeCacheLookups,
		geoProviderCalls,
		orderEvents,
		activeTrackings,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler exposes the registry for scraping.
func Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
	return gin.WrapH(h)
}

// Middleware records request counts and latency under the given service name.
func Middleware(service string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}

		start := time.Now()
		httpInFlight.Inc()
		defer httpInFlight.Dec()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = canonicalPath(c.Request.URL.Path)
		}
		method := strings.ToUpper(c.Request.Method)
		httpRequests.WithLabelValues(service, method, path, strconv.Itoa(c.Writer.Status())).Inc()
		httpDuration.WithLabelValues(service, method, path).Observe(time.Since(start).Seconds())
	}
}

func RecordProviderCall(operation string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	geoProviderCalls.WithLabelValues(operation, outcome).Inc()
}

func RecordOrderEvent(eventType string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	orderEvents.WithLabelValues(eventType, outcome).Inc()
}

func SetActiveTrackings(n int) {
	activeTrackings.Set(float64(n))
}

// canonicalPath keeps the first segment only so proxied ids do not explode label cardinality.
func canonicalPath(raw string) string {
	trimmed := strings.Trim(raw, "/")
	if trimmed == "" {
		return "/"
	}
	return "/" + strings.SplitN(trimmed, "/", 2)[0]
}

// CacheStats counts hits and misses of a cache. Safe for concurrent use.
type CacheStats struct {
	hits   atomic.Uint64
	misses atomic.Uint64
}

func (s *CacheStats) Hit() {
	s.hits.Add(1)
	routeCacheLookups.WithLabelValues("hit").Inc()
}

func (s *CacheStats) Miss() {
	s.misses.Add(1)
	routeCacheLookups.WithLabelValues("miss").Inc()
}

func (s *CacheStats) Hits() uint64 {
	return s.hits.Load()
}

func (s *CacheStats) Misses() uint64 {
	return s.misses.Load()
}

// HitRate is hits / (hits + misses), 0 before any lookup.
func (s *CacheStats) HitRate() float64 {
	hits := s.hits.Load()
	total := hits + s.misses.Load()
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total)
}

func (s *CacheStats) Reset() {
	s.hits.Store(0)
	s.misses.Store(0)
}

