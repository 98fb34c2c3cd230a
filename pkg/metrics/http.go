package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// HTTPMetrics records request-level metadata for the API surface.
type HTTPMetrics struct {
	duration *prometheus.HistogramVec
	requests *prometheus.CounterVec
	fetches  *prometheus.CounterVec
}

// NewHTTPMetrics registers the HTTP metrics on the provided registerer.
func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	if reg == nil {
		return &HTTPMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "method"})
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "HTTP requests by route, method and status class.",
	}, []string{"route", "method", "status"})
	fetches := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_fetches_total",
		Help: "Catalog page fetches by category and mode (fresh or more).",
	}, []string{"category", "mode"})
	reg.MustRegister(duration, requests, fetches)
	return &HTTPMetrics{
		duration: duration,
		requests: requests,
		fetches:  fetches,
	}
}

// ObserveRequest records the duration and outcome of a handled request.
func (m *HTTPMetrics) ObserveRequest(route, method string, status int, duration time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	r := normalizeLabel(route)
	m.duration.WithLabelValues(r, method).Observe(duration.Seconds())
	m.requests.WithLabelValues(r, method, strconv.Itoa(status)).Inc()
}

// IncCatalogFetch counts a catalog page fetch. Mode is "fresh" for a
// first-page load and "more" for an appended page.
func (m *HTTPMetrics) IncCatalogFetch(category, mode string) {
	if m == nil || m.fetches == nil {
		return
	}
	m.fetches.WithLabelValues(normalizeLabel(category), normalizeLabel(mode)).Inc()
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
