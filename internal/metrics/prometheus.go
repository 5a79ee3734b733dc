package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Default histogram buckets for search latency (in seconds)
var defaultBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5}

// Prometheus records cache and search engine behaviour.
type Prometheus struct {
	registry *prometheus.Registry

	cacheLookups   *prometheus.CounterVec
	searchRequests *prometheus.CounterVec
	searchDuration *prometheus.HistogramVec
}

// NewPrometheus creates collectors on a private registry.
func NewPrometheus(namespace string) *Prometheus {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	pm := &Prometheus{
		registry: registry,

		cacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_lookups_total",
				Help:      "Cache lookups by index, operation and result",
			},
			[]string{"index", "op", "result"},
		),

		searchRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "search_requests_total",
				Help:      "Search engine requests by index, operation and status",
			},
			[]string{"index", "op", "status"},
		),

		searchDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "search_request_duration_seconds",
				Help:      "Search engine request latency",
				Buckets:   defaultBuckets,
			},
			[]string{"index", "op"},
		),
	}

	registry.MustRegister(pm.cacheLookups, pm.searchRequests, pm.searchDuration)
	return pm
}

// CacheLookup counts a cache hit or miss.
func (p *Prometheus) CacheLookup(index, op string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	p.cacheLookups.WithLabelValues(index, op, result).Inc()
}

// SearchRequest counts a gateway call and observes its latency.
func (p *Prometheus) SearchRequest(index, op string, elapsed time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	p.searchRequests.WithLabelValues(index, op, status).Inc()
	p.searchDuration.WithLabelValues(index, op).Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry.
func (p *Prometheus) Registry() *prometheus.Registry {
	return p.registry
}
