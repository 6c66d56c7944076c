// ABOUTME: Prometheus metrics for asset resolution, content fetches and revalidation
// ABOUTME: Exposes a private registry through a promhttp handler for the /metrics endpoint

package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"microsite-api/core/asset"
	"microsite-api/core/provider"
)

const namespace = "cms"

// Service owns the metric collectors and their registry
type Service struct {
	registry *prometheus.Registry
	enabled  bool

	resolutions   *prometheus.CounterVec
	fetches       *prometheus.CounterVec
	revalidations *prometheus.CounterVec
}

// NewService creates a metrics service. A disabled service records nothing and
// its handler answers 503.
func NewService(enabled bool) *Service {
	s := &Service{enabled: enabled}
	if !enabled {
		return s
	}

	s.registry = prometheus.NewRegistry()
	s.resolutions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "asset_resolutions_total",
		Help:      "Asset resolution decisions by event, shape, kind and chosen field.",
	}, []string{"event", "shape", "kind", "field"})
	s.fetches = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "content_fetches_total",
		Help:      "Content fetches by provider, resource and cache outcome.",
	}, []string{"provider", "resource", "outcome"})
	s.revalidations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "revalidations_total",
		Help:      "Revalidation webhook outcomes by terminal state and status code.",
	}, []string{"state", "status"})

	s.registry.MustRegister(
		s.resolutions,
		s.fetches,
		s.revalidations,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return s
}

// Enabled reports whether metrics are collected
func (s *Service) Enabled() bool {
	return s.enabled
}

// Observe implements asset.Observer
func (s *Service) Observe(e asset.Event) {
	if !s.enabled {
		return
	}
	s.resolutions.WithLabelValues(string(e.Type), e.Shape.String(), string(e.Kind), e.Field).Inc()
}

// RecordFetch counts a content fetch outcome
func (s *Service) RecordFetch(providerName string, resource provider.Resource, outcome string) {
	if !s.enabled {
		return
	}
	s.fetches.WithLabelValues(providerName, string(resource), outcome).Inc()
}

// RecordRevalidation counts a webhook outcome
func (s *Service) RecordRevalidation(state string, status string) {
	if !s.enabled {
		return
	}
	s.revalidations.WithLabelValues(state, status).Inc()
}

// Handler returns the HTTP handler for the /metrics endpoint
func (s *Service) Handler() http.Handler {
	if !s.enabled {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("Metrics are disabled"))
		})
	}
	return promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})
}

// Registry exposes the registry for tests and additional collectors
func (s *Service) Registry() *prometheus.Registry {
	return s.registry
}
