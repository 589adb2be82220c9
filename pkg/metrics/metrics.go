// Package metrics exposes Prometheus collectors for the news locator pipeline.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	geocodeLookupsTotal     *prometheus.CounterVec
	geocodeResolutionsTotal *prometheus.CounterVec
	searchRequestsTotal     *prometheus.CounterVec
	llmRequestsTotal        *prometheus.CounterVec

	once sync.Once
)

// Init initializes the Prometheus collectors. It is safe to call multiple times.
// Observe helpers are no-ops until Init has run.
func Init() {
	once.Do(func() {
		geocodeLookupsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "newsloc_geocode_lookups_total",
				Help: "Geocode lookups issued by the location resolver, labeled by outcome (hit, miss, error).",
			},
			[]string{"outcome"},
		)

		geocodeResolutionsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "newsloc_geocode_resolutions_total",
				Help: "Finished location resolutions, labeled by the winning strategy or none.",
			},
			[]string{"strategy"},
		)

		searchRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "newsloc_search_requests_total",
				Help: "Web search requests, labeled by provider and status.",
			},
			[]string{"provider", "status"},
		)

		llmRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "newsloc_llm_requests_total",
				Help: "LLM generation attempts, labeled by status.",
			},
			[]string{"status"},
		)
	})
}

// Handler returns an http.Handler for exposing Prometheus metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveGeocodeLookup counts a single lookup against the geocoding endpoint.
func ObserveGeocodeLookup(outcome string) {
	if geocodeLookupsTotal == nil {
		return
	}
	geocodeLookupsTotal.WithLabelValues(outcome).Inc()
}

// ObserveResolution counts a finished resolution.
func ObserveResolution(strategy string) {
	if geocodeResolutionsTotal == nil {
		return
	}
	geocodeResolutionsTotal.WithLabelValues(strategy).Inc()
}

// ObserveSearch counts a search provider call.
func ObserveSearch(provider, status string) {
	if searchRequestsTotal == nil {
		return
	}
	searchRequestsTotal.WithLabelValues(provider, status).Inc()
}

// ObserveLLM counts an LLM generation attempt.
func ObserveLLM(status string) {
	if llmRequestsTotal == nil {
		return
	}
	llmRequestsTotal.WithLabelValues(status).Inc()
}
