// Package metrics exposes Prometheus counters for catalog and artwork traffic.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	CatalogRequests *prometheus.CounterVec
	ArtworkLookups  *prometheus.CounterVec
	CoverCacheSize  prometheus.Gauge
	CatalogSize     prometheus.Gauge
}

// New creates collectors registered on a private registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		CatalogRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wrld_catalog_requests_total",
				Help: "Catalog API requests by endpoint and outcome",
			},
			[]string{"endpoint", "status"},
		),
		ArtworkLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wrld_artwork_lookups_total",
				Help: "Artwork resolutions by outcome",
			},
			[]string{"outcome"},
		),
		CoverCacheSize: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "wrld_cover_cache_entries",
				Help: "Entries in the persisted cover cache",
			},
		),
		CatalogSize: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "wrld_catalog_tracks",
				Help: "Tracks in the loaded catalog",
			},
		),
	}
	m.registry.MustRegister(m.CatalogRequests, m.ArtworkLookups, m.CoverCacheSize, m.CatalogSize)
	return m
}

// Registry returns the registry backing m.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// CatalogRequest counts one catalog call.
func (m *Metrics) CatalogRequest(endpoint, status string) {
	if m == nil {
		return
	}
	m.CatalogRequests.WithLabelValues(endpoint, status).Inc()
}

// ArtworkLookup counts one artwork resolution outcome
// ("source", "cache", "search_ok", "search_miss", "search_error").
func (m *Metrics) ArtworkLookup(outcome string) {
	if m == nil {
		return
	}
	m.ArtworkLookups.WithLabelValues(outcome).Inc()
}

// SetCoverCacheSize records the current cover cache size.
func (m *Metrics) SetCoverCacheSize(n int) {
	if m == nil {
		return
	}
	m.CoverCacheSize.Set(float64(n))
}

// SetCatalogSize records the loaded catalog size.
func (m *Metrics) SetCatalogSize(n int) {
	if m == nil {
		return
	}
	m.CatalogSize.Set(float64(n))
}

// Serve exposes /metrics on addr until ctx is done.
func (m *Metrics) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
