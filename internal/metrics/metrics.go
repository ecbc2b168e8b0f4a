package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

var (
	SearchRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "actorrank_search_requests_total",
			Help: "Count of actor searches by outcome",
		},
		[]string{"status"}, // ok, error, stale
	)
	SearchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "actorrank_search_duration_seconds",
			Help:    "Time taken by the actor API to answer a search",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10},
		},
	)
	APIFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "actorrank_api_failures_total",
			Help: "Count of failed actor API calls",
		},
		[]string{"reason"}, // transport, status, decode
	)
	CacheOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "actorrank_cache_operations_total",
			Help: "Query cache lookups",
		},
		[]string{"result"}, // hit, miss
	)
	PageChanges = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "actorrank_page_changes_total",
			Help: "Count of result page changes",
		},
	)
)

// Init registers all collectors with the default registry. Call once.
func Init() {
	prometheus.MustRegister(
		SearchRequests,
		SearchDuration,
		APIFailures,
		CacheOperations,
		PageChanges,
	)
}

// Serve exposes /metrics on addr until ctx is cancelled.
// It returns nil after a clean shutdown.
func Serve(ctx context.Context, addr string, log logrus.FieldLogger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.WithField("addr", addr).Info("serving metrics")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.WithError(err).Error("metrics server stopped")
		return fmt.Errorf("metrics server on %s: %w", addr, err)
	}
	return nil
}
