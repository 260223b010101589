// Package metrics exposes Prometheus collectors for fetches and notifications.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"cricket_bot/internal/model"
)

// Collector records fetch and notification metrics.
type Collector struct {
	registry      *prometheus.Registry
	fetches       *prometheus.CounterVec
	fetchDuration *prometheus.HistogramVec
	notifications prometheus.Counter
}

// New creates a Collector with its own registry.
func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cricket_fetch_total",
			Help: "Match list requests by match type and result.",
		}, []string{"match_type", "result"}),
		fetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "cricket_fetch_duration_seconds",
			Help:    "Match list request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"match_type"}),
		notifications: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cricket_notifications_sent_total",
			Help: "Subscription notifications sent.",
		}),
	}
	c.registry.MustRegister(c.fetches, c.fetchDuration, c.notifications)
	return c
}

// ObserveFetch implements fetcher.Observer.
func (c *Collector) ObserveFetch(mt model.MatchType, elapsed time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	c.fetches.WithLabelValues(string(mt), result).Inc()
	c.fetchDuration.WithLabelValues(string(mt)).Observe(elapsed.Seconds())
}

// NotificationSent counts one delivered notification.
func (c *Collector) NotificationSent() {
	c.notifications.Inc()
}

// Registry returns the registry holding the collectors.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// HealthFunc reports whether the service is healthy.
type HealthFunc func(ctx context.Context) error

// Handler serves /metrics and /healthz.
func (c *Collector) Handler(healthFn HealthFunc) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()

		if err := healthFn(ctx); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = fmt.Fprintf(w, "unhealthy: %v", err)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

// Serve runs the metrics server on addr until ctx is cancelled.
func (c *Collector) Serve(ctx context.Context, addr string, healthFn HealthFunc) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           c.Handler(healthFn),
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
		return fmt.Errorf("metrics server: %w", err)
	}
}
