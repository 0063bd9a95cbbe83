// Package httpapi is the bot's operational HTTP surface: health, metrics,
// and, in webhook mode, the Telegram update endpoint. All user interaction
// happens over the messaging gateway, not here.
package httpapi

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HealthChecker reports whether a backing resource is reachable.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// NewRouter wires the ops endpoints. webhook may be nil (long-poll mode);
// checks may be empty.
func NewRouter(webhook http.Handler, checks ...HealthChecker) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		for _, check := range checks {
			if err := check.Health(req.Context()); err != nil {
				http.Error(w, "unhealthy: "+err.Error(), http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	if webhook != nil {
		r.Method(http.MethodPost, "/telegram/webhook", webhook)
	}

	return r
}
