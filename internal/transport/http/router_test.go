package httpapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

type healthFunc func(ctx context.Context) error

func (f healthFunc) Health(ctx context.Context) error { return f(ctx) }

func do(t *testing.T, handler http.Handler, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(method, path, nil))
	return rr
}

func TestHealthz(t *testing.T) {
	t.Run("ok with no checks", func(t *testing.T) {
		rr := do(t, NewRouter(nil), http.MethodGet, "/healthz")
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("ok when checks pass", func(t *testing.T) {
		router := NewRouter(nil, healthFunc(func(context.Context) error { return nil }))
		rr := do(t, router, http.MethodGet, "/healthz")
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("unavailable when a check fails", func(t *testing.T) {
		router := NewRouter(nil, healthFunc(func(context.Context) error {
			return errors.New("redis down")
		}))
		rr := do(t, router, http.MethodGet, "/healthz")
		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	})
}

func TestMetricsExposed(t *testing.T) {
	rr := do(t, NewRouter(nil), http.MethodGet, "/metrics")
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestWebhookMount(t *testing.T) {
	t.Run("absent in long-poll mode", func(t *testing.T) {
		rr := do(t, NewRouter(nil), http.MethodPost, "/telegram/webhook")
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("routed in webhook mode", func(t *testing.T) {
		hit := false
		webhook := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			hit = true
			w.WriteHeader(http.StatusOK)
		})
		rr := do(t, NewRouter(webhook), http.MethodPost, "/telegram/webhook")
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.True(t, hit)
	})
}
