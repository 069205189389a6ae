package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ReadyProbe reports whether the upstream model server can take requests.
type ReadyProbe interface {
	Ready(ctx context.Context) error
}

// readyTimeout bounds a single /readyz probe of the upstream.
const readyTimeout = 3 * time.Second

// NewAdminMux returns the operational router: health, readiness, metrics and,
// in swagger builds, the API docs. It is meant for a separate listener so the
// public API keeps its single route.
func NewAdminMux(probe ReadyProbe) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if probe == nil {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ready"))
			return
		}
		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()
		if err := probe.Ready(ctx); err != nil {
			if zlog != nil {
				zlog.Debug().Err(err).Msg("readiness probe failed")
			}
			writeJSONError(w, http.StatusServiceUnavailable, err.Error())
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	MountSwagger(r)
	return r
}
