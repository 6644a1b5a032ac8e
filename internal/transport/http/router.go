package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bruhhgnik/DCLG-outfitrec/internal/platform/health"
	"github.com/bruhhgnik/DCLG-outfitrec/internal/platform/middleware"
	"github.com/bruhhgnik/DCLG-outfitrec/internal/service"
)

// NewRouter creates a chi router exposing the generateLooks operation plus
// the standard health/metrics surface.
func NewRouter(svc *service.DCLGService, healthHandler *health.Handler, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(1 * time.Second))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics("dclg"))
	r.Use(middleware.Tracing("dclg"))
	r.Use(middleware.RequestLogger(logger))

	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	looksHandler := NewLooksHandler(svc, logger)
	r.Route("/api/v1/looks", func(r chi.Router) {
		r.Get("/{anchorSku}", looksHandler.GenerateLooks)
	})

	return r
}
