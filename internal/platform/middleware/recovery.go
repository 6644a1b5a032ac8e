// Package middleware holds the chi-compatible HTTP middleware chain shared
// by the transport layer: panic recovery, request logging, metrics, and
// tracing.
package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/go-chi/chi/v5"

	"github.com/bruhhgnik/DCLG-outfitrec/internal/platform/apperrors"
	"github.com/bruhhgnik/DCLG-outfitrec/internal/platform/httputil"
)

// Recovery recovers from panics, logs the stack alongside the anchor sku
// that triggered it (when the route carries one), and writes the failure
// through the same {data,error} envelope every other handler error uses via
// apperrors.Internal, rather than hand-rolling a second JSON error shape.
func Recovery(l *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					l.ErrorContext(r.Context(), "panic recovered",
						slog.Any("panic", rec),
						slog.String("stack", string(debug.Stack())),
						slog.String("method", r.Method),
						slog.String("path", r.URL.Path),
						slog.String("anchor_sku", chi.URLParam(r, "anchorSku")),
					)

					httputil.WriteError(w, r, apperrors.Internal(fmt.Errorf("%v", rec)), l)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
