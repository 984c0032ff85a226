package middlewares

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dropDatabas3/socialauth/internal/metrics"
)

// WithMetrics instrumenta requests (contador, latencia, inflight).
// La ruta se etiqueta con el patrón de chi después del routing, nunca con el path crudo.
func WithMetrics() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			method := metrics.MethodLabel(r.Method)

			inflight := metrics.HTTPInflight.WithLabelValues(method)
			inflight.Inc()
			defer inflight.Dec()

			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			var pattern string
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				pattern = rctx.RoutePattern()
			}
			metrics.ObserveHTTP(method, pattern, rec.status, time.Since(start))
		})
	}
}
