// Package router arma el árbol de rutas chi del servicio.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	authctrl "github.com/dropDatabas3/socialauth/internal/http/controllers/auth"
	healthctrl "github.com/dropDatabas3/socialauth/internal/http/controllers/health"
	httperrors "github.com/dropDatabas3/socialauth/internal/http/errors"
	mw "github.com/dropDatabas3/socialauth/internal/http/middlewares"
)

// Deps contiene lo necesario para montar las rutas.
type Deps struct {
	Auth    *authctrl.Controller
	Health  *healthctrl.Controller // opcional
	Metrics http.Handler           // opcional: /metrics
}

// New devuelve el handler raíz con la cadena global de middlewares.
func New(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(
		mw.WithRecover(),
		mw.WithRequestID(),
		mw.WithLogging(),
		mw.WithMetrics(),
		mw.WithSecurityHeaders(),
	)
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httperrors.WriteError(w, httperrors.ErrNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		httperrors.WriteError(w, httperrors.ErrMethodNotAllowed)
	})

	if deps.Health != nil {
		r.Get("/healthz", deps.Health.Healthz)
	}
	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics)
	}

	r.Route("/auth", func(r chi.Router) {
		registerAuthRoutes(r, deps.Auth)
	})
	return r
}
