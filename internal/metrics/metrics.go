// Package metrics define las métricas Prometheus del servicio.
// Las métricas existen siempre; Register las publica en un registry.
package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "socialauth"

var (
	// LoginTotal cuenta logins por proveedor y resultado
	// (ok|signup_required|invalid_credential|identity_mismatch|unsupported_provider|error).
	LoginTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_total",
		Help:      "Intentos de login por proveedor y resultado",
	}, []string{"provider", "result"})

	// SignupTotal cuenta signups por proveedor y resultado (ok|conflict|...).
	SignupTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signup_total",
		Help:      "Intentos de signup por proveedor y resultado",
	}, []string{"provider", "result"})

	ProviderVerifySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "provider_verify_seconds",
		Help:      "Latencia de verificación de credenciales por proveedor",
		Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
	}, []string{"provider"})

	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Número total de requests procesadas",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Latencia de los requests HTTP",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	// HTTPInflight va solo por método: la ruta se conoce recién después del routing.
	HTTPInflight = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "http_inflight_requests",
		Help: "Requests en vuelo por método",
	}, []string{"method"})
)

func collectors() []prometheus.Collector {
	return []prometheus.Collector{
		LoginTotal, SignupTotal, ProviderVerifySeconds,
		HTTPRequestsTotal, HTTPRequestDuration, HTTPInflight,
	}
}

// Register registra todas las métricas en reg (o en el default si es nil).
// Registrar dos veces no es error.
func Register(reg prometheus.Registerer) error {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	for _, c := range collectors() {
		if err := reg.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if !errors.As(err, &are) {
				return err
			}
		}
	}
	return nil
}

// Handler devuelve el handler de /metrics para el gatherer dado (o el default).
func Handler(g prometheus.Gatherer) http.Handler {
	if g == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

func ObserveLogin(provider, result string) {
	LoginTotal.WithLabelValues(provider, result).Inc()
}

func ObserveSignup(provider, result string) {
	SignupTotal.WithLabelValues(provider, result).Inc()
}

func ObserveVerify(provider string, d time.Duration) {
	ProviderVerifySeconds.WithLabelValues(provider).Observe(d.Seconds())
}

// Unmatched es la etiqueta de ruta para requests que no matchearon ninguna ruta.
const Unmatched = "unmatched"

// ObserveHTTP registra un request terminado. route es el patrón de chi
// (ej. "/auth/{provider}"), nunca el path crudo.
func ObserveHTTP(method, route string, status int, d time.Duration) {
	m, rt := MethodLabel(method), RouteLabel(route)
	HTTPRequestDuration.WithLabelValues(m, rt).Observe(d.Seconds())
	HTTPRequestsTotal.WithLabelValues(m, rt, strconv.Itoa(status)).Inc()
}

// RouteLabel devuelve el patrón de ruta o Unmatched si está vacío.
func RouteLabel(pattern string) string {
	if pattern == "" {
		return Unmatched
	}
	return pattern
}

// MethodLabel acota el método a los verbos HTTP conocidos; el resto es "OTHER".
func MethodLabel(method string) string {
	m := strings.ToUpper(method)
	switch m {
	case http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut, http.MethodPatch,
		http.MethodDelete, http.MethodOptions, http.MethodConnect, http.MethodTrace:
		return m
	}
	return "OTHER"
}
