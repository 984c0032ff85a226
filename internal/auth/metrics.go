package auth

import (
	"time"

	"github.com/dropDatabas3/socialauth/internal/domain/repository"
	"github.com/dropDatabas3/socialauth/internal/metrics"
)

const (
	resultOK                = "ok"
	resultSignUpRequired    = "signup_required"
	resultInvalidCredential = "invalid_credential"
	resultIdentityMismatch  = "identity_mismatch"
	resultUnsupported       = "unsupported_provider"
	resultConflict          = "conflict"
	resultNameRequired      = "name_required"
	resultError             = "error"
)

// providerLabel acota la cardinalidad: proveedores desconocidos van a "other".
func providerLabel(p repository.Provider) string {
	if p.Valid() {
		return string(p)
	}
	return "other"
}

func observeLogin(p repository.Provider, result string) {
	metrics.ObserveLogin(providerLabel(p), result)
}

func observeSignup(p repository.Provider, result string) {
	metrics.ObserveSignup(providerLabel(p), result)
}

func observeVerify(p repository.Provider, d time.Duration) {
	metrics.ObserveVerify(providerLabel(p), d)
}
