// Package auth implementa el motor de autenticación: login, signup,
// validación de nick y chequeo de sesión sobre los verificadores de
// proveedores, el store de usuarios y el emisor de tokens.
//
// El motor no guarda estado entre requests y es seguro para uso concurrente.
package auth

import (
	"context"
	"time"

	"github.com/dropDatabas3/socialauth/internal/domain/repository"
	"github.com/dropDatabas3/socialauth/internal/providers"
)

// VerifierRegistry resuelve el verificador de un proveedor.
type VerifierRegistry interface {
	Get(p repository.Provider) (providers.Verifier, error)
}

// TokenIssuer emite y verifica el token de sesión.
type TokenIssuer interface {
	Issue(subject string) (string, time.Time, error)
	Verify(token string) (string, error)
}

// NickValidator decide si un nick está disponible.
type NickValidator interface {
	Validate(ctx context.Context, nick string) (bool, error)
}

// Deps contiene las dependencias del servicio.
type Deps struct {
	Providers VerifierRegistry
	Users     repository.UserRepository
	Tokens    TokenIssuer
	Nicks     NickValidator
	Now       func() time.Time // nil = time.Now
}

type Service struct {
	deps Deps
}

func NewService(deps Deps) *Service {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &Service{deps: deps}
}

// verify resuelve el verificador y valida la credencial, midiendo la latencia.
func (s *Service) verify(ctx context.Context, p repository.Provider, credential string) (providers.Verifier, *providers.Identity, error) {
	v, err := s.deps.Providers.Get(p)
	if err != nil {
		return nil, nil, ErrUnsupportedProvider
	}
	start := time.Now()
	id, err := v.Verify(ctx, credential)
	observeVerify(p, time.Since(start))
	if err != nil {
		return v, nil, err
	}
	return v, id, nil
}
