// Package providers define el contrato de los verificadores de credenciales de
// proveedores de identidad (Kakao, Google, Apple) y el registro que los resuelve.
//
// Un Verifier solo reporta hechos de identidad: nunca decide login vs signup.
package providers

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/dropDatabas3/socialauth/internal/domain/repository"
)

var (
	// ErrUnsupportedProvider indica un proveedor desconocido o no habilitado.
	ErrUnsupportedProvider = errors.New("unsupported provider")

	// ErrInvalidCredential indica que la credencial fue rechazada o no se pudo verificar.
	// No distingue "proveedor caído" de "token inválido".
	ErrInvalidCredential = errors.New("invalid credential")
)

// Identity son los hechos que el proveedor afirma sobre el usuario.
// Es transitoria: nunca se persiste tal cual.
type Identity struct {
	ExternalID  string
	Email       string
	DisplayName string // vacío si el proveedor no lo informa
}

// Verifier valida una credencial de un proveedor concreto.
type Verifier interface {
	Provider() repository.Provider

	// ClientSuppliesName indica si el nombre visible lo manda el cliente en el signup
	// (true) o sale del payload del proveedor (false).
	ClientSuppliesName() bool

	// Verify valida la credencial. Cualquier falla envuelve ErrInvalidCredential.
	Verify(ctx context.Context, credential string) (*Identity, error)
}

// Invalid envuelve cause con ErrInvalidCredential.
func Invalid(cause error) error {
	if cause == nil {
		return ErrInvalidCredential
	}
	return fmt.Errorf("%w: %w", ErrInvalidCredential, cause)
}

// Registry mapea proveedor -> verificador. Se arma una vez al inicio y es de solo lectura.
type Registry struct {
	verifiers map[repository.Provider]Verifier
}

// NewRegistry arma el registro. Si dos verificadores declaran el mismo proveedor gana el último.
func NewRegistry(verifiers ...Verifier) *Registry {
	m := make(map[repository.Provider]Verifier, len(verifiers))
	for _, v := range verifiers {
		if v == nil {
			continue
		}
		m[v.Provider()] = v
	}
	return &Registry{verifiers: m}
}

// Get devuelve el verificador de p o ErrUnsupportedProvider.
func (r *Registry) Get(p repository.Provider) (Verifier, error) {
	if r != nil {
		if v, ok := r.verifiers[p]; ok {
			return v, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedProvider, string(p))
}

// Providers lista los proveedores habilitados, ordenados.
func (r *Registry) Providers() []repository.Provider {
	out := make([]repository.Provider, 0, len(r.verifiers))
	for p := range r.verifiers {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
