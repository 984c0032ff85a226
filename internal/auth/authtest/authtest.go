// Package authtest trae un verificador falso para tests del motor y de la capa HTTP.
package authtest

import (
	"context"
	"sync"

	"github.com/dropDatabas3/socialauth/internal/domain/repository"
	"github.com/dropDatabas3/socialauth/internal/providers"
)

// Verifier acepta las credenciales registradas con Accept y rechaza el resto.
type Verifier struct {
	P            repository.Provider
	SuppliesName bool

	mu     sync.RWMutex
	tokens map[string]providers.Identity
}

func NewVerifier(p repository.Provider, clientSuppliesName bool) *Verifier {
	return &Verifier{P: p, SuppliesName: clientSuppliesName, tokens: map[string]providers.Identity{}}
}

// Accept hace que credential resuelva a id.
func (v *Verifier) Accept(credential string, id providers.Identity) *Verifier {
	v.mu.Lock()
	v.tokens[credential] = id
	v.mu.Unlock()
	return v
}

func (v *Verifier) Provider() repository.Provider { return v.P }
func (v *Verifier) ClientSuppliesName() bool      { return v.SuppliesName }

func (v *Verifier) Verify(_ context.Context, credential string) (*providers.Identity, error) {
	v.mu.RLock()
	id, ok := v.tokens[credential]
	v.mu.RUnlock()
	if !ok {
		return nil, providers.ErrInvalidCredential
	}
	return &id, nil
}
