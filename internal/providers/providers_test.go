package providers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/socialauth/internal/domain/repository"
)

type stubVerifier struct{ p repository.Provider }

func (s stubVerifier) Provider() repository.Provider { return s.p }
func (s stubVerifier) ClientSuppliesName() bool      { return false }
func (s stubVerifier) Verify(context.Context, string) (*Identity, error) {
	return &Identity{ExternalID: "1"}, nil
}

func TestRegistry_Get(t *testing.T) {
	r := NewRegistry(stubVerifier{repository.ProviderKakao}, nil, stubVerifier{repository.ProviderGoogle})

	v, err := r.Get(repository.ProviderKakao)
	require.NoError(t, err)
	assert.Equal(t, repository.ProviderKakao, v.Provider())

	_, err = r.Get(repository.ProviderApple)
	assert.ErrorIs(t, err, ErrUnsupportedProvider)

	_, err = r.Get("github")
	assert.ErrorIs(t, err, ErrUnsupportedProvider)

	assert.Equal(t, []repository.Provider{repository.ProviderGoogle, repository.ProviderKakao}, r.Providers())
}

func TestInvalid_WrapsCause(t *testing.T) {
	cause := errors.New("http 401")
	err := Invalid(cause)
	assert.ErrorIs(t, err, ErrInvalidCredential)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, ErrInvalidCredential, Invalid(nil))
}
