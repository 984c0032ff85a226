package apple

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/socialauth/internal/domain/repository"
	"github.com/dropDatabas3/socialauth/internal/providers"
	"github.com/dropDatabas3/socialauth/internal/providers/idtoken/idtokentest"
)

func TestVerify(t *testing.T) {
	is := idtokentest.NewIssuer(t, "a1")
	v := New(Config{ClientIDs: []string{"com.example.app"}, JWKSURL: is.URL()})

	assert.Equal(t, repository.ProviderApple, v.Provider())
	assert.True(t, v.ClientSuppliesName())

	claims := idtokentest.Claims(Issuer, "com.example.app", "001234.abcd", "x@privaterelay.appleid.com")
	claims["name"] = "ignored"
	id, err := v.Verify(context.Background(), is.Sign(t, claims))
	require.NoError(t, err)
	assert.Equal(t, "001234.abcd", id.ExternalID)
	assert.Equal(t, "x@privaterelay.appleid.com", id.Email)
	assert.Empty(t, id.DisplayName)
}

func TestVerify_WrongIssuer(t *testing.T) {
	is := idtokentest.NewIssuer(t, "a1")
	v := New(Config{ClientIDs: []string{"com.example.app"}, JWKSURL: is.URL()})

	tok := is.Sign(t, idtokentest.Claims("https://accounts.google.com", "com.example.app", "1", "a@b.c"))
	_, err := v.Verify(context.Background(), tok)
	assert.ErrorIs(t, err, providers.ErrInvalidCredential)
}

func TestVerify_EmailVerifiedAsString(t *testing.T) {
	is := idtokentest.NewIssuer(t, "a1")
	v := New(Config{ClientIDs: []string{"com.example.app"}, JWKSURL: is.URL()})
	ctx := context.Background()

	claims := idtokentest.Claims(Issuer, "com.example.app", "001.abc", "x@privaterelay.appleid.com")
	claims["email_verified"] = "true"
	_, err := v.Verify(ctx, is.Sign(t, claims))
	require.NoError(t, err)

	claims["email_verified"] = "false"
	_, err = v.Verify(ctx, is.Sign(t, claims))
	assert.ErrorIs(t, err, providers.ErrInvalidCredential)
}
