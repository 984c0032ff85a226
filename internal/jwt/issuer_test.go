package jwt

import (
	"testing"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time { return func() time.Time { return t } }

func TestIssueVerify_RoundTrip(t *testing.T) {
	iss, err := NewIssuer("secret", 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultTTL, iss.TTL())

	tok, exp, err := iss.Issue("12345")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(DefaultTTL), exp, 5*time.Second)

	sub, err := iss.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "12345", sub)
}

func TestVerify_Expired(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	signer, err := NewIssuer("secret", time.Hour, WithClock(fixedClock(base)))
	require.NoError(t, err)
	tok, _, err := signer.Issue("12345")
	require.NoError(t, err)

	later, err := NewIssuer("secret", time.Hour, WithClock(fixedClock(base.Add(2*time.Hour))))
	require.NoError(t, err)
	_, err = later.Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_WrongSecret(t *testing.T) {
	a, _ := NewIssuer("secret-a", time.Hour)
	b, _ := NewIssuer("secret-b", time.Hour)
	tok, _, err := a.Issue("sub")
	require.NoError(t, err)

	_, err = b.Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_RejectsOtherAlgorithms(t *testing.T) {
	iss, _ := NewIssuer("secret", time.Hour)
	claims := jwtv5.RegisteredClaims{
		Subject:   "sub",
		ExpiresAt: jwtv5.NewNumericDate(time.Now().Add(time.Hour)),
	}
	tok, err := jwtv5.NewWithClaims(jwtv5.SigningMethodHS512, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = iss.Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)

	none, err := jwtv5.NewWithClaims(jwtv5.SigningMethodNone, claims).SignedString(jwtv5.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = iss.Verify(none)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Issuer(t *testing.T) {
	withIss, _ := NewIssuer("secret", time.Hour, WithIssuer("https://auth.example.com"))
	plain, _ := NewIssuer("secret", time.Hour)

	tok, _, err := plain.Issue("sub")
	require.NoError(t, err)
	_, err = withIss.Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)

	tok, _, err = withIss.Issue("sub")
	require.NoError(t, err)
	sub, err := withIss.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "sub", sub)
}

func TestVerify_Garbage(t *testing.T) {
	iss, _ := NewIssuer("secret", time.Hour)
	for _, in := range []string{"", "abc", "a.b.c"} {
		_, err := iss.Verify(in)
		assert.ErrorIs(t, err, ErrInvalidToken, "input %q", in)
	}
}

func TestNewIssuer_EmptySecret(t *testing.T) {
	_, err := NewIssuer("", time.Hour)
	assert.ErrorIs(t, err, ErrEmptySecret)
}

func TestExtractToken(t *testing.T) {
	tok, err := ExtractToken("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", tok)

	for _, h := range []string{"", "Bearer", "   "} {
		_, err := ExtractToken(h)
		assert.ErrorIs(t, err, ErrMissingCredential, "header %q", h)
	}
}
