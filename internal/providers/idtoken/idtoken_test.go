package idtoken

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/socialauth/internal/providers/idtoken/idtokentest"
)

const (
	testIss = "https://issuer.example.com"
	testAud = "client-123"
)

func newVerifier(is *idtokentest.Issuer) *Verifier {
	return New(Config{
		JWKSURL:   is.URL(),
		Issuers:   []string{testIss},
		Audiences: []string{"other", testAud},
	})
}

func TestVerify_OK(t *testing.T) {
	is := idtokentest.NewIssuer(t, "k1")
	v := newVerifier(is)

	claims := idtokentest.Claims(testIss, testAud, "sub-1", "a@b.c")
	claims["name"] = "Alice"
	c, err := v.Verify(context.Background(), is.Sign(t, claims))
	require.NoError(t, err)
	assert.Equal(t, "sub-1", c.Subject)
	assert.Equal(t, "a@b.c", c.Email)
	assert.Equal(t, "Alice", c.Name)
}

func TestVerify_AudienceArray(t *testing.T) {
	is := idtokentest.NewIssuer(t, "k1")
	v := newVerifier(is)

	claims := idtokentest.Claims(testIss, "", "sub-1", "a@b.c")
	claims["aud"] = []string{"x", testAud}
	_, err := v.Verify(context.Background(), is.Sign(t, claims))
	require.NoError(t, err)
}

func TestVerify_Rejections(t *testing.T) {
	is := idtokentest.NewIssuer(t, "k1")
	v := newVerifier(is)
	ctx := context.Background()

	cases := map[string]jwtv5.MapClaims{
		"wrong iss": idtokentest.Claims("https://evil.example.com", testAud, "s", "e"),
		"wrong aud": idtokentest.Claims(testIss, "someone-else", "s", "e"),
	}
	expired := idtokentest.Claims(testIss, testAud, "s", "e")
	expired["exp"] = time.Now().Add(-time.Hour).Unix()
	cases["expired"] = expired
	noExp := idtokentest.Claims(testIss, testAud, "s", "e")
	delete(noExp, "exp")
	cases["no exp"] = noExp

	for name, claims := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := v.Verify(ctx, is.Sign(t, claims))
			assert.Error(t, err)
		})
	}

	t.Run("garbage", func(t *testing.T) {
		_, err := v.Verify(ctx, "not-a-jwt")
		assert.Error(t, err)
	})

	t.Run("foreign key", func(t *testing.T) {
		other, err := rsa.GenerateKey(rand.Reader, 2048)
		require.NoError(t, err)
		tk := jwtv5.NewWithClaims(jwtv5.SigningMethodRS256, idtokentest.Claims(testIss, testAud, "s", "e"))
		tk.Header["kid"] = "k1"
		s, err := tk.SignedString(other)
		require.NoError(t, err)
		_, err = v.Verify(ctx, s)
		assert.Error(t, err)
	})

	t.Run("hs256", func(t *testing.T) {
		s, err := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, idtokentest.Claims(testIss, testAud, "s", "e")).SignedString([]byte("x"))
		require.NoError(t, err)
		_, err = v.Verify(ctx, s)
		assert.Error(t, err)
	})
}

func TestVerify_CachesJWKS(t *testing.T) {
	is := idtokentest.NewIssuer(t, "k1")
	v := newVerifier(is)
	ctx := context.Background()

	tok := is.Sign(t, idtokentest.Claims(testIss, testAud, "s", "e"))
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := v.Verify(ctx, tok)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	_, err := v.Verify(ctx, tok)
	require.NoError(t, err)

	assert.LessOrEqual(t, is.Hits(), int64(8))
	before := is.Hits()
	_, err = v.Verify(ctx, tok)
	require.NoError(t, err)
	assert.Equal(t, before, is.Hits())
}

func TestVerify_RefreshesOnUnknownKid(t *testing.T) {
	is := idtokentest.NewIssuer(t, "k1")
	v := newVerifier(is)
	ctx := context.Background()

	_, err := v.Verify(ctx, is.Sign(t, idtokentest.Claims(testIss, testAud, "s", "e")))
	require.NoError(t, err)
	hits := is.Hits()

	// el emisor rota el kid publicado
	is.Rotate("k2")
	_, err = v.Verify(ctx, is.Sign(t, idtokentest.Claims(testIss, testAud, "s", "e")))
	require.NoError(t, err)
	assert.Equal(t, hits+1, is.Hits())
}

func TestVerify_SharedFetchSurvivesCancelledCaller(t *testing.T) {
	is := idtokentest.NewIssuer(t, "k1")
	is.SetDelay(200 * time.Millisecond)
	v := newVerifier(is)
	tok := is.Sign(t, idtokentest.Claims(testIss, testAud, "s", "e"))

	short, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	var wg sync.WaitGroup
	var errShort, errLong error
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, errShort = v.Verify(short, tok)
	}()
	go func() {
		defer wg.Done()
		time.Sleep(10 * time.Millisecond) // se suma al fetch en curso
		_, errLong = v.Verify(context.Background(), tok)
	}()
	wg.Wait()

	assert.ErrorIs(t, errShort, context.DeadlineExceeded)
	require.NoError(t, errLong)
	assert.Equal(t, int64(1), is.Hits())
}

func TestVerify_JWKSUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()
	is := idtokentest.NewIssuer(t, "k1")

	v := New(Config{JWKSURL: srv.URL, Issuers: []string{testIss}, Audiences: []string{testAud}})
	_, err := v.Verify(context.Background(), is.Sign(t, idtokentest.Claims(testIss, testAud, "s", "e")))
	assert.Error(t, err)
}

func TestVerify_NoAudienceConfigured(t *testing.T) {
	is := idtokentest.NewIssuer(t, "k1")
	v := New(Config{JWKSURL: is.URL(), Issuers: []string{testIss}})
	_, err := v.Verify(context.Background(), is.Sign(t, idtokentest.Claims(testIss, testAud, "s", "e")))
	assert.Error(t, err)
}
