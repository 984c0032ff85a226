// Package idtokentest levanta un emisor de ID tokens falso (JWKS por httptest)
// para tests de los verificadores de Google y Apple.
package idtokentest

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
)

// Issuer firma ID tokens RS256 y publica su JWKS.
type Issuer struct {
	Server *httptest.Server
	Key    *rsa.PrivateKey

	kid   atomic.Value // string
	hits  atomic.Int64
	delay atomic.Int64 // nanosegundos antes de responder el JWKS
}

// NewIssuer crea el emisor y registra el cierre del server en t.Cleanup.
func NewIssuer(t testing.TB, kid string) *Issuer {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("rsa key: %v", err)
	}
	is := &Issuer{Key: key}
	is.kid.Store(kid)
	is.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		is.hits.Add(1)
		if d := time.Duration(is.delay.Load()); d > 0 {
			time.Sleep(d)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"keys": []map[string]string{{
				"kty": "RSA",
				"alg": "RS256",
				"use": "sig",
				"kid": is.Kid(),
				"n":   base64.RawURLEncoding.EncodeToString(key.N.Bytes()),
				"e":   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(key.E)).Bytes()),
			}},
		})
	}))
	t.Cleanup(is.Server.Close)
	return is
}

// Kid devuelve el kid publicado actualmente.
func (is *Issuer) Kid() string { return is.kid.Load().(string) }

// Rotate cambia el kid publicado (la clave RSA sigue siendo la misma).
func (is *Issuer) Rotate(kid string) { is.kid.Store(kid) }

// SetDelay demora las respuestas del JWKS.
func (is *Issuer) SetDelay(d time.Duration) { is.delay.Store(int64(d)) }

// URL del JWKS.
func (is *Issuer) URL() string { return is.Server.URL }

// Hits cuenta cuántas veces se pidió el JWKS.
func (is *Issuer) Hits() int64 { return is.hits.Load() }

// Sign firma claims con la clave del emisor usando su kid.
func (is *Issuer) Sign(t testing.TB, claims jwtv5.MapClaims) string {
	t.Helper()
	tk := jwtv5.NewWithClaims(jwtv5.SigningMethodRS256, claims)
	tk.Header["kid"] = is.Kid()
	s, err := tk.SignedString(is.Key)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

// Claims arma un set de claims válido por una hora.
func Claims(iss, aud, sub, email string) jwtv5.MapClaims {
	now := time.Now()
	return jwtv5.MapClaims{
		"iss":   iss,
		"aud":   aud,
		"sub":   sub,
		"email": email,
		"iat":   now.Unix(),
		"exp":   now.Add(time.Hour).Unix(),
	}
}
