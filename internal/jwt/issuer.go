// Package jwt emite y verifica el token de sesión propio del servicio.
//
// El token es un JWT HS256 cuyo "sub" es el id externo del usuario
// (el id que le asignó su proveedor de identidad).
package jwt

import (
	"errors"
	"fmt"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken cubre firma inválida, token expirado, algoritmo inesperado y formato roto.
	ErrInvalidToken = errors.New("invalid token")

	// ErrMissingCredential indica que no vino header Authorization o no trae token.
	ErrMissingCredential = errors.New("missing credential")

	// ErrEmptySecret se devuelve al construir un Issuer sin secreto.
	ErrEmptySecret = errors.New("jwt: empty secret")
)

// DefaultTTL es la vigencia del token de sesión si no se configura otra (1 año).
const DefaultTTL = 8760 * time.Hour

// Issuer firma y verifica tokens HS256.
// Es inmutable después de NewIssuer y seguro para uso concurrente.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	iss    string
	now    func() time.Time
}

// Option configura un Issuer.
type Option func(*Issuer)

// WithIssuer agrega el claim "iss" al emitir y lo exige al verificar.
func WithIssuer(iss string) Option {
	return func(i *Issuer) { i.iss = iss }
}

// WithClock reemplaza el reloj (tests).
func WithClock(now func() time.Time) Option {
	return func(i *Issuer) { i.now = now }
}

func NewIssuer(secret string, ttl time.Duration, opts ...Option) (*Issuer, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	i := &Issuer{secret: []byte(secret), ttl: ttl, now: time.Now}
	for _, o := range opts {
		o(i)
	}
	return i, nil
}

// TTL devuelve la vigencia configurada.
func (i *Issuer) TTL() time.Duration { return i.ttl }

// Issue firma un token para subject y devuelve también su expiración.
func (i *Issuer) Issue(subject string) (string, time.Time, error) {
	if subject == "" {
		return "", time.Time{}, errors.New("jwt: empty subject")
	}
	now := i.now().UTC()
	exp := now.Add(i.ttl)

	claims := jwtv5.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwtv5.NewNumericDate(now),
		NotBefore: jwtv5.NewNumericDate(now),
		ExpiresAt: jwtv5.NewNumericDate(exp),
		Issuer:    i.iss,
	}
	tk := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims)
	signed, err := tk.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("jwt: sign: %w", err)
	}
	return signed, exp, nil
}
