package jwt

import (
	"strings"

	jwtv5 "github.com/golang-jwt/jwt/v5"
)

// Verify valida firma (solo HS256), exp/nbf y, si está configurado, iss.
// Devuelve el subject. Cualquier falla es ErrInvalidToken.
func (i *Issuer) Verify(token string) (string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrInvalidToken
	}

	opts := []jwtv5.ParserOption{
		jwtv5.WithValidMethods([]string{jwtv5.SigningMethodHS256.Alg()}),
		jwtv5.WithExpirationRequired(),
		jwtv5.WithTimeFunc(i.now),
	}
	if i.iss != "" {
		opts = append(opts, jwtv5.WithIssuer(i.iss))
	}

	var claims jwtv5.RegisteredClaims
	tok, err := jwtv5.ParseWithClaims(token, &claims, func(*jwtv5.Token) (any, error) {
		return i.secret, nil
	}, opts...)
	if err != nil || !tok.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

// ExtractToken toma el segundo campo de un header "<scheme> <token>".
// El esquema no se valida.
func ExtractToken(header string) (string, error) {
	fields := strings.Fields(header)
	if len(fields) < 2 {
		return "", ErrMissingCredential
	}
	return fields[1], nil
}
