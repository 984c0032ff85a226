package auth

import (
	"context"

	"github.com/dropDatabas3/socialauth/internal/jwt"
	"github.com/dropDatabas3/socialauth/internal/observability/logger"
)

// ValidateNick reporta si el nick está libre y no contiene palabras prohibidas.
func (s *Service) ValidateNick(ctx context.Context, nick string) (bool, error) {
	return s.deps.Nicks.Validate(ctx, nick)
}

// ValidateToken extrae el token del header Authorization y devuelve su subject
// (el id externo). Errores: ErrMissingCredential, ErrInvalidToken.
func (s *Service) ValidateToken(ctx context.Context, authorization string) (string, error) {
	raw, err := jwt.ExtractToken(authorization)
	if err != nil {
		return "", ErrMissingCredential
	}
	sub, err := s.deps.Tokens.Verify(raw)
	if err != nil {
		logger.From(ctx).Debug("token rejected", logger.Layer("service"), logger.Op("ValidateToken"), logger.Err(err))
		return "", ErrInvalidToken
	}
	return sub, nil
}

// LogInAuto es el chequeo de sesión: true si el header trae un token válido.
// Nunca devuelve error.
func (s *Service) LogInAuto(ctx context.Context, authorization string) bool {
	_, err := s.ValidateToken(ctx, authorization)
	return err == nil
}
