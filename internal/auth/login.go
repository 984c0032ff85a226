package auth

import (
	"context"
	"fmt"

	"github.com/dropDatabas3/socialauth/internal/domain/repository"
	"github.com/dropDatabas3/socialauth/internal/observability/logger"
)

// Login verifica la credencial y decide entre login exitoso y signup requerido.
//
// La identidad es el par (ExternalID, Provider): un id conocido bajo otro
// proveedor, o un email distinto al guardado, es ErrIdentityMismatch.
func (s *Service) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("auth.login"),
		logger.Op("Login"),
		logger.Provider(string(in.Provider)),
	)

	// Paso 1: verificador + credencial
	_, id, err := s.verify(ctx, in.Provider, in.Credential)
	if err != nil {
		if err == ErrUnsupportedProvider {
			observeLogin(in.Provider, resultUnsupported)
			return nil, ErrUnsupportedProvider
		}
		log.Debug("credential rejected", logger.Err(err))
		observeLogin(in.Provider, resultInvalidCredential)
		return nil, ErrInvalidCredential
	}
	log = log.With(logger.ExternalID(id.ExternalID))

	// Paso 2: cuentas con ese id externo (de cualquier proveedor)
	users, err := s.deps.Users.FindByExternalID(ctx, id.ExternalID)
	if err != nil {
		log.Error("user lookup failed", logger.Err(err))
		observeLogin(in.Provider, resultError)
		return nil, fmt.Errorf("auth: find user: %w", err)
	}
	if len(users) == 0 {
		log.Info("sign up required")
		observeLogin(in.Provider, resultSignUpRequired)
		return &LoginResult{SignUpRequired: true}, nil
	}

	// Paso 3: la cuenta del proveedor intentado, con el mismo email
	var user *repository.User
	for i := range users {
		if users[i].Provider == in.Provider {
			user = &users[i]
			break
		}
	}
	if user == nil || user.Email != id.Email {
		log.Warn("identity mismatch", logger.Bool("provider_match", user != nil), logger.Email(id.Email))
		observeLogin(in.Provider, resultIdentityMismatch)
		return nil, ErrIdentityMismatch
	}

	// Paso 4: token
	token, exp, err := s.deps.Tokens.Issue(user.ExternalID)
	if err != nil {
		log.Error("token issue failed", logger.Err(err))
		observeLogin(in.Provider, resultError)
		return nil, fmt.Errorf("auth: issue token: %w", err)
	}

	log.Info("login ok", logger.UserID(user.ID))
	observeLogin(in.Provider, resultOK)
	return &LoginResult{Token: token, ExpiresAt: exp, Nick: user.Nick}, nil
}
