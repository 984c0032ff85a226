package auth

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dropDatabas3/socialauth/internal/domain/repository"
	"github.com/dropDatabas3/socialauth/internal/observability/logger"
)

// SignUp crea la cuenta de una identidad verificada y emite su token.
// Nunca degrada a login: si la identidad ya existe devuelve ErrConflict.
func (s *Service) SignUp(ctx context.Context, in SignUpInput) (*SignUpResult, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("auth.signup"),
		logger.Op("SignUp"),
		logger.Provider(string(in.Provider)),
	)

	// Paso 1: verificador + credencial
	v, id, err := s.verify(ctx, in.Provider, in.Credential)
	if err != nil {
		if err == ErrUnsupportedProvider {
			observeSignup(in.Provider, resultUnsupported)
			return nil, ErrUnsupportedProvider
		}
		log.Debug("credential rejected", logger.Err(err))
		observeSignup(in.Provider, resultInvalidCredential)
		return nil, ErrInvalidCredential
	}
	log = log.With(logger.ExternalID(id.ExternalID))
	if tooLong(id.ExternalID) || tooLong(id.Email) {
		log.Warn("provider identity exceeds column size", logger.Email(id.Email))
		observeSignup(in.Provider, resultInvalidCredential)
		return nil, ErrInvalidCredential
	}

	// Paso 2: nombre visible
	var name string
	if v.ClientSuppliesName() {
		name = strings.TrimSpace(in.Name)
		if name == "" {
			observeSignup(in.Provider, resultNameRequired)
			return nil, ErrNameRequired
		}
	} else {
		name = id.DisplayName
		if name == "" {
			name = strings.TrimSpace(in.Name)
		}
	}
	name = clamp(name, repository.MaxFieldLen)

	// Paso 3: pre-chequeo de identidad existente (el insert es la garantía real)
	_, err = s.deps.Users.FindByProviderID(ctx, in.Provider, id.ExternalID)
	switch {
	case err == nil:
		log.Info("identity already registered")
		observeSignup(in.Provider, resultConflict)
		return nil, ErrConflict
	case !repository.IsNotFound(err):
		log.Error("user lookup failed", logger.Err(err))
		observeSignup(in.Provider, resultError)
		return nil, fmt.Errorf("auth: find user: %w", err)
	}

	// Paso 4: alta
	user, err := s.deps.Users.Create(ctx, repository.CreateUserInput{
		ExternalID: id.ExternalID,
		Name:       name,
		Email:      id.Email,
		Nick:       in.Nick,
		Provider:   in.Provider,
		CreatedAt:  s.deps.Now().UTC(),
	})
	if err != nil {
		if repository.IsConflict(err) {
			log.Info("unique constraint on create", logger.Nick(in.Nick))
			observeSignup(in.Provider, resultConflict)
			return nil, ErrConflict
		}
		log.Error("create user failed", logger.Err(err))
		observeSignup(in.Provider, resultError)
		return nil, fmt.Errorf("auth: create user: %w", err)
	}

	// Paso 5: token
	token, exp, err := s.deps.Tokens.Issue(user.ExternalID)
	if err != nil {
		log.Error("token issue failed", logger.Err(err))
		observeSignup(in.Provider, resultError)
		return nil, fmt.Errorf("auth: issue token: %w", err)
	}

	log.Info("signup ok", logger.UserID(user.ID), logger.Nick(user.Nick))
	observeSignup(in.Provider, resultOK)
	return &SignUpResult{Token: token, ExpiresAt: exp, Nick: user.Nick}, nil
}

func tooLong(s string) bool { return utf8.RuneCountInString(s) > repository.MaxFieldLen }

// clamp corta s a n caracteres sin partir runas.
func clamp(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
