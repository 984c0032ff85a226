// Package apple verifica ID tokens de Sign in with Apple.
//
// Apple no incluye el nombre del usuario en el ID token (solo lo entrega una vez
// al cliente), por eso el nombre lo manda el cliente en el signup.
package apple

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dropDatabas3/socialauth/internal/cache"
	"github.com/dropDatabas3/socialauth/internal/domain/repository"
	"github.com/dropDatabas3/socialauth/internal/providers"
	"github.com/dropDatabas3/socialauth/internal/providers/idtoken"
)

const (
	DefaultJWKSURL = "https://appleid.apple.com/auth/keys"
	Issuer         = "https://appleid.apple.com"
)

type Config struct {
	ClientIDs  []string // bundle ids / service ids
	JWKSURL    string
	Cache      cache.Client
	CacheTTL   time.Duration
	HTTPClient *http.Client
}

type Verifier struct {
	idt *idtoken.Verifier
}

var _ providers.Verifier = (*Verifier)(nil)

func New(cfg Config) *Verifier {
	url := cfg.JWKSURL
	if url == "" {
		url = DefaultJWKSURL
	}
	return &Verifier{idt: idtoken.New(idtoken.Config{
		JWKSURL:    url,
		Issuers:    []string{Issuer},
		Audiences:  cfg.ClientIDs,
		Cache:      cfg.Cache,
		CacheTTL:   cfg.CacheTTL,
		HTTPClient: cfg.HTTPClient,
	})}
}

func (v *Verifier) Provider() repository.Provider { return repository.ProviderApple }

func (v *Verifier) ClientSuppliesName() bool { return true }

func (v *Verifier) Verify(ctx context.Context, credential string) (*providers.Identity, error) {
	credential = strings.TrimSpace(credential)
	if credential == "" {
		return nil, providers.Invalid(errors.New("empty id token"))
	}
	c, err := v.idt.Verify(ctx, credential)
	if err != nil {
		return nil, providers.Invalid(err)
	}
	if c.Subject == "" || c.Email == "" {
		return nil, providers.Invalid(errors.New("id token without sub or email"))
	}
	if c.EmailUnverified() {
		return nil, providers.Invalid(errors.New("id token email not verified"))
	}
	return &providers.Identity{ExternalID: c.Subject, Email: c.Email}, nil
}
