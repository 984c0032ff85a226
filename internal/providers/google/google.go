// Package google verifica ID tokens de Google Sign-In sin llamar a Google
// por cada login: firma contra el JWKS público (cacheado), iss, aud y exp.
package google

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

// DefaultJWKSURL es el endpoint de claves públicas de Google.
const DefaultJWKSURL = "https://www.googleapis.com/oauth2/v3/certs"

// Issuers aceptados en el claim "iss".
var Issuers = []string{"https://accounts.google.com", "accounts.google.com"}

type Config struct {
	ClientIDs  []string
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
		Issuers:    Issuers,
		Audiences:  cfg.ClientIDs,
		Cache:      cfg.Cache,
		CacheTTL:   cfg.CacheTTL,
		HTTPClient: cfg.HTTPClient,
	})}
}

func (v *Verifier) Provider() repository.Provider { return repository.ProviderGoogle }

// ClientSuppliesName: el nombre sale del claim "name".
func (v *Verifier) ClientSuppliesName() bool { return false }

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
	return &providers.Identity{
		ExternalID:  c.Subject,
		Email:       c.Email,
		DisplayName: c.Name,
	}, nil
}
