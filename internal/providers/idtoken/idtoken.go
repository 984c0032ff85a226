// Package idtoken verifica ID tokens OIDC firmados con RS256 contra el JWKS
// público del emisor. Lo comparten los verificadores de Google y Apple.
package idtoken

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"golang.org/x/sync/singleflight"

	"github.com/dropDatabas3/socialauth/internal/cache"
	"github.com/dropDatabas3/socialauth/internal/observability/logger"
)

// Config configura un Verifier.
type Config struct {
	JWKSURL   string
	Issuers   []string // valores aceptados de "iss"
	Audiences []string // client ids aceptados en "aud"

	// Cache guarda el JWKS crudo. Si es nil se usa uno en memoria.
	Cache    cache.Client
	CacheTTL time.Duration

	HTTPClient *http.Client
	Leeway     time.Duration // tolerancia de exp, default 30s
	Now        func() time.Time
}

// Claims son los claims del ID token que nos interesan.
type Claims struct {
	Subject string
	Issuer  string
	Email   string
	Name    string
	Raw     jwtv5.MapClaims
}

// EmailUnverified es true solo si el token declara email_verified=false.
// Google lo manda como bool; Apple a veces como string "true"/"false".
func (c *Claims) EmailUnverified() bool {
	switch v := c.Raw["email_verified"].(type) {
	case bool:
		return !v
	case string:
		return strings.EqualFold(strings.TrimSpace(v), "false")
	}
	return false
}

// Verifier valida ID tokens. Seguro para uso concurrente.
type Verifier struct {
	cfg   Config
	group singleflight.Group
}

func New(cfg Config) *Verifier {
	if cfg.Cache == nil {
		cfg.Cache = cache.NewMemory("")
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = time.Hour
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 10 * time.Second}
	}
	if cfg.Leeway == 0 {
		cfg.Leeway = 30 * time.Second
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Verifier{cfg: cfg}
}

// Verify valida firma, iss, aud y exp. No chequea nonce.
func (v *Verifier) Verify(ctx context.Context, idToken string) (*Claims, error) {
	if len(v.cfg.Audiences) == 0 {
		return nil, errors.New("no audience configured")
	}

	var header struct {
		Alg string `json:"alg"`
		Kid string `json:"kid"`
	}
	parts := strings.Split(idToken, ".")
	if len(parts) != 3 {
		return nil, errors.New("bad jwt format")
	}
	hb, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return nil, fmt.Errorf("jwt header: %w", err)
	}
	if err := json.Unmarshal(hb, &header); err != nil {
		return nil, fmt.Errorf("jwt header: %w", err)
	}
	if header.Alg != "RS256" {
		return nil, fmt.Errorf("unexpected alg: %s", header.Alg)
	}

	set, err := v.keySet(ctx, false)
	if err != nil {
		return nil, err
	}
	key, err := set.rsaKey(header.Kid)
	if errors.Is(err, errKidNotFound) {
		// el emisor pudo rotar claves: refrescamos una vez
		if set, err = v.keySet(ctx, true); err != nil {
			return nil, err
		}
		key, err = set.rsaKey(header.Kid)
	}
	if err != nil {
		return nil, err
	}

	tok, err := jwtv5.Parse(idToken, func(*jwtv5.Token) (any, error) { return key, nil },
		jwtv5.WithValidMethods([]string{"RS256"}),
		jwtv5.WithLeeway(v.cfg.Leeway),
		jwtv5.WithTimeFunc(v.cfg.Now),
		jwtv5.WithExpirationRequired(),
	)
	if err != nil || !tok.Valid {
		return nil, fmt.Errorf("invalid id_token: %w", err)
	}
	claims, ok := tok.Claims.(jwtv5.MapClaims)
	if !ok {
		return nil, errors.New("claims type")
	}

	// iss
	iss := strClaim(claims, "iss")
	if !slices.Contains(v.cfg.Issuers, iss) {
		return nil, fmt.Errorf("bad iss: %s", iss)
	}
	// aud
	audOK := false
	switch a := claims["aud"].(type) {
	case string:
		audOK = slices.Contains(v.cfg.Audiences, a)
	case []any:
		for _, x := range a {
			if s, _ := x.(string); slices.Contains(v.cfg.Audiences, s) {
				audOK = true
				break
			}
		}
	}
	if !audOK {
		return nil, errors.New("bad aud")
	}

	return &Claims{
		Subject: strClaim(claims, "sub"),
		Issuer:  iss,
		Email:   strClaim(claims, "email"),
		Name:    strClaim(claims, "name"),
		Raw:     claims,
	}, nil
}

func (v *Verifier) debug(ctx context.Context, msg string, err error) {
	logger.From(ctx).Debug(msg, logger.Component("idtoken"), logger.String("jwks_url", v.cfg.JWKSURL), logger.Err(err))
}

func strClaim(m jwtv5.MapClaims, k string) string {
	s, _ := m[k].(string)
	return s
}
