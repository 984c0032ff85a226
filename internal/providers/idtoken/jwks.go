package idtoken

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"strings"
	"time"

	"github.com/dropDatabas3/socialauth/internal/cache"
)

type jwk struct {
	Kty string `json:"kty"`
	Alg string `json:"alg"`
	Kid string `json:"kid"`
	N   string `json:"n"` // base64url
	E   string `json:"e"` // base64url
}

type jwks struct {
	Keys []jwk `json:"keys"`
}

var errKidNotFound = errors.New("kid not found")

// jwksFetchTimeout acota el fetch compartido, que no depende del ctx del caller.
const jwksFetchTimeout = 10 * time.Second

func (s jwks) rsaKey(kid string) (*rsa.PublicKey, error) {
	for _, k := range s.Keys {
		if k.Kid != kid || !strings.EqualFold(k.Kty, "RSA") {
			continue
		}
		nb, err := base64.RawURLEncoding.DecodeString(k.N)
		if err != nil {
			return nil, fmt.Errorf("jwk n: %w", err)
		}
		eb, err := base64.RawURLEncoding.DecodeString(k.E)
		if err != nil {
			return nil, fmt.Errorf("jwk e: %w", err)
		}
		e := 65537
		if len(eb) > 0 {
			// big-endian bytes a int
			e = 0
			for _, b := range eb {
				e = (e << 8) | int(b)
			}
		}
		return &rsa.PublicKey{N: new(big.Int).SetBytes(nb), E: e}, nil
	}
	return nil, errKidNotFound
}

// keySet devuelve el JWKS, primero desde cache y si no desde la red.
// fresh=true ignora el cache (rotación de claves: kid desconocido).
func (v *Verifier) keySet(ctx context.Context, fresh bool) (jwks, error) {
	key := "jwks:" + v.cfg.JWKSURL
	if !fresh {
		if b, err := v.cfg.Cache.Get(ctx, key); err == nil {
			var set jwks
			if err := json.Unmarshal(b, &set); err == nil {
				return set, nil
			}
		} else if !cache.IsNotFound(err) {
			// cache caído: seguimos contra la red
			v.debug(ctx, "jwks cache get failed", err)
		}
	}

	// Un solo fetch concurrente por URL. El fetch compartido no hereda la
	// cancelación del primer caller; cada caller espera con su propio ctx.
	ch := v.group.DoChan(key, func() (any, error) {
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), jwksFetchTimeout)
		defer cancel()

		b, err := v.fetch(fctx)
		if err != nil {
			return nil, err
		}
		var set jwks
		if err := json.Unmarshal(b, &set); err != nil {
			return nil, fmt.Errorf("jwks decode: %w", err)
		}
		if err := v.cfg.Cache.Set(fctx, key, b, v.cfg.CacheTTL); err != nil {
			v.debug(fctx, "jwks cache set failed", err)
		}
		return set, nil
	})
	select {
	case <-ctx.Done():
		return jwks{}, fmt.Errorf("jwks fetch: %w", ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return jwks{}, res.Err
		}
		return res.Val.(jwks), nil
	}
}

func (v *Verifier) fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.cfg.JWKSURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := v.cfg.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("jwks fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("jwks http %d", resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, 1<<20))
}
