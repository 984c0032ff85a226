// Package kakao verifica access tokens de Kakao consultando el perfil del
// usuario en la API de Kakao. A diferencia de Google/Apple no hay verificación
// offline: cada login es un GET a kapi.kakao.com.
package kakao

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dropDatabas3/socialauth/internal/domain/repository"
	"github.com/dropDatabas3/socialauth/internal/providers"
)

// DefaultProfileURL es el endpoint de perfil de Kakao.
const DefaultProfileURL = "https://kapi.kakao.com/v2/user/me"

type Config struct {
	ProfileURL string
	Timeout    time.Duration // timeout de transporte, default 5s
	HTTPClient *http.Client  // si se setea, Timeout se ignora
}

type Verifier struct {
	url  string
	http *http.Client
}

var _ providers.Verifier = (*Verifier)(nil)

func New(cfg Config) *Verifier {
	u := cfg.ProfileURL
	if u == "" {
		u = DefaultProfileURL
	}
	hc := cfg.HTTPClient
	if hc == nil {
		to := cfg.Timeout
		if to <= 0 {
			to = 5 * time.Second
		}
		hc = &http.Client{Timeout: to}
	}
	return &Verifier{url: u, http: hc}
}

func (v *Verifier) Provider() repository.Provider { return repository.ProviderKakao }

// ClientSuppliesName: el nombre lo elige el usuario en el signup.
func (v *Verifier) ClientSuppliesName() bool { return true }

// profile es el subconjunto de /v2/user/me que usamos.
type profile struct {
	ID           json.RawMessage `json:"id"`
	KakaoAccount struct {
		Email   string `json:"email"`
		Profile struct {
			Nickname string `json:"nickname"`
		} `json:"profile"`
	} `json:"kakao_account"`
}

func (v *Verifier) Verify(ctx context.Context, accessToken string) (*providers.Identity, error) {
	accessToken = strings.TrimSpace(accessToken)
	if accessToken == "" {
		return nil, providers.Invalid(errors.New("empty access token"))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.url, nil)
	if err != nil {
		return nil, providers.Invalid(err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded;charset=utf-8")

	resp, err := v.http.Do(req)
	if err != nil {
		return nil, providers.Invalid(fmt.Errorf("kakao profile: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return nil, providers.Invalid(fmt.Errorf("kakao profile http %d", resp.StatusCode))
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, providers.Invalid(fmt.Errorf("kakao profile read: %w", err))
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, providers.Invalid(errors.New("kakao profile: empty body"))
	}

	var p profile
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, providers.Invalid(fmt.Errorf("kakao profile decode: %w", err))
	}
	id, err := normalizeID(p.ID)
	if err != nil {
		return nil, providers.Invalid(err)
	}
	email := strings.TrimSpace(p.KakaoAccount.Email)
	if email == "" {
		return nil, providers.Invalid(errors.New("kakao profile: missing email"))
	}

	return &providers.Identity{
		ExternalID:  id,
		Email:       email,
		DisplayName: p.KakaoAccount.Profile.Nickname,
	}, nil
}

// normalizeID acepta el id como número JSON (se devuelve en decimal) o como
// string no vacío (se devuelve tal cual, sin espacios alrededor).
func normalizeID(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", errors.New("kakao profile: missing id")
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", fmt.Errorf("kakao profile id: %w", err)
		}
		if s = strings.TrimSpace(s); s == "" {
			return "", errors.New("kakao profile: empty id")
		}
		return s, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return "", fmt.Errorf("kakao profile id: %w", err)
	}
	n, ok := v.(json.Number)
	if !ok {
		return "", fmt.Errorf("kakao profile id: unexpected %s", raw)
	}
	if i, err := n.Int64(); err == nil {
		return strconv.FormatInt(i, 10), nil
	}
	// fuera de int64 o con exponente: big.Float conserva los dígitos enteros
	f, _, err := big.ParseFloat(n.String(), 10, 256, big.ToNearestEven)
	if err != nil || !f.IsInt() {
		return "", fmt.Errorf("kakao profile id %s: not an integer", n)
	}
	return f.Text('f', 0), nil
}
