package repository

import "fmt"

// Provider identifica al proveedor de identidad que emitió la credencial.
type Provider string

const (
	ProviderGoogle Provider = "google"
	ProviderKakao  Provider = "kakao"
	ProviderApple  Provider = "apple"
)

// Providers devuelve los proveedores conocidos en orden estable.
func Providers() []Provider {
	return []Provider{ProviderKakao, ProviderGoogle, ProviderApple}
}

// Valid reporta si p es uno de los proveedores conocidos.
func (p Provider) Valid() bool {
	switch p {
	case ProviderGoogle, ProviderKakao, ProviderApple:
		return true
	}
	return false
}

func (p Provider) String() string { return string(p) }

// ParseProvider convierte un string (ej: segmento de URL) en Provider.
func ParseProvider(s string) (Provider, error) {
	p := Provider(s)
	if !p.Valid() {
		return "", fmt.Errorf("%w: unknown provider %q", ErrInvalidInput, s)
	}
	return p, nil
}
