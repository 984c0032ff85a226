// Package errors traduce errores de dominio a respuestas HTTP {code, message, detail}.
package errors

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/dropDatabas3/socialauth/internal/auth"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// WriteError escribe err como JSON. Acepta *AppError o errores del motor de auth.
func WriteError(w http.ResponseWriter, err error) {
	appErr := FromError(err)

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(appErr.HTTPStatus)
	_ = json.NewEncoder(w).Encode(errorResponse{
		Code:    appErr.Code,
		Message: appErr.Message,
		Detail:  appErr.Detail,
	})
}

// FromError mapea err a un AppError. Lo desconocido es 500 conservando la causa.
func FromError(err error) *AppError {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}

	switch {
	case stderrors.Is(err, auth.ErrUnsupportedProvider):
		return ErrUnsupportedProvider.WithCause(err)
	case stderrors.Is(err, auth.ErrInvalidCredential):
		return ErrInvalidCredential.WithCause(err)
	case stderrors.Is(err, auth.ErrIdentityMismatch):
		return ErrIdentityMismatch.WithCause(err)
	case stderrors.Is(err, auth.ErrConflict):
		return ErrConflict.WithCause(err)
	case stderrors.Is(err, auth.ErrNameRequired):
		return ErrMissingFields.WithDetail("name").WithCause(err)
	case stderrors.Is(err, auth.ErrMissingCredential):
		return ErrTokenMissing.WithCause(err)
	case stderrors.Is(err, auth.ErrInvalidToken):
		return ErrTokenInvalid.WithCause(err)
	}
	return ErrInternalServerError.WithCause(err)
}
