package errors

import (
	"fmt"
	"net/http"
)

// AppError es el error estándar de la capa HTTP.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Detail     string `json:"detail,omitempty"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // causa, solo para logs
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(status int, code, message string) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: status}
}

// WithDetail devuelve una COPIA con detalle, para no mutar los errores base.
func (e *AppError) WithDetail(detail string) *AppError {
	cp := *e
	cp.Detail = detail
	return &cp
}

// WithCause devuelve una COPIA con la causa original.
func (e *AppError) WithCause(err error) *AppError {
	cp := *e
	cp.Err = err
	return &cp
}

// =================================================================================
// ERRORES PREDEFINIDOS
// =================================================================================

var (
	// 400
	ErrBadRequest          = New(http.StatusBadRequest, "BAD_REQUEST", "request inválido")
	ErrInvalidJSON         = New(http.StatusBadRequest, "INVALID_JSON", "el cuerpo no es JSON válido")
	ErrMissingFields       = New(http.StatusBadRequest, "MISSING_FIELDS", "faltan campos requeridos")
	ErrUnsupportedProvider = New(http.StatusBadRequest, "UNSUPPORTED_PROVIDER", "proveedor no soportado")

	// 401
	ErrInvalidCredential = New(http.StatusUnauthorized, "INVALID_CREDENTIAL", "credencial del proveedor inválida")
	ErrTokenMissing      = New(http.StatusUnauthorized, "TOKEN_MISSING", "falta el token de autorización")
	ErrTokenInvalid      = New(http.StatusUnauthorized, "TOKEN_INVALID", "token inválido o expirado")

	// 404
	ErrNotFound         = New(http.StatusNotFound, "NOT_FOUND", "recurso no encontrado")
	ErrIdentityMismatch = New(http.StatusNotFound, "IDENTITY_MISMATCH", "la identidad no coincide con la cuenta registrada")

	// 405
	ErrMethodNotAllowed = New(http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "método no permitido")

	// 409
	ErrConflict        = New(http.StatusConflict, "CONFLICT", "el usuario ya existe")
	ErrNickUnavailable = New(http.StatusConflict, "NICK_UNAVAILABLE", "el nick no está disponible")

	// 500
	ErrInternalServerError = New(http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "error interno del servidor")
)
