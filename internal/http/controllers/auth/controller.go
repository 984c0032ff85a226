// Package auth expone el motor de autenticación por HTTP.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	svc "github.com/dropDatabas3/socialauth/internal/auth"
	"github.com/dropDatabas3/socialauth/internal/http/dto"
	httperrors "github.com/dropDatabas3/socialauth/internal/http/errors"
)

// Service es lo que el controller necesita del motor.
type Service interface {
	Login(ctx context.Context, in svc.LoginInput) (*svc.LoginResult, error)
	SignUp(ctx context.Context, in svc.SignUpInput) (*svc.SignUpResult, error)
	ValidateNick(ctx context.Context, nick string) (bool, error)
	ValidateToken(ctx context.Context, authorization string) (string, error)
	LogInAuto(ctx context.Context, authorization string) bool
}

// Controller maneja /auth/*.
type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

const maxBodyBytes = 64 << 10

// decode lee el JSON del body y lo valida con los tags del DTO.
func decode(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return httperrors.ErrMissingFields.WithCause(err)
		}
		return httperrors.ErrInvalidJSON.WithCause(err)
	}
	if err := dto.Validate(dst); err != nil {
		var fe *dto.FieldsError
		if errors.As(err, &fe) {
			return httperrors.ErrMissingFields.WithDetail(fe.Error()).WithCause(err)
		}
		return httperrors.ErrBadRequest.WithCause(err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
