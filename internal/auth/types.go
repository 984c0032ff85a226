package auth

import (
	"time"

	"github.com/dropDatabas3/socialauth/internal/domain/repository"
)

// LoginInput es un intento de login con la credencial cruda del proveedor
// (access token de Kakao, ID token de Google/Apple).
type LoginInput struct {
	Provider   repository.Provider
	Credential string
}

// LoginResult es el token + nick, o SignUpRequired si la identidad no tiene cuenta.
type LoginResult struct {
	SignUpRequired bool

	Token     string
	ExpiresAt time.Time
	Nick      string
}

// SignUpInput crea una cuenta para la identidad verificada.
// Name solo se usa si el proveedor no informa nombre (Kakao, Apple).
type SignUpInput struct {
	Provider   repository.Provider
	Credential string
	Nick       string
	Name       string
}

type SignUpResult struct {
	Token     string
	ExpiresAt time.Time
	Nick      string
}
