package auth

import (
	"errors"

	"github.com/dropDatabas3/socialauth/internal/jwt"
	"github.com/dropDatabas3/socialauth/internal/providers"
)

// Errores del motor de autenticación. Todos son terminales: ninguno se reintenta.
// "Signup requerido" no es un error sino una variante de LoginResult.
var (
	ErrUnsupportedProvider = providers.ErrUnsupportedProvider
	ErrInvalidCredential   = providers.ErrInvalidCredential

	// ErrIdentityMismatch: el id externo existe pero el proveedor o el email no coinciden.
	ErrIdentityMismatch = errors.New("identity mismatch")

	// ErrConflict: signup de una identidad o nick que ya existe.
	ErrConflict = errors.New("user already exists")

	// ErrNameRequired: el proveedor no informa nombre y el cliente no lo mandó.
	ErrNameRequired = errors.New("name required")

	ErrMissingCredential = jwt.ErrMissingCredential
	ErrInvalidToken      = jwt.ErrInvalidToken
)
