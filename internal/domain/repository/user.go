package repository

import (
	"context"
	"time"
)

// MaxFieldLen es el largo máximo (en caracteres) de social_id, name, email y nick.
const MaxFieldLen = 100

// User representa una cuenta local vinculada a una identidad social.
type User struct {
	ID         string // UUID asignado por el adapter al insertar
	ExternalID string // id del usuario en el proveedor (sub, id de Kakao)
	Name       string
	Email      string
	Nick       string // único en todo el store
	Provider   Provider
	CreatedAt  time.Time
}

// CreateUserInput contiene los datos para crear un usuario.
type CreateUserInput struct {
	ExternalID string
	Name       string
	Email      string
	Nick       string
	Provider   Provider
	// CreatedAt lo fija el caller; si es cero el adapter usa time.Now().UTC().
	CreatedAt time.Time
}

// UserRepository define operaciones sobre usuarios.
// Los registros nunca se actualizan ni se eliminan.
type UserRepository interface {
	// FindByExternalID devuelve todos los usuarios con ese id externo, de cualquier proveedor.
	// Lista vacía (sin error) si no hay ninguno.
	FindByExternalID(ctx context.Context, externalID string) ([]User, error)

	// FindByProviderID busca por el par (provider, externalID).
	// Retorna ErrNotFound si no existe.
	FindByProviderID(ctx context.Context, provider Provider, externalID string) (*User, error)

	// FindByNick busca por nick exacto (case-sensitive).
	// Retorna ErrNotFound si no existe.
	FindByNick(ctx context.Context, nick string) (*User, error)

	// FindByEmailAndProvider busca por email dentro de un proveedor.
	// Retorna ErrNotFound si no existe.
	FindByEmailAndProvider(ctx context.Context, email string, provider Provider) (*User, error)

	// Create inserta un usuario nuevo.
	// Retorna ErrConflict si el nick o el par (externalID, provider) ya existen.
	Create(ctx context.Context, input CreateUserInput) (*User, error)
}
