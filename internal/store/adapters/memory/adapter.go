// Package memory implementa un adapter en memoria para desarrollo y tests.
// Los datos se pierden al cerrar el proceso. Cada Connect devuelve un store vacío.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dropDatabas3/socialauth/internal/domain/repository"
	store "github.com/dropDatabas3/socialauth/internal/store"
)

func init() {
	store.RegisterAdapter(&memoryAdapter{})
}

type memoryAdapter struct{}

func (a *memoryAdapter) Name() string { return "memory" }

func (a *memoryAdapter) Connect(_ context.Context, _ store.AdapterConfig) (store.AdapterConnection, error) {
	return &memoryConnection{users: NewUserRepository()}, nil
}

type memoryConnection struct {
	users *UserRepository
}

func (c *memoryConnection) Name() string                     { return "memory" }
func (c *memoryConnection) Ping(context.Context) error       { return nil }
func (c *memoryConnection) Close() error                     { return nil }
func (c *memoryConnection) Users() repository.UserRepository { return c.users }

// UserRepository guarda usuarios en un slice protegido por mutex.
// Las restricciones de unicidad se chequean bajo el mismo lock que el insert.
type UserRepository struct {
	mu    sync.RWMutex
	users []repository.User
}

var _ repository.UserRepository = (*UserRepository)(nil)

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

func (r *UserRepository) FindByExternalID(_ context.Context, externalID string) ([]repository.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []repository.User
	for _, u := range r.users {
		if u.ExternalID == externalID {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *UserRepository) FindByProviderID(_ context.Context, provider repository.Provider, externalID string) (*repository.User, error) {
	return r.findOne(func(u repository.User) bool {
		return u.Provider == provider && u.ExternalID == externalID
	})
}

func (r *UserRepository) FindByNick(_ context.Context, nick string) (*repository.User, error) {
	return r.findOne(func(u repository.User) bool { return u.Nick == nick })
}

func (r *UserRepository) FindByEmailAndProvider(_ context.Context, email string, provider repository.Provider) (*repository.User, error) {
	return r.findOne(func(u repository.User) bool {
		return u.Email == email && u.Provider == provider
	})
}

func (r *UserRepository) Create(_ context.Context, in repository.CreateUserInput) (*repository.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Nick == in.Nick || (u.ExternalID == in.ExternalID && u.Provider == in.Provider) {
			return nil, repository.ErrConflict
		}
	}
	createdAt := in.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	u := repository.User{
		ID:         uuid.NewString(),
		ExternalID: in.ExternalID,
		Name:       in.Name,
		Email:      in.Email,
		Nick:       in.Nick,
		Provider:   in.Provider,
		CreatedAt:  createdAt.UTC(),
	}
	r.users = append(r.users, u)
	return &u, nil
}

func (r *UserRepository) findOne(match func(repository.User) bool) (*repository.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if match(u) {
			out := u
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}
