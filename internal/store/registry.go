// Package store provee el registry de adaptadores de almacenamiento de usuarios.
//
// Cada adapter se registra en su init(); cmd/ importa store/adapters/dal para
// habilitarlos todos y elige uno por nombre (storage.driver).
package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/dropDatabas3/socialauth/internal/domain/repository"
)

// Adapter representa un adaptador de almacenamiento capaz de crear repositorios.
type Adapter interface {
	// Name retorna el nombre del adapter (ej: "postgres", "mysql", "mongo", "memory").
	Name() string

	// Connect establece conexión con el almacenamiento.
	Connect(ctx context.Context, cfg AdapterConfig) (AdapterConnection, error)
}

// AdapterConnection representa una conexión activa.
type AdapterConnection interface {
	Name() string

	// Ping verifica la conexión.
	Ping(ctx context.Context) error

	Close() error

	Users() repository.UserRepository
}

// MigratableConnection interfaz opcional para conexiones que crean su esquema
// (tablas SQL o índices de Mongo).
type MigratableConnection interface {
	Migrate(ctx context.Context) (*MigrationResult, error)
}

// AdapterConfig configuración para conectar a un almacenamiento.
type AdapterConfig struct {
	// Name del adapter: "postgres", "mysql", "mongo", "memory"
	Name string

	// DSN connection string (para DBs SQL, o URI de Mongo)
	DSN string

	// Database nombre de la base (Mongo)
	Database string

	// Pool settings (para DBs)
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// ─── Registry Global ───

var (
	registryMu sync.RWMutex
	adapters   = make(map[string]Adapter)
)

// RegisterAdapter registra un adapter en el registry global.
// Llamar en init() de cada adapter.
func RegisterAdapter(a Adapter) {
	registryMu.Lock()
	defer registryMu.Unlock()

	name := a.Name()
	if _, exists := adapters[name]; exists {
		panic(fmt.Sprintf("adapter: %q already registered", name))
	}
	adapters[name] = a
}

// GetAdapter obtiene un adapter por nombre.
func GetAdapter(name string) (Adapter, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	a, ok := adapters[name]
	return a, ok
}

// ListAdapters retorna los nombres de los adapters registrados, ordenados.
func ListAdapters() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(adapters))
	for name := range adapters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// OpenAdapter abre una conexión usando el adapter especificado en la config.
func OpenAdapter(ctx context.Context, cfg AdapterConfig) (AdapterConnection, error) {
	a, ok := GetAdapter(cfg.Name)
	if !ok {
		return nil, fmt.Errorf("adapter: %q not registered", cfg.Name)
	}
	return a.Connect(ctx, cfg)
}

// Migrate corre las migraciones si la conexión las soporta.
// Para conexiones sin esquema (memory) devuelve un resultado vacío.
func Migrate(ctx context.Context, conn AdapterConnection) (*MigrationResult, error) {
	m, ok := conn.(MigratableConnection)
	if !ok {
		return &MigrationResult{}, nil
	}
	return m.Migrate(ctx)
}
