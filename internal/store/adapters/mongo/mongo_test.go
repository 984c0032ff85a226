package mongo_test

import (
	"context"
	"os"
	"testing"

	"github.com/dropDatabas3/socialauth/internal/domain/repository"
	"github.com/dropDatabas3/socialauth/internal/store"
	_ "github.com/dropDatabas3/socialauth/internal/store/adapters/mongo"
	"github.com/dropDatabas3/socialauth/internal/store/storetest"
)

func TestMongoAdapterRegistered(t *testing.T) {
	adapter, ok := store.GetAdapter("mongo")
	if !ok || adapter == nil {
		t.Fatal("mongo adapter not registered")
	}
	if _, err := adapter.Connect(context.Background(), store.AdapterConfig{}); err == nil {
		t.Error("expected error when connecting without URI")
	}
}

// Requiere TEST_MONGO_URI (replica set no necesario).
func TestUserRepositoryContract(t *testing.T) {
	uri := os.Getenv("TEST_MONGO_URI")
	if uri == "" {
		t.Skip("TEST_MONGO_URI not set")
	}
	ctx := context.Background()
	conn, err := store.OpenAdapter(ctx, store.AdapterConfig{Name: "mongo", DSN: uri, Database: "socialauth_test"})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	if _, err := store.Migrate(ctx, conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	truncate := conn.(interface {
		TruncateUsers(ctx context.Context) error
	})

	storetest.RunUserRepository(t, func(t *testing.T) repository.UserRepository {
		if err := truncate.TruncateUsers(ctx); err != nil {
			t.Fatalf("truncate: %v", err)
		}
		return conn.Users()
	})
}
