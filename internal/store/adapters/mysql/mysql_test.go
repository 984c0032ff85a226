package mysql_test

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/dropDatabas3/socialauth/internal/domain/repository"
	"github.com/dropDatabas3/socialauth/internal/store"
	"github.com/dropDatabas3/socialauth/internal/store/adapters/mysql"
	"github.com/dropDatabas3/socialauth/internal/store/storetest"
)

func TestMySQLAdapterRegistered(t *testing.T) {
	adapter, ok := store.GetAdapter("mysql")
	if !ok || adapter == nil {
		t.Fatal("MySQL adapter not registered")
	}
	if adapter.Name() != "mysql" {
		t.Errorf("expected adapter name 'mysql', got '%s'", adapter.Name())
	}
}

func TestMySQLAdapterConnectRequiresDSN(t *testing.T) {
	adapter, _ := store.GetAdapter("mysql")
	if _, err := adapter.Connect(context.Background(), store.AdapterConfig{}); err == nil {
		t.Error("expected error when connecting without DSN")
	}
}

func TestNormalizeDSN(t *testing.T) {
	dsn, err := mysql.NormalizeDSN("app:secret@tcp(localhost:3306)/social")
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if !strings.Contains(dsn, "parseTime=true") {
		t.Errorf("parseTime not forced: %s", dsn)
	}
	if _, err := mysql.NormalizeDSN("::not a dsn"); err == nil {
		t.Error("expected parse error")
	}
}

// Requiere TEST_MYSQL_DSN apuntando a una base descartable.
func TestUserRepositoryContract(t *testing.T) {
	dsn := os.Getenv("TEST_MYSQL_DSN")
	if dsn == "" {
		t.Skip("TEST_MYSQL_DSN not set")
	}
	ctx := context.Background()
	conn, err := store.OpenAdapter(ctx, store.AdapterConfig{Name: "mysql", DSN: dsn})
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
