package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/socialauth/internal/config"
	"github.com/dropDatabas3/socialauth/internal/domain/repository"
)

func loadMemoryConfig(t *testing.T) *config.Config {
	t.Helper()
	t.Setenv("JWT_SECRET", "app-test-secret")
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("CACHE_KIND", "memory")
	cfg, err := config.Load("")
	require.NoError(t, err)
	return cfg
}

func TestNew_MemoryStack(t *testing.T) {
	cfg := loadMemoryConfig(t)
	cfg.Metrics.Enabled = true
	cfg.Flags.Migrate = true

	a, err := New(context.Background(), cfg)
	require.NoError(t, err)
	defer a.Close()

	rec := httptest.NewRecorder()
	a.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ready"`)

	rec = httptest.NewRecorder()
	a.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	tok, _, err := a.Tokens.Issue("42")
	require.NoError(t, err)
	assert.True(t, a.Service.LogInAuto(context.Background(), "Bearer "+tok))
}

func TestNewRegistry_OnlyConfiguredProviders(t *testing.T) {
	cfg := loadMemoryConfig(t)
	cfg.Providers.Google.ClientIDs = nil
	cfg.Providers.Apple.ClientIDs = []string{"com.example.app"}

	reg := NewRegistry(cfg, nil)
	assert.ElementsMatch(t, []repository.Provider{repository.ProviderKakao, repository.ProviderApple}, reg.Providers())
}

func TestOpenStore_UnknownDriver(t *testing.T) {
	cfg := loadMemoryConfig(t)
	cfg.Storage.Driver = "sqlite"
	_, err := OpenStore(context.Background(), cfg)
	assert.Error(t, err)
}
