package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/socialauth/internal/http/dto"
)

func ok(context.Context) error   { return nil }
func down(context.Context) error { return errors.New("down") }

func TestHealthz(t *testing.T) {
	t.Run("ready", func(t *testing.T) {
		c := NewController("1.0", map[string]Check{"store": ok, "cache": ok})
		rec := httptest.NewRecorder()
		c.Healthz(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var resp dto.HealthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "ready", resp.Status)
		assert.Equal(t, "1.0", resp.Version)
		assert.Equal(t, map[string]string{"store": "ok", "cache": "ok"}, resp.Components)
	})

	t.Run("unavailable", func(t *testing.T) {
		c := NewController("", map[string]Check{"store": down, "cache": ok})
		rec := httptest.NewRecorder()
		c.Healthz(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
		var resp dto.HealthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "unavailable", resp.Status)
		assert.Equal(t, "error", resp.Components["store"])
	})
}
