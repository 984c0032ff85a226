// Package health contiene el controller de /healthz.
package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dropDatabas3/socialauth/internal/http/dto"
	"github.com/dropDatabas3/socialauth/internal/observability/logger"
)

// Check es un ping a una dependencia (store, cache).
type Check func(ctx context.Context) error

type Controller struct {
	checks  map[string]Check
	version string
	timeout time.Duration
}

func NewController(version string, checks map[string]Check) *Controller {
	return &Controller{checks: checks, version: version, timeout: 2 * time.Second}
}

// Healthz corre los checks en paralelo. Cualquier falla → 503.
func (c *Controller) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), c.timeout)
	defer cancel()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("HealthController.Healthz"))

	names := make([]string, 0, len(c.checks))
	for name := range c.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	var (
		mu         sync.Mutex
		components = make(map[string]string, len(names))
		g          errgroup.Group
	)
	for _, name := range names {
		check := c.checks[name]
		g.Go(func() error {
			status := "ok"
			if err := check(ctx); err != nil {
				log.Warn("health check failed", logger.Component(name), logger.Err(err))
				status = "error"
			}
			mu.Lock()
			components[name] = status
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	resp := dto.HealthResponse{
		Status:     "ready",
		Version:    c.version,
		Components: components,
		Timestamp:  time.Now().UTC(),
	}
	code := http.StatusOK
	for _, s := range components {
		if s != "ok" {
			resp.Status = "unavailable"
			code = http.StatusServiceUnavailable
			break
		}
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(resp)
}
