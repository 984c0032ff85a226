// Package app arma el servicio a partir de la config: store, cache,
// verificadores, motor de auth y handler HTTP.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/dropDatabas3/socialauth/internal/auth"
	"github.com/dropDatabas3/socialauth/internal/cache"
	"github.com/dropDatabas3/socialauth/internal/config"
	authctrl "github.com/dropDatabas3/socialauth/internal/http/controllers/auth"
	healthctrl "github.com/dropDatabas3/socialauth/internal/http/controllers/health"
	"github.com/dropDatabas3/socialauth/internal/http/router"
	"github.com/dropDatabas3/socialauth/internal/jwt"
	"github.com/dropDatabas3/socialauth/internal/metrics"
	"github.com/dropDatabas3/socialauth/internal/nick"
	"github.com/dropDatabas3/socialauth/internal/observability/logger"
	"github.com/dropDatabas3/socialauth/internal/providers"
	"github.com/dropDatabas3/socialauth/internal/providers/apple"
	"github.com/dropDatabas3/socialauth/internal/providers/google"
	"github.com/dropDatabas3/socialauth/internal/providers/kakao"
	"github.com/dropDatabas3/socialauth/internal/store"

	// registra memory, postgres, mysql y mongo
	_ "github.com/dropDatabas3/socialauth/internal/store/adapters/dal"
)

// Version se sobreescribe con -ldflags en el build.
var Version = "dev"

// App es el servicio cableado.
type App struct {
	Handler http.Handler
	Service *auth.Service
	Store   store.AdapterConnection
	Cache   cache.Client
	Tokens  *jwt.Issuer
}

// New cablea todo. Si falla a mitad, cierra lo que alcanzó a abrir.
func New(ctx context.Context, cfg *config.Config) (_ *App, err error) {
	log := logger.L().With(logger.Component("app"))
	a := &App{}
	defer func() {
		if err != nil {
			_ = a.Close()
		}
	}()

	// 1. Store
	a.Store, err = OpenStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if cfg.Flags.Migrate {
		res, err := store.Migrate(ctx, a.Store)
		if err != nil {
			return nil, fmt.Errorf("app: migrate: %w", err)
		}
		log.Info("migrations done", logger.Driver(a.Store.Name()),
			logger.Int("applied", len(res.Applied)), logger.Int("skipped", len(res.Skipped)))
	}

	// 2. Cache (JWKS)
	a.Cache, err = cache.New(ctx, cache.Config{
		Kind:     cfg.Cache.Kind,
		Addr:     cfg.Cache.Redis.Addr,
		Password: cfg.Cache.Redis.Password,
		DB:       cfg.Cache.Redis.DB,
		Prefix:   cfg.Cache.Redis.Prefix,
	})
	if err != nil {
		return nil, fmt.Errorf("app: cache: %w", err)
	}

	// 3. Tokens + nick
	a.Tokens, err = NewIssuer(cfg)
	if err != nil {
		return nil, err
	}
	banned, err := nick.LoadBannedWords(cfg.Nick.BannedWordsPath)
	if err != nil {
		return nil, fmt.Errorf("app: banned words: %w", err)
	}

	// 4. Motor
	registry := NewRegistry(cfg, a.Cache)
	log.Info("providers enabled", logger.Any("providers", registry.Providers()),
		logger.Int("banned_words", banned.Len()))

	users := a.Store.Users()
	a.Service = auth.NewService(auth.Deps{
		Providers: registry,
		Users:     users,
		Tokens:    a.Tokens,
		Nicks:     nick.NewValidator(users, banned),
	})

	// 5. HTTP
	deps := router.Deps{
		Auth: authctrl.NewController(a.Service),
		Health: healthctrl.NewController(Version, map[string]healthctrl.Check{
			"store": a.Store.Ping,
			"cache": a.Cache.Ping,
		}),
	}
	if cfg.Metrics.Enabled {
		if err := metrics.Register(nil); err != nil {
			return nil, fmt.Errorf("app: metrics: %w", err)
		}
		deps.Metrics = metrics.Handler(nil)
	}
	a.Handler = router.New(deps)
	return a, nil
}

// Close libera store y cache.
func (a *App) Close() error {
	var errs []error
	if a.Cache != nil {
		errs = append(errs, a.Cache.Close())
	}
	if a.Store != nil {
		errs = append(errs, a.Store.Close())
	}
	return errors.Join(errs...)
}

// OpenStore abre el adapter configurado en storage.driver.
func OpenStore(ctx context.Context, cfg *config.Config) (store.AdapterConnection, error) {
	dsn := cfg.Storage.DSN
	if cfg.Storage.Driver == "mongo" && cfg.Storage.Mongo.URI != "" {
		dsn = cfg.Storage.Mongo.URI
	}
	conn, err := store.OpenAdapter(ctx, store.AdapterConfig{
		Name:            cfg.Storage.Driver,
		DSN:             dsn,
		Database:        cfg.Storage.Mongo.Database,
		MaxOpenConns:    cfg.Storage.Pool.MaxOpenConns,
		MaxIdleConns:    cfg.Storage.Pool.MaxIdleConns,
		ConnMaxLifetime: cfg.Storage.Pool.ConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("app: open store %q: %w", cfg.Storage.Driver, err)
	}
	return conn, nil
}

func NewIssuer(cfg *config.Config) (*jwt.Issuer, error) {
	var opts []jwt.Option
	if cfg.JWT.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.JWT.Issuer))
	}
	iss, err := jwt.NewIssuer(cfg.JWT.Secret, cfg.JWT.TTL, opts...)
	if err != nil {
		return nil, fmt.Errorf("app: jwt: %w", err)
	}
	return iss, nil
}

// NewRegistry arma los verificadores. Google y Apple solo se habilitan con
// client ids configurados: sin audiencia no hay verificación posible.
func NewRegistry(cfg *config.Config, c cache.Client) *providers.Registry {
	p := cfg.Providers
	vs := []providers.Verifier{
		kakao.New(kakao.Config{ProfileURL: p.Kakao.ProfileURL, Timeout: p.Kakao.Timeout}),
	}
	if len(p.Google.ClientIDs) > 0 {
		vs = append(vs, google.New(google.Config{
			ClientIDs: p.Google.ClientIDs, JWKSURL: p.Google.JWKSURL, Cache: c, CacheTTL: p.JWKSTTL,
		}))
	}
	if len(p.Apple.ClientIDs) > 0 {
		vs = append(vs, apple.New(apple.Config{
			ClientIDs: p.Apple.ClientIDs, JWKSURL: p.Apple.JWKSURL, Cache: c, CacheTTL: p.JWKSTTL,
		}))
	}
	return providers.NewRegistry(vs...)
}
