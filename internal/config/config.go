package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		// dev | staging | prod
		Env string `yaml:"env"`
	} `yaml:"app"`

	Server struct {
		Addr         string        `yaml:"addr"`
		ReadTimeout  time.Duration `yaml:"read_timeout"`
		WriteTimeout time.Duration `yaml:"write_timeout"`
	} `yaml:"server"`

	Storage struct {
		// memory | postgres | mysql | mongo
		Driver string `yaml:"driver"`
		DSN    string `yaml:"dsn"`
		Pool   struct {
			MaxOpenConns    int           `yaml:"max_open_conns"`
			MaxIdleConns    int           `yaml:"max_idle_conns"`
			ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
		} `yaml:"pool"`
		Mongo struct {
			URI      string `yaml:"uri"`
			Database string `yaml:"database"`
		} `yaml:"mongo"`
	} `yaml:"storage"`

	Cache struct {
		// memory | redis
		Kind  string `yaml:"kind"`
		Redis struct {
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			Prefix   string `yaml:"prefix"`
		} `yaml:"redis"`
	} `yaml:"cache"`

	JWT struct {
		Secret string        `yaml:"secret"`
		TTL    time.Duration `yaml:"ttl"`
		Issuer string        `yaml:"issuer"`
	} `yaml:"jwt"`

	Providers struct {
		Kakao struct {
			ProfileURL string        `yaml:"profile_url"`
			Timeout    time.Duration `yaml:"timeout"`
		} `yaml:"kakao"`
		Google struct {
			ClientIDs []string `yaml:"client_ids"`
			JWKSURL   string   `yaml:"jwks_url"`
		} `yaml:"google"`
		Apple struct {
			ClientIDs []string `yaml:"client_ids"`
			JWKSURL   string   `yaml:"jwks_url"`
		} `yaml:"apple"`
		// JWKSTTL es cuánto se cachean las claves públicas de Google/Apple.
		JWKSTTL time.Duration `yaml:"jwks_ttl"`
	} `yaml:"providers"`

	Nick struct {
		BannedWordsPath string `yaml:"banned_words_path"`
	} `yaml:"nick"`

	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`

	Metrics struct {
		Enabled bool `yaml:"enabled"`
	} `yaml:"metrics"`

	Flags struct {
		// Migrate corre las migraciones del adapter al arrancar el servicio.
		Migrate bool `yaml:"migrate"`
	} `yaml:"flags"`
}

// Load lee el YAML en path, aplica defaults, overrides por env y valida.
// Si path está vacío o el archivo no existe se usan solo defaults + env.
func Load(path string) (*Config, error) {
	var c Config
	if strings.TrimSpace(path) != "" {
		b, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(b, &c); err != nil {
				return nil, fmt.Errorf("config: parse %s: %w", path, err)
			}
		case errors.Is(err, fs.ErrNotExist):
			// sin archivo: defaults + env
		default:
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	c.applyDefaults()
	c.applyEnvOverrides()

	if err := c.Validate(); err != nil {
		return nil, err
	}

	// Normalizar ruta de banned words (si relativa) respecto al directorio del YAML
	if p := strings.TrimSpace(c.Nick.BannedWordsPath); p != "" && path != "" && !filepath.IsAbs(p) {
		if _, err := os.Stat(p); err != nil {
			c.Nick.BannedWordsPath = filepath.Clean(filepath.Join(filepath.Dir(path), p))
		}
	}

	return &c, nil
}

func (c *Config) applyDefaults() {
	if c.App.Env == "" {
		c.App.Env = "dev"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 30 * time.Second
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = "memory"
	}
	if c.Storage.Pool.MaxOpenConns == 0 {
		c.Storage.Pool.MaxOpenConns = 20
	}
	if c.Storage.Pool.MaxIdleConns == 0 {
		c.Storage.Pool.MaxIdleConns = 5
	}
	if c.Storage.Pool.ConnMaxLifetime == 0 {
		c.Storage.Pool.ConnMaxLifetime = 30 * time.Minute
	}
	if c.Storage.Mongo.Database == "" {
		c.Storage.Mongo.Database = "socialauth"
	}
	if c.Cache.Kind == "" {
		c.Cache.Kind = "memory"
	}
	if c.Cache.Redis.Prefix == "" {
		c.Cache.Redis.Prefix = "socialauth:"
	}
	if c.JWT.TTL == 0 {
		c.JWT.TTL = 8760 * time.Hour // 1 año
	}
	if c.Providers.Kakao.ProfileURL == "" {
		c.Providers.Kakao.ProfileURL = "https://kapi.kakao.com/v2/user/me"
	}
	if c.Providers.Kakao.Timeout == 0 {
		c.Providers.Kakao.Timeout = 5 * time.Second
	}
	if c.Providers.Google.JWKSURL == "" {
		c.Providers.Google.JWKSURL = "https://www.googleapis.com/oauth2/v3/certs"
	}
	if c.Providers.Apple.JWKSURL == "" {
		c.Providers.Apple.JWKSURL = "https://appleid.apple.com/auth/keys"
	}
	if c.Providers.JWKSTTL == 0 {
		c.Providers.JWKSTTL = time.Hour
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

func getEnvStr(key string) (string, bool) {
	v := os.Getenv(key)
	return v, v != ""
}

func getEnvInt(key string) (int, bool) {
	if s, ok := getEnvStr(key); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return n, true
		}
	}
	return 0, false
}

func getEnvBool(key string) (bool, bool) {
	if s, ok := getEnvStr(key); ok {
		if b, err := strconv.ParseBool(strings.TrimSpace(s)); err == nil {
			return b, true
		}
	}
	return false, false
}

func getEnvDur(key string) (time.Duration, bool) {
	if s, ok := getEnvStr(key); ok {
		if d, err := time.ParseDuration(strings.TrimSpace(s)); err == nil {
			return d, true
		}
	}
	return 0, false
}

func getEnvCSV(key string) ([]string, bool) {
	if s, ok := getEnvStr(key); ok {
		parts := strings.Split(s, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out, true
	}
	return nil, false
}

func (c *Config) applyEnvOverrides() {
	// APP
	if v, ok := getEnvStr("APP_ENV"); ok {
		c.App.Env = strings.ToLower(v)
	}

	// SERVER
	if v, ok := getEnvStr("SERVER_ADDR"); ok {
		c.Server.Addr = v
	}

	// STORAGE
	if v, ok := getEnvStr("STORAGE_DRIVER"); ok {
		c.Storage.Driver = strings.ToLower(v)
	}
	if v, ok := getEnvStr("STORAGE_DSN"); ok {
		c.Storage.DSN = v
	}
	if v, ok := getEnvInt("STORAGE_MAX_OPEN_CONNS"); ok {
		c.Storage.Pool.MaxOpenConns = v
	}
	if v, ok := getEnvInt("STORAGE_MAX_IDLE_CONNS"); ok {
		c.Storage.Pool.MaxIdleConns = v
	}
	if v, ok := getEnvDur("STORAGE_CONN_MAX_LIFETIME"); ok {
		c.Storage.Pool.ConnMaxLifetime = v
	}
	if v, ok := getEnvStr("MONGO_URI"); ok {
		c.Storage.Mongo.URI = v
	}
	if v, ok := getEnvStr("MONGO_DATABASE"); ok {
		c.Storage.Mongo.Database = v
	}

	// CACHE
	if v, ok := getEnvStr("CACHE_KIND"); ok {
		c.Cache.Kind = strings.ToLower(v)
	}
	if v, ok := getEnvStr("REDIS_ADDR"); ok {
		c.Cache.Redis.Addr = v
	}
	if v, ok := getEnvStr("REDIS_PASSWORD"); ok {
		c.Cache.Redis.Password = v
	}
	if v, ok := getEnvInt("REDIS_DB"); ok {
		c.Cache.Redis.DB = v
	}
	if v, ok := getEnvStr("REDIS_PREFIX"); ok {
		c.Cache.Redis.Prefix = v
	}

	// JWT
	if v, ok := getEnvStr("JWT_SECRET"); ok {
		c.JWT.Secret = v
	}
	if v, ok := getEnvDur("JWT_TTL"); ok {
		c.JWT.TTL = v
	}
	if v, ok := getEnvStr("JWT_ISSUER"); ok {
		c.JWT.Issuer = v
	}

	// PROVIDERS
	if v, ok := getEnvStr("KAKAO_PROFILE_URL"); ok {
		c.Providers.Kakao.ProfileURL = v
	}
	if v, ok := getEnvDur("KAKAO_TIMEOUT"); ok {
		c.Providers.Kakao.Timeout = v
	}
	if v, ok := getEnvCSV("GOOGLE_CLIENT_ID"); ok {
		c.Providers.Google.ClientIDs = v
	}
	if v, ok := getEnvCSV("APPLE_CLIENT_ID"); ok {
		c.Providers.Apple.ClientIDs = v
	}
	if v, ok := getEnvDur("JWKS_TTL"); ok {
		c.Providers.JWKSTTL = v
	}

	// NICK
	if v, ok := getEnvStr("NICK_BANNED_WORDS_PATH"); ok {
		c.Nick.BannedWordsPath = v
	}

	// LOG / METRICS / FLAGS
	if v, ok := getEnvStr("LOG_LEVEL"); ok {
		c.Log.Level = v
	}
	if v, ok := getEnvBool("METRICS_ENABLED"); ok {
		c.Metrics.Enabled = v
	}
	if v, ok := getEnvBool("FLAGS_MIGRATE"); ok {
		c.Flags.Migrate = v
	}
}

// Validate chequea los valores críticos. Un secreto JWT vacío es error de arranque.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.JWT.Secret) == "" {
		errs = append(errs, errors.New("jwt.secret (JWT_SECRET) is required"))
	}
	if c.JWT.TTL <= 0 {
		errs = append(errs, errors.New("jwt.ttl must be positive"))
	}
	switch c.Storage.Driver {
	case "memory":
	case "postgres", "mysql":
		if strings.TrimSpace(c.Storage.DSN) == "" {
			errs = append(errs, fmt.Errorf("storage.dsn is required for driver %q", c.Storage.Driver))
		}
	case "mongo":
		if strings.TrimSpace(c.Storage.Mongo.URI) == "" && strings.TrimSpace(c.Storage.DSN) == "" {
			errs = append(errs, errors.New("storage.mongo.uri is required for driver \"mongo\""))
		}
	default:
		errs = append(errs, fmt.Errorf("storage.driver %q not supported", c.Storage.Driver))
	}
	switch c.Cache.Kind {
	case "memory":
	case "redis":
		if strings.TrimSpace(c.Cache.Redis.Addr) == "" {
			errs = append(errs, errors.New("cache.redis.addr is required for kind \"redis\""))
		}
	default:
		errs = append(errs, fmt.Errorf("cache.kind %q not supported", c.Cache.Kind))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}
