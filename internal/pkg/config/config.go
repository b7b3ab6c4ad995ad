package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"

	"github.com/edublog/edublog-client/internal/core/domain"
)

const (
	SessionMemory = "memory"
	SessionRedis  = "redis"
)

type Config struct {
	APIURL   string `env:"API_URL, required"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// RoleHeaderPolicy is "legacy" (hardcoded roles on post reads) or "session".
	RoleHeaderPolicy string        `env:"ROLE_HEADER_POLICY, default=legacy"`
	SearchDebounce   time.Duration `env:"SEARCH_DEBOUNCE,    default=350ms"`
	HTTPTimeout      time.Duration `env:"HTTP_TIMEOUT,       default=0s"`

	Session SessionConfig
}

type SessionConfig struct {
	Backend   string `env:"SESSION_BACKEND,  default=memory"`
	RedisAddr string `env:"REDIS_ADDR,       default=localhost:6379"`
	RedisDB   int    `env:"REDIS_DB,         default=0"`
	KeyPrefix string `env:"REDIS_KEY_PREFIX, default=edublog:"`
}

// IsProduction reports whether logs should be emitted as plain JSON.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads configuration from the environment. A missing API_URL, or any
// other invalid value, is reported as domain.ErrConfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrConfig, err)
	}
	if cfg.SearchDebounce <= 0 {
		return nil, fmt.Errorf("%w: SEARCH_DEBOUNCE must be positive, got %s", domain.ErrConfig, cfg.SearchDebounce)
	}
	switch cfg.Session.Backend {
	case SessionMemory, SessionRedis:
	default:
		return nil, fmt.Errorf("%w: unknown SESSION_BACKEND %q", domain.ErrConfig, cfg.Session.Backend)
	}
	return &cfg, nil
}

// MustLoad is Load for program start-up: configuration errors are fatal.
func MustLoad() *Config {
	cfg, err := Load(context.Background())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}
