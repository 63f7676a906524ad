package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"

	"github.com/99minutos/account-service/internal/core/auth"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// StoreTimeout bounds every lifecycle lookup against the account store.
	StoreTimeout time.Duration `env:"STORE_TIMEOUT, default=3s"`

	Auth  AuthConfig
	Mongo MongoConfig
	Redis RedisConfig
	Audit AuditConfig
}

type AuthConfig struct {
	JWTSecret   string        `env:"JWT_SECRET, required"`
	TokenTTL    time.Duration `env:"TOKEN_TTL,    default=1h"`
	TokenIssuer string        `env:"TOKEN_ISSUER, default=account-service"`
	TokenLeeway time.Duration `env:"TOKEN_LEEWAY, default=0s"`
	BcryptCost  int           `env:"BCRYPT_COST,  default=10"`

	LoginMaxAttempts   int           `env:"LOGIN_MAX_ATTEMPTS,   default=5"`
	LoginLockoutWindow time.Duration `env:"LOGIN_LOCKOUT_WINDOW, default=15m"`
}

type MongoConfig struct {
	URI         string        `env:"MONGO_URI,           default=mongodb://localhost:27017"`
	Database    string        `env:"MONGO_DB,            default=account_service"`
	Timeout     time.Duration `env:"MONGO_TIMEOUT,       default=10s"`
	MaxPoolSize uint64        `env:"MONGO_MAX_POOL_SIZE, default=50"`
}

type RedisConfig struct {
	Addr     string        `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB,       default=0"`
	Timeout  time.Duration `env:"REDIS_TIMEOUT,  default=5s"`
}

type AuditConfig struct {
	Workers    int `env:"AUDIT_WORKERS, default=4"`
	BufferSize int `env:"AUDIT_BUFFER,  default=256"`
}

// TokenConfig builds the immutable signing configuration handed to the
// token service at startup.
func (a AuthConfig) TokenConfig() auth.TokenConfig {
	return auth.TokenConfig{
		Secret: []byte(a.JWTSecret),
		TTL:    a.TokenTTL,
		Issuer: a.TokenIssuer,
		Leeway: a.TokenLeeway,
	}
}

// IsDevelopment reports whether the service runs with developer defaults.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith reads configuration through l. Tests pass envconfig.MapLookuper.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.Auth.TokenTTL <= 0:
		return fmt.Errorf("TOKEN_TTL must be positive, got %s", c.Auth.TokenTTL)
	case c.Auth.TokenLeeway < 0:
		return fmt.Errorf("TOKEN_LEEWAY must not be negative, got %s", c.Auth.TokenLeeway)
	case c.StoreTimeout <= 0:
		return fmt.Errorf("STORE_TIMEOUT must be positive, got %s", c.StoreTimeout)
	case c.Auth.LoginMaxAttempts < 1:
		return fmt.Errorf("LOGIN_MAX_ATTEMPTS must be at least 1, got %d", c.Auth.LoginMaxAttempts)
	case c.Audit.Workers < 1:
		return fmt.Errorf("AUDIT_WORKERS must be at least 1, got %d", c.Audit.Workers)
	}
	return nil
}
