package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

const (
	ProviderFirebase = "firebase"
	ProviderLocal    = "local"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Mongo    MongoConfig
	Redis    RedisConfig
	Identity IdentityConfig
	Session  SessionConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=account_portal"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

type IdentityConfig struct {
	// Provider selects the token verifier: "firebase" or "local".
	Provider        string `env:"IDENTITY_PROVIDER, default=firebase"`
	CredentialsFile string `env:"GOOGLE_APPLICATION_CREDENTIALS"`
	ProjectID       string `env:"FIREBASE_PROJECT_ID"`
	CheckRevoked    bool   `env:"FIREBASE_CHECK_REVOKED, default=false"`
	LocalSecret     string `env:"LOCAL_JWT_SECRET"`

	// MaxRetries is the total number of verification attempts for tokens
	// rejected as used too early.
	MaxRetries int           `env:"TOKEN_VERIFY_MAX_RETRIES, default=3"`
	BaseDelay  time.Duration `env:"TOKEN_VERIFY_BASE_DELAY,  default=250ms"`
}

type SessionConfig struct {
	CookieName string        `env:"SESSION_COOKIE_NAME,   default=sessionid"`
	TTL        time.Duration `env:"SESSION_TTL,           default=336h"`
	Secure     bool          `env:"SESSION_COOKIE_SECURE, default=false"`
}

// Load reads a .env file when present, then decodes the environment.
func Load(ctx context.Context) (*Config, error) {
	_ = godotenv.Load()
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith decodes configuration from l and validates it.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate enforces the settings the process cannot start without.
func (c *Config) Validate() error {
	var errs []error

	switch c.Identity.Provider {
	case ProviderFirebase:
		if c.Identity.CredentialsFile == "" {
			errs = append(errs, errors.New("GOOGLE_APPLICATION_CREDENTIALS is not set"))
		}
	case ProviderLocal:
		if c.Identity.LocalSecret == "" {
			errs = append(errs, errors.New("LOCAL_JWT_SECRET is required for the local identity provider"))
		}
	default:
		errs = append(errs, fmt.Errorf("IDENTITY_PROVIDER must be %q or %q, got %q", ProviderFirebase, ProviderLocal, c.Identity.Provider))
	}

	if c.Identity.MaxRetries < 1 {
		errs = append(errs, errors.New("TOKEN_VERIFY_MAX_RETRIES must be at least 1"))
	}
	if c.Identity.BaseDelay <= 0 {
		errs = append(errs, errors.New("TOKEN_VERIFY_BASE_DELAY must be positive"))
	}
	if strings.TrimSpace(c.Session.CookieName) == "" {
		errs = append(errs, errors.New("SESSION_COOKIE_NAME must not be empty"))
	}
	if c.Session.TTL <= 0 {
		errs = append(errs, errors.New("SESSION_TTL must be positive"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

// IsProduction reports whether the service runs with production defaults.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}
