package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Store drivers accepted by STORE_DRIVER.
const (
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Port          int    `mapstructure:"PORT"`
	FrontendURL   string `mapstructure:"FRONTEND_URL"`
	StoreDriver   string `mapstructure:"STORE_DRIVER"`
	DataDir       string `mapstructure:"DATA_DIR"`
	SQLitePath    string `mapstructure:"SQLITE_PATH"`
	DatabaseURL   string `mapstructure:"DATABASE_URL"`
	SiteDir       string `mapstructure:"SITE_DIR"`
	LogLevel      string `mapstructure:"LOG_LEVEL"`
	AuthRequired  bool   `mapstructure:"AUTH_REQUIRED"`
	SessionSecret string `mapstructure:"SESSION_SECRET"`
	// ContactRateLimit is submissions per minute per client; 0 disables it.
	ContactRateLimit int `mapstructure:"CONTACT_RATE_LIMIT"`
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Load reads .env (when present) into the environment, then resolves every
// setting from the environment with defaults.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	v.SetDefault("PORT", 8080)
	v.SetDefault("FRONTEND_URL", "*")
	v.SetDefault("STORE_DRIVER", DriverFile)
	v.SetDefault("DATA_DIR", "./contacts")
	v.SetDefault("SQLITE_PATH", "contacts.db")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("SITE_DIR", "./public")
	v.SetDefault("LOG_LEVEL", "INFO")
	v.SetDefault("AUTH_REQUIRED", false)
	v.SetDefault("SESSION_SECRET", "")
	v.SetDefault("CONTACT_RATE_LIMIT", 5)
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	cfg.StoreDriver = strings.ToLower(strings.TrimSpace(cfg.StoreDriver))
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	var errs []error
	switch c.StoreDriver {
	case DriverFile, DriverSQLite:
	case DriverPostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for the postgres store"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver))
	}
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid PORT %d", c.Port))
	}
	if c.AuthRequired && c.SessionSecret == "" {
		errs = append(errs, errors.New("SESSION_SECRET is required when AUTH_REQUIRED=true"))
	}
	if c.ContactRateLimit < 0 {
		errs = append(errs, fmt.Errorf("invalid CONTACT_RATE_LIMIT %d", c.ContactRateLimit))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
