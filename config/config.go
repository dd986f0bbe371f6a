package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// CMSConfig holds the connection settings for the hosted document store.
type CMSConfig struct {
	ServerURL   string        `env:"CMS_SERVER_URL"`
	AppID       string        `env:"CMS_APP_ID"`
	MasterKey   string        `env:"CMS_MASTER_KEY"`
	SiteID      string        `env:"CMS_SITE_ID"`
	ClassPrefix string        `env:"CMS_CLASS_PREFIX"`
	Timeout     time.Duration `env:"CMS_TIMEOUT" envDefault:"10s"`
}

// EmailConfig holds mailer settings. Provider is "ses" or "noop".
type EmailConfig struct {
	Provider           string `env:"EMAIL_PROVIDER" envDefault:"noop"`
	FromAddress        string `env:"EMAIL_FROM_ADDRESS"`
	FromName           string `env:"EMAIL_FROM_NAME"`
	AWSRegion          string `env:"AWS_REGION" envDefault:"us-east-1"`
	AWSAccessKeyID     string `env:"AWS_ACCESS_KEY_ID"`
	AWSSecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY"`
	InsecureSkipVerify bool   `env:"SES_INSECURE_SKIP_VERIFY"`
}

// Config holds all configuration for the application
type Config struct {
	Environment     string        `env:"GO_ENV" envDefault:"development"`
	Port            string        `env:"PORT" envDefault:"8080"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// DBUrl is optional. When empty, per-session state lives in memory.
	DBUrl string `env:"DATABASE_URL"`

	CMS   CMSConfig
	Email EmailConfig

	CatalogRefresh string `env:"CATALOG_REFRESH" envDefault:"@every 1m"`

	JWTSecret  string        `env:"JWT_SECRET"`
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"24h"`

	AdminEmail        string `env:"ADMIN_EMAIL"`
	AdminPasswordHash string `env:"ADMIN_PASSWORD_HASH"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`

	DefaultTimezone string `env:"DEFAULT_TIMEZONE" envDefault:"America/Los_Angeles"`
	SourceTimezone  string `env:"SOURCE_TIMEZONE" envDefault:"America/Los_Angeles"`
}

// Load loads configuration from environment variables
// It attempts to load from .env file if not in production
func Load() (*Config, error) {
	if os.Getenv("GO_ENV") != "production" {
		if err := godotenv.Load(); err != nil {
			log.Printf("Warning: .env file not found or couldn't be loaded: %v", err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var errs []error
	if strings.TrimSpace(c.CMS.ServerURL) == "" {
		errs = append(errs, errors.New("CMS_SERVER_URL is required"))
	}
	if strings.TrimSpace(c.CMS.AppID) == "" {
		errs = append(errs, errors.New("CMS_APP_ID is required"))
	}
	if c.JWTSecret == "" {
		if c.Environment == "production" {
			errs = append(errs, errors.New("JWT_SECRET is required in production"))
		} else {
			c.JWTSecret = "dev-secret"
		}
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, errors.New("SESSION_TTL must be positive"))
	}
	if _, err := time.LoadLocation(c.DefaultTimezone); err != nil {
		errs = append(errs, fmt.Errorf("DEFAULT_TIMEZONE: %w", err))
	}
	if _, err := time.LoadLocation(c.SourceTimezone); err != nil {
		errs = append(errs, fmt.Errorf("SOURCE_TIMEZONE: %w", err))
	}
	return errors.Join(errs...)
}
