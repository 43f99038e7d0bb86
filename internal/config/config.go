package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const devJWTSecret = "dev-secret-change-me"

// Config holds all application configuration.
type Config struct {
	Database DatabaseConfig
	HTTP     HTTPConfig
	GRPC     GRPCConfig
	Auth     AuthConfig
	Mail     MailConfig
	Log      LogConfig
	Feedback FeedbackConfig
}

// DatabaseConfig contains database-related settings.
type DatabaseConfig struct {
	Path string `envconfig:"DB_PATH" default:"feedback.db"` // SQLite database file path
}

// HTTPConfig contains REST API settings.
type HTTPConfig struct {
	Address     string   `envconfig:"HTTP_ADDRESS" default:":8000"`
	CORSOrigins []string `envconfig:"CORS_ORIGINS" default:"http://localhost:5173"`
}

// GRPCConfig contains gRPC server settings.
type GRPCConfig struct {
	Address string `envconfig:"GRPC_ADDRESS" default:":50051"` // e.g. ":50051"
}

// AuthConfig contains authentication settings.
type AuthConfig struct {
	JWTSecret      string        `envconfig:"JWT_SECRET"`
	AccessTokenTTL time.Duration `envconfig:"ACCESS_TOKEN_TTL" default:"60m"`
}

// MailConfig contains outgoing email settings. An empty Host disables SMTP delivery.
type MailConfig struct {
	Host     string        `envconfig:"SMTP_HOST"`
	Port     int           `envconfig:"SMTP_PORT" default:"587"`
	User     string        `envconfig:"SMTP_USER"`
	Password string        `envconfig:"SMTP_PASSWORD"`
	From     string        `envconfig:"SMTP_FROM" default:"noreply@feedback.local"`
	Timeout  time.Duration `envconfig:"EMAIL_TIMEOUT" default:"15s"`
}

// LogConfig selects the log level and output format (json or console).
type LogConfig struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Format string `envconfig:"LOG_FORMAT" default:"json"`
}

// FeedbackConfig toggles optional business rules.
type FeedbackConfig struct {
	RequireTeamMember bool `envconfig:"FEEDBACK_REQUIRE_TEAM_MEMBER" default:"false"`
}

func process() (*Config, error) {
	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// Load loads configuration from environment variables with sensible defaults.
// JWT_SECRET is mandatory.
func Load() (*Config, error) {
	cfg, err := process()
	if err != nil {
		return nil, err
	}
	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is not set; required for production")
	}
	return cfg, nil
}

// LoadWithDefaults is like Load but uses a fixed JWT secret when none is set.
// WARNING: Only use in development! Use Load() in production.
func LoadWithDefaults() (*Config, error) {
	cfg, err := process()
	if err != nil {
		return nil, err
	}
	if cfg.Auth.JWTSecret == "" {
		cfg.Auth.JWTSecret = devJWTSecret
	}
	return cfg, nil
}

// UsesDevSecret reports whether the built-in development secret is in effect.
func (c *Config) UsesDevSecret() bool {
	return c.Auth.JWTSecret == devJWTSecret
}

// String returns a string representation of the config (sensitive values are masked).
func (c *Config) String() string {
	smtp := "disabled"
	if c.Mail.Host != "" {
		smtp = fmt.Sprintf("%s:%d", c.Mail.Host, c.Mail.Port)
	}
	return fmt.Sprintf("Config{DB: %s, HTTP: %s, gRPC: %s, SMTP: %s, TokenTTL: %s, Auth: *** (masked) ***}",
		c.Database.Path, c.HTTP.Address, c.GRPC.Address, smtp, c.Auth.AccessTokenTTL)
}
