package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// AppConfig holds the application configuration
type AppConfig struct {
	Port           string  `mapstructure:"PORT"`
	Env            string  `mapstructure:"ENV"`
	LogLevel       string  `mapstructure:"LOG_LEVEL"`
	DBURL          string  `mapstructure:"DB_URL"`
	RedisURL       string  `mapstructure:"REDIS_URL"`
	SessionSecret  string  `mapstructure:"SESSION_SECRET"`
	SymmetricKey   string  `mapstructure:"SYMMETRIC_KEY"`
	AdminEmail     string  `mapstructure:"ADMIN_EMAIL"`
	AdminPassword  string  `mapstructure:"ADMIN_PASSWORD"`
	RateLimitRPS   float64 `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst int     `mapstructure:"RATE_LIMIT_BURST"`
	SMTPHost       string  `mapstructure:"SMTP_HOST"`
	SMTPPort       int     `mapstructure:"SMTP_PORT"`
	SMTPUser       string  `mapstructure:"SMTP_USER"`
	SMTPPass       string  `mapstructure:"SMTP_PASS"`
	SMTPFrom       string  `mapstructure:"SMTP_FROM"`
	HardenedAccess bool    `mapstructure:"HARDENED_ACCESS"`

	CORSOrigins []string `mapstructure:"-"`
}

var envKeys = []string{
	"PORT", "ENV", "LOG_LEVEL", "DB_URL", "REDIS_URL", "SESSION_SECRET", "SYMMETRIC_KEY",
	"ADMIN_EMAIL", "ADMIN_PASSWORD", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST", "CORS_ORIGINS",
	"SMTP_HOST", "SMTP_PORT", "SMTP_USER", "SMTP_PASS", "SMTP_FROM", "HARDENED_ACCESS",
}

// Load reads the configuration from the environment, after loading a .env file when one exists.
// Only DB_URL is required here; Validate checks what the server needs on top.
func Load() (*AppConfig, error) {
	// A missing .env file is fine, the environment may already be set.
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8930")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("ADMIN_EMAIL", "admin@hms.com")
	v.SetDefault("RATE_LIMIT_RPS", 15)
	v.SetDefault("RATE_LIMIT_BURST", 30)
	v.SetDefault("CORS_ORIGINS", "")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("HARDENED_ACCESS", false)

	// Bind env vars explicitly so Unmarshal picks them up
	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind %s: %w", key, err)
		}
	}

	cfg := &AppConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.CORSOrigins = splitList(v.GetString("CORS_ORIGINS"))

	if cfg.DBURL == "" {
		return nil, errors.New("missing DB_URL environment variable")
	}
	return cfg, nil
}

// Validate checks the settings needed to serve requests.
func (c *AppConfig) Validate() error {
	if c.RedisURL == "" {
		return errors.New("missing REDIS_URL environment variable")
	}
	if len(c.SessionSecret) < 32 {
		return fmt.Errorf("SESSION_SECRET must be at least 32 bytes, got %d", len(c.SessionSecret))
	}
	if len(c.SymmetricKey) != 32 {
		return fmt.Errorf("SYMMETRIC_KEY must be exactly 32 bytes, got %d", len(c.SymmetricKey))
	}
	return nil
}

func (c *AppConfig) IsDev() bool {
	return c.Env == "development"
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
