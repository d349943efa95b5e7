package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config wraps the process-wide settings. Values come from the environment
// (optionally seeded from .env by godotenv in main).
type Config struct {
	v *viper.Viper
}

// Load builds a Config over the current environment.
func Load() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("DB_HOST", "127.0.0.1")
	v.SetDefault("DB_PORT", "3306")
	v.SetDefault("JWT_EXPIRE_HOURS", 24)
	v.SetDefault("GEMINI_MODEL", "gemini-2.5-flash")
	v.SetDefault("GEMINI_API_VERSION", "v1")
	v.SetDefault("GEMINI_TIMEOUT", "60s")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	return &Config{v: v}
}

func (c *Config) ServerPort() string { return c.v.GetString("SERVER_PORT") }

func (c *Config) GinMode() string { return strings.ToLower(c.v.GetString("GIN_MODE")) }

func (c *Config) IsProduction() bool {
	return strings.ToLower(c.v.GetString("ENVIRONMENT")) == "production"
}

func (c *Config) DebugSQL() bool { return c.v.GetBool("DEBUG_SQL") }

// Database returns the connection settings for the MySQL pool.
func (c *Config) Database() DBSettings {
	return DBSettings{
		Host:     c.v.GetString("DB_HOST"),
		Port:     c.v.GetString("DB_PORT"),
		Database: c.v.GetString("DB_DATABASE"),
		Username: c.v.GetString("DB_USERNAME"),
		Password: c.v.GetString("DB_PASSWORD"),
	}
}

func (c *Config) JWTSecret() []byte { return []byte(c.v.GetString("JWT_SECRET")) }

func (c *Config) JWTLifetime() time.Duration {
	hours := c.v.GetInt("JWT_EXPIRE_HOURS")
	if hours <= 0 {
		hours = 24
	}
	return time.Duration(hours) * time.Hour
}

// GeminiAPIKey is read on every call so a key rotated in the environment is
// picked up without a restart.
func (c *Config) GeminiAPIKey() string {
	return strings.TrimSpace(c.v.GetString("GEMINI_API_KEY"))
}

// Gemini returns the non-secret generation settings.
func (c *Config) Gemini() GeminiSettings {
	timeout := c.v.GetDuration("GEMINI_TIMEOUT")
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return GeminiSettings{
		Model:      c.v.GetString("GEMINI_MODEL"),
		BaseURL:    c.v.GetString("GEMINI_BASE_URL"),
		APIVersion: c.v.GetString("GEMINI_API_VERSION"),
		Timeout:    timeout,
	}
}

func (c *Config) SMTP() SMTPSettings {
	return SMTPSettings{
		Host:          c.v.GetString("SMTP_HOST"),
		Port:          c.v.GetInt("SMTP_PORT"),
		User:          c.v.GetString("SMTP_USER"),
		Pass:          c.v.GetString("SMTP_PASS"),
		From:          c.v.GetString("SMTP_FROM"),
		SkipTLSVerify: c.v.GetString("SMTP_SKIP_TLS_VERIFY") == "1",
	}
}

func (c *Config) MonitorToken() string { return c.v.GetString("MONITOR_TOKEN") }

// AllowedOrigins splits CORS_ALLOWED_ORIGINS on commas.
func (c *Config) AllowedOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

type GeminiSettings struct {
	Model      string
	BaseURL    string
	APIVersion string
	Timeout    time.Duration
}

type SMTPSettings struct {
	Host          string
	Port          int
	User          string
	Pass          string
	From          string // e.g. "PMO Reviews <no-reply@your.org>"
	SkipTLSVerify bool
}
