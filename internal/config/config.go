// Package config provides application configuration loading from environment
// variables and .env files. It uses viper for flexible configuration
// management with sensible defaults.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all server configuration loaded from environment variables or
// a .env file. Priority: environment variables > .env file > defaults.
type Config struct {
	AppEnv          string        // Application environment (dev, staging, prod)
	HTTPAddr        string        // HTTP server bind address (e.g., ":8000")
	MetricsAddr     string        // Metrics server bind address
	DefaultMood     string        // Mood the store starts with
	SSEHeartbeat    time.Duration // Interval between SSE keep-alive comments
	RateLimitPerIP  int           // PUT /mood requests allowed per IP per minute
	WebhookURLs     []string      // Optional webhook targets notified on every update
	WebhookSecret   string        // HMAC secret for webhook signatures (optional)
	ShutdownTimeout time.Duration // Grace period for in-flight requests on shutdown
}

// Load reads configuration from environment variables and a .env file (if
// present). Environment variables take precedence over .env file values.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env") // Optional; silently ignored if file doesn't exist
	_ = v.ReadInConfig()    // Ignore error - .env is optional
	v.AutomaticEnv()

	setConfigDefaults(v)

	return &Config{
		AppEnv:          v.GetString("APP_ENV"),
		HTTPAddr:        v.GetString("APP_HTTP_ADDR"),
		MetricsAddr:     v.GetString("METRICS_ADDR"),
		DefaultMood:     v.GetString("DEFAULT_MOOD"),
		SSEHeartbeat:    time.Duration(v.GetInt("SSE_HEARTBEAT_SECONDS")) * time.Second,
		RateLimitPerIP:  v.GetInt("RATE_LIMIT_PER_IP"),
		WebhookURLs:     splitURLs(v.GetString("MOOD_WEBHOOK_URLS")),
		WebhookSecret:   v.GetString("WEBHOOK_SECRET"),
		ShutdownTimeout: time.Duration(v.GetInt("SHUTDOWN_TIMEOUT_SECONDS")) * time.Second,
	}, nil
}

func setConfigDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "dev")
	v.SetDefault("APP_HTTP_ADDR", ":8000")
	v.SetDefault("METRICS_ADDR", ":9090")
	v.SetDefault("DEFAULT_MOOD", "neutral")
	v.SetDefault("SSE_HEARTBEAT_SECONDS", 25)
	v.SetDefault("RATE_LIMIT_PER_IP", 100)
	v.SetDefault("MOOD_WEBHOOK_URLS", "")
	v.SetDefault("WEBHOOK_SECRET", "")
	v.SetDefault("SHUTDOWN_TIMEOUT_SECONDS", 5)
}

func splitURLs(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	urls := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			urls = append(urls, p)
		}
	}
	return urls
}

// ValidationError represents a configuration validation error with details
// about what failed.
type ValidationError struct {
	Field   string // Name of the configuration field
	Message string // Human-readable error message
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("config validation failed [%s]: %s", e.Field, e.Message)
}

// Validate checks that the configuration is usable. Intended to be called at
// startup to fail fast on misconfiguration.
func (c *Config) Validate() error {
	if c.HTTPAddr == "" {
		return ValidationError{
			Field:   "APP_HTTP_ADDR",
			Message: "HTTP server address cannot be empty",
		}
	}
	if c.MetricsAddr == "" {
		return ValidationError{
			Field:   "METRICS_ADDR",
			Message: "metrics server address cannot be empty",
		}
	}
	if c.DefaultMood == "" {
		return ValidationError{
			Field:   "DEFAULT_MOOD",
			Message: "default mood cannot be empty",
		}
	}
	if c.SSEHeartbeat <= 0 {
		return ValidationError{
			Field:   "SSE_HEARTBEAT_SECONDS",
			Message: "heartbeat interval must be positive",
		}
	}
	if c.RateLimitPerIP <= 0 {
		return ValidationError{
			Field:   "RATE_LIMIT_PER_IP",
			Message: "rate limit must be positive",
		}
	}
	for _, u := range c.WebhookURLs {
		if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
			return ValidationError{
				Field:   "MOOD_WEBHOOK_URLS",
				Message: fmt.Sprintf("webhook URL %q must start with http:// or https://", u),
			}
		}
	}
	return nil
}
