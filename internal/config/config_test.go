package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.HTTPAddr != ":8000" {
		t.Errorf("Expected default HTTP addr ':8000', got %q", cfg.HTTPAddr)
	}
	if cfg.DefaultMood != "neutral" {
		t.Errorf("Expected default mood 'neutral', got %q", cfg.DefaultMood)
	}
	if cfg.SSEHeartbeat != 25*time.Second {
		t.Errorf("Expected default heartbeat 25s, got %v", cfg.SSEHeartbeat)
	}
	if len(cfg.WebhookURLs) != 0 {
		t.Errorf("Expected no webhook URLs by default, got %v", cfg.WebhookURLs)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("APP_HTTP_ADDR", ":9999")
	t.Setenv("DEFAULT_MOOD", "curious")
	t.Setenv("MOOD_WEBHOOK_URLS", "http://a.example/hook, http://b.example/hook ,")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.HTTPAddr != ":9999" {
		t.Errorf("Expected HTTP addr ':9999', got %q", cfg.HTTPAddr)
	}
	if cfg.DefaultMood != "curious" {
		t.Errorf("Expected default mood 'curious', got %q", cfg.DefaultMood)
	}
	want := []string{"http://a.example/hook", "http://b.example/hook"}
	if len(cfg.WebhookURLs) != len(want) {
		t.Fatalf("Expected %d webhook URLs, got %v", len(want), cfg.WebhookURLs)
	}
	for i := range want {
		if cfg.WebhookURLs[i] != want[i] {
			t.Errorf("Webhook URL %d: got %q, want %q", i, cfg.WebhookURLs[i], want[i])
		}
	}
}

func TestValidate(t *testing.T) {
	valid := &Config{
		AppEnv:         "dev",
		HTTPAddr:       ":8000",
		MetricsAddr:    ":9090",
		DefaultMood:    "neutral",
		SSEHeartbeat:   25 * time.Second,
		RateLimitPerIP: 100,
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("Expected valid config to pass, got %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"empty http addr", func(c *Config) { c.HTTPAddr = "" }, "APP_HTTP_ADDR"},
		{"empty metrics addr", func(c *Config) { c.MetricsAddr = "" }, "METRICS_ADDR"},
		{"empty default mood", func(c *Config) { c.DefaultMood = "" }, "DEFAULT_MOOD"},
		{"zero heartbeat", func(c *Config) { c.SSEHeartbeat = 0 }, "SSE_HEARTBEAT_SECONDS"},
		{"zero rate limit", func(c *Config) { c.RateLimitPerIP = 0 }, "RATE_LIMIT_PER_IP"},
		{"bad webhook scheme", func(c *Config) { c.WebhookURLs = []string{"ftp://x"} }, "MOOD_WEBHOOK_URLS"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := *valid
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Expected validation error, got nil")
			}
			ve, ok := err.(ValidationError)
			if !ok {
				t.Fatalf("Expected ValidationError, got %T", err)
			}
			if ve.Field != tc.field {
				t.Errorf("Expected field %q, got %q", tc.field, ve.Field)
			}
		})
	}
}
