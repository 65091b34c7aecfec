package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultBaseURL is used when no explicit server address is configured.
const DefaultBaseURL = "http://localhost:8000"

// Config represents the moodctl configuration file
type Config struct {
	BaseURL string `yaml:"base_url"`
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".moodctl", "config.yaml"), nil
}

// LoadConfig loads the configuration from file
func LoadConfig() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			// Return empty config if file doesn't exist
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// SaveConfig saves the configuration to file
func SaveConfig(cfg *Config) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}

	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ResolveBaseURL returns the effective server address.
// Priority: command flag > MOODRELAY_BASE_URL environment variable >
// config file > built-in default.
func ResolveBaseURL(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}

	if envValue := os.Getenv("MOODRELAY_BASE_URL"); envValue != "" {
		return envValue, nil
	}

	cfg, err := LoadConfig()
	if err != nil {
		return "", err
	}
	if cfg.BaseURL != "" {
		return cfg.BaseURL, nil
	}

	return DefaultBaseURL, nil
}

// InitConfig creates a default config file
func InitConfig() error {
	return SaveConfig(&Config{BaseURL: DefaultBaseURL})
}
