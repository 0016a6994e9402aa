package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// Config is the persistent application configuration
type Config struct {
	// Remote catalog service
	API APIConfig `json:"api"`

	// UI Preferences
	UI UIConfig `json:"ui"`
}

// APIConfig holds the settings for the remote catalog service
type APIConfig struct {
	BaseURL        string `json:"base_url"`
	TimeoutSeconds int    `json:"timeout_seconds"`
	DebounceMs     int    `json:"debounce_ms"`
	// Client-side request throttle. Zero disables throttling.
	RequestsPerSecond float64 `json:"requests_per_second"`
}

// UIConfig holds UI preferences
type UIConfig struct {
	Theme       string `json:"theme"`
	DensityMode string `json:"density_mode"` // "comfortable" or "compact"
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:           "http://localhost:8000",
			TimeoutSeconds:    30,
			DebounceMs:        350,
			RequestsPerSecond: 10,
		},
		UI: UIConfig{
			Theme:       "dark",
			DensityMode: "comfortable",
		},
	}
}

// AppDir returns the per-user data directory
func AppDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".pendash")
}

// ConfigPath returns the path to the config file
func ConfigPath() string {
	return filepath.Join(AppDir(), "config.json")
}

// TokenPath returns the path to the persisted session token
func TokenPath() string {
	return filepath.Join(AppDir(), "token")
}

// Load reads config from disk, or returns defaults
func Load() (*Config, error) {
	path := ConfigPath()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			cfg.ApplyEnv()
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), nil
	}

	cfg.fillZeroes()
	cfg.ApplyEnv()
	return &cfg, nil
}

// Save writes config to disk
func (c *Config) Save() error {
	path := ConfigPath()

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}

// ApplyEnv overrides config values from environment variables
func (c *Config) ApplyEnv() {
	if base := os.Getenv("PENDASH_API_BASE"); base != "" {
		c.API.BaseURL = base
	}
}

// fillZeroes backfills defaults into fields a hand-edited config left empty
func (c *Config) fillZeroes() {
	def := DefaultConfig()
	if c.API.BaseURL == "" {
		c.API.BaseURL = def.API.BaseURL
	}
	if c.API.TimeoutSeconds <= 0 {
		c.API.TimeoutSeconds = def.API.TimeoutSeconds
	}
	if c.API.DebounceMs <= 0 {
		c.API.DebounceMs = def.API.DebounceMs
	}
}

// Timeout returns the request timeout as a duration
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}

// Debounce returns the search debounce window as a duration
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.API.DebounceMs) * time.Millisecond
}
