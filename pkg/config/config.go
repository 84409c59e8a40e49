package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	DefaultExtension       = ".ovpn"
	DefaultBufferSize      = 1024
	DefaultLogLevel        = "info"
	DefaultWatchDebounceMS = 500
	DefaultColorTheme      = "auto"
)

type Config struct {
	// Assets whose name ends with Extension are unpacked
	Extension string `yaml:"extension"`

	// Destination directory. Empty means the application files directory.
	Destination string `yaml:"destination"`

	// Source directory. Empty means the assets bundled into the binary.
	Source string `yaml:"source"`

	// Copy buffer size in bytes
	BufferSize int `yaml:"buffer_size"`

	// Skip rewriting assets whose destination copy is already identical
	SkipUnchanged bool `yaml:"skip_unchanged"`

	// Logging
	LogLevel       string `yaml:"log_level"`
	LogDevelopment bool   `yaml:"log_development"`

	// Watch
	WatchDebounceMS int `yaml:"watch_debounce_ms"`

	// UI Settings
	ColorTheme string `yaml:"color_theme"`
}

// DefaultConfig returns a Config struct with default values
func DefaultConfig() *Config {
	return &Config{
		Extension:       DefaultExtension,
		Destination:     "",
		Source:          "",
		BufferSize:      DefaultBufferSize,
		SkipUnchanged:   true,
		LogLevel:        DefaultLogLevel,
		LogDevelopment:  false,
		WatchDebounceMS: DefaultWatchDebounceMS,
		ColorTheme:      DefaultColorTheme,
	}
}

// Load reads configuration from the specified file path
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		// A missing file means defaults
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyDefaults()

	if !isValidLogLevel(cfg.LogLevel) {
		cfg.LogLevel = DefaultLogLevel
	}

	if !isValidColorTheme(cfg.ColorTheme) {
		cfg.ColorTheme = DefaultColorTheme
	}

	return cfg, nil
}

// applyDefaults fills in values that must never be zero.
// An explicitly empty extension is kept: it matches every asset.
func (c *Config) applyDefaults() {
	if c.BufferSize <= 0 {
		c.BufferSize = DefaultBufferSize
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.WatchDebounceMS <= 0 {
		c.WatchDebounceMS = DefaultWatchDebounceMS
	}
}

// Save persists the current configuration to the specified file path
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ResolveDestination returns the configured destination or fallback
func (c *Config) ResolveDestination(fallback string) string {
	if c.Destination == "" {
		return fallback
	}
	return expandHome(c.Destination)
}

// ResolveSource returns the configured source directory, or "" for the bundle
func (c *Config) ResolveSource() string {
	return expandHome(c.Source)
}

func expandHome(path string) string {
	if len(path) < 2 || path[:2] != "~/" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

func isValidLogLevel(level string) bool {
	validLevels := []string{"debug", "info", "warn", "warning", "error"}
	for _, valid := range validLevels {
		if level == valid {
			return true
		}
	}
	return false
}

func isValidColorTheme(theme string) bool {
	switch theme {
	case "auto", "dark", "light":
		return true
	}
	return false
}
