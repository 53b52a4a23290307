package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	// Start with defaults
	cfg := Default()

	// Try to load from file (explicit path takes priority)
	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	// Apply CLI flags (highest priority)
	applyFlags(cfg)
	cfg.normalize()

	return cfg, nil
}

// normalize repairs values that would make the field models degenerate.
func (c *Config) normalize() {
	if c.Heatmap.Resolution < 2 {
		c.Heatmap.Resolution = 2
	}
	if c.Heatmap.OutputScale < 1 {
		c.Heatmap.OutputScale = 1
	}
	if c.Heatmap.Size <= 0 {
		c.Heatmap.Size = Default().Heatmap.Size
	}
	if c.Volumetric.Attenuation <= 0 {
		c.Volumetric.Attenuation = Default().Volumetric.Attenuation
	}
	if c.Volumetric.Opacity < 0 {
		c.Volumetric.Opacity = 0
	}
	if c.Volumetric.Width < 1 || c.Volumetric.Height < 1 {
		c.Volumetric.Width = Default().Volumetric.Width
		c.Volumetric.Height = Default().Volumetric.Height
	}
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./config.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "Lumen")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "Lumen")
	default: // Linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "lumen")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "lumen")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}
