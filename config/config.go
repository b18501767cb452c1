// ABOUTME: Configuration management for the video player
// ABOUTME: Handles loading/saving TOML config files with fallback to defaults

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const fileName = "video-player.toml"

// Config holds the settings shared by the REPL and the visual mode
type Config struct {
	// Catalog sources; both empty means the built-in catalog
	CatalogPath string `toml:"catalog_path"`
	MediaDir    string `toml:"media_dir"`

	Prompt            string `toml:"prompt"`
	HistorySize       int    `toml:"history_size"`
	DefaultFlagReason string `toml:"default_flag_reason"` // Used when FLAG_VIDEO has no reason
	WatchCatalog      bool   `toml:"watch_catalog"`       // Reload catalog_path on change in visual mode
}

// GetConfigPath returns the default config file path
// First tries current directory, then falls back to ~/.config/video-player/config.toml
func GetConfigPath() string {
	if _, err := os.Stat("./" + fileName); err == nil {
		return "./" + fileName
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "./" + fileName
	}

	return filepath.Join(home, ".config", "video-player", "config.toml")
}

// LoadConfig loads configuration from a TOML file
// If the file doesn't exist, returns default config. Keys absent from the file keep their defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}

		return DefaultConfig(), fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, &config); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse config file: %w", err)
	}

	return config.normalize(), nil
}

// SaveConfig saves configuration to a TOML file
func SaveConfig(path string, config Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			fmt.Printf("Warning: failed to close config file: %v\n", err)
		}
	}()

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(config.normalize()); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// DefaultConfig returns the built-in settings
func DefaultConfig() Config {
	return Config{
		Prompt:      "YT> ",
		HistorySize: 100,
	}
}

// normalize replaces unusable values with defaults
func (c Config) normalize() Config {
	defaults := DefaultConfig()

	if c.HistorySize <= 0 {
		c.HistorySize = defaults.HistorySize
	}

	if c.Prompt == "" {
		c.Prompt = defaults.Prompt
	}

	return c
}
