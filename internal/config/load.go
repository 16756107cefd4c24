package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// DefaultConfigPath returns the standard config file location,
// ~/.config/trackvia/config.toml, honoring XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "config.toml"
		}

		base = filepath.Join(home, ".config")
	}

	return filepath.Join(base, "trackvia", "config.toml")
}

// Load reads and parses a TOML config file over the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	return cfg, nil
}

// Resolve produces the effective configuration: defaults, then the config
// file (if present), then environment variables. A missing config file is
// not an error — credentials can come entirely from the environment.
func Resolve(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigPath()
	}

	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		loaded, loadErr := Load(path)
		if loadErr != nil {
			return nil, loadErr
		}

		cfg = loaded
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	applyEnvOverrides(cfg)

	return cfg, nil
}

// Validate checks that the resolved configuration is usable.
func Validate(cfg *Config) error {
	if cfg.API.UserKey == "" {
		return errors.New("config: api.user_key (or TRACKVIA_USER_KEY) is required")
	}

	if cfg.API.Username == "" || cfg.API.Password == "" {
		return errors.New("config: api.username and api.password (or TRACKVIA_USERNAME/TRACKVIA_PASSWORD) are required")
	}

	return nil
}
