// Package config implements TOML configuration loading and environment
// overrides for the trackvia CLI. Layering is defaults -> config file ->
// environment, with CLI flags applied last by the command layer.
package config

// Config is the top-level structure parsed from a TOML file.
type Config struct {
	API     APIConfig     `toml:"api"`
	Logging LoggingConfig `toml:"logging"`
}

// APIConfig holds the service endpoint and credentials. The user key is
// the static per-application API key; username/password are exchanged
// for tokens at startup — tokens themselves are never written to disk.
type APIConfig struct {
	BaseURL  string `toml:"base_url"`
	UserKey  string `toml:"user_key"`
	Username string `toml:"username"`
	Password string `toml:"password"`
}

// LoggingConfig controls log verbosity ("debug", "info", "warn", "error").
type LoggingConfig struct {
	Level string `toml:"level"`
}

// DefaultConfig returns a Config with all defaults populated.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: "https://go.trackvia.com",
		},
		Logging: LoggingConfig{
			Level: "warn",
		},
	}
}
