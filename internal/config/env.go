package config

import "os"

// Environment variable names for overrides. Credentials via environment
// keep secrets out of config files in CI.
const (
	EnvBaseURL  = "TRACKVIA_BASE_URL"
	EnvUserKey  = "TRACKVIA_USER_KEY"
	EnvUsername = "TRACKVIA_USERNAME"
	EnvPassword = "TRACKVIA_PASSWORD"
	EnvLogLevel = "TRACKVIA_LOG_LEVEL"
)

// applyEnvOverrides overlays environment variables onto cfg. Unset
// variables leave the existing values alone.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv(EnvBaseURL); v != "" {
		cfg.API.BaseURL = v
	}

	if v := os.Getenv(EnvUserKey); v != "" {
		cfg.API.UserKey = v
	}

	if v := os.Getenv(EnvUsername); v != "" {
		cfg.API.Username = v
	}

	if v := os.Getenv(EnvPassword); v != "" {
		cfg.API.Password = v
	}

	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Logging.Level = v
	}
}
