// Package config loads client configuration from a YAML file in the state
// directory, with ELIB_* environment variables taking precedence. A missing
// file yields defaults; configuration problems never stop the client from
// starting.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// ConfigFile is the name of the document inside the state directory.
const ConfigFile = "config.yaml"

// Config holds all client settings.
type Config struct {
	// APIBaseURL is the backend address, e.g. http://localhost:8088/api.
	APIBaseURL string `yaml:"api_base_url"`
	// StateDir holds the durable store, config and logs. Defaults to
	// ~/.elib.
	StateDir string `yaml:"state_dir"`
	// Theme selects "light" or "dark".
	Theme string `yaml:"theme"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
	// RequestTimeout bounds every backend call.
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

// Default returns the configuration used when no file or overrides exist.
func Default() Config {
	return Config{
		APIBaseURL:     "http://localhost:8088/api",
		StateDir:       defaultStateDir(),
		Theme:          "light",
		LogLevel:       "info",
		RequestTimeout: 15 * time.Second,
	}
}

func defaultStateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".elib"
	}
	return filepath.Join(home, ".elib")
}

// Load reads configuration from the given state directory and applies
// environment overrides. An absent file is not an error.
func Load(stateDir string) (Config, error) {
	cfg := Default()
	if stateDir != "" {
		cfg.StateDir = stateDir
	}

	path := filepath.Join(cfg.StateDir, ConfigFile)
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// defaults
	case err != nil:
		return cfg, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.applyEnv()
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = Default().RequestTimeout
	}
	return cfg, nil
}

// applyEnv overlays ELIB_* environment variables. Env wins over file so
// scripted runs can redirect the client without editing state.
func (c *Config) applyEnv() {
	if v := os.Getenv("ELIB_API_URL"); v != "" {
		c.APIBaseURL = v
	}
	if v := os.Getenv("ELIB_STATE_DIR"); v != "" {
		c.StateDir = v
	}
	if v := os.Getenv("ELIB_THEME"); v != "" {
		c.Theme = v
	}
	if v := os.Getenv("ELIB_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("ELIB_REQUEST_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.RequestTimeout = d
		}
	}
}

// Save writes the configuration back to the state directory.
func Save(cfg Config) error {
	if err := os.MkdirAll(cfg.StateDir, 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return os.WriteFile(filepath.Join(cfg.StateDir, ConfigFile), data, 0o644)
}
