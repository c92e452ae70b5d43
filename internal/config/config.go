// Package config loads the todo tool configuration.
// YAML files support ${VAR} environment expansion; TODO_* environment
// variables override file values.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/idilsaglam/todomvc/internal/store"
)

// Backend names accepted in storage.backend.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
	BackendBolt   = "bolt"
	BackendMemory = "memory"
)

// DefaultNamespace is the namespace used when none is configured.
const DefaultNamespace = store.DefaultNamespace

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config represents the complete configuration
type Config struct {
	Storage StorageConfig `yaml:"storage"`
	UI      UIConfig      `yaml:"ui"`
	Logging LoggingConfig `yaml:"logging"`
}

// StorageConfig selects and locates the persistence backend
type StorageConfig struct {
	Backend   string `yaml:"backend"`
	DataDir   string `yaml:"data_dir"`
	Namespace string `yaml:"namespace"`
}

// UIConfig holds presentation preferences for the shells
type UIConfig struct {
	Theme string `yaml:"theme"`
	Group bool   `yaml:"group"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `yaml:"level"`
	// File receives log output; empty means stderr for the CLI and
	// nowhere for the TUI.
	File string `yaml:"file"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend:   BackendJSON,
			DataDir:   defaultDataDir(),
			Namespace: DefaultNamespace,
		},
		UI:      UIConfig{Theme: "classic"},
		Logging: LoggingConfig{Level: "warn"},
	}
}

func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "todomvc")
	}
	return ".todomvc"
}

// Load reads a configuration file from the given path and returns a parsed Config.
// Missing fields keep their defaults. Environment overrides are applied after
// the file, then the result is validated.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		expanded := expandEnvVars(string(data))
		if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}
	cfg.applyEnv()
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars replaces ${VAR_NAME} patterns with the corresponding environment variable values.
// If the environment variable is not set, it is replaced with an empty string.
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(envVarPattern.FindStringSubmatch(match)[1])
	})
}

func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv("TODO_BACKEND")); v != "" {
		c.Storage.Backend = v
	}
	if v := strings.TrimSpace(os.Getenv("TODO_DATA_DIR")); v != "" {
		c.Storage.DataDir = v
	}
	if v := strings.TrimSpace(os.Getenv("TODO_NAMESPACE")); v != "" {
		c.Storage.Namespace = v
	}
}

func (c *Config) normalize() {
	c.Storage.Backend = strings.ToLower(strings.TrimSpace(c.Storage.Backend))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Storage.Namespace == "" {
		c.Storage.Namespace = DefaultNamespace
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "warn"
	}
}

// Validate checks that all configuration fields are present and valid.
// Returns an error describing the first validation failure encountered.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendJSON, BackendSQLite, BackendBolt:
		if c.Storage.DataDir == "" {
			return fmt.Errorf("%w: storage.data_dir is required for the %s backend", ErrInvalid, c.Storage.Backend)
		}
	case BackendMemory:
	default:
		return fmt.Errorf("%w: unknown storage.backend %q", ErrInvalid, c.Storage.Backend)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: unknown logging.level %q", ErrInvalid, c.Logging.Level)
	}
	return nil
}
