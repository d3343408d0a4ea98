// Package config loads CLI settings from ~/.zugferd/config.yaml.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the name of the configuration file inside ConfigDir.
const FileName = "config.yaml"

// Environment variables that override file values.
const (
	EnvSinkDir  = "ZUGFERD_SINK_DIR"
	EnvLogLevel = "LOG_LEVEL"
)

// Config holds CLI settings.
type Config struct {
	// SinkDir is where extracted attachments are written. Empty means
	// no sink is configured.
	SinkDir string `yaml:"sink_dir,omitempty" json:"sink_dir,omitempty"`

	// LogLevel is DEBUG, INFO, WARN or ERROR
	LogLevel string `yaml:"log_level,omitempty" json:"log_level,omitempty"`

	// Pretty enables multi-line JSON output
	Pretty bool `yaml:"pretty,omitempty" json:"pretty,omitempty"`
}

// configDirOverride holds a user-specified configuration directory.
// When empty, the default $HOME/.zugferd is used.
var configDirOverride string

// SetConfigDir overrides the default configuration directory.
func SetConfigDir(dir string) {
	configDirOverride = dir
}

// ConfigDir returns the zugferd configuration directory.
func ConfigDir() (string, error) {
	if configDirOverride != "" {
		return configDirOverride, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".zugferd"), nil
}

// Path returns the location of the configuration file.
func Path() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, FileName), nil
}

// Load reads the configuration file and applies environment overrides.
// A missing file yields the defaults.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	c, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	c.ApplyEnv()
	return c, nil
}

// LoadFile reads one configuration file without environment overrides.
func LoadFile(path string) (*Config, error) {
	c := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return c, nil
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		LogLevel: "INFO",
	}
}

// ApplyEnv overrides fields from the environment.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvSinkDir); v != "" {
		c.SinkDir = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
}

// Save writes c to the configuration file, creating the directory.
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
