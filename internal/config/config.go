// Package config loads the optional runner configuration (staticfiles.yaml).
package config

import (
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/staticfiles/internal/errors"
)

// DefaultPath is the runner config file looked up when no path is given.
const DefaultPath = "staticfiles.yaml"

// DefaultDebounce is the watch-mode quiet period.
const DefaultDebounce = 300 * time.Millisecond

// Config represents the runner configuration.
type Config struct {
	LogLevel    LogLevel    `yaml:"log_level,omitempty"`
	LogFormat   LogFormat   `yaml:"log_format,omitempty"`
	ProjectRoot string      `yaml:"project_root,omitempty"`
	EnvFiles    []string    `yaml:"env_files,omitempty"`
	MetricsFile string      `yaml:"metrics_file,omitempty"`
	Watch       WatchConfig `yaml:"watch"`
}

// WatchConfig tunes watch mode.
type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce,omitempty"` // quiet period before a re-run
	Resync   time.Duration `yaml:"resync,omitempty"`   // periodic re-run interval, 0 disables
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads the runner configuration at path. A missing file yields the
// defaults; unreadable or malformed files are configuration errors.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, errors.ConfigError("failed to read runner config").WithCause(err).
			WithContext("path", path).
			Build()
	}
	return Parse(data, path)
}

// Parse decodes runner configuration bytes. Environment variables in the
// document are expanded before decoding.
func Parse(data []byte, path string) (*Config, error) {
	cfg := &Config{}
	expanded := os.ExpandEnv(string(data))
	if strings.TrimSpace(expanded) != "" {
		if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
			return nil, errors.ConfigError("invalid runner config").WithCause(err).
				WithContext("path", path).
				Build()
		}
	}
	if err := cfg.normalize(); err != nil {
		return nil, errors.ConfigError("invalid runner config").WithCause(err).
			WithContext("path", path).
			Build()
	}
	applyDefaults(cfg)
	return cfg, nil
}

func (c *Config) normalize() error {
	if c.LogLevel != "" {
		lvl, err := ParseLogLevel(string(c.LogLevel))
		if err != nil {
			return err
		}
		c.LogLevel = lvl
	}
	if c.LogFormat != "" {
		f, err := ParseLogFormat(string(c.LogFormat))
		if err != nil {
			return err
		}
		c.LogFormat = f
	}
	if c.Watch.Debounce < 0 {
		return errors.ValidationError("watch.debounce must not be negative").
			WithContext("value", c.Watch.Debounce.String()).
			Build()
	}
	if c.Watch.Resync < 0 {
		return errors.ValidationError("watch.resync must not be negative").
			WithContext("value", c.Watch.Resync.String()).
			Build()
	}
	return nil
}

func applyDefaults(c *Config) {
	if c.LogLevel == "" {
		c.LogLevel = LogLevelInfo
	}
	if c.LogFormat == "" {
		c.LogFormat = LogFormatText
	}
	if c.Watch.Debounce == 0 {
		c.Watch.Debounce = DefaultDebounce
	}
}
