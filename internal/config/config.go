// Package config loads and saves the application settings as YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mrsinham/medintel/internal/locale"
)

// Config holds every user-tunable setting.
type Config struct {
	Language        string `yaml:"language"`
	Theme           string `yaml:"theme"`
	DefaultUserName string `yaml:"default_user_name"`

	// Simulated latency of sign-in, sign-up and onboarding submissions.
	SubmitDelay string `yaml:"submit_delay"`
	// Simulated duration of prescription scanning.
	ProcessingDelay string `yaml:"processing_delay"`

	LogFile  string `yaml:"log_file"`
	LogLevel string `yaml:"log_level"`
}

var (
	Themes    = []string{"classic", "medintel"}
	LogLevels = []string{"debug", "info", "warn", "error"}
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Language:        "en",
		Theme:           "medintel",
		DefaultUserName: "Lan",
		SubmitDelay:     "1s",
		ProcessingDelay: "3s",
		LogFile:         "medintel.log",
		LogLevel:        "info",
	}
}

// LoadFromYAML reads settings from path on top of the defaults. A missing
// file yields the defaults. Environment overrides are applied last.
func LoadFromYAML(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// SaveToYAML writes the settings to path, creating parent directories.
func SaveToYAML(cfg *Config, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("MEDINTEL_LANG"); v != "" {
		c.Language = v
	}
	if v := os.Getenv("MEDINTEL_THEME"); v != "" {
		c.Theme = v
	}
	if v := os.Getenv("MEDINTEL_LOG_FILE"); v != "" {
		c.LogFile = v
	}
}

// Validate checks enumerated fields and durations.
func (c *Config) Validate() error {
	if langs := locale.Languages(); !slices.Contains(langs, c.Language) {
		return fmt.Errorf("%w: language %q (valid: %v)", ErrInvalid, c.Language, langs)
	}
	if !slices.Contains(Themes, c.Theme) {
		return fmt.Errorf("%w: theme %q (valid: %v)", ErrInvalid, c.Theme, Themes)
	}
	if !slices.Contains(LogLevels, c.LogLevel) {
		return fmt.Errorf("%w: log level %q (valid: %v)", ErrInvalid, c.LogLevel, LogLevels)
	}
	for name, v := range map[string]string{"submit_delay": c.SubmitDelay, "processing_delay": c.ProcessingDelay} {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalid, name, err)
		}
		if d < 0 {
			return fmt.Errorf("%w: %s must not be negative", ErrInvalid, name)
		}
	}
	return nil
}

// Submit returns the submission delay, falling back to one second.
func (c *Config) Submit() time.Duration {
	return parseOr(c.SubmitDelay, time.Second)
}

// Processing returns the scanning delay, falling back to three seconds.
func (c *Config) Processing() time.Duration {
	return parseOr(c.ProcessingDelay, 3*time.Second)
}

func parseOr(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		return fallback
	}
	return d
}
