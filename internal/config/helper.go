package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ytget/aprit/internal/worker"
)

// EnvHelper overrides the helper executable
const EnvHelper = "APRIT_HELPER"

// HelperConfig describes how the download helper is launched
type HelperConfig struct {
	Helper       string        `yaml:"helper"`
	StartTimeout time.Duration `yaml:"start_timeout"`
	ExtraArgs    []string      `yaml:"extra_args"`
}

// yamlHelperConfig is used for YAML unmarshaling with a string timeout
type yamlHelperConfig struct {
	Helper       string   `yaml:"helper"`
	StartTimeout string   `yaml:"start_timeout"`
	ExtraArgs    []string `yaml:"extra_args"`
}

// DefaultHelperConfig returns the aria2c defaults
func DefaultHelperConfig() HelperConfig {
	return HelperConfig{
		Helper:       worker.DefaultHelper,
		StartTimeout: worker.DefaultStartTimeout,
	}
}

// LoadHelperConfig loads the helper configuration from a YAML file.
// Fields missing from the file keep their defaults.
func LoadHelperConfig(path string) (HelperConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return HelperConfig{}, fmt.Errorf("read config file: %w", err)
	}

	var yc yamlHelperConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return HelperConfig{}, fmt.Errorf("parse config file: %w", err)
	}

	cfg := DefaultHelperConfig()
	if yc.Helper != "" {
		cfg.Helper = yc.Helper
	}
	if yc.StartTimeout != "" {
		d, err := time.ParseDuration(yc.StartTimeout)
		if err != nil {
			return HelperConfig{}, fmt.Errorf("parse start_timeout: %w", err)
		}
		cfg.StartTimeout = d
	}
	if len(yc.ExtraArgs) > 0 {
		cfg.ExtraArgs = yc.ExtraArgs
	}

	if err := cfg.Validate(); err != nil {
		return HelperConfig{}, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from the environment
func (c *HelperConfig) ApplyEnv() {
	if helper := os.Getenv(EnvHelper); helper != "" {
		c.Helper = helper
	}
}

// Validate checks the configuration
func (c HelperConfig) Validate() error {
	if c.Helper == "" {
		return errors.New("helper must not be empty")
	}
	if c.StartTimeout <= 0 {
		return errors.New("start_timeout must be positive")
	}
	for _, arg := range c.ExtraArgs {
		if arg == "" {
			return errors.New("extra_args must not contain empty values")
		}
	}
	return nil
}

// Launcher builds a worker launcher from the configuration
func (c HelperConfig) Launcher() *worker.Launcher {
	return worker.NewLauncher(c.Helper, c.StartTimeout)
}
