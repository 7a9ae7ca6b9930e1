package config

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	configFileName = "config.yaml"
	dirMode        = 0700
	fileMode       = 0600

	metricTimeoutDefault = 10 * time.Second
	cloneTimeoutDefault  = 60 * time.Second
	concurrencyDefault   = 4
)

// Config holds the scoring knobs read from the app home dir.
type Config struct {
	// MetricTimeoutSec bounds a single metric invocation, external calls included.
	MetricTimeoutSec int `yaml:"metric_timeout_sec"`
	// CloneTimeoutSec bounds the one-time repository clone per scoring request.
	CloneTimeoutSec int `yaml:"clone_timeout_sec"`
	// Concurrency caps the metric worker pool.
	Concurrency int `yaml:"concurrency"`
	// Format is the default CLI output format (json or yaml).
	Format string `yaml:"format"`
}

func getDefaultConfig() *Config {
	return &Config{
		MetricTimeoutSec: int(metricTimeoutDefault.Seconds()),
		CloneTimeoutSec:  int(cloneTimeoutDefault.Seconds()),
		Concurrency:      concurrencyDefault,
		Format:           "json",
	}
}

// MetricTimeout returns the per-metric timeout, defaulting when unset.
func (c *Config) MetricTimeout() time.Duration {
	if c == nil || c.MetricTimeoutSec < 1 {
		return metricTimeoutDefault
	}
	return time.Duration(c.MetricTimeoutSec) * time.Second
}

// CloneTimeout returns the repository clone timeout, defaulting when unset.
func (c *Config) CloneTimeout() time.Duration {
	if c == nil || c.CloneTimeoutSec < 1 {
		return cloneTimeoutDefault
	}
	return time.Duration(c.CloneTimeoutSec) * time.Second
}

// Workers returns the worker pool cap, defaulting when unset.
func (c *Config) Workers() int {
	if c == nil || c.Concurrency < 1 {
		return concurrencyDefault
	}
	return c.Concurrency
}

func Save(dirPath string, c *Config) error {
	if dirPath == "" {
		return errors.New("config directory required")
	}
	if c == nil {
		return errors.New("config required")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}
	path := filepath.Join(dirPath, configFileName)
	if err := os.WriteFile(path, b, fileMode); err != nil {
		return errors.Wrapf(err, "failed to write config file: %s", configFileName)
	}
	return nil
}

// ReadOrCreate reads app config from directory or creates a new one.
func ReadOrCreate(dirPath string) (*Config, error) {
	if dirPath == "" {
		return nil, errors.New("config directory required")
	}

	if _, err := os.Stat(dirPath); errors.Is(err, os.ErrNotExist) {
		if err := os.Mkdir(dirPath, dirMode); err != nil {
			return nil, errors.Wrapf(err, "failed to create dir: %s", dirPath)
		}
	}

	path := filepath.Join(dirPath, configFileName)

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := Save(dirPath, getDefaultConfig()); err != nil {
			return nil, errors.Wrap(err, "failed to create default config")
		}
	}

	j, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "error opening config file: %s", path)
	}
	defer j.Close()

	b, err := io.ReadAll(j)
	if err != nil {
		return nil, errors.Wrapf(err, "error reading config file: %s", path)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, errors.Wrapf(err, "error unmarshalling config file: %s", path)
	}
	return &c, nil
}

// GetOrCreateHomeDir returns the home directory for the app.
// The create flag is set to true if the directory was created.
func GetOrCreateHomeDir(name string) (path string, created bool, err error) {
	if name == "" {
		return "", false, errors.New("name cannot be empty")
	}

	if !strings.HasPrefix(name, ".") {
		name = "." + name
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", false, errors.Wrap(err, "failed to get user home dir")
	}

	dir := filepath.Join(home, name)
	if _, err := os.Stat(dir); errors.Is(err, os.ErrNotExist) {
		if err := os.Mkdir(dir, dirMode); err != nil {
			return "", false, errors.Wrapf(err, "failed to create dir: %s", dir)
		}
		created = true
	}
	return dir, created, nil
}
