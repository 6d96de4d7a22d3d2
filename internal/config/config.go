package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultLimit     = 1_000_000
	DefaultSeparator = " →"
	DefaultCacheTTL  = 24 * time.Hour
)

// Config holds user configuration from ~/.config/amicable/config.yaml.
type Config struct {
	Limit     int    `yaml:"limit"`
	Workers   int    `yaml:"workers"`
	Separator string `yaml:"separator"`
	CacheTTL  string `yaml:"cache_ttl"`
	NoCache   bool   `yaml:"no_cache"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Limit:     DefaultLimit,
		Workers:   runtime.NumCPU(),
		Separator: DefaultSeparator,
		CacheTTL:  DefaultCacheTTL.String(),
	}
}

// DefaultPath returns ~/.config/amicable/config.yaml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "amicable", "config.yaml")
}

// Load reads the config file at path. A missing file yields the defaults;
// a malformed one is an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Validate rejects values the commands cannot use.
func (c *Config) Validate() error {
	if c.Limit < 1 {
		return fmt.Errorf("config: limit must be positive, got %d", c.Limit)
	}
	if c.Workers < 0 {
		return fmt.Errorf("config: workers must not be negative, got %d", c.Workers)
	}
	if _, err := c.TTL(); err != nil {
		return err
	}
	return nil
}

// TTL parses CacheTTL. An empty value means DefaultCacheTTL.
func (c *Config) TTL() (time.Duration, error) {
	if c.CacheTTL == "" {
		return DefaultCacheTTL, nil
	}
	d, err := time.ParseDuration(c.CacheTTL)
	if err != nil {
		return 0, fmt.Errorf("config: invalid cache_ttl %q: %w", c.CacheTTL, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("config: cache_ttl must be positive, got %s", d)
	}
	return d, nil
}

// applyEnvOverrides applies AMICABLE_* environment variables.
func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("AMICABLE_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: AMICABLE_LIMIT: %w", err)
		}
		c.Limit = n
	}
	if v := os.Getenv("AMICABLE_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: AMICABLE_WORKERS: %w", err)
		}
		c.Workers = n
	}
	if v := os.Getenv("AMICABLE_NO_CACHE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: AMICABLE_NO_CACHE: %w", err)
		}
		c.NoCache = b
	}
	return nil
}
