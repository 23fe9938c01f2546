// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"landed-cost/core/types"
	"landed-cost/internal/errors"
	"landed-cost/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version" yaml:"version"`

	// Formula contains the default formula parameters
	Formula types.FormulaParameters `json:"formula" yaml:"formula"`

	// Rates contains exchange-rate acquisition settings
	Rates RatesConfig `json:"rates" yaml:"rates"`

	// Server contains HTTP server settings
	Server ServerConfig `json:"server" yaml:"server"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging" yaml:"logging"`
}

// RatesConfig contains exchange-rate settings
type RatesConfig struct {
	// Sources lists rate sources in precedence order (mig, bio, static)
	Sources []string `json:"sources" yaml:"sources"`

	// Static holds fallback rates in KZT per unit
	Static map[string]float64 `json:"static" yaml:"static"`

	// MarkupPercent is added on top of scraped national-bank rates
	MarkupPercent float64 `json:"markup_percent" yaml:"markup_percent"`

	// CacheTTLSeconds is how long fetched rates stay fresh
	CacheTTLSeconds int `json:"cache_ttl_seconds" yaml:"cache_ttl_seconds"`

	// RedisAddr enables the redis rate cache when set
	RedisAddr string `json:"redis_addr,omitempty" yaml:"redis_addr,omitempty"`

	// RedisPassword authenticates against RedisAddr
	RedisPassword string `json:"redis_password,omitempty" yaml:"redis_password,omitempty"`

	// TimeoutSeconds bounds a single source fetch
	TimeoutSeconds int `json:"timeout_seconds" yaml:"timeout_seconds"`
}

// CacheTTL returns the cache TTL as a duration
func (r RatesConfig) CacheTTL() time.Duration {
	return time.Duration(r.CacheTTLSeconds) * time.Second
}

// Timeout returns the fetch timeout as a duration
func (r RatesConfig) Timeout() time.Duration {
	return time.Duration(r.TimeoutSeconds) * time.Second
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	// Addr is the listen address
	Addr string `json:"addr" yaml:"addr"`

	// UIPath serves static files when set
	UIPath string `json:"ui_path,omitempty" yaml:"ui_path,omitempty"`
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Version: "1.0",
		Formula: types.DefaultFormulaParameters(),
		Rates: RatesConfig{
			Sources: []string{"mig", "static"},
			Static: map[string]float64{
				"USD": 526.82,
				"EUR": 612.74,
				"RUB": 6.57,
			},
			MarkupPercent:   1,
			CacheTTLSeconds: 600,
			TimeoutSeconds:  10,
		},
		Server: ServerConfig{
			Addr: ":5000",
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load loads configuration from a JSON or YAML file. A missing file yields
// the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, errors.Config("failed to read config "+path, err)
	}

	config := Default()
	// decoders merge into a non-nil map, so a file listing only USD would
	// otherwise keep the default EUR and RUB rates
	config.Rates.Static = nil
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, config)
	default:
		err = json.Unmarshal(data, config)
	}
	if err != nil {
		return nil, errors.Config("failed to parse config "+path, err)
	}
	if config.Rates.Static == nil {
		config.Rates.Static = Default().Rates.Static
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks the configuration for unusable values
func (c *Config) Validate() error {
	if err := c.Formula.Validate(); err != nil {
		return errors.Config("invalid formula defaults", err)
	}
	for code, rate := range c.Rates.Static {
		if !(rate > 0) {
			return errors.Newf(errors.TypeConfig, "static rate for %s must be positive", code)
		}
	}
	if c.Rates.MarkupPercent < 0 {
		return errors.New(errors.TypeConfig, "rate markup must not be negative")
	}
	return nil
}

// ApplyEnv overrides settings from LANDED_COST_* environment variables
func (c *Config) ApplyEnv() {
	if v := os.Getenv("LANDED_COST_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("LANDED_COST_REDIS_ADDR"); v != "" {
		c.Rates.RedisAddr = v
	}
	if v := os.Getenv("LANDED_COST_REDIS_PASSWORD"); v != "" {
		c.Rates.RedisPassword = v
	}
	if v := os.Getenv("LANDED_COST_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	default:
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

var (
	globalMu     sync.RWMutex
	globalConfig = Default()
)

// Get returns the global configuration
func Get() *Config {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalConfig = config
}
