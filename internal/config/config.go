// Package config provides configuration management.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"refining-profit/core/output"
	"refining-profit/core/refining"
	"refining-profit/internal/errors"
	"refining-profit/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version" yaml:"version"`

	// Market contains market API configuration
	Market MarketConfig `json:"market" yaml:"market"`

	// Catalog contains game-data configuration
	Catalog CatalogConfig `json:"catalog" yaml:"catalog"`

	// Refining contains profit formula configuration
	Refining RefiningConfig `json:"refining" yaml:"refining"`

	// Output contains output configuration
	Output OutputConfig `json:"output" yaml:"output"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging" yaml:"logging"`
}

// MarketConfig contains market API settings
type MarketConfig struct {
	// BaseURL is the market data API root
	BaseURL string `json:"base_url" yaml:"base_url"`

	// TimeoutSeconds bounds each request
	TimeoutSeconds int `json:"timeout_seconds" yaml:"timeout_seconds"`

	// RequestsPerMinute caps outbound requests (0 = unlimited)
	RequestsPerMinute int `json:"requests_per_minute" yaml:"requests_per_minute"`

	// Quality is the item quality to price
	Quality int `json:"quality" yaml:"quality"`
}

// Timeout returns the request timeout as a duration
func (m MarketConfig) Timeout() time.Duration {
	return time.Duration(m.TimeoutSeconds) * time.Second
}

// CatalogConfig contains game-data settings
type CatalogConfig struct {
	// ItemsPath is the path to the items.xml dump
	ItemsPath string `json:"items_path" yaml:"items_path"`
}

// RefiningConfig contains profit formula settings
type RefiningConfig struct {
	// UsageFees are silver per 100 nutrition, by product subcategory
	UsageFees map[string]int `json:"usage_fees" yaml:"usage_fees"`

	// UseFocus applies the focus return rate by default
	UseFocus bool `json:"use_focus" yaml:"use_focus"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// DefaultFormat is the default output format
	DefaultFormat string `json:"default_format" yaml:"default_format"`

	// MaxTier hides products above this tier (0 = all)
	MaxTier int `json:"max_tier" yaml:"max_tier"`

	// SortBy is the default ranking metric
	SortBy string `json:"sort_by" yaml:"sort_by"`
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Version: "1.0",
		Market: MarketConfig{
			BaseURL:           "https://www.albion-online-data.com/api/v2",
			TimeoutSeconds:    30,
			RequestsPerMinute: 180,
			Quality:           1,
		},
		Catalog: CatalogConfig{
			ItemsPath: filepath.Join("data", "ao-bin-dumps", "items.xml"),
		},
		Refining: RefiningConfig{
			UsageFees: refining.DefaultUsageFees(),
			UseFocus:  false,
		},
		Output: OutputConfig{
			DefaultFormat: string(output.FormatCLI),
			MaxTier:       6,
			SortBy:        string(output.SortProfit),
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load loads configuration from a file, choosing the decoder by extension
// (.json, .yaml/.yml or .hcl). Values in the file overlay the defaults. The
// file must exist; callers without a config file use Default.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Config("read config "+path, err)
	}

	config := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, config)
	case ".hcl":
		err = decodeHCL(path, data, config)
	default:
		err = json.Unmarshal(data, config)
	}
	if err != nil {
		return nil, errors.Config("parse config "+path, err)
	}

	if err := config.Validate(); err != nil {
		return nil, errors.Config("invalid config "+path, err)
	}
	return config, nil
}

// Validate checks values that would otherwise fail late
func (c *Config) Validate() error {
	if c.Market.BaseURL == "" {
		return fmt.Errorf("market.base_url is required")
	}
	if c.Market.TimeoutSeconds < 0 || c.Market.RequestsPerMinute < 0 {
		return fmt.Errorf("market timeout and rate limit must not be negative")
	}
	for sub, fee := range c.Refining.UsageFees {
		if fee < 0 {
			return fmt.Errorf("refining.usage_fees[%s] is negative", sub)
		}
	}
	if c.Output.MaxTier < 0 {
		return fmt.Errorf("output.max_tier must not be negative")
	}
	if _, err := output.ParseSortKey(c.Output.SortBy); err != nil {
		return err
	}
	if _, err := output.ForFormat(c.Output.DefaultFormat); err != nil {
		return err
	}
	return nil
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
	case ".hcl":
		return fmt.Errorf("saving HCL configuration is not supported")
	default:
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
