package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables that override the file configuration. They may be
// set in a .env file in the working directory.
const (
	EnvGatewayURL   = "REGIME_GATEWAY_URL"
	EnvGatewayToken = "REGIME_GATEWAY_TOKEN"
	EnvAccountID    = "REGIME_ACCOUNT_ID"
	EnvLeverage     = "REGIME_LEVERAGE"
)

// Config represents a complete run configuration
type Config struct {
	Params  Params        `json:"params" yaml:"params"`
	Data    DataConfig    `json:"data" yaml:"data"`
	Output  OutputConfig  `json:"output" yaml:"output"`
	Journal JournalConfig `json:"journal" yaml:"journal"`
	Gateway GatewayConfig `json:"gateway" yaml:"gateway"`
	Metrics MetricsConfig `json:"metrics" yaml:"metrics"`
}

// DataConfig locates the input bar series (CSV, optionally .xz compressed)
type DataConfig struct {
	Path string `json:"path" yaml:"path"`
}

// OutputConfig locates the record file handed to the backtest gateway
type OutputConfig struct {
	ResultsFile string `json:"results_file" yaml:"results_file"`
}

// JournalConfig contains journaling parameters
type JournalConfig struct {
	Type       string `json:"type" yaml:"type"` // "none", "csv" or "sqlite"
	TradesFile string `json:"trades_file,omitempty" yaml:"trades_file,omitempty"`
	RunsFile   string `json:"runs_file,omitempty" yaml:"runs_file,omitempty"`
	DBPath     string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// GatewayConfig describes the remote backtest service
type GatewayConfig struct {
	Enabled   bool   `json:"enabled" yaml:"enabled"`
	URL       string `json:"url" yaml:"url"`
	Token     string `json:"token,omitempty" yaml:"token,omitempty"`
	AccountID string `json:"account_id" yaml:"account_id"`
	Leverage  int    `json:"leverage" yaml:"leverage"`
	Timeout   string `json:"timeout" yaml:"timeout"` // e.g. "2m", "30s"
}

// ParseTimeout converts the timeout string to time.Duration. An empty
// timeout means no client-side deadline.
func (g GatewayConfig) ParseTimeout() (time.Duration, error) {
	if g.Timeout == "" {
		return 0, nil
	}
	return time.ParseDuration(g.Timeout)
}

// MetricsConfig names the node-exporter textfile the run metrics are
// written to. Empty disables the export.
type MetricsConfig struct {
	Textfile string `json:"textfile,omitempty" yaml:"textfile,omitempty"`
}

// Load builds the configuration for a run: defaults (or the file at path
// when non-empty), then environment overrides, then validation.
func Load(path string) (*Config, error) {
	if err := loadDotenv(".env"); err != nil {
		return nil, err
	}

	cfg := Default()
	if path != "" {
		var err error
		if cfg, err = readFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadFromFile loads configuration from a file (YAML, falling back to JSON)
func LoadFromFile(path string) (*Config, error) {
	cfg, err := readFile(path)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadDotenv exports the variables in path. A missing file is not an
// error; a malformed one is.
func loadDotenv(path string) error {
	err := godotenv.Load(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func readFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// Missing keys keep their defaults.
	cfg := Default()

	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		cfg = Default()
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}
	return cfg, nil
}

// ApplyEnv overrides gateway settings from the environment.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvGatewayURL); v != "" {
		c.Gateway.URL = v
	}
	if v := os.Getenv(EnvGatewayToken); v != "" {
		c.Gateway.Token = v
	}
	if v := os.Getenv(EnvAccountID); v != "" {
		c.Gateway.AccountID = v
	}
	if v := os.Getenv(EnvLeverage); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvLeverage, err)
		}
		c.Gateway.Leverage = n
	}
	return nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := c.Params.Validate(); err != nil {
		return fmt.Errorf("params: %w", err)
	}
	if c.Output.ResultsFile == "" {
		return fmt.Errorf("output.results_file is required")
	}
	switch c.Journal.Type {
	case "", "none":
	case "csv":
		if c.Journal.TradesFile == "" || c.Journal.RunsFile == "" {
			return fmt.Errorf("journal trades_file and runs_file required for CSV type")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal db_path required for SQLite type")
		}
	default:
		return fmt.Errorf("journal.type must be 'none', 'csv' or 'sqlite'")
	}
	if c.Gateway.Leverage < 0 {
		return fmt.Errorf("gateway.leverage must not be negative")
	}
	if _, err := c.Gateway.ParseTimeout(); err != nil {
		return fmt.Errorf("gateway.timeout: %w", err)
	}
	if c.Gateway.Enabled {
		if c.Gateway.URL == "" {
			return fmt.Errorf("gateway.url required when the gateway is enabled")
		}
		if c.Gateway.AccountID == "" {
			return fmt.Errorf("gateway.account_id required when the gateway is enabled")
		}
	}
	return nil
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Params: DefaultParams(),
		Output: OutputConfig{
			ResultsFile: "./results.csv",
		},
		Journal: JournalConfig{
			Type:   "sqlite",
			DBPath: "./regime.sqlite",
		},
		Gateway: GatewayConfig{
			Leverage: 1,
			Timeout:  "5m",
		},
	}
}
