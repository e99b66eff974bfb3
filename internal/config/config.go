// Package config provides configuration management.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/joho/godotenv"

	apperrors "cloudkitty-hashmap/internal/errors"
	"cloudkitty-hashmap/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// Endpoint is the base URL of the CloudKitty API, without the /v1 suffix
	Endpoint string `json:"endpoint" env:"CLOUDKITTY_ENDPOINT"`

	// Token is a pre-issued auth token forwarded as X-Auth-Token
	Token string `json:"token,omitempty" env:"CLOUDKITTY_TOKEN"`

	// Region is informational and logged with every command
	Region string `json:"region,omitempty" env:"CLOUDKITTY_REGION"`

	// TimeoutSeconds bounds a whole command invocation
	TimeoutSeconds int `json:"timeout_seconds" env:"CLOUDKITTY_TIMEOUT"`

	// Output contains output configuration
	Output OutputConfig `json:"output"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// NoColor disables ANSI colors in tables
	NoColor bool `json:"no_color" env:"CLOUDKITTY_NO_COLOR"`
}

// hclFile mirrors Config for .hcl configuration files. Pointers tell
// absent attributes apart from zero values.
type hclFile struct {
	Endpoint       *string         `hcl:"endpoint,optional"`
	Token          *string         `hcl:"token,optional"`
	Region         *string         `hcl:"region,optional"`
	TimeoutSeconds *int            `hcl:"timeout_seconds,optional"`
	NoColor        *bool           `hcl:"no_color,optional"`
	Logging        *logging.Config `hcl:"logging,block"`
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Version:        "1.0",
		Endpoint:       "http://localhost:8889",
		TimeoutSeconds: 30,
		Logging:        logging.DefaultConfig(),
	}
}

// DefaultPath returns $HOME/.cloudkitty-hashmap.json
func DefaultPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".cloudkitty-hashmap.json")
}

// Load loads configuration from a file. A missing file yields the defaults.
// Files ending in .hcl are decoded as HCL, everything else as JSON.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, apperrors.Config("failed to read config file", err)
	}

	config := Default()
	if strings.HasSuffix(path, ".hcl") {
		if err := decodeHCL(data, path, config); err != nil {
			return nil, err
		}
		return config, nil
	}

	if err := json.Unmarshal(data, config); err != nil {
		return nil, apperrors.Config("failed to parse config file", err)
	}

	return config, nil
}

func decodeHCL(src []byte, filename string, config *Config) error {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return apperrors.Config("failed to parse config file", diags)
	}

	var raw hclFile
	if diags := gohcl.DecodeBody(file.Body, nil, &raw); diags.HasErrors() {
		return apperrors.Config("failed to decode config file", diags)
	}

	if raw.Endpoint != nil {
		config.Endpoint = *raw.Endpoint
	}
	if raw.Token != nil {
		config.Token = *raw.Token
	}
	if raw.Region != nil {
		config.Region = *raw.Region
	}
	if raw.TimeoutSeconds != nil {
		config.TimeoutSeconds = *raw.TimeoutSeconds
	}
	if raw.NoColor != nil {
		config.Output.NoColor = *raw.NoColor
	}
	if raw.Logging != nil {
		if raw.Logging.Level != "" {
			config.Logging.Level = raw.Logging.Level
		}
		if raw.Logging.Format != "" {
			config.Logging.Format = raw.Logging.Format
		}
		if raw.Logging.Output != "" {
			config.Logging.Output = raw.Logging.Output
		}
		config.Logging.Development = raw.Logging.Development
	}
	return nil
}

// ApplyEnv overlays CLOUDKITTY_* environment variables, after loading a
// .env file from the working directory when one exists.
func ApplyEnv(config *Config) error {
	_ = godotenv.Load(".env")

	if err := env.Parse(config); err != nil {
		return apperrors.Config("invalid environment configuration", err)
	}
	return nil
}

// Validate checks the settings every command depends on
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Endpoint) == "" {
		return apperrors.New(apperrors.TypeConfig, "endpoint is not configured (set --endpoint or CLOUDKITTY_ENDPOINT)")
	}
	if c.TimeoutSeconds <= 0 {
		return apperrors.Newf(apperrors.TypeConfig, "timeout must be positive, got %d", c.TimeoutSeconds)
	}
	return nil
}

// Timeout returns the per-command timeout
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return os.WriteFile(path, data, 0600)
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
