// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Default values applied by Defaults.
const (
	DefaultPort          = 8080
	DefaultEngine        = "native"
	DefaultExportTimeout = "30s"
	DefaultMaxImageBytes = 5 << 20
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or CLI flags.
type Config struct {
	// Server
	Port int `json:"port,omitempty" validate:"omitempty,min=1,max=65535"` // HTTP listen port

	// Export
	Engine          string `json:"engine,omitempty" validate:"omitempty,oneof=native chrome"` // PDF engine
	ChromePath      string `json:"chrome_path,omitempty"`                                     // Chrome executable for the chrome engine
	NoSandbox       bool   `json:"no_sandbox,omitempty"`                                      // Disable the Chrome sandbox (running as root)
	DownloadBrowser bool   `json:"download_browser,omitempty"`                                // Download Chromium when no path is set
	ExportTimeout   string `json:"export_timeout,omitempty"`                                  // Go duration bounding one render

	// Form
	Seed          string `json:"seed,omitempty"`                                   // JSON or YAML record to start from
	MaxImageBytes int64  `json:"max_image_bytes,omitempty" validate:"omitempty,min=1"` // Largest accepted profile image

	// Behavior
	Verbose bool `json:"verbose,omitempty"` // Print detailed debug information
}

// Defaults returns the built-in configuration
func Defaults() Config {
	return Config{
		Port:          DefaultPort,
		Engine:        DefaultEngine,
		ExportTimeout: DefaultExportTimeout,
		MaxImageBytes: DefaultMaxImageBytes,
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

var validate = newValidator()

// newValidator reports fields by their JSON names
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// Validate checks that the configuration has valid values.
// Unset fields are accepted; they are filled by MergeWithDefaults.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("config error: '%s' failed '%s' validation (got %v)", fe.Field(), fe.Tag(), fe.Value())
		}
		return fmt.Errorf("config error: %w", err)
	}

	if c.ExportTimeout != "" {
		if _, err := time.ParseDuration(c.ExportTimeout); err != nil {
			return fmt.Errorf("config error: 'export_timeout' is not a duration: %w", err)
		}
	}

	// Validate file paths exist (if specified)
	if c.Seed != "" {
		if _, err := os.Stat(c.Seed); os.IsNotExist(err) {
			return fmt.Errorf("config error: seed file not found: %s", c.Seed)
		}
	}
	if c.ChromePath != "" {
		if _, err := os.Stat(c.ChromePath); os.IsNotExist(err) {
			return fmt.Errorf("config error: chrome executable not found: %s", c.ChromePath)
		}
	}

	return nil
}

// Timeout returns the parsed export timeout, or zero when unset or invalid
func (c *Config) Timeout() time.Duration {
	d, err := time.ParseDuration(c.ExportTimeout)
	if err != nil {
		return 0
	}
	return d
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Engine == "" {
		result.Engine = defaults.Engine
	}
	if result.ChromePath == "" {
		result.ChromePath = defaults.ChromePath
	}
	if result.ExportTimeout == "" {
		result.ExportTimeout = defaults.ExportTimeout
	}
	if result.Seed == "" {
		result.Seed = defaults.Seed
	}

	// Numeric fields: use default if zero
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.MaxImageBytes == 0 {
		result.MaxImageBytes = defaults.MaxImageBytes
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
