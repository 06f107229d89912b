// Package config handles configuration loading and validation for prefixtrim.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"prefixtrim/internal/audit"
)

// DefaultFileName is looked up in the target directory when no config path is given.
const DefaultFileName = ".prefixtrim.yaml"

// ConfigErrorType represents the type of configuration error.
type ConfigErrorType string

const (
	FileNotFound    ConfigErrorType = "FILE_NOT_FOUND"
	InvalidYAML     ConfigErrorType = "INVALID_YAML"
	ValidationError ConfigErrorType = "VALIDATION_ERROR"
)

// ConfigError represents an error that occurred during configuration loading.
type ConfigError struct {
	Type    ConfigErrorType
	Path    string
	Message string
}

func (e *ConfigError) Error() string {
	switch e.Type {
	case FileNotFound:
		return fmt.Sprintf("configuration file not found: %s", e.Path)
	case InvalidYAML:
		return fmt.Sprintf("invalid YAML in configuration file: %s", e.Message)
	case ValidationError:
		return fmt.Sprintf("configuration validation error: %s", e.Message)
	default:
		return fmt.Sprintf("configuration error: %s", e.Message)
	}
}

// Configuration holds all settings for a prefixtrim run. Command-line flags
// override these values.
type Configuration struct {
	Language        string            `yaml:"language,omitempty"`
	Prefix          string            `yaml:"prefix,omitempty"`
	Exclude         []string          `yaml:"exclude,omitempty"`
	Staged          *bool             `yaml:"staged,omitempty"`
	DeleteOriginals bool              `yaml:"deleteOriginals,omitempty"`
	Audit           audit.AuditConfig `yaml:"audit,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() *Configuration {
	return &Configuration{}
}

// IsStaged reports whether trimmed copies are staged before being committed.
// Staging is on unless explicitly disabled.
func (c *Configuration) IsStaged() bool {
	if c.Staged == nil {
		return true
	}
	return *c.Staged
}

// SetStaged sets the staged flag.
func (c *Configuration) SetStaged(staged bool) {
	c.Staged = &staged
}

// Validate checks the configuration and returns the first error found.
func (c *Configuration) Validate() error {
	result := ValidateConfig(c)
	if result.Valid {
		return nil
	}
	first := result.Errors[0]
	return &ConfigError{
		Type:    ValidationError,
		Message: first.Field + ": " + first.Message,
	}
}

// Load reads, parses and validates a configuration file.
func Load(filePath string) (*Configuration, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &ConfigError{
				Type: FileNotFound,
				Path: filePath,
			}
		}
		return nil, &ConfigError{
			Type:    FileNotFound,
			Path:    filePath,
			Message: err.Error(),
		}
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, &ConfigError{
			Type:    InvalidYAML,
			Path:    filePath,
			Message: err.Error(),
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadOrDefault loads the file if it exists, or returns Default otherwise.
func LoadOrDefault(filePath string) (*Configuration, error) {
	if _, err := os.Stat(filePath); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return Load(filePath)
}

// Save serializes and writes a configuration to the given path.
func Save(cfg *Configuration, filePath string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return &ConfigError{
			Type:    InvalidYAML,
			Message: err.Error(),
		}
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return &ConfigError{
			Type:    ValidationError,
			Message: fmt.Sprintf("failed to write configuration file: %s", err.Error()),
		}
	}

	return nil
}
