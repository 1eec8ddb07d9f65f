// Package config loads the optional CLI configuration file.
//
// A config file sets defaults for the generate command; flags override it.
// Files are YAML, parsed in strict mode so a misspelled key is an error.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-csv2labels/internal/fileutil"
	"github.com/alnah/go-csv2labels/internal/validation"
	"github.com/alnah/go-csv2labels/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrConfigInvalid   = errors.New("invalid config")
)

// DefaultOutputFile is the document name when nothing else is configured.
const DefaultOutputFile = "Etiquetas.pdf"

// configDirName is the directory under the user config dir searched by name.
const configDirName = "go-csv2labels"

// Config holds all configuration for label generation.
type Config struct {
	Input   InputConfig  `yaml:"input"`
	Output  OutputConfig `yaml:"output"`
	Layout  LayoutConfig `yaml:"layout"`
	Assets  AssetsConfig `yaml:"assets"`
	Log     LogConfig    `yaml:"log"`
	Timeout string       `yaml:"timeout" validate:"omitempty,duration"` // e.g. "30s"
}

// InputConfig defines how input files are read.
type InputConfig struct {
	Delimiter string `yaml:"delimiter" validate:"omitempty,delimiter"` // empty = detect
}

// OutputConfig defines where documents are written.
type OutputConfig struct {
	File string `yaml:"file" validate:"omitempty,max=4096"`
	HTML bool   `yaml:"html"` // also write the intermediate HTML next to the PDF
}

// LayoutConfig selects the label layout.
type LayoutConfig struct {
	Name     string   `yaml:"name" validate:"omitempty,max=255"` // preset name or path to a .yaml file
	Required []string `yaml:"required" validate:"omitempty,max=32,dive,required,max=100"`
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath" validate:"omitempty,max=4096"` // empty = embedded assets only
	Style    string `yaml:"style" validate:"omitempty,max=100"`
}

// LogConfig defines the diagnostics log.
type LogConfig struct {
	Level string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	File  string `yaml:"file" validate:"omitempty,max=4096"`
}

// Validate checks field values and lengths.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	if err := validation.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrConfigInvalid, err)
	}
	return nil
}

// TimeoutDuration returns the configured timeout, or zero when unset.
func (c *Config) TimeoutDuration() time.Duration {
	if c.Timeout == "" {
		return 0
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0
	}
	return d
}

// DelimiterRune returns the configured delimiter, or zero to detect it.
func (c *Config) DelimiterRune() rune {
	return validation.Delimiters[strings.ToLower(c.Input.Delimiter)]
}

// DefaultConfig returns the configuration used without a config file.
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{File: DefaultOutputFile},
		Log:    LogConfig{Level: "warn"},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
// Unset fields keep their DefaultConfig values.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SearchPaths returns the candidate files for a config name, in search order:
// current directory, then ~/.config/go-csv2labels/, each with .yaml and .yml.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, configDirName, name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing search path for name.
func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}
