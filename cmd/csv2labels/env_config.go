package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alnah/go-csv2labels/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides script-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string // CSV2LABELS_CONFIG: config file name or path
	Layout     string // CSV2LABELS_LAYOUT: layout preset or path
	Style      string // CSV2LABELS_STYLE: CSS style name or path
	Timeout    string // CSV2LABELS_TIMEOUT: browser page load timeout
	Output     string // CSV2LABELS_OUTPUT: output PDF file
	Delimiter  string // CSV2LABELS_DELIMITER: field delimiter
	AssetPath  string // CSV2LABELS_ASSET_PATH: custom asset directory
}

// knownEnvVars lists valid CSV2LABELS_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"CSV2LABELS_CONFIG":     true,
	"CSV2LABELS_LAYOUT":     true,
	"CSV2LABELS_STYLE":      true,
	"CSV2LABELS_TIMEOUT":    true,
	"CSV2LABELS_OUTPUT":     true,
	"CSV2LABELS_DELIMITER":  true,
	"CSV2LABELS_ASSET_PATH": true,
	"CSV2LABELS_CONTAINER":  true, // read by doctor
}

// loadEnvConfig reads configuration from environment variables.
func loadEnvConfig() *envConfig {
	return &envConfig{
		ConfigPath: os.Getenv("CSV2LABELS_CONFIG"),
		Layout:     os.Getenv("CSV2LABELS_LAYOUT"),
		Style:      os.Getenv("CSV2LABELS_STYLE"),
		Timeout:    os.Getenv("CSV2LABELS_TIMEOUT"),
		Output:     os.Getenv("CSV2LABELS_OUTPUT"),
		Delimiter:  os.Getenv("CSV2LABELS_DELIMITER"),
		AssetPath:  os.Getenv("CSV2LABELS_ASSET_PATH"),
	}
}

// warnUnknownEnvVars prints warnings for unrecognized CSV2LABELS_* variables.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "CSV2LABELS_") {
			name, _, _ := strings.Cut(env, "=")
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values over the config file.
// This ensures: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags)
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Layout != "" {
		cfg.Layout.Name = env.Layout
	}
	if env.Style != "" {
		cfg.Assets.Style = env.Style
	}
	if env.Timeout != "" {
		cfg.Timeout = env.Timeout
	}
	if env.Output != "" {
		cfg.Output.File = env.Output
	}
	if env.Delimiter != "" {
		cfg.Input.Delimiter = env.Delimiter
	}
	if env.AssetPath != "" {
		cfg.Assets.BasePath = env.AssetPath
	}
}
