package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/alnah/go-resume/internal/config"
)

// envPrefix marks environment variables read by the CLI.
const envPrefix = "RESUME_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string // RESUME_CONFIG: config file name or path
	DataSource string // RESUME_DATA: section directory or YAML file
	Template   string // RESUME_TEMPLATE: template name
	OutputDir  string // RESUME_OUTPUT_DIR: output directory
	Engine     string // RESUME_ENGINE: LaTeX engine command
	Timeout    string // RESUME_TIMEOUT: engine timeout
	AssetPath  string // RESUME_ASSET_PATH: custom asset directory
}

// knownEnvVars lists valid RESUME_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"RESUME_CONFIG":     true,
	"RESUME_DATA":       true,
	"RESUME_TEMPLATE":   true,
	"RESUME_OUTPUT_DIR": true,
	"RESUME_ENGINE":     true,
	"RESUME_TIMEOUT":    true,
	"RESUME_ASSET_PATH": true,
}

// loadEnvConfig reads configuration from environment variables.
func loadEnvConfig(getenv func(string) string) *envConfig {
	return &envConfig{
		ConfigPath: getenv("RESUME_CONFIG"),
		DataSource: getenv("RESUME_DATA"),
		Template:   getenv("RESUME_TEMPLATE"),
		OutputDir:  getenv("RESUME_OUTPUT_DIR"),
		Engine:     getenv("RESUME_ENGINE"),
		Timeout:    getenv("RESUME_TIMEOUT"),
		AssetPath:  getenv("RESUME_ASSET_PATH"),
	}
}

// warnUnknownEnvVars logs warnings for unrecognized RESUME_* variables.
// Helps catch typos like RESUME_TEMPLTE.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	for _, env := range environ {
		if !strings.HasPrefix(env, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(env, "=")
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig overrides config values with set environment variables.
// Precedence: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.DataSource != "" {
		cfg.Data.Source = env.DataSource
	}
	if env.Template != "" {
		cfg.Template.Name = env.Template
	}
	if env.OutputDir != "" {
		cfg.Output.Dir = env.OutputDir
	}
	if env.Engine != "" {
		cfg.Engine.Command = env.Engine
	}
	if env.Timeout != "" {
		cfg.Engine.Timeout = env.Timeout
	}
	if env.AssetPath != "" {
		cfg.Assets.BasePath = env.AssetPath
	}
}
