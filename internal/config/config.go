package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/alnah/go-resume/internal/fileutil"
	"github.com/alnah/go-resume/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidField    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxPathLength        = 4096
	MaxNameLength        = 100 // template, output and section names
	MaxCommandLength     = 255
	MaxArgLength         = 1024
	MaxArgs              = 32
	MaxSections          = 32
	MaxDateLength        = 60
	MaxTimeoutLength     = 20
	MaxLinkLength        = 255
	MaxLinks             = 16
	DefaultTimeoutString = "2m"
)

// Template keys that cannot be used as section names.
const (
	ReservedSectionName = "meta" // build metadata
	RawSectionName      = "raw"  // sections before markup conversion
)

// DefaultAssetDir is used as assets.basePath when the field is empty and
// the directory exists in the working directory.
const DefaultAssetDir = "assets"

// appDirName is the directory under os.UserConfigDir searched for named configs.
const appDirName = "go-resume"

var (
	sectionNamePattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)
	outputNamePattern  = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)
)

// DefaultSections lists section files in load order.
var DefaultSections = []string{
	"personal",
	"config",
	"experience",
	"projects",
	"education",
	"skills",
	"research",
}

// DefaultAssetLinks are asset entries linked into the output directory for
// the LaTeX engine.
var DefaultAssetLinks = []string{"awesome-cv.cls", "fonts"}

// Config holds all configuration for resume generation.
type Config struct {
	Data     DataConfig     `yaml:"data"`
	Template TemplateConfig `yaml:"template"`
	Output   OutputConfig   `yaml:"output"`
	Engine   EngineConfig   `yaml:"engine"`
	Assets   AssetsConfig   `yaml:"assets"`
	Document DocumentConfig `yaml:"document"`
}

// DataConfig defines where resume content is read from.
type DataConfig struct {
	Source   string   `yaml:"source"`   // Directory of section files or a single YAML file
	Sections []string `yaml:"sections"` // Load order (empty = DefaultSections)
}

// TemplateConfig selects the LaTeX template.
type TemplateConfig struct {
	Name string `yaml:"name"` // Embedded name or custom assets/templates/<name>.tex
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	Dir  string `yaml:"dir"`  // Directory for .tex and .pdf files
	Name string `yaml:"name"` // Base name without extension
}

// EngineConfig defines the LaTeX engine invocation.
type EngineConfig struct {
	Command string   `yaml:"command"` // Executable name or path
	Args    []string `yaml:"args"`    // Extra args placed before the .tex file
	Timeout string   `yaml:"timeout"` // Go duration, e.g. "90s", "2m"
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string   `yaml:"basePath"` // Empty = ./assets if present, else embedded templates only
	Links    []string `yaml:"links"`    // Entries of basePath linked into the output dir
}

// DocumentConfig holds values exposed to templates as build metadata.
type DocumentConfig struct {
	Date string `yaml:"date"` // Literal, "auto", "auto:FORMAT" or "auto:preset"
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Data: DataConfig{
			Source:   "data",
			Sections: append([]string(nil), DefaultSections...),
		},
		Template: TemplateConfig{Name: "awesome-cv"},
		Output:   OutputConfig{Dir: "output", Name: "resume"},
		Engine: EngineConfig{
			Command: "tectonic",
			Timeout: DefaultTimeoutString,
		},
		Assets: AssetsConfig{
			BasePath: "",
			Links:    append([]string(nil), DefaultAssetLinks...),
		},
		Document: DocumentConfig{Date: ""},
	}
}

// Validate checks field lengths and formats.
// Called automatically by LoadConfig, but available for callers
// who build a Config from flags and environment variables.
func (c *Config) Validate() error {
	if err := validateFieldLength("data.source", c.Data.Source, MaxPathLength); err != nil {
		return err
	}
	if len(c.Data.Sections) > MaxSections {
		return fmt.Errorf("%w: data.sections has %d entries (max %d)", ErrInvalidField, len(c.Data.Sections), MaxSections)
	}
	seen := make(map[string]bool, len(c.Data.Sections))
	for i, s := range c.Data.Sections {
		field := fmt.Sprintf("data.sections[%d]", i)
		if err := ValidateSectionName(s); err != nil {
			return fmt.Errorf("%s: %w", field, err)
		}
		if seen[s] {
			return fmt.Errorf("%w: %s: duplicate section %q", ErrInvalidField, field, s)
		}
		seen[s] = true
	}

	if err := validateFieldLength("template.name", c.Template.Name, MaxNameLength); err != nil {
		return err
	}

	if err := validateFieldLength("output.dir", c.Output.Dir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.name", c.Output.Name, MaxNameLength); err != nil {
		return err
	}
	if c.Output.Name != "" {
		if err := ValidateOutputName(c.Output.Name); err != nil {
			return fmt.Errorf("output.name: %w", err)
		}
	}

	if err := validateFieldLength("engine.command", c.Engine.Command, MaxCommandLength); err != nil {
		return err
	}
	if len(c.Engine.Args) > MaxArgs {
		return fmt.Errorf("%w: engine.args has %d entries (max %d)", ErrInvalidField, len(c.Engine.Args), MaxArgs)
	}
	for i, a := range c.Engine.Args {
		if err := validateFieldLength(fmt.Sprintf("engine.args[%d]", i), a, MaxArgLength); err != nil {
			return err
		}
	}
	if c.Engine.Timeout != "" {
		if err := validateFieldLength("engine.timeout", c.Engine.Timeout, MaxTimeoutLength); err != nil {
			return err
		}
		if _, err := ParseTimeout(c.Engine.Timeout); err != nil {
			return err
		}
	}

	if err := validateFieldLength("assets.basePath", c.Assets.BasePath, MaxPathLength); err != nil {
		return err
	}
	if len(c.Assets.Links) > MaxLinks {
		return fmt.Errorf("%w: assets.links has %d entries (max %d)", ErrInvalidField, len(c.Assets.Links), MaxLinks)
	}
	for i, l := range c.Assets.Links {
		field := fmt.Sprintf("assets.links[%d]", i)
		if err := validateFieldLength(field, l, MaxLinkLength); err != nil {
			return err
		}
		if l == "" || fileutil.IsFilePath(l) || l == "." || l == ".." {
			return fmt.Errorf("%w: %s must be a plain entry name, got %q", ErrInvalidField, field, l)
		}
	}

	if err := validateFieldLength("document.date", c.Document.Date, MaxDateLength); err != nil {
		return err
	}

	return nil
}

// ValidateSectionName checks that a section name is usable as a file stem
// and a template key.
func ValidateSectionName(name string) error {
	if name == ReservedSectionName || name == RawSectionName {
		return fmt.Errorf("%w: section name %q is reserved", ErrInvalidField, name)
	}
	if len(name) > MaxNameLength || !sectionNamePattern.MatchString(name) {
		return fmt.Errorf("%w: section name %q (lowercase letters, digits, '_')", ErrInvalidField, name)
	}
	return nil
}

// ValidateOutputName checks that name is a plain base name for the .tex and
// .pdf files: no separators and no extension.
func ValidateOutputName(name string) error {
	if len(name) > MaxNameLength || !outputNamePattern.MatchString(name) {
		return fmt.Errorf("%w: output name %q (letters, digits, '.', '_', '-')", ErrInvalidField, name)
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".tex", ".pdf":
		return fmt.Errorf("%w: output name %q must not include an extension", ErrInvalidField, name)
	}
	return nil
}

// ResolveAssetPath returns path, or DefaultAssetDir when path is empty and
// ./assets exists. An empty result means embedded templates only.
func ResolveAssetPath(path string) string {
	if path == "" && fileutil.DirExists(DefaultAssetDir) {
		return DefaultAssetDir
	}
	return path
}

// ParseTimeout parses a positive Go duration string.
func ParseTimeout(s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%w: engine.timeout %q: %v", ErrInvalidField, s, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: engine.timeout must be positive, got %s", ErrInvalidField, s)
	}
	return d, nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Fields missing from the file keep their DefaultConfig values.
// Returns error if the file is not found (no silent fallback).
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
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, configPath, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SearchPaths returns the locations tried for a config name, in order.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, appDirName, name+ext))
		}
	}

	return paths
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries the current directory first, then ~/.config/go-resume/, each with
// .yaml then .yml.
func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
