package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/Ian9Franco/pdf-generator/internal/fileutil"
	"github.com/Ian9Franco/pdf-generator/internal/layout"
	"github.com/Ian9Franco/pdf-generator/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// AppDirName is the directory under the user config dir searched for configs.
const AppDirName = "pdf-generator"

// Field length limits for multi-tenant safety.
const (
	MaxPathLength        = 4096 // Filesystem paths
	MaxPageSizeLength    = 10   // "letter", "a4", "legal"
	MaxOrientationLength = 10   // "portrait", "landscape"
	MaxFontLength        = 64   // "IBM Plex Sans Condensed"
	MaxColorLength       = 7    // "#rrggbb"
	MaxStrategyLength    = 16   // "flat", "proportional"
	MaxStyleLength       = 64   // Style name
	MaxAddrLength        = 256  // "host:port"
)

// Typography bounds, in points.
const (
	MaxFontSize    = 96.0
	MaxLineSpacing = 4.0
)

var hexColor = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Config holds all configuration for document generation.
type Config struct {
	Input      InputConfig      `yaml:"input"`
	Output     OutputConfig     `yaml:"output"`
	Page       PageConfig       `yaml:"page"`
	Typography TypographyConfig `yaml:"typography"`
	Fit        FitConfig        `yaml:"fit"`
	Assets     AssetsConfig     `yaml:"assets"`
	Server     ServerConfig     `yaml:"server"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default input directory (empty = must specify)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = same as source)
}

// PageConfig defines the page the document is fitted to.
type PageConfig struct {
	Size        string `yaml:"size"`        // "a4", "letter", "legal" (default: "a4")
	Orientation string `yaml:"orientation"` // "portrait", "landscape" (default: "portrait")
}

// TypographyConfig defines the starting typography. Zero sizes take the
// default tier size.
type TypographyConfig struct {
	Title       float64 `yaml:"title"`
	Subtitle    float64 `yaml:"subtitle"`
	Subsubtitle float64 `yaml:"subsubtitle"`
	Normal      float64 `yaml:"normal"`
	LineSpacing float64 `yaml:"lineSpacing"`

	Font             string `yaml:"font"`             // One of the selectable fonts (empty = stylesheet default)
	TitleColor       string `yaml:"titleColor"`       // Hex color (default: "#000000")
	SubtitleColor    string `yaml:"subtitleColor"`    // Hex color (default: "#000000")
	SubsubtitleColor string `yaml:"subsubtitleColor"` // Hex color (default: "#000000")
	TwoColumns       bool   `yaml:"twoColumns"`
}

// FitConfig defines how the fit loop runs.
type FitConfig struct {
	Skip      bool   `yaml:"skip"`      // Render at the starting profile without fitting
	Strategy  string `yaml:"strategy"`  // "flat", "proportional" (default: "flat")
	FontAware bool   `yaml:"fontAware"` // Weight the page estimate by font size
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
	Style    string `yaml:"style"`    // Style name or CSS file path (empty = "default")
}

// ServerConfig defines the HTTP server.
type ServerConfig struct {
	Addr         string `yaml:"addr"`         // Listen address (default: ":8080")
	MaxBodyBytes int64  `yaml:"maxBodyBytes"` // Request body limit (default: 1MB)
	RateLimit    int    `yaml:"rateLimit"`    // Requests per minute per client IP (0 = default, <0 = off)
	Workers      int    `yaml:"workers"`      // Generator pool size (0 = auto)
}

// Server defaults.
const (
	DefaultAddr         = ":8080"
	DefaultMaxBodyBytes = 1 << 20
	DefaultRateLimit    = 30
)

// Validate checks field lengths and enumerated values.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually (e.g., API adapters, library users).
func (c *Config) Validate() error {
	for _, f := range []struct {
		name  string
		value string
		max   int
	}{
		{"input.defaultDir", c.Input.DefaultDir, MaxPathLength},
		{"output.defaultDir", c.Output.DefaultDir, MaxPathLength},
		{"page.size", c.Page.Size, MaxPageSizeLength},
		{"page.orientation", c.Page.Orientation, MaxOrientationLength},
		{"typography.font", c.Typography.Font, MaxFontLength},
		{"typography.titleColor", c.Typography.TitleColor, MaxColorLength},
		{"typography.subtitleColor", c.Typography.SubtitleColor, MaxColorLength},
		{"typography.subsubtitleColor", c.Typography.SubsubtitleColor, MaxColorLength},
		{"fit.strategy", c.Fit.Strategy, MaxStrategyLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
		{"assets.style", c.Assets.Style, MaxPathLength},
		{"server.addr", c.Server.Addr, MaxAddrLength},
	} {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	switch strings.ToLower(c.Page.Size) {
	case "", "a4", "letter", "legal":
	default:
		return fmt.Errorf("%w: page.size %q (must be a4, letter, or legal)", ErrInvalidValue, c.Page.Size)
	}
	switch strings.ToLower(c.Page.Orientation) {
	case "", "portrait", "landscape":
	default:
		return fmt.Errorf("%w: page.orientation %q (must be portrait or landscape)", ErrInvalidValue, c.Page.Orientation)
	}

	if err := c.Typography.validate(); err != nil {
		return err
	}

	if _, err := layout.ParseStrategy(c.Fit.Strategy); err != nil {
		return fmt.Errorf("%w: fit.strategy: %v", ErrInvalidValue, err)
	}

	if c.Server.MaxBodyBytes < 0 {
		return fmt.Errorf("%w: server.maxBodyBytes must not be negative, got %d", ErrInvalidValue, c.Server.MaxBodyBytes)
	}
	if c.Server.Workers < 0 {
		return fmt.Errorf("%w: server.workers must not be negative, got %d", ErrInvalidValue, c.Server.Workers)
	}

	return nil
}

// validate checks sizes, line spacing and colors.
func (t TypographyConfig) validate() error {
	for _, s := range []struct {
		name  string
		value float64
	}{
		{"typography.title", t.Title},
		{"typography.subtitle", t.Subtitle},
		{"typography.subsubtitle", t.Subsubtitle},
		{"typography.normal", t.Normal},
	} {
		if s.value < 0 || s.value > MaxFontSize {
			return fmt.Errorf("%w: %s must be between 0 and %.0f, got %.2f", ErrInvalidValue, s.name, MaxFontSize, s.value)
		}
	}
	if t.LineSpacing < 0 || t.LineSpacing > MaxLineSpacing {
		return fmt.Errorf("%w: typography.lineSpacing must be between 0 and %.0f, got %.2f", ErrInvalidValue, MaxLineSpacing, t.LineSpacing)
	}
	if p := t.Profile(); p != nil {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("typography: %w", err)
		}
	}

	for _, c := range []struct{ name, value string }{
		{"typography.titleColor", t.TitleColor},
		{"typography.subtitleColor", t.SubtitleColor},
		{"typography.subsubtitleColor", t.SubsubtitleColor},
	} {
		if c.value != "" && !hexColor.MatchString(c.value) {
			return fmt.Errorf("%w: %s %q (must be #rgb or #rrggbb)", ErrInvalidValue, c.name, c.value)
		}
	}
	return nil
}

// Profile returns the configured starting profile, with unset sizes taken
// from the default profile. Returns nil when nothing is set.
func (t TypographyConfig) Profile() *layout.TypographyProfile {
	if t.Title == 0 && t.Subtitle == 0 && t.Subsubtitle == 0 && t.Normal == 0 && t.LineSpacing == 0 {
		return nil
	}
	p := layout.DefaultProfile()
	if t.Title > 0 {
		p.Title = t.Title
	}
	if t.Subtitle > 0 {
		p.Subtitle = t.Subtitle
	}
	if t.Subsubtitle > 0 {
		p.Subsubtitle = t.Subsubtitle
	}
	if t.Normal > 0 {
		p.Normal = t.Normal
	}
	if t.LineSpacing > 0 {
		p.LineSpacing = t.LineSpacing
	}
	return &p
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the neutral configuration: A4 portrait, default
// typography, flat fitting, embedded assets.
func DefaultConfig() *Config {
	return &Config{
		Page: PageConfig{Size: "a4", Orientation: "portrait"},
		Fit:  FitConfig{Strategy: "flat"},
		Server: ServerConfig{
			Addr:         DefaultAddr,
			MaxBodyBytes: DefaultMaxBodyBytes,
			RateLimit:    DefaultRateLimit,
		},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Fields absent from the file keep their DefaultConfig values.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.LooksLikePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	cfg := DefaultConfig()
	if err := yamlutil.ReadFile(configPath, cfg, yamlutil.Strict); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		if errors.Is(err, yamlutil.ErrRead) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SearchPaths lists where a config name is looked up, in order:
// ./name.yaml, ./name.yml, then the same under <user config dir>/pdf-generator/.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, AppDirName, name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing path from SearchPaths.
func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.IsRegularFile(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}
