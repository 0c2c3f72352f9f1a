package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Ian9Franco/pdf-generator/internal/config"
	"github.com/Ian9Franco/pdf-generator/internal/fileutil"
	"github.com/Ian9Franco/pdf-generator/internal/hints"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string        // PDFGEN_CONFIG: config file name or path
	Style      string        // PDFGEN_STYLE: CSS style name or path
	Timeout    time.Duration // PDFGEN_TIMEOUT: PDF generation timeout
	InputDir   string        // PDFGEN_INPUT_DIR: default input directory
	OutputDir  string        // PDFGEN_OUTPUT_DIR: default output directory
	PageSize   string        // PDFGEN_PAGE_SIZE: a4, letter, legal
	Font       string        // PDFGEN_FONT: font family
	Strategy   string        // PDFGEN_STRATEGY: flat, proportional
	Workers    int           // PDFGEN_WORKERS: parallel workers
	Addr       string        // PDFGEN_ADDR: server listen address
}

// knownEnvVars lists valid PDFGEN_* environment variables.
var knownEnvVars = map[string]bool{
	"PDFGEN_CONFIG":     true,
	"PDFGEN_STYLE":      true,
	"PDFGEN_TIMEOUT":    true,
	"PDFGEN_INPUT_DIR":  true,
	"PDFGEN_OUTPUT_DIR": true,
	"PDFGEN_PAGE_SIZE":  true,
	"PDFGEN_FONT":       true,
	"PDFGEN_STRATEGY":   true,
	"PDFGEN_WORKERS":    true,
	"PDFGEN_ADDR":       true,
	"PDFGEN_CONTAINER":  true, // read by doctor
}

// loadEnvConfig reads configuration from environment variables.
// Unparsable durations and counts are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("PDFGEN_CONFIG"),
		Style:      os.Getenv("PDFGEN_STYLE"),
		InputDir:   os.Getenv("PDFGEN_INPUT_DIR"),
		OutputDir:  os.Getenv("PDFGEN_OUTPUT_DIR"),
		PageSize:   os.Getenv("PDFGEN_PAGE_SIZE"),
		Font:       os.Getenv("PDFGEN_FONT"),
		Strategy:   os.Getenv("PDFGEN_STRATEGY"),
		Addr:       os.Getenv("PDFGEN_ADDR"),
	}

	if timeout := os.Getenv("PDFGEN_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	if workers := os.Getenv("PDFGEN_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars warns about unrecognized PDFGEN_* variables, which are
// usually typos.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "PDFGEN_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig overlays set environment variables onto cfg.
// Precedence: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Style != "" {
		cfg.Assets.Style = env.Style
	}
	if env.InputDir != "" {
		cfg.Input.DefaultDir = env.InputDir
	}
	if env.OutputDir != "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.PageSize != "" {
		cfg.Page.Size = env.PageSize
	}
	if env.Font != "" {
		cfg.Typography.Font = env.Font
	}
	if env.Strategy != "" {
		cfg.Fit.Strategy = env.Strategy
	}
	if env.Workers > 0 {
		cfg.Server.Workers = env.Workers
	}
	if env.Addr != "" {
		cfg.Server.Addr = env.Addr
	}
}

// loadConfig loads the config named by the flag or PDFGEN_CONFIG, applies
// environment overrides and validates the result.
func loadConfig(flagConfig string, env *envConfig) (*config.Config, error) {
	name := flagConfig
	if name == "" {
		name = env.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if errors.Is(err, config.ErrConfigNotFound) && !fileutil.LooksLikePath(name) {
			return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
		}
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	applyEnvConfig(env, cfg)
	return cfg, nil
}

// resolveTimeout picks the timeout: flag > PDFGEN_TIMEOUT > library default
// (returned as zero).
func resolveTimeout(flagTimeout string, env *envConfig) (time.Duration, error) {
	if flagTimeout != "" {
		d, err := time.ParseDuration(flagTimeout)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTimeout, flagTimeout)
		}
		if d <= 0 {
			return 0, fmt.Errorf("%w: %q (must be positive)", ErrInvalidTimeout, flagTimeout)
		}
		return d, nil
	}
	return env.Timeout, nil
}
