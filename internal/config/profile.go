package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/Ian9Franco/pdf-generator/internal/layout"
	"github.com/Ian9Franco/pdf-generator/internal/yamlutil"
)

// Profile state errors.
var (
	ErrProfileNotFound = errors.New("profile file not found")
	ErrProfileParse    = errors.New("failed to parse profile")
	ErrProfileWrite    = errors.New("failed to write profile")
)

// LoadProfile reads a typography profile saved by SaveProfile, so a run can
// resume from the sizes a previous run ended with.
func LoadProfile(path string) (layout.TypographyProfile, error) {
	var p layout.TypographyProfile
	if err := yamlutil.ReadFile(path, &p, yamlutil.Strict); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return p, fmt.Errorf("%w: %s", ErrProfileNotFound, path)
		}
		return p, fmt.Errorf("%w: %s: %v", ErrProfileParse, path, err)
	}
	if err := p.Validate(); err != nil {
		return p, fmt.Errorf("%w: %s: %w", ErrProfileParse, path, err)
	}
	return p, nil
}

// SaveProfile writes p to path as YAML, replacing any previous file.
func SaveProfile(path string, p layout.TypographyProfile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if err := yamlutil.WriteFile(path, p); err != nil {
		return fmt.Errorf("%w: %v", ErrProfileWrite, err)
	}
	return nil
}
