package assets

import (
	"errors"
	"fmt"
	"strings"
)

const (
	DefaultStyleName     = "default"
	CompactStyleName     = "compact"
	DocumentTemplateName = "document"
)

var (
	ErrStyleNotFound    = errors.New("style not found")
	ErrTemplateNotFound = errors.New("template not found")
	ErrInvalidAssetName = errors.New("invalid asset name")
	ErrInvalidBasePath  = errors.New("invalid base path")

	// ErrAssetRead covers everything but absence: permissions, directories
	// in place of files, and symlinks pointing out of the asset directory.
	ErrAssetRead = errors.New("failed to read asset")
)

// AssetLoader loads stylesheets and HTML templates by bare name.
type AssetLoader interface {
	// LoadStyle returns the CSS of styles/{name}.css, or ErrStyleNotFound.
	LoadStyle(name string) (string, error)

	// LoadTemplate returns the HTML of templates/{name}.html, or ErrTemplateNotFound.
	LoadTemplate(name string) (string, error)
}

// maxAssetNameLength bounds names coming from config files and HTTP requests.
const maxAssetNameLength = 64

// ValidateAssetName accepts non-empty names of up to 64 characters with no
// path separator, dot or NUL.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if len(name) > maxAssetNameLength {
		return fmt.Errorf("%w: longer than %d characters", ErrInvalidAssetName, maxAssetNameLength)
	}
	if strings.ContainsAny(name, "/\\.\x00") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
