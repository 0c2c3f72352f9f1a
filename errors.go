package pdfgen

import (
	"errors"

	"github.com/Ian9Franco/pdf-generator/internal/assets"
	"github.com/Ian9Franco/pdf-generator/internal/blocks"
	"github.com/Ian9Franco/pdf-generator/internal/layout"
	"github.com/Ian9Franco/pdf-generator/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrEmptyDocument  = blocks.ErrEmptyDocument
	ErrHTMLConversion = pipeline.ErrHTMLConversion
	ErrFrontMatter    = pipeline.ErrFrontMatter
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrPoolClosed     = errors.New("generator pool is closed")

	// Page settings validation errors.
	ErrInvalidPageSize    = errors.New("invalid page size")
	ErrInvalidOrientation = errors.New("invalid orientation")

	// Typography validation errors.
	ErrInvalidColor = errors.New("invalid color")
	ErrUnknownFont  = errors.New("unknown font")

	// Fit engine errors, shared with the layout engine so errors.Is matches
	// whichever layer reported them.
	ErrInvalidGeometry = layout.ErrInvalidGeometry
	ErrInvalidProfile  = layout.ErrInvalidProfile
	ErrInvalidStep     = layout.ErrInvalidStep
	ErrInvalidStrategy = layout.ErrInvalidStrategy

	// Asset loading errors.
	ErrStyleNotFound    = assets.ErrStyleNotFound
	ErrTemplateNotFound = assets.ErrTemplateNotFound
	ErrInvalidAssetPath = errors.New("invalid asset path")
)
