package main

import (
	"errors"
	"os"

	pdfgen "github.com/Ian9Franco/pdf-generator"
	"github.com/Ian9Franco/pdf-generator/internal/config"
)

// Exit codes for the pdfgen CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful run
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, pdfgen.ErrBrowserConnect) ||
		errors.Is(err, pdfgen.ErrPageCreate) ||
		errors.Is(err, pdfgen.ErrPageLoad) ||
		errors.Is(err, pdfgen.ErrPDFGeneration) {
		return ExitBrowser
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrUnknownCommand) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidTimeout) ||
		errors.Is(err, ErrSaveProfileBatch) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, config.ErrProfileParse) ||
		errors.Is(err, pdfgen.ErrEmptyDocument) ||
		errors.Is(err, pdfgen.ErrFrontMatter) ||
		errors.Is(err, pdfgen.ErrInvalidPageSize) ||
		errors.Is(err, pdfgen.ErrInvalidOrientation) ||
		errors.Is(err, pdfgen.ErrInvalidColor) ||
		errors.Is(err, pdfgen.ErrUnknownFont) ||
		errors.Is(err, pdfgen.ErrInvalidProfile) ||
		errors.Is(err, pdfgen.ErrInvalidGeometry) ||
		errors.Is(err, pdfgen.ErrInvalidStep) ||
		errors.Is(err, pdfgen.ErrInvalidStrategy) ||
		errors.Is(err, pdfgen.ErrStyleNotFound) ||
		errors.Is(err, pdfgen.ErrTemplateNotFound) ||
		errors.Is(err, pdfgen.ErrInvalidAssetPath) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrReadMarkdown) ||
		errors.Is(err, ErrWritePDF) ||
		errors.Is(err, ErrWriteHTML) ||
		errors.Is(err, config.ErrProfileNotFound) ||
		errors.Is(err, config.ErrProfileWrite) {
		return ExitIO
	}

	return ExitGeneral
}
