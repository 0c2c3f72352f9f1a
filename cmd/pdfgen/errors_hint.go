package main

import (
	"context"
	"errors"

	pdfgen "github.com/Ian9Franco/pdf-generator"
	"github.com/Ian9Franco/pdf-generator/internal/assets"
	"github.com/Ian9Franco/pdf-generator/internal/config"
	"github.com/Ian9Franco/pdf-generator/internal/hints"
)

// hintFor returns an actionable hint for err, or "".
// Config-not-found hints are attached where the searched paths are known.
func hintFor(err error) string {
	switch {
	case errors.Is(err, pdfgen.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, pdfgen.ErrPageLoad):
		return hints.ForTimeout()
	case errors.Is(err, pdfgen.ErrStyleNotFound):
		return hints.ForStyleNotFound(assets.StyleNames())
	case errors.Is(err, pdfgen.ErrUnknownFont):
		return hints.ForUnknownFont(fontNames())
	case errors.Is(err, config.ErrProfileNotFound):
		return hints.ForProfileNotFound()
	}
	return ""
}
