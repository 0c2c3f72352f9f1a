package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	pdfgen "github.com/Ian9Franco/pdf-generator"
)

// Response headers describing the fit of a generated document.
const (
	HeaderFitStatus     = "X-Fit-Status"
	HeaderFitIterations = "X-Fit-Iterations"
	HeaderFitPages      = "X-Fit-Pages"
	HeaderDocumentID    = "X-Document-ID"
)

// statusClientClosedRequest is the nginx convention for a client that went
// away before the response was ready.
const statusClientClosedRequest = 499

// maxTitleLength bounds the title, which also names the download.
const maxTitleLength = 200

// GenerateRequest is the JSON body accepted by the generation endpoints.
type GenerateRequest struct {
	Title    string `json:"title"`
	Markdown string `json:"markdown"`
	CSS      string `json:"css"`
	Lang     string `json:"lang"`

	Page struct {
		Size        string `json:"size"`
		Orientation string `json:"orientation"`
	} `json:"page"`

	Typography struct {
		Profile          *pdfgen.Profile `json:"profile"`
		Font             string          `json:"font"`
		TitleColor       string          `json:"titleColor"`
		SubtitleColor    string          `json:"subtitleColor"`
		SubsubtitleColor string          `json:"subsubtitleColor"`
		TwoColumns       bool            `json:"twoColumns"`
	} `json:"typography"`

	SkipFit  bool `json:"skipFit"`
	HTMLOnly bool `json:"htmlOnly"`
}

// input converts the request to generator input. Requests are untrusted,
// so the document is isolated from the server's filesystem.
func (r *GenerateRequest) input() pdfgen.Input {
	return pdfgen.Input{
		Title:    r.Title,
		Markdown: r.Markdown,
		CSS:      r.CSS,
		Lang:     r.Lang,
		Page: &pdfgen.PageSettings{
			Size:        r.Page.Size,
			Orientation: r.Page.Orientation,
		},
		Typography: &pdfgen.Typography{
			Profile:          r.Typography.Profile,
			Font:             r.Typography.Font,
			TitleColor:       r.Typography.TitleColor,
			SubtitleColor:    r.Typography.SubtitleColor,
			SubsubtitleColor: r.Typography.SubsubtitleColor,
			TwoColumns:       r.Typography.TwoColumns,
		},
		SkipFit:  r.SkipFit,
		HTMLOnly: r.HTMLOnly,
		Isolated: true,
	}
}

// FitResponse is the body of POST /api/fit.
type FitResponse struct {
	DocumentID string `json:"documentId"`
	pdfgen.FitReport
}

func bindRequest(c echo.Context) (*GenerateRequest, error) {
	var req GenerateRequest
	if err := c.Bind(&req); err != nil {
		return nil, err
	}
	if len(req.Title) > maxTitleLength {
		return nil, echo.NewHTTPError(http.StatusBadRequest,
			fmt.Sprintf("title exceeds %d characters", maxTitleLength))
	}
	return &req, nil
}

// withGenerator runs fn with a pooled generator, waiting no longer than
// the request allows.
func (s *Server) withGenerator(ctx context.Context, fn func(Generator) error) error {
	gen, err := s.pool.Acquire(ctx)
	if err != nil {
		return generationError(err)
	}
	defer s.pool.Release(gen)
	return fn(gen)
}

func (s *Server) handleGenerate(c echo.Context) error {
	req, err := bindRequest(c)
	if err != nil {
		return err
	}

	return s.withGenerator(c.Request().Context(), func(gen Generator) error {
		result, err := gen.Generate(c.Request().Context(), req.input())
		if err != nil {
			return generationError(err)
		}

		h := c.Response().Header()
		h.Set(HeaderDocumentID, uuid.NewString())
		h.Set(HeaderFitStatus, result.Status.String())
		h.Set(HeaderFitIterations, strconv.Itoa(result.Iterations))
		h.Set(HeaderFitPages, strconv.Itoa(result.EstimatedPages))

		if req.HTMLOnly {
			return c.HTMLBlob(http.StatusOK, result.HTML)
		}
		h.Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", downloadName(req.Title)))
		return c.Blob(http.StatusOK, "application/pdf", result.PDF)
	})
}

func (s *Server) handleFit(c echo.Context) error {
	req, err := bindRequest(c)
	if err != nil {
		return err
	}

	return s.withGenerator(c.Request().Context(), func(gen Generator) error {
		report, err := gen.Fit(c.Request().Context(), req.input())
		if err != nil {
			return generationError(err)
		}
		return c.JSON(http.StatusOK, FitResponse{
			DocumentID: uuid.NewString(),
			FitReport:  *report,
		})
	})
}

func (s *Server) handlePreview(c echo.Context) error {
	req, err := bindRequest(c)
	if err != nil {
		return err
	}

	return s.withGenerator(c.Request().Context(), func(gen Generator) error {
		html, err := gen.Preview(c.Request().Context(), req.input())
		if err != nil {
			return generationError(err)
		}
		return c.HTML(http.StatusOK, html)
	})
}

func (s *Server) handleFonts(c echo.Context) error {
	return c.JSON(http.StatusOK, pdfgen.Fonts())
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// generationError maps generator errors to HTTP errors. Validation failures
// carry their message; anything else is reported without internals.
func generationError(err error) error {
	switch {
	case isValidationError(err):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
	case errors.Is(err, pdfgen.ErrPoolClosed):
		return echo.NewHTTPError(http.StatusServiceUnavailable, "server is shutting down").SetInternal(err)
	case errors.Is(err, context.DeadlineExceeded):
		return echo.NewHTTPError(http.StatusGatewayTimeout, "generation timed out").SetInternal(err)
	case errors.Is(err, context.Canceled):
		return echo.NewHTTPError(statusClientClosedRequest, "request canceled").SetInternal(err)
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "generation failed").SetInternal(err)
	}
}

var validationErrors = []error{
	pdfgen.ErrEmptyDocument,
	pdfgen.ErrFrontMatter,
	pdfgen.ErrInvalidPageSize,
	pdfgen.ErrInvalidOrientation,
	pdfgen.ErrInvalidColor,
	pdfgen.ErrUnknownFont,
	pdfgen.ErrInvalidProfile,
	pdfgen.ErrInvalidGeometry,
	pdfgen.ErrInvalidStep,
	pdfgen.ErrInvalidStrategy,
}

func isValidationError(err error) bool {
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// downloadName derives an ASCII file name from the document title.
func downloadName(title string) string {
	name := strings.Trim(unsafeFilenameChars.ReplaceAllString(strings.TrimSpace(title), "-"), "-.")
	if name == "" {
		name = "document"
	}
	return name + ".pdf"
}
