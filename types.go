package pdfgen

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/Ian9Franco/pdf-generator/internal/layout"
)

// Page size constants.
const (
	PageSizeA4     = "a4"
	PageSizeLetter = "letter"
	PageSizeLegal  = "legal"
)

// Orientation constants.
const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// Page dimensions in points, portrait.
var pageSizes = map[string]Geometry{
	PageSizeA4:     {Width: 595, Height: 842},
	PageSizeLetter: {Width: 612, Height: 792},
	PageSizeLegal:  {Width: 612, Height: 1008},
}

// Geometry is a concrete page size in points.
type Geometry = layout.PageGeometry

// Profile is the set of tier sizes and line spacing a document is laid out
// with. See DefaultProfile.
type Profile = layout.TypographyProfile

// DefaultProfile returns the 18/16/14/12pt profile with 1.2 line spacing.
func DefaultProfile() Profile {
	return layout.DefaultProfile()
}

// Strategy selects how tier sizes shrink while fitting.
type Strategy = layout.Strategy

// Rescale strategies.
const (
	StrategyFlat         = layout.StrategyFlat
	StrategyProportional = layout.StrategyProportional
)

// ParseStrategy parses "flat" or "proportional" (case-insensitive).
func ParseStrategy(s string) (Strategy, error) {
	return layout.ParseStrategy(s)
}

// FitStatus tells how fitting ended.
type FitStatus = layout.Status

// Fit outcomes.
const (
	StatusFitted       = layout.StatusFitted
	StatusFloorReached = layout.StatusFloorReached
)

// PageSettings selects the page the document must fit on.
type PageSettings struct {
	Size        string // "a4", "letter", "legal"
	Orientation string // "portrait", "landscape"
}

// DefaultPageSettings returns A4 portrait.
func DefaultPageSettings() *PageSettings {
	return &PageSettings{
		Size:        PageSizeA4,
		Orientation: OrientationPortrait,
	}
}

// Validate checks that page settings are valid.
// Returns nil if p is nil (nil means use defaults).
// Empty fields fall back to defaults; comparison is case-insensitive.
func (p *PageSettings) Validate() error {
	if p == nil {
		return nil
	}

	if p.Size != "" {
		if _, ok := pageSizes[strings.ToLower(p.Size)]; !ok {
			return fmt.Errorf("%w: %q (must be a4, letter, or legal)", ErrInvalidPageSize, p.Size)
		}
	}

	switch strings.ToLower(p.Orientation) {
	case "", OrientationPortrait, OrientationLandscape:
	default:
		return fmt.Errorf("%w: %q (must be portrait or landscape)", ErrInvalidOrientation, p.Orientation)
	}

	return nil
}

// Geometry resolves the preset to concrete dimensions. Landscape swaps the
// axes. A nil receiver or unknown size resolves to A4 portrait; call Validate
// first to reject unknown values.
func (p *PageSettings) Geometry() Geometry {
	g := pageSizes[PageSizeA4]
	if p == nil {
		return g
	}
	if sized, ok := pageSizes[strings.ToLower(p.Size)]; ok {
		g = sized
	}
	if strings.EqualFold(p.Orientation, OrientationLandscape) {
		g.Width, g.Height = g.Height, g.Width
	}
	return g
}

var hexColor = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Typography sets the starting sizes, font and heading colors.
type Typography struct {
	// Profile is the starting profile. Nil means DefaultProfile(). Passing
	// the profile of a previous Result continues from where it stopped.
	Profile *Profile

	// Font is one of Fonts(); empty means the stylesheet default.
	Font string

	// Heading colors as #rgb or #rrggbb; empty means black.
	TitleColor       string
	SubtitleColor    string
	SubsubtitleColor string

	// TwoColumns lays the content out in two columns.
	TwoColumns bool
}

// Validate checks that typography settings are valid.
// Returns nil if t is nil (nil means use defaults).
func (t *Typography) Validate() error {
	if t == nil {
		return nil
	}

	if t.Profile != nil {
		if err := t.Profile.Validate(); err != nil {
			return err
		}
	}

	if t.Font != "" {
		if _, ok := LookupFont(t.Font); !ok {
			return fmt.Errorf("%w: %q", ErrUnknownFont, t.Font)
		}
	}

	for _, c := range []struct{ name, value string }{
		{"title", t.TitleColor},
		{"subtitle", t.SubtitleColor},
		{"subsubtitle", t.SubsubtitleColor},
	} {
		if c.value != "" && !hexColor.MatchString(c.value) {
			return fmt.Errorf("%w: %s color %q (must be #rgb or #rrggbb)", ErrInvalidColor, c.name, c.value)
		}
	}

	return nil
}

// Input contains generation parameters.
type Input struct {
	Title      string        // Document title, rendered as the first heading (optional)
	Markdown   string        // Markdown content; may start with a YAML front matter block
	CSS        string        // Extra CSS appended to the stylesheet (optional)
	Lang       string        // HTML lang attribute (optional, default "en")
	SourceDir  string        // Directory relative image paths resolve against (optional)
	Page       *PageSettings // Page settings (optional, nil = A4 portrait)
	Typography *Typography   // Typography (optional, nil = defaults)

	// HTMLOnly skips PDF rendering, for debugging.
	HTMLOnly bool
	// SkipFit lays the document out at the starting profile without fitting.
	SkipFit bool
	// Isolated keeps the document away from local files, for untrusted
	// input: SourceDir is ignored, local references are stripped from the
	// HTML, and the PDF is printed from an about:blank page instead of a
	// file:// one.
	Isolated bool
}

// FitReport summarizes a fit run.
type FitReport struct {
	Profile        Profile   `json:"profile"`
	Status         FitStatus `json:"status"`
	Iterations     int       `json:"iterations"`
	EstimatedPages int       `json:"estimatedPages"`
	Blocks         int       `json:"blocks"`
}

// Result is the output of Generate.
type Result struct {
	FitReport

	HTML []byte
	PDF  []byte // nil when Input.HTMLOnly is set
}

// Option configures a Generator.
type Option func(*Generator)

// generatorConfig holds internal configuration for Generator.
type generatorConfig struct {
	timeout   time.Duration
	strategy  Strategy
	fontAware bool
	assetPath string
	style     string
}

// defaultTimeout is used when no timeout is specified.
const defaultTimeout = 30 * time.Second

// WithTimeout sets the generation timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("pdfgen: WithTimeout duration must be positive")
	}
	return func(g *Generator) {
		g.cfg.timeout = d
	}
}

// WithStrategy selects the rescale strategy. The default is StrategyFlat.
func WithStrategy(s Strategy) Option {
	return func(g *Generator) {
		g.cfg.strategy = s
	}
}

// WithFontAwareEstimate weights the page estimate by font size, so that
// shrinking type reduces the estimate. Off by default.
func WithFontAwareEstimate(enabled bool) Option {
	return func(g *Generator) {
		g.cfg.fontAware = enabled
	}
}

// WithAssetPath sets a directory whose styles/ and templates/ override the
// embedded assets.
func WithAssetPath(path string) Option {
	return func(g *Generator) {
		g.cfg.assetPath = path
	}
}

// WithStyle selects a stylesheet by name ("default", "compact", or one from
// the asset path).
func WithStyle(name string) Option {
	return func(g *Generator) {
		g.cfg.style = name
	}
}
