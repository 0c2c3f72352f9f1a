package pdfgen

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/Ian9Franco/pdf-generator/internal/assets"
	"github.com/Ian9Franco/pdf-generator/internal/blocks"
	"github.com/Ian9Franco/pdf-generator/internal/fileutil"
	"github.com/Ian9Franco/pdf-generator/internal/layout"
	"github.com/Ian9Franco/pdf-generator/internal/logging"
	"github.com/Ian9Franco/pdf-generator/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.MarkdownPreprocessor = (*pipeline.CommonMarkPreprocessor)(nil)
	_ pipeline.CSSInjector          = (*pipeline.CSSInjection)(nil)
	_ assets.AssetLoader            = (*assets.AssetResolver)(nil)
	_ assets.AssetLoader            = (*assets.EmbeddedLoader)(nil)
	_ pdfConverter                  = (*rodConverter)(nil)
	_ pdfRenderer                   = (*rodRenderer)(nil)
)

// Generator lays Markdown out on a single page and renders it to PDF.
// Create with NewGenerator, use Generate or Fit, and Close when done.
//
// A Generator is safe for concurrent Fit and Preview calls. Generate shares
// one browser; use a GeneratorPool for parallel rendering.
type Generator struct {
	cfg          generatorConfig
	log          *slog.Logger
	assetLoader  assets.AssetLoader
	producer     *blocks.Producer
	htmlBuilder  *pipeline.HTMLBuilder
	previewer    *pipeline.Previewer
	pdfConverter pdfConverter

	// styleCSS holds a stylesheet read from a file passed to WithStyle.
	styleCSS string
}

// NewGenerator creates a Generator with default configuration.
// Use options to customize behavior (e.g., WithTimeout, WithStrategy, WithStyle).
// Returns error if the asset path or style cannot be resolved.
func NewGenerator(opts ...Option) (*Generator, error) {
	g := &Generator{
		cfg:         generatorConfig{timeout: defaultTimeout},
		assetLoader: assets.NewEmbeddedLoader(),
		producer:    blocks.NewProducer(),
		previewer:   pipeline.NewPreviewer(),
	}

	for _, opt := range opts {
		opt(g)
	}

	if g.cfg.strategy != StrategyFlat && g.cfg.strategy != StrategyProportional {
		return nil, fmt.Errorf("%w: %d", ErrInvalidStrategy, g.cfg.strategy)
	}

	if g.cfg.assetPath != "" {
		resolver, err := assets.NewAssetResolver(g.cfg.assetPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
		}
		g.assetLoader = resolver
	}

	if err := g.resolveStyle(); err != nil {
		return nil, err
	}

	g.htmlBuilder = pipeline.NewHTMLBuilder(g.assetLoader)

	// Tests inject a fake converter before this point.
	if g.pdfConverter == nil {
		g.pdfConverter = newRodConverter(g.cfg.timeout)
	}

	return g, nil
}

// WithLogger sets the logger for generation events. The default is the
// package logger installed with SetLogger.
func WithLogger(l *slog.Logger) Option {
	return func(g *Generator) {
		g.log = l
	}
}

// SetLogger installs the logger used by the fit engine and by generators
// created without WithLogger. Passing nil discards logs.
func SetLogger(l *slog.Logger) {
	logging.SetLogger(l)
}

// logger returns the WithLogger logger or the package logger.
func (g *Generator) logger() *slog.Logger {
	if g.log != nil {
		return g.log
	}
	return logging.Logger()
}

// laidOut is a document after block production and fitting.
type laidOut struct {
	doc    layout.DocumentDefinition
	report FitReport
	title  string
	lang   string
}

// Generate fits the document onto one page, renders HTML and, unless
// input.HTMLOnly is set, PDF. The context is used for cancellation.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (g *Generator) Generate(ctx context.Context, input Input) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	lo, err := g.layOut(ctx, input)
	if err != nil {
		return nil, err
	}

	extraCSS := g.styleCSS
	if input.CSS != "" {
		extraCSS += "\n" + input.CSS
	}

	htmlContent, err := g.htmlBuilder.Build(ctx, lo.doc, pipeline.HTMLOptions{
		Title:     lo.title,
		Lang:      lo.lang,
		Style:     g.styleName(),
		ExtraCSS:  extraCSS,
		SourceDir: sourceDir(input),
	})
	if err != nil {
		return nil, fmt.Errorf("building HTML: %w", err)
	}
	if input.Isolated {
		if htmlContent, err = pipeline.StripLocalReferences(htmlContent); err != nil {
			return nil, fmt.Errorf("building HTML: %w", err)
		}
	}

	res := &Result{
		FitReport: lo.report,
		HTML:      []byte(htmlContent),
	}

	if input.HTMLOnly {
		return res, nil
	}

	pdfBytes, err := g.pdfConverter.ToPDF(ctx, htmlContent, &pdfOptions{Page: lo.doc.PageSize, Isolated: input.Isolated})
	if err != nil {
		return nil, fmt.Errorf("converting to PDF: %w", err)
	}
	res.PDF = pdfBytes

	g.logger().Info("document generated",
		slog.String("status", res.Status.String()),
		slog.Int("iterations", res.Iterations),
		slog.Int("bytes", len(pdfBytes)),
	)
	return res, nil
}

// Fit runs block production and fitting only; no browser is started.
func (g *Generator) Fit(ctx context.Context, input Input) (report *FitReport, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	lo, err := g.layOut(ctx, input)
	if err != nil {
		return nil, err
	}
	return &lo.report, nil
}

// Preview renders input.Markdown straight to HTML with syntax highlighting,
// without fitting. Front matter supplies the title when input.Title is empty.
func (g *Generator) Preview(ctx context.Context, input Input) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	fm, body, err := pipeline.SplitFrontMatter(input.Markdown)
	if err != nil {
		return "", err
	}
	title := input.Title
	if title == "" {
		title = fm.Title
	}
	out, err = g.previewer.Preview(ctx, body, pipeline.PreviewOptions{
		Title:     title,
		CSS:       input.CSS,
		SourceDir: sourceDir(input),
	})
	if err != nil || !input.Isolated {
		return out, err
	}
	return pipeline.StripLocalReferences(out)
}

// sourceDir is where relative paths resolve; isolated input gets none.
func sourceDir(input Input) string {
	if input.Isolated {
		return ""
	}
	return input.SourceDir
}

// Close releases resources (headless Chrome browser).
func (g *Generator) Close() error {
	if g.pdfConverter != nil {
		return g.pdfConverter.Close()
	}
	return nil
}

// layOut validates input, produces blocks and fits them. With SkipFit the
// floor is pinned to the starting body size so the engine only estimates.
func (g *Generator) layOut(ctx context.Context, input Input) (*laidOut, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := g.validateInput(input); err != nil {
		return nil, err
	}

	fm, body, err := pipeline.SplitFrontMatter(input.Markdown)
	if err != nil {
		return nil, err
	}
	title := input.Title
	if title == "" {
		title = fm.Title
	}
	lang := input.Lang
	if lang == "" {
		lang = fm.Lang
	}

	typo := input.Typography
	if typo == nil {
		typo = &Typography{}
	}
	start := DefaultProfile()
	if typo.Profile != nil {
		start = *typo.Profile
	}

	content, err := g.producer.Blocks(ctx, title, body, blocks.Style{
		Profile:          start,
		TitleColor:       typo.TitleColor,
		SubtitleColor:    typo.SubtitleColor,
		SubsubtitleColor: typo.SubsubtitleColor,
	})
	if err != nil {
		return nil, err
	}

	var font string
	if f, ok := LookupFont(typo.Font); ok {
		font = f.Name
	}
	columns := 1
	if typo.TwoColumns {
		columns = 2
	}

	doc := layout.DocumentDefinition{
		Content: content,
		DefaultStyle: layout.Style{
			Font:        font,
			FontSize:    start.Normal,
			LineSpacing: start.LineSpacing,
		},
		PageSize: input.Page.Geometry(),
		Columns:  columns,
	}

	opts := layout.FitOptions{
		Profile:   &start,
		Strategy:  g.cfg.strategy,
		Estimator: layout.Estimator{FontAware: g.cfg.fontAware},
	}
	if input.SkipFit {
		opts.Floor = start.Normal
	}

	fitted, err := layout.Fit(doc, opts)
	if err != nil {
		return nil, err
	}

	g.logger().Debug("document laid out",
		slog.Int("blocks", len(content)),
		slog.String("status", fitted.Status.String()),
		slog.Int("pages", fitted.EstimatedPages),
	)

	return &laidOut{
		doc:   fitted.Document,
		title: title,
		lang:  lang,
		report: FitReport{
			Profile:        fitted.Profile,
			Status:         fitted.Status,
			Iterations:     fitted.Iterations,
			EstimatedPages: fitted.EstimatedPages,
			Blocks:         len(content),
		},
	}, nil
}

// styleName returns the stylesheet name handed to the HTML builder.
func (g *Generator) styleName() string {
	if g.cfg.style == "" || fileutil.LooksLikePath(g.cfg.style) {
		return assets.DefaultStyleName
	}
	return g.cfg.style
}

// resolveStyle checks the configured style. A file path is read and layered
// over the default stylesheet; a name must exist in the asset loader.
func (g *Generator) resolveStyle() error {
	name := strings.TrimSpace(g.cfg.style)
	if name == "" {
		return nil
	}

	if fileutil.LooksLikePath(name) {
		content, err := os.ReadFile(name) // #nosec G304 -- user-provided path
		if err != nil {
			return fmt.Errorf("loading style file %q: %w", name, err)
		}
		g.styleCSS = string(content)
		return nil
	}

	if _, err := g.assetLoader.LoadStyle(name); err != nil {
		return fmt.Errorf("loading style %q: %w", name, err)
	}
	return nil
}

// validateInput checks that required fields are present and valid.
//
// This is a TRUST BOUNDARY for direct library users who build Input manually.
// CLI and server input is validated earlier by config.Validate; both paths
// converge here.
func (g *Generator) validateInput(input Input) error {
	if strings.TrimSpace(input.Title) == "" && strings.TrimSpace(input.Markdown) == "" {
		return ErrEmptyDocument
	}
	if err := input.Page.Validate(); err != nil {
		return err
	}
	if err := input.Typography.Validate(); err != nil {
		return err
	}
	return nil
}
