package pdfgen

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/Ian9Franco/pdf-generator/internal/fileutil"
	"github.com/Ian9Franco/pdf-generator/internal/process"
)

// pdfConverter turns a complete HTML document into PDF bytes.
type pdfConverter interface {
	ToPDF(ctx context.Context, htmlContent string, opts *pdfOptions) ([]byte, error)
	Close() error
}

// pdfRenderer prints a local HTML file, or HTML set on a blank page. Kept
// separate from pdfConverter so the handoff can be tested without a browser.
type pdfRenderer interface {
	RenderFromFile(ctx context.Context, filePath string, opts *pdfOptions) ([]byte, error)
	RenderContent(ctx context.Context, htmlContent string, opts *pdfOptions) ([]byte, error)
}

type pdfOptions struct {
	Page Geometry
	// Isolated prints from about:blank, whose origin Chrome does not let
	// load file:// resources.
	Isolated bool
}

const pointsPerInch = 72.0

// rodRenderer drives one headless Chrome, launched on first use. When no
// binary is configured rod downloads Chromium.
type rodRenderer struct {
	timeout time.Duration

	mu       sync.Mutex
	browser  *rod.Browser
	launcher *launcher.Launcher
}

func newRodRenderer(timeout time.Duration) *rodRenderer {
	return &rodRenderer{timeout: timeout}
}

// browserLauncher configures Chrome from ROD_BROWSER_BIN, ROD_NO_SANDBOX
// and CI.
func browserLauncher() *launcher.Launcher {
	bin := os.Getenv("ROD_BROWSER_BIN")
	l := launcher.New()
	if bin != "" {
		l = l.Bin(bin)
	}
	if sandboxDisabled(bin) {
		l = l.NoSandbox(true)
	}
	return l
}

// sandboxDisabled is true for pre-installed browsers, which usually run in
// containers, for CI and on explicit request.
func sandboxDisabled(bin string) bool {
	return bin != "" || os.Getenv("CI") == "true" || os.Getenv("ROD_NO_SANDBOX") == "1"
}

// connect returns the running browser, launching it if needed.
func (r *rodRenderer) connect() (*rod.Browser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.browser != nil {
		return r.browser, nil
	}

	l := browserLauncher()
	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	b := rod.New().ControlURL(controlURL)
	if err := b.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	r.browser, r.launcher = b, l
	return b, nil
}

// Close shuts the browser down, then kills any Chrome helpers that outlive it.
func (r *rodRenderer) Close() error {
	r.mu.Lock()
	b, l := r.browser, r.launcher
	r.browser, r.launcher = nil, nil
	r.mu.Unlock()

	if b == nil {
		return nil
	}
	err := b.Close()
	if l != nil {
		if pid := l.PID(); pid > 0 {
			process.KillProcessGroup(pid)
		}
		l.Kill()
		l.Cleanup()
	}
	return err
}

// RenderFromFile loads filePath in a new tab and prints it. Without a
// deadline on ctx the renderer's own timeout bounds the load and print.
func (r *rodRenderer) RenderFromFile(ctx context.Context, filePath string, opts *pdfOptions) ([]byte, error) {
	return r.render(ctx, "file://"+filePath, opts, nil)
}

// RenderContent sets htmlContent as the document of a blank tab and prints
// it. Relative and file:// references cannot load from that origin.
func (r *rodRenderer) RenderContent(ctx context.Context, htmlContent string, opts *pdfOptions) ([]byte, error) {
	return r.render(ctx, "about:blank", opts, func(page *rod.Page) error {
		return page.SetDocumentContent(htmlContent)
	})
}

// render opens url in a new tab, applies fill when set, waits for the load
// and prints.
func (r *rodRenderer) render(ctx context.Context, url string, opts *pdfOptions, fill func(*rod.Page) error) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, ok := ctx.Deadline(); !ok && r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	browser, err := r.connect()
	if err != nil {
		return nil, err
	}

	// The tab is closed with the browser's context, which outlives ctx.
	tab, err := browser.Page(proto.TargetCreateTarget{URL: url})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer tab.Close()
	page := tab.Context(ctx)

	if fill != nil {
		if err := fill(page); err != nil {
			return nil, browserErr(ctx, ErrPageLoad, err)
		}
	}
	if err := page.WaitLoad(); err != nil {
		return nil, browserErr(ctx, ErrPageLoad, err)
	}

	stream, err := page.PDF(printOptions(opts))
	if err != nil {
		return nil, browserErr(ctx, ErrPDFGeneration, err)
	}
	data, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}
	return data, nil
}

// browserErr wraps err in sentinel, and also in ctx's error when ctx ended,
// so callers can tell a timeout from a browser failure.
func browserErr(ctx context.Context, sentinel, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("%w: %w", sentinel, ctxErr)
	}
	return fmt.Errorf("%w: %v", sentinel, err)
}

// printOptions sizes the paper from the page geometry, A4 when unset.
// Margins come from the document's @page rule, so Chrome adds none.
func printOptions(opts *pdfOptions) *proto.PagePrintToPDF {
	paper := (*PageSettings)(nil).Geometry()
	if opts != nil && opts.Page.Width > 0 && opts.Page.Height > 0 {
		paper = opts.Page
	}

	var zero float64
	return &proto.PagePrintToPDF{
		PaperWidth:        ptr(paper.Width / pointsPerInch),
		PaperHeight:       ptr(paper.Height / pointsPerInch),
		MarginTop:         &zero,
		MarginRight:       &zero,
		MarginBottom:      &zero,
		MarginLeft:        &zero,
		PrintBackground:   true,
		PreferCSSPageSize: true,
	}
}

func ptr[T any](v T) *T { return &v }

// rodConverter hands HTML to a pdfRenderer through a temp file. A file://
// origin lets the page load local images that a data URL could not.
// Isolated documents skip the file and go straight onto a blank page.
type rodConverter struct {
	renderer pdfRenderer
}

func newRodConverter(timeout time.Duration) *rodConverter {
	return &rodConverter{renderer: newRodRenderer(timeout)}
}

func (c *rodConverter) ToPDF(ctx context.Context, htmlContent string, opts *pdfOptions) ([]byte, error) {
	if opts != nil && opts.Isolated {
		return c.renderer.RenderContent(ctx, htmlContent, opts)
	}
	path, remove, err := fileutil.WriteTemp([]byte(htmlContent), "html")
	if err != nil {
		return nil, err
	}
	defer remove()
	return c.renderer.RenderFromFile(ctx, path, opts)
}

func (c *rodConverter) Close() error {
	if closer, ok := c.renderer.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
