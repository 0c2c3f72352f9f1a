package pdfgen

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"
)

// mockRenderer implements pdfRenderer for testing.
type mockRenderer struct {
	Result     []byte
	Err        error
	CalledWith string
	Content    string
	Inline     string
	Opts       *pdfOptions
}

func (m *mockRenderer) RenderFromFile(ctx context.Context, filePath string, opts *pdfOptions) ([]byte, error) {
	m.CalledWith = filePath
	m.Opts = opts
	if data, err := os.ReadFile(filePath); err == nil {
		m.Content = string(data)
	}
	return m.Result, m.Err
}

func (m *mockRenderer) RenderContent(ctx context.Context, htmlContent string, opts *pdfOptions) ([]byte, error) {
	m.Inline = htmlContent
	m.Opts = opts
	return m.Result, m.Err
}

// ---------------------------------------------------------------------------
// TestRodConverter_ToPDF - Temp file handoff
// ---------------------------------------------------------------------------

func TestRodConverter_ToPDF(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		html    string
		mock    *mockRenderer
		wantErr bool
	}{
		{
			name: "successful conversion",
			html: "<html><body>Test</body></html>",
			mock: &mockRenderer{Result: []byte("%PDF-1.4 test")},
		},
		{
			name:    "renderer error",
			html:    "<html></html>",
			mock:    &mockRenderer{Err: ErrPDFGeneration},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			conv := &rodConverter{renderer: tt.mock}
			opts := &pdfOptions{Page: Geometry{Width: 612, Height: 792}}

			result, err := conv.ToPDF(context.Background(), tt.html, opts)
			if tt.wantErr {
				if !errors.Is(err, ErrPDFGeneration) {
					t.Errorf("ToPDF() error = %v, want ErrPDFGeneration", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ToPDF() error = %v", err)
			}

			if string(result) != string(tt.mock.Result) {
				t.Errorf("result = %q, want %q", result, tt.mock.Result)
			}
			if !strings.Contains(tt.mock.CalledWith, "pdfgen-") || !strings.HasSuffix(tt.mock.CalledWith, ".html") {
				t.Errorf("temp file path = %q, want pdfgen-*.html", tt.mock.CalledWith)
			}
			if tt.mock.Content != tt.html {
				t.Errorf("temp file content = %q, want %q", tt.mock.Content, tt.html)
			}
			if tt.mock.Opts != opts {
				t.Error("options should be passed through")
			}
			if _, err := os.Stat(tt.mock.CalledWith); !os.IsNotExist(err) {
				t.Error("temp file should be removed after rendering")
			}
		})
	}
}

func TestRodConverter_ToPDFIsolated(t *testing.T) {
	t.Parallel()

	mock := &mockRenderer{Result: []byte("%PDF-1.4 inline")}
	conv := &rodConverter{renderer: mock}
	html := "<html><body>Untrusted</body></html>"

	result, err := conv.ToPDF(context.Background(), html, &pdfOptions{Isolated: true})
	if err != nil {
		t.Fatalf("ToPDF() error = %v", err)
	}
	if string(result) != "%PDF-1.4 inline" {
		t.Errorf("result = %q", result)
	}
	if mock.CalledWith != "" {
		t.Errorf("isolated HTML went through temp file %q", mock.CalledWith)
	}
	if mock.Inline != html {
		t.Errorf("inline content = %q, want %q", mock.Inline, html)
	}
}

// ---------------------------------------------------------------------------
// TestRodConverter_CloseWithoutBrowser - Nothing launched, nothing to close
// ---------------------------------------------------------------------------

func TestRodConverter_CloseWithoutBrowser(t *testing.T) {
	t.Parallel()

	conv := newRodConverter(defaultTimeout)
	if err := conv.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

// ---------------------------------------------------------------------------
// TestRodRenderer_CanceledContext - Fails before launching a browser
// ---------------------------------------------------------------------------

func TestRodRenderer_CanceledContext(t *testing.T) {
	t.Parallel()

	r := newRodRenderer(defaultTimeout)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := r.RenderFromFile(ctx, "/nonexistent.html", nil); !errors.Is(err, context.Canceled) {
		t.Errorf("RenderFromFile() error = %v, want context.Canceled", err)
	}
	if _, err := r.RenderContent(ctx, "<p>x</p>", nil); !errors.Is(err, context.Canceled) {
		t.Errorf("RenderContent() error = %v, want context.Canceled", err)
	}
}

// ---------------------------------------------------------------------------
// TestPrintOptions - Paper size from geometry
// ---------------------------------------------------------------------------

func TestPrintOptions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name                  string
		opts                  *pdfOptions
		wantWidth, wantHeight float64
	}{
		{"nil opts uses A4", nil, 595.0 / 72, 842.0 / 72},
		{"zero geometry uses A4", &pdfOptions{}, 595.0 / 72, 842.0 / 72},
		{"letter", &pdfOptions{Page: Geometry{Width: 612, Height: 792}}, 8.5, 11},
		{"legal landscape", &pdfOptions{Page: Geometry{Width: 1008, Height: 612}}, 14, 8.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := printOptions(tt.opts)
			if *got.PaperWidth != tt.wantWidth || *got.PaperHeight != tt.wantHeight {
				t.Errorf("paper = %vx%v, want %vx%v", *got.PaperWidth, *got.PaperHeight, tt.wantWidth, tt.wantHeight)
			}
			for _, m := range []*float64{got.MarginTop, got.MarginRight, got.MarginBottom, got.MarginLeft} {
				if *m != 0 {
					t.Errorf("margin = %v, want 0", *m)
				}
			}
			if !got.PreferCSSPageSize || !got.PrintBackground {
				t.Error("expected PreferCSSPageSize and PrintBackground")
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestSandboxDisabled - Environment switches for the Chrome sandbox
// ---------------------------------------------------------------------------

func TestSandboxDisabled(t *testing.T) {
	tests := []struct {
		name      string
		bin       string
		ci        string
		noSandbox string
		want      bool
	}{
		{"plain desktop", "", "", "", false},
		{"pre-installed browser", "/usr/bin/chromium", "", "", true},
		{"ci", "", "true", "", true},
		{"explicit", "", "", "1", true},
		{"ci other value", "", "1", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("CI", tt.ci)
			t.Setenv("ROD_NO_SANDBOX", tt.noSandbox)

			if got := sandboxDisabled(tt.bin); got != tt.want {
				t.Errorf("sandboxDisabled(%q) = %v, want %v", tt.bin, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestBrowserErr - Timeouts stay recognizable through the sentinel
// ---------------------------------------------------------------------------

func TestBrowserErr(t *testing.T) {
	t.Parallel()

	cause := fmt.Errorf("cdp: navigation failed")

	err := browserErr(context.Background(), ErrPageLoad, cause)
	if !errors.Is(err, ErrPageLoad) || errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("live context: err = %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 0)
	defer cancel()
	<-ctx.Done()

	err = browserErr(ctx, ErrPageLoad, cause)
	if !errors.Is(err, ErrPageLoad) || !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expired context: err = %v, want ErrPageLoad and DeadlineExceeded", err)
	}
}
