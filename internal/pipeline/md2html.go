package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// ErrHTMLConversion indicates Markdown to HTML conversion failed.
var ErrHTMLConversion = errors.New("HTML conversion failed")

const previewTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
</head>
<body>
%s
</body>
</html>`

// PreviewOptions tunes a preview render.
type PreviewOptions struct {
	Title string
	// CSS is injected into the head when set.
	CSS string
	// SourceDir anchors relative image and link paths; empty leaves them.
	SourceDir string
}

// Previewer renders Markdown directly to HTML, without fitting. Safe for
// concurrent use.
type Previewer struct {
	md           goldmark.Markdown
	preprocessor MarkdownPreprocessor
	css          CSSInjector
}

// NewPreviewer creates a Previewer with GFM, footnotes and syntax highlighting.
func NewPreviewer() *Previewer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
			highlighting.NewHighlighting(
				highlighting.WithStyle(CodeStyle),
				highlighting.WithFormatOptions(chromahtml.WithClasses(false)),
			),
		),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(
			gmhtml.WithHardWraps(),
			gmhtml.WithXHTML(),
			// No WithUnsafe: ==highlight== goes through placeholders instead.
		),
	)
	return &Previewer{
		md:           md,
		preprocessor: &CommonMarkPreprocessor{},
		css:          &CSSInjection{},
	}
}

// Preview converts content to a standalone HTML5 document. Goldmark has no
// context support, so conversion runs in a goroutine raced against ctx.
func (p *Previewer) Preview(ctx context.Context, content string, opts PreviewOptions) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	content = p.preprocessor.PreprocessMarkdown(ctx, content)

	type result struct {
		html string
		err  error
	}
	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := p.md.Convert([]byte(content), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		title := opts.Title
		if title == "" {
			title = "Preview"
		}
		done <- result{html: fmt.Sprintf(previewTemplate, html.EscapeString(title), ConvertMarkPlaceholders(buf.String()))}
	}()

	var r result
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r = <-done:
	}
	if r.err != nil {
		return "", r.err
	}

	out, err := RewriteRelativePaths(r.html, opts.SourceDir)
	if err != nil {
		return "", fmt.Errorf("%w: rewriting paths: %v", ErrHTMLConversion, err)
	}
	return p.css.InjectCSS(ctx, out, opts.CSS), nil
}
