package blocks

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/Ian9Franco/pdf-generator/internal/layout"
	"github.com/Ian9Franco/pdf-generator/internal/pipeline"
)

// ErrEmptyDocument indicates there is neither a title nor any content.
var ErrEmptyDocument = errors.New("document has no title and no content")

// DefaultColor is the color of every heading tier unless configured.
const DefaultColor = "#000000"

// Payload tags of passthrough blocks.
const (
	TagHeading   = "h"
	TagList      = "ul"
	TagOrdered   = "ol"
	TagCode      = "code"
	TagQuote     = "blockquote"
	TagTable     = "table"
	TagRule      = "hr"
	TagFootnotes = "footnotes"
	TagRawHTML   = "html"
	TagImage     = "img"
)

// Block margins, top/right/bottom/left in points.
var (
	titleMargin     = layout.Margin{0, 0, 20, 0}
	h1Margin        = layout.Margin{20, 0, 10, 0}
	h2Margin        = layout.Margin{15, 0, 7, 0}
	h3Margin        = layout.Margin{10, 0, 5, 0}
	paragraphMargin = layout.Margin{0, 0, 10, 0}
)

// Style carries the sizes and heading colors blocks are created with.
type Style struct {
	Profile          layout.TypographyProfile
	TitleColor       string
	SubtitleColor    string
	SubsubtitleColor string
}

// DefaultStyle returns the default profile with black headings.
func DefaultStyle() Style {
	return Style{
		Profile:          layout.DefaultProfile(),
		TitleColor:       DefaultColor,
		SubtitleColor:    DefaultColor,
		SubsubtitleColor: DefaultColor,
	}
}

// colorForLevel returns the heading color of a tier.
func (s Style) colorForLevel(level int) string {
	var c string
	switch level {
	case 1:
		c = s.TitleColor
	case 2:
		c = s.SubtitleColor
	default:
		c = s.SubsubtitleColor
	}
	if c == "" {
		return DefaultColor
	}
	return c
}

// Producer parses Markdown into content blocks. Safe for concurrent use.
type Producer struct {
	md           goldmark.Markdown
	preprocessor pipeline.MarkdownPreprocessor
}

// NewProducer creates a Producer with GFM and footnote parsing.
func NewProducer() *Producer {
	return &Producer{
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				extension.Footnote,
			),
		),
		preprocessor: &pipeline.CommonMarkPreprocessor{},
	}
}

// Blocks converts markdown into an ordered block sequence. A non-empty title
// is emitted first as a title-sized heading followed by a line break block.
// Highlight markers from ==text== survive in block text as placeholders.
func (p *Producer) Blocks(ctx context.Context, title, markdown string, style Style) ([]layout.ContentBlock, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := style.Profile.Validate(); err != nil {
		return nil, err
	}

	title = strings.TrimSpace(title)
	if title == "" && strings.TrimSpace(markdown) == "" {
		return nil, ErrEmptyDocument
	}

	out := make([]layout.ContentBlock, 0, 16)
	if title != "" {
		m := titleMargin
		out = append(out,
			layout.Heading(1, title, style.colorForLevel(1), style.Profile.Title, &m),
			layout.Other(map[string]any{"text": "\n"}, 0, nil),
		)
	}

	source := []byte(p.preprocessor.PreprocessMarkdown(ctx, markdown))
	doc := p.md.Parser().Parse(text.NewReader(source))

	w := walker{source: source, style: style}
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if b, ok := w.block(n); ok {
			out = append(out, b)
		}
	}
	return out, nil
}

// walker converts top-level AST nodes into blocks.
type walker struct {
	source []byte
	style  Style
}

func (w walker) block(n ast.Node) (layout.ContentBlock, bool) {
	normal := w.style.Profile.Normal

	switch n := n.(type) {
	case *ast.Heading:
		return w.heading(n), true

	case *ast.Paragraph, *ast.TextBlock:
		if img, ok := n.FirstChild().(*ast.Image); ok && n.ChildCount() == 1 {
			return layout.Other(map[string]any{
				"tag": TagImage,
				"src": string(img.Destination),
				"alt": w.inlineText(img),
			}, 0, nil), true
		}
		t := w.inlineText(n)
		if strings.TrimSpace(t) == "" {
			return layout.ContentBlock{}, false
		}
		m := paragraphMargin
		return layout.Paragraph(t, normal, &m), true

	case *ast.List:
		tag := TagList
		if n.IsOrdered() {
			tag = TagOrdered
		}
		payload := map[string]any{"tag": tag, "items": w.listItems(n)}
		if n.IsOrdered() && n.Start > 1 {
			payload["start"] = n.Start
		}
		return layout.Other(payload, 0, nil), true

	case *ast.FencedCodeBlock:
		payload := map[string]any{"tag": TagCode, "code": w.lines(n)}
		if lang := string(n.Language(w.source)); lang != "" {
			payload["lang"] = lang
		}
		return layout.Other(payload, 0, nil), true

	case *ast.CodeBlock:
		return layout.Other(map[string]any{"tag": TagCode, "code": w.lines(n)}, 0, nil), true

	case *ast.Blockquote:
		m := paragraphMargin
		return layout.Other(map[string]any{"tag": TagQuote, "text": w.childText(n)}, normal, &m), true

	case *extast.Table:
		return layout.Other(map[string]any{"tag": TagTable, "rows": w.tableRows(n)}, 0, nil), true

	case *ast.ThematicBreak:
		return layout.Other(map[string]any{"tag": TagRule}, 0, nil), true

	case *extast.FootnoteList:
		var notes []any
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			notes = append(notes, w.childText(c))
		}
		return layout.Other(map[string]any{"tag": TagFootnotes, "items": notes}, 0, nil), true

	case *ast.HTMLBlock:
		// Raw HTML is kept for the estimate but rendered escaped.
		return layout.Other(map[string]any{"tag": TagRawHTML, "code": w.lines(n)}, 0, nil), true
	}

	return layout.ContentBlock{}, false
}

// heading maps h1-h3 to heading blocks and deeper levels to passthrough
// blocks at body size.
func (w walker) heading(n *ast.Heading) layout.ContentBlock {
	t := w.inlineText(n)
	p := w.style.Profile

	var m layout.Margin
	switch n.Level {
	case 1:
		m = h1Margin
	case 2:
		m = h2Margin
	case 3:
		m = h3Margin
	default:
		m = h3Margin
		return layout.Other(map[string]any{
			"tag":  fmt.Sprintf("%s%d", TagHeading, n.Level),
			"text": t,
		}, p.Normal, &m)
	}
	return layout.Heading(n.Level, t, w.style.colorForLevel(n.Level), p.SizeForLevel(n.Level), &m)
}

// listItems returns item texts; nested lists are flattened into their
// parent item separated by newlines.
func (w walker) listItems(list *ast.List) []any {
	items := make([]any, 0, list.ChildCount())
	for c := list.FirstChild(); c != nil; c = c.NextSibling() {
		items = append(items, w.childText(c))
	}
	return items
}

// tableRows returns the cell texts of every row, header first.
func (w walker) tableRows(t *extast.Table) []any {
	var rows []any
	for r := t.FirstChild(); r != nil; r = r.NextSibling() {
		var cells []any
		for c := r.FirstChild(); c != nil; c = c.NextSibling() {
			cells = append(cells, w.inlineText(c))
		}
		rows = append(rows, cells)
	}
	return rows
}

// lines joins the raw source lines of a block node.
func (w walker) lines(n ast.Node) string {
	var sb strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(w.source))
	}
	return strings.TrimRight(sb.String(), "\n")
}

// childText joins the text of every block child of n with newlines.
func (w walker) childText(n ast.Node) string {
	var parts []string
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		var t string
		switch c.(type) {
		case *ast.Paragraph, *ast.TextBlock, *ast.Heading:
			t = w.inlineText(c)
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			t = w.lines(c)
		default:
			if c.Type() == ast.TypeInline {
				return w.inlineText(n)
			}
			t = w.childText(c)
		}
		if t = strings.TrimSpace(t); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, "\n")
}

// inlineText flattens the inline children of n to plain text. Emphasis and
// links keep their text; images keep their alt text.
func (w walker) inlineText(n ast.Node) string {
	var sb strings.Builder
	_ = ast.Walk(n, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := node.(type) {
		case *ast.Text:
			sb.Write(v.Segment.Value(w.source))
			switch {
			case v.HardLineBreak():
				sb.WriteByte('\n')
			case v.SoftLineBreak():
				sb.WriteByte(' ')
			}
		case *ast.String:
			sb.Write(v.Value)
		case *ast.AutoLink:
			sb.Write(v.Label(w.source))
			return ast.WalkSkipChildren, nil
		case *ast.RawHTML:
			return ast.WalkSkipChildren, nil
		case *extast.TaskCheckBox:
			if v.IsChecked {
				sb.WriteString("[x] ")
			} else {
				sb.WriteString("[ ] ")
			}
		case *extast.FootnoteLink:
			fmt.Fprintf(&sb, "[%d]", v.Index)
			return ast.WalkSkipChildren, nil
		case *extast.FootnoteBacklink:
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(sb.String())
}
