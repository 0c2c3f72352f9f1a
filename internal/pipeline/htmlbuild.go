package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html"
	"html/template"
	"regexp"
	"strconv"
	"strings"

	"github.com/Ian9Franco/pdf-generator/internal/assets"
	"github.com/Ian9Franco/pdf-generator/internal/layout"
)

// ErrTemplateRender indicates the document template failed to parse or execute.
var ErrTemplateRender = errors.New("document template rendering failed")

// Page margins in points. Together they equal the estimator's allowances.
const (
	PageMarginX = layout.HorizontalAllowance / 2
	PageMarginY = layout.VerticalAllowance / 2
)

const (
	defaultLang       = "en"
	defaultFontFamily = "sans-serif"
)

var (
	hexColor     = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)
	fontNameChar = regexp.MustCompile(`^[A-Za-z0-9 \-]+$`)
	langTag      = regexp.MustCompile(`^[A-Za-z]{2,3}(-[A-Za-z0-9]{2,8})*$`)
)

// HTMLOptions describes how fitted blocks become a document.
type HTMLOptions struct {
	Title string
	Lang  string

	// Style names the stylesheet to load; empty means the default style.
	Style string
	// ExtraCSS is appended after the stylesheet and page rules.
	ExtraCSS string
	// SourceDir anchors relative image paths; empty leaves them.
	SourceDir string
}

// HTMLBuilder renders a fitted DocumentDefinition to a standalone HTML5
// document through the document template. Safe for concurrent use.
type HTMLBuilder struct {
	loader      assets.AssetLoader
	highlighter *CodeHighlighter
}

// NewHTMLBuilder creates a builder reading styles and templates from loader.
// A nil loader uses the embedded assets.
func NewHTMLBuilder(loader assets.AssetLoader) *HTMLBuilder {
	if loader == nil {
		loader = assets.NewEmbeddedLoader()
	}
	return &HTMLBuilder{loader: loader, highlighter: NewCodeHighlighter()}
}

type documentData struct {
	Lang  string
	Title string
	CSS   template.CSS
	Class string
	Body  template.HTML
}

// Build renders doc. Block sizes and margins are written inline in points,
// the default style sets the body size and line height, and @page carries
// the page geometry with 40pt/60pt margins.
func (b *HTMLBuilder) Build(ctx context.Context, doc layout.DocumentDefinition, opts HTMLOptions) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	styleName := opts.Style
	if styleName == "" {
		styleName = assets.DefaultStyleName
	}
	baseCSS, err := b.loader.LoadStyle(styleName)
	if err != nil {
		return "", err
	}
	tmplText, err := b.loader.LoadTemplate(assets.DocumentTemplateName)
	if err != nil {
		return "", err
	}
	tmpl, err := template.New(assets.DocumentTemplateName).Parse(tmplText)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTemplateRender, err)
	}

	var body strings.Builder
	for i, block := range doc.Content {
		if i%64 == 0 {
			if err := ctx.Err(); err != nil {
				return "", err
			}
		}
		if err := b.writeBlock(&body, block); err != nil {
			return "", err
		}
	}

	bodyHTML, err := RewriteRelativePaths(body.String(), opts.SourceDir)
	if err != nil {
		return "", fmt.Errorf("%w: rewriting paths: %v", ErrHTMLConversion, err)
	}

	class := "document"
	if doc.Columns == 2 {
		class += " columns-2"
	}

	lang := opts.Lang
	if !langTag.MatchString(lang) {
		lang = defaultLang
	}

	css := baseCSS + "\n" + pageCSS(doc) + opts.ExtraCSS

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, documentData{
		Lang:  lang,
		Title: opts.Title,
		CSS:   template.CSS(SanitizeCSS(css)), // #nosec G203 -- stylesheet text, "</" escaped
		Class: class,
		Body:  template.HTML(bodyHTML), // #nosec G203 -- every text fragment escaped in writeBlock
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTemplateRender, err)
	}
	return buf.String(), nil
}

// pageCSS returns the @page and body rules derived from the document.
func pageCSS(doc layout.DocumentDefinition) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "@page { size: %spt %spt; margin: %spt %spt; }\n",
		pt(doc.PageSize.Width), pt(doc.PageSize.Height), pt(PageMarginY), pt(PageMarginX))

	sb.WriteString("body {")
	fmt.Fprintf(&sb, " font-family: %s;", FontFamily(doc.DefaultStyle.Font))
	if doc.DefaultStyle.FontSize > 0 {
		fmt.Fprintf(&sb, " font-size: %spt;", pt(doc.DefaultStyle.FontSize))
	}
	if doc.DefaultStyle.LineSpacing > 0 {
		fmt.Fprintf(&sb, " line-height: %s;", pt(doc.DefaultStyle.LineSpacing))
	}
	sb.WriteString(" }\n")
	return sb.String()
}

// FontFamily returns a CSS font-family list for a font name. Names with
// characters outside letters, digits, spaces and hyphens are ignored.
func FontFamily(name string) string {
	if name == "" || !fontNameChar.MatchString(name) {
		return defaultFontFamily
	}
	return strconv.Quote(name) + ", " + defaultFontFamily
}

// pt formats a point value without trailing zeros.
func pt(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// inlineStyle returns the style attribute value for a block.
func inlineStyle(block layout.ContentBlock, color string) string {
	var parts []string
	if block.FontSize > 0 {
		parts = append(parts, "font-size:"+pt(block.FontSize)+"pt")
	}
	if m := block.Margin; m != nil {
		parts = append(parts, fmt.Sprintf("margin:%spt %spt %spt %spt", pt(m[0]), pt(m[1]), pt(m[2]), pt(m[3])))
	}
	if color != "" && hexColor.MatchString(color) {
		parts = append(parts, "color:"+color)
	}
	return strings.Join(parts, ";")
}

// openTag writes <tag class=".." style=".." extra> leaving out empty parts.
// extra must already be escaped.
func openTag(sb *strings.Builder, tag, class, style string, extra ...string) {
	sb.WriteString("<" + tag)
	if class != "" {
		sb.WriteString(` class="` + class + `"`)
	}
	if style != "" {
		sb.WriteString(` style="` + html.EscapeString(style) + `"`)
	}
	for _, attr := range extra {
		sb.WriteString(" " + attr)
	}
	sb.WriteString(">")
}

// inlineText escapes text, keeps line breaks and restores highlights.
func inlineText(s string) string {
	escaped := html.EscapeString(s)
	escaped = strings.ReplaceAll(escaped, "\n", "<br>")
	return ConvertMarkPlaceholders(escaped)
}

func (b *HTMLBuilder) writeBlock(sb *strings.Builder, block layout.ContentBlock) error {
	switch block.Kind {
	case layout.KindHeading:
		tag := "h" + strconv.Itoa(min(max(block.Level, 1), 6))
		openTag(sb, tag, "", inlineStyle(block, block.Color))
		sb.WriteString(inlineText(block.Text))
		sb.WriteString("</" + tag + ">\n")
		return nil

	case layout.KindParagraph:
		openTag(sb, "p", "", inlineStyle(block, ""))
		sb.WriteString(inlineText(block.Text))
		sb.WriteString("</p>\n")
		return nil
	}

	return b.writeOther(sb, block)
}

func (b *HTMLBuilder) writeOther(sb *strings.Builder, block layout.ContentBlock) error {
	p := block.Payload
	tag, _ := p["tag"].(string)
	style := inlineStyle(block, "")

	switch tag {
	case "h4", "h5", "h6":
		openTag(sb, tag, "", style)
		sb.WriteString(inlineText(stringOf(p["text"])))
		sb.WriteString("</" + tag + ">\n")

	case "ul", "ol":
		var extra []string
		if start := intOf(p["start"]); tag == "ol" && start > 1 {
			extra = append(extra, `start="`+strconv.Itoa(start)+`"`)
		}
		openTag(sb, tag, "", style, extra...)
		for _, item := range stringsOf(p["items"]) {
			sb.WriteString("<li>" + inlineText(item) + "</li>")
		}
		sb.WriteString("</" + tag + ">\n")

	case "code":
		code, err := b.highlighter.Highlight(stringOf(p["code"]), stringOf(p["lang"]))
		if err != nil {
			return err
		}
		openTag(sb, "div", "code", style)
		sb.WriteString(code)
		sb.WriteString("</div>\n")

	case "blockquote":
		openTag(sb, "blockquote", "", style)
		sb.WriteString(inlineText(stringOf(p["text"])))
		sb.WriteString("</blockquote>\n")

	case "table":
		openTag(sb, "table", "", style)
		for i, row := range rowsOf(p["rows"]) {
			cell := "td"
			if i == 0 {
				cell = "th"
			}
			sb.WriteString("<tr>")
			for _, c := range row {
				sb.WriteString("<" + cell + ">" + inlineText(c) + "</" + cell + ">")
			}
			sb.WriteString("</tr>")
		}
		sb.WriteString("</table>\n")

	case "hr":
		openTag(sb, "hr", "", style)
		sb.WriteString("\n")

	case "footnotes":
		openTag(sb, "section", "footnotes", style)
		sb.WriteString("<ol>")
		for _, note := range stringsOf(p["items"]) {
			sb.WriteString("<li>" + inlineText(note) + "</li>")
		}
		sb.WriteString("</ol></section>\n")

	case "html":
		openTag(sb, "pre", "raw-html", style)
		sb.WriteString(html.EscapeString(stringOf(p["code"])))
		sb.WriteString("</pre>\n")

	case "img":
		src := stringOf(p["src"])
		if src == "" {
			return nil
		}
		openTag(sb, "img", "", style,
			`src="`+html.EscapeString(src)+`"`,
			`alt="`+html.EscapeString(stringOf(p["alt"]))+`"`)
		sb.WriteString("\n")

	default:
		text, ok := p["text"]
		if !ok {
			return nil
		}
		openTag(sb, "div", "", style)
		sb.WriteString(inlineText(stringOf(text)))
		sb.WriteString("</div>\n")
	}
	return nil
}

// Payload accessors accept both Go-built payloads and JSON-decoded ones.

func stringOf(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case nil:
		return ""
	default:
		return fmt.Sprint(s)
	}
}

func intOf(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case uint64:
		return int(n)
	case float64:
		return int(n)
	}
	return 0
}

func stringsOf(v any) []string {
	switch items := v.(type) {
	case []string:
		return items
	case []any:
		out := make([]string, len(items))
		for i, it := range items {
			out[i] = stringOf(it)
		}
		return out
	}
	return nil
}

func rowsOf(v any) [][]string {
	switch rows := v.(type) {
	case [][]string:
		return rows
	case []any:
		out := make([][]string, 0, len(rows))
		for _, r := range rows {
			out = append(out, stringsOf(r))
		}
		return out
	}
	return nil
}
