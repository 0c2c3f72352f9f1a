package pipeline

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// CodeStyle is the chroma style used for code blocks and previews.
const CodeStyle = "github"

// CodeHighlighter renders source code as inline-styled HTML, so the output
// needs no external stylesheet. Safe for concurrent use.
type CodeHighlighter struct {
	style     *chroma.Style
	formatter *chromahtml.Formatter
}

// NewCodeHighlighter creates a highlighter using CodeStyle.
func NewCodeHighlighter() *CodeHighlighter {
	style := styles.Get(CodeStyle)
	if style == nil {
		style = styles.Fallback
	}
	return &CodeHighlighter{
		style:     style,
		formatter: chromahtml.New(chromahtml.WithClasses(false), chromahtml.TabWidth(4)),
	}
}

// Highlight returns code as a <pre> element. Unknown or empty languages are
// analysed from the code itself and fall back to plain text.
func (h *CodeHighlighter) Highlight(code, lang string) (string, error) {
	var lexer chroma.Lexer
	if lang != "" {
		lexer = lexers.Get(lang)
	}
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	it, err := lexer.Tokenise(nil, code)
	if err != nil {
		return "", fmt.Errorf("%w: tokenising %s: %v", ErrHTMLConversion, lang, err)
	}

	var sb strings.Builder
	if err := h.formatter.Format(&sb, h.style, it); err != nil {
		return "", fmt.Errorf("%w: formatting code: %v", ErrHTMLConversion, err)
	}
	return sb.String(), nil
}
