package pipeline

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/Ian9Franco/pdf-generator/internal/yamlutil"
)

// Highlight placeholders from the Unicode Private Use Area. They survive
// Markdown parsing untouched and become <mark> tags after rendering.
const (
	MarkStartPlaceholder = "\uE000"
	MarkEndPlaceholder   = "\uE001"
)

// ErrFrontMatter indicates a malformed front matter block.
var ErrFrontMatter = errors.New("invalid front matter")

var (
	crlfOrCR           = regexp.MustCompile(`\r\n?`)
	multipleBlankLines = regexp.MustCompile(`\n{3,}`)
	highlightPattern   = regexp.MustCompile(`==(.*?)==`)

	fenceLine      = regexp.MustCompile("^\\s{0,3}(```|~~~)")
	indentedLine   = regexp.MustCompile(`^(    |\t)`)
	atxHeading     = regexp.MustCompile(`^#{1,6}\s`)
	quoteLine      = regexp.MustCompile(`^>`)
	listItemLine   = regexp.MustCompile(`^([-*+]|[0-9]+\.)\s`)
	quotedListLine = regexp.MustCompile(`^>\s*([-*+]|[0-9]+\.)\s`)
)

// MarkdownPreprocessor defines the contract for markdown preprocessing.
type MarkdownPreprocessor interface {
	PreprocessMarkdown(ctx context.Context, content string) string
}

// CommonMarkPreprocessor repairs common authoring slips before parsing.
type CommonMarkPreprocessor struct{}

// PreprocessMarkdown normalizes line endings, inserts the blank lines
// CommonMark needs before headings, quotes and lists, converts ==text== to
// placeholders, and compresses runs of blank lines. Returns content unchanged
// when ctx is done.
func (p *CommonMarkPreprocessor) PreprocessMarkdown(ctx context.Context, content string) string {
	if ctx.Err() != nil {
		return content
	}

	content = crlfOrCR.ReplaceAllString(content, "\n")
	content = ensureBlankLines(content)
	content = highlightPattern.ReplaceAllString(content, MarkStartPlaceholder+"$1"+MarkEndPlaceholder)
	return multipleBlankLines.ReplaceAllString(content, "\n\n")
}

// ensureBlankLines separates headings, blockquotes and lists from a preceding
// text line. Fenced and indented code is left alone.
func ensureBlankLines(content string) string {
	lines := strings.Split(content, "\n")
	out := make([]string, 0, len(lines)+8)

	inFence := false
	prev := ""
	for i, line := range lines {
		if fenceLine.MatchString(line) {
			inFence = !inFence
		}
		if i == 0 || inFence || indentedLine.MatchString(line) {
			out = append(out, line)
			prev = line
			continue
		}

		blankPrev := strings.TrimSpace(prev) == ""
		switch {
		case quotedListLine.MatchString(line) && quoteLine.MatchString(prev) && !quotedListLine.MatchString(prev) && !blankPrev:
			out = append(out, ">")
		case blankPrev:
		case atxHeading.MatchString(line):
			out = append(out, "")
		case quoteLine.MatchString(line) && !quoteLine.MatchString(prev):
			out = append(out, "")
		case listItemLine.MatchString(line) && !listItemLine.MatchString(prev) && !atxHeading.MatchString(prev):
			out = append(out, "")
		}

		out = append(out, line)
		prev = line
	}
	return strings.Join(out, "\n")
}

// ConvertMarkPlaceholders turns highlight placeholders into <mark> tags.
// Apply it only to already-escaped HTML.
func ConvertMarkPlaceholders(content string) string {
	return strings.NewReplacer(MarkStartPlaceholder, "<mark>", MarkEndPlaceholder, "</mark>").Replace(content)
}

// StripMarkPlaceholders removes highlight placeholders, for plain-text use.
func StripMarkPlaceholders(content string) string {
	return strings.NewReplacer(MarkStartPlaceholder, "", MarkEndPlaceholder, "").Replace(content)
}

// FrontMatter is the optional YAML header of a Markdown document.
type FrontMatter struct {
	Title string `yaml:"title"`
	Lang  string `yaml:"lang"`
}

// SplitFrontMatter separates a leading "---" YAML block from the body.
// Documents without one return a zero FrontMatter and the content as is.
func SplitFrontMatter(content string) (FrontMatter, string, error) {
	var fm FrontMatter

	normalized := crlfOrCR.ReplaceAllString(content, "\n")
	if !strings.HasPrefix(normalized, "---\n") {
		return fm, content, nil
	}

	rest := normalized[len("---\n"):]
	var header, after string
	if strings.HasPrefix(rest, "---") {
		after = rest[len("---"):]
	} else {
		end := strings.Index(rest, "\n---")
		if end < 0 {
			return fm, content, nil
		}
		header, after = rest[:end], rest[end+len("\n---"):]
	}
	body := strings.TrimPrefix(after, "\n")

	if strings.TrimSpace(header) != "" {
		if err := yamlutil.Decode([]byte(header), &fm, yamlutil.Lenient); err != nil {
			return FrontMatter{}, content, fmt.Errorf("%w: %v", ErrFrontMatter, err)
		}
	}
	return fm, body, nil
}
