package layout

import (
	"encoding/json"
	"maps"
)

// Kind identifies the variant of a ContentBlock.
type Kind int

const (
	KindParagraph Kind = iota
	KindHeading
	KindOther
)

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case KindHeading:
		return "heading"
	case KindOther:
		return "other"
	default:
		return "paragraph"
	}
}

// Margin is block spacing in points: top, right, bottom, left.
type Margin [4]float64

// ContentBlock is one structural unit of a document.
//
// Headings use Level (1-3), Text and Color. Paragraphs use Text. Other blocks
// carry an opaque Payload that is serialized as-is; they take part in
// rescaling only when the payload has a "text" key.
type ContentBlock struct {
	Kind     Kind
	Level    int
	Text     string
	Color    string
	Payload  map[string]any
	FontSize float64
	Margin   *Margin
}

// Heading returns a heading block.
func Heading(level int, text, color string, size float64, margin *Margin) ContentBlock {
	return ContentBlock{Kind: KindHeading, Level: level, Text: text, Color: color, FontSize: size, Margin: margin}
}

// Paragraph returns a paragraph block.
func Paragraph(text string, size float64, margin *Margin) ContentBlock {
	return ContentBlock{Kind: KindParagraph, Text: text, FontSize: size, Margin: margin}
}

// Other returns a passthrough block.
func Other(payload map[string]any, size float64, margin *Margin) ContentBlock {
	return ContentBlock{Kind: KindOther, Payload: payload, FontSize: size, Margin: margin}
}

// NewMargin returns a pointer to a margin, for literal block construction.
func NewMargin(top, right, bottom, left float64) *Margin {
	return &Margin{top, right, bottom, left}
}

// HasText reports whether the block is text-bearing and therefore rescaled.
func (b ContentBlock) HasText() bool {
	switch b.Kind {
	case KindHeading, KindParagraph:
		return true
	default:
		_, ok := b.Payload["text"]
		return ok
	}
}

// Clone returns a copy that shares no margin or top-level payload storage with b.
func (b ContentBlock) Clone() ContentBlock {
	out := b
	if b.Margin != nil {
		m := *b.Margin
		out.Margin = &m
	}
	if b.Payload != nil {
		out.Payload = maps.Clone(b.Payload)
	}
	return out
}

// headingStyles maps heading levels to their style names in serialized form.
var headingStyles = map[int]string{1: "h1", 2: "h2", 3: "h3"}

type blockJSON struct {
	Text     string  `json:"text"`
	Style    string  `json:"style,omitempty"`
	Bold     bool    `json:"bold,omitempty"`
	Color    string  `json:"color,omitempty"`
	FontSize float64 `json:"fontSize,omitempty"`
	Margin   *Margin `json:"margin,omitempty"`
}

// MarshalJSON encodes the block the way a document-definition renderer would
// receive it. This encoding is the estimator's density proxy.
func (b ContentBlock) MarshalJSON() ([]byte, error) {
	switch b.Kind {
	case KindHeading:
		return json.Marshal(blockJSON{
			Text:     b.Text,
			Style:    headingStyles[b.Level],
			Bold:     true,
			Color:    b.Color,
			FontSize: b.FontSize,
			Margin:   b.Margin,
		})
	case KindParagraph:
		return json.Marshal(blockJSON{
			Text:     b.Text,
			FontSize: b.FontSize,
			Margin:   b.Margin,
		})
	default:
		m := make(map[string]any, len(b.Payload)+2)
		maps.Copy(m, b.Payload)
		if b.FontSize != 0 {
			m["fontSize"] = b.FontSize
		}
		if b.Margin != nil {
			m["margin"] = b.Margin
		}
		return json.Marshal(m)
	}
}

// CloneBlocks deep-copies a block sequence, preserving order.
func CloneBlocks(blocks []ContentBlock) []ContentBlock {
	if blocks == nil {
		return nil
	}
	out := make([]ContentBlock, len(blocks))
	for i, b := range blocks {
		out[i] = b.Clone()
	}
	return out
}
