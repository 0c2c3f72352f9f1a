package layout

import (
	"math"
	"strings"
)

// a4 is the A4 page in points.
var a4 = PageGeometry{Width: 595, Height: 842}

const epsilon = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

// paragraphOfSize returns a single-paragraph sequence whose serialized length
// is close to n bytes.
func paragraphOfSize(n int) []ContentBlock {
	if n < 40 {
		n = 40
	}
	return []ContentBlock{Paragraph(strings.Repeat("x", n-40), DefaultNormalSize, NewMargin(0, 0, 0, 10))}
}

// sampleDocument returns a document with every block kind, sized to roughly
// density bytes of body text.
func sampleDocument(density int) DocumentDefinition {
	body := strings.Repeat("lorem ipsum ", density/12+1)
	return DocumentDefinition{
		Content: []ContentBlock{
			Heading(1, "Report", "#000000", DefaultTitleSize, NewMargin(0, 0, 0, 20)),
			Other(map[string]any{"text": "\n"}, 0, nil),
			Heading(2, "Summary", "#333333", DefaultSubtitleSize, NewMargin(0, 15, 0, 7)),
			Paragraph(body, DefaultNormalSize, NewMargin(0, 0, 0, 10)),
			Heading(3, "Details", "#666666", DefaultSubsubtitleSize, NewMargin(0, 10, 0, 5)),
			Other(map[string]any{"tag": "ul", "items": []any{"one", "two"}}, 0, nil),
			Other(map[string]any{"tag": "hr"}, 0, nil),
		},
		DefaultStyle: Style{Font: "Roboto", FontSize: DefaultNormalSize, LineSpacing: DefaultLineSpacing},
		PageSize:     a4,
	}
}
