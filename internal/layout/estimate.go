package layout

import (
	"encoding/json"
	"fmt"
	"math"
)

// Reference values for the font-aware density model.
const (
	ReferenceFontSize    = DefaultNormalSize
	ReferenceLineSpacing = DefaultLineSpacing
)

// minUsableArea keeps the estimator total when handed a page with no usable area.
const minUsableArea = 1.0

// Estimator turns a document into an estimated page count.
//
// The zero value is the plain density model: serialized length only, blind to
// font sizes. With FontAware set, each block's share of the density is weighted
// by the square of its size relative to 12pt and by the line spacing relative
// to 1.2, so shrinking type lowers the estimate.
type Estimator struct {
	FontAware bool
}

// Estimate returns the estimated page count (≥ 1) for content on g, using the
// plain density model.
func Estimate(content []ContentBlock, g PageGeometry) int {
	return PagesForDensity(float64(DensityProxy(content)), g)
}

// PagesForDensity returns ceil(density / (usable area × 0.5)), at least 1.
func PagesForDensity(density float64, g PageGeometry) int {
	area := g.UsableArea()
	if area < minUsableArea {
		area = minUsableArea
	}
	pages := int(math.Ceil(density / (area * FillRatio)))
	if pages < 1 {
		return 1
	}
	return pages
}

// DensityProxy returns the byte length of the JSON encoding of content.
func DensityProxy(content []ContentBlock) int {
	if content == nil {
		content = []ContentBlock{}
	}
	data, err := json.Marshal(content)
	if err != nil {
		// Payloads holding unencodable values still count by their printed form.
		return len(fmt.Sprint(content))
	}
	return len(data)
}

// Pages estimates the page count of doc.
func (e Estimator) Pages(doc DocumentDefinition) int {
	if !e.FontAware {
		return Estimate(doc.Content, doc.PageSize)
	}
	return PagesForDensity(e.weightedDensity(doc), doc.PageSize)
}

// weightedDensity sums each block's encoded length scaled by its type size and
// the document line spacing. Brackets and separators count at weight one.
func (e Estimator) weightedDensity(doc DocumentDefinition) float64 {
	lineFactor := 1.0
	if doc.DefaultStyle.LineSpacing > 0 {
		lineFactor = doc.DefaultStyle.LineSpacing / ReferenceLineSpacing
	}

	density := 2.0 // enclosing brackets
	for i, b := range doc.Content {
		if i > 0 {
			density++
		}
		size := b.FontSize
		if size == 0 {
			size = doc.DefaultStyle.FontSize
		}
		sizeFactor := 1.0
		if size > 0 {
			ratio := size / ReferenceFontSize
			sizeFactor = ratio * ratio
		}
		density += float64(DensityProxy([]ContentBlock{b})-2) * sizeFactor * lineFactor
	}
	return density
}
