package layout

// Style is the document-wide default text style.
type Style struct {
	Font        string
	FontSize    float64
	LineSpacing float64
}

// DocumentDefinition is the aggregate handed to Fit: ordered content, default
// style, page geometry and column count (0 or 1 for a single column, 2 for two).
type DocumentDefinition struct {
	Content      []ContentBlock
	DefaultStyle Style
	PageSize     PageGeometry
	Columns      int
}

// Clone returns a deep copy of d.
func (d DocumentDefinition) Clone() DocumentDefinition {
	out := d
	out.Content = CloneBlocks(d.Content)
	return out
}
