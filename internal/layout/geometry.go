package layout

import "fmt"

// Fixed allowances subtracted from the page before estimating, in points.
const (
	HorizontalAllowance = 80.0
	VerticalAllowance   = 120.0

	// FillRatio is the share of the usable area assumed to hold ink.
	FillRatio = 0.5
)

// PageGeometry is a concrete page size in points.
type PageGeometry struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// UsableArea returns (Width − 80) × (Height − 120).
// The result is not clamped and may be zero or negative for tiny pages.
func (g PageGeometry) UsableArea() float64 {
	return (g.Width - HorizontalAllowance) * (g.Height - VerticalAllowance)
}

// Validate rejects pages without positive dimensions or without usable area.
func (g PageGeometry) Validate() error {
	if g.Width <= 0 || g.Height <= 0 {
		return fmt.Errorf("%w: %.2fx%.2f (width and height must be positive)", ErrInvalidGeometry, g.Width, g.Height)
	}
	if g.Width <= HorizontalAllowance || g.Height <= VerticalAllowance {
		return fmt.Errorf("%w: %.2fx%.2f leaves no usable area (need more than %.0fx%.0f)",
			ErrInvalidGeometry, g.Width, g.Height, HorizontalAllowance, VerticalAllowance)
	}
	return nil
}
