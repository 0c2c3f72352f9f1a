package layout

import "fmt"

// Starting typography tiers, in points.
const (
	DefaultTitleSize       = 18.0
	DefaultSubtitleSize    = 16.0
	DefaultSubsubtitleSize = 14.0
	DefaultNormalSize      = 12.0
	DefaultLineSpacing     = 1.2
)

// TypographyProfile is the set of tier sizes and line spacing in effect.
type TypographyProfile struct {
	Title       float64 `json:"titleSize" yaml:"titleSize"`
	Subtitle    float64 `json:"subtitleSize" yaml:"subtitleSize"`
	Subsubtitle float64 `json:"subsubtitleSize" yaml:"subsubtitleSize"`
	Normal      float64 `json:"normalTextSize" yaml:"normalTextSize"`
	LineSpacing float64 `json:"lineSpacing" yaml:"lineSpacing"`
}

// DefaultProfile returns the 18/16/14/12 profile with 1.2 line spacing.
func DefaultProfile() TypographyProfile {
	return TypographyProfile{
		Title:       DefaultTitleSize,
		Subtitle:    DefaultSubtitleSize,
		Subsubtitle: DefaultSubsubtitleSize,
		Normal:      DefaultNormalSize,
		LineSpacing: DefaultLineSpacing,
	}
}

// Validate checks that sizes are positive and ordered title ≥ subtitle ≥
// subsubtitle ≥ normal.
func (p TypographyProfile) Validate() error {
	if p.Normal <= 0 || p.LineSpacing <= 0 {
		return fmt.Errorf("%w: sizes and line spacing must be positive (normal %.2f, line spacing %.2f)",
			ErrInvalidProfile, p.Normal, p.LineSpacing)
	}
	if p.Title < p.Subtitle || p.Subtitle < p.Subsubtitle || p.Subsubtitle < p.Normal {
		return fmt.Errorf("%w: tiers must not increase (title %.2f, subtitle %.2f, subsubtitle %.2f, normal %.2f)",
			ErrInvalidProfile, p.Title, p.Subtitle, p.Subsubtitle, p.Normal)
	}
	return nil
}

// SizeForLevel returns the tier size for a heading level, or Normal for
// anything that is not a level 1-3 heading.
func (p TypographyProfile) SizeForLevel(level int) float64 {
	switch level {
	case 1:
		return p.Title
	case 2:
		return p.Subtitle
	case 3:
		return p.Subsubtitle
	default:
		return p.Normal
	}
}

// reassign maps size, which was assigned under p, to the matching tier of next.
// Matching is exact: a size that equals no heading tier of p becomes next.Normal.
func (p TypographyProfile) reassign(size float64, next TypographyProfile) float64 {
	switch size {
	case p.Title:
		return next.Title
	case p.Subtitle:
		return next.Subtitle
	case p.Subsubtitle:
		return next.Subsubtitle
	default:
		return next.Normal
	}
}
