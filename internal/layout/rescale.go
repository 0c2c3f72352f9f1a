package layout

import (
	"fmt"
	"strings"
)

// Rescale steps.
const (
	DefaultStep            = 0.5
	DefaultLineSpacingStep = 0.05

	// MinMargin keeps visible whitespace around rescaled blocks.
	MinMargin = 1.0
)

// Strategy selects how tier sizes shrink on each step.
type Strategy int

const (
	// StrategyFlat subtracts the same step from every tier.
	StrategyFlat Strategy = iota
	// StrategyProportional steps the body size and keeps every other tier at
	// its starting ratio to the body size.
	StrategyProportional
)

// String returns the strategy name used in config files and flags.
func (s Strategy) String() string {
	if s == StrategyProportional {
		return "proportional"
	}
	return "flat"
}

// ParseStrategy parses "flat" or "proportional" (case-insensitive).
// The empty string selects StrategyFlat.
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "flat":
		return StrategyFlat, nil
	case "proportional":
		return StrategyProportional, nil
	}
	return StrategyFlat, fmt.Errorf("%w: %q (must be flat or proportional)", ErrInvalidStrategy, s)
}

// Rescaler produces the next, smaller typography for a content sequence.
type Rescaler struct {
	Strategy        Strategy
	Step            float64
	LineSpacingStep float64

	// Base is the profile whose tier ratios StrategyProportional preserves.
	Base TypographyProfile
}

// Rescale shrinks content one flat step: every tier loses step points, line
// spacing loses 0.05, margins lose one point down to a floor of one.
func Rescale(content []ContentBlock, prev TypographyProfile, step float64) ([]ContentBlock, TypographyProfile) {
	r := Rescaler{Strategy: StrategyFlat, Step: step, LineSpacingStep: DefaultLineSpacingStep}
	return r.Apply(content, prev)
}

// RescaleProportional shrinks content one step while keeping the tier ratios of base.
func RescaleProportional(content []ContentBlock, prev, base TypographyProfile, step float64) ([]ContentBlock, TypographyProfile) {
	r := Rescaler{Strategy: StrategyProportional, Step: step, LineSpacingStep: DefaultLineSpacingStep, Base: base}
	return r.Apply(content, prev)
}

// Next returns the profile that follows prev.
func (r Rescaler) Next(prev TypographyProfile) TypographyProfile {
	next := TypographyProfile{
		Normal:      prev.Normal - r.Step,
		LineSpacing: prev.LineSpacing - r.LineSpacingStep,
	}

	if r.Strategy == StrategyProportional && r.Base.Normal > 0 {
		ratio := next.Normal / r.Base.Normal
		next.Title = r.Base.Title * ratio
		next.Subtitle = r.Base.Subtitle * ratio
		next.Subsubtitle = r.Base.Subsubtitle * ratio
		return next
	}

	next.Title = prev.Title - r.Step
	next.Subtitle = prev.Subtitle - r.Step
	next.Subsubtitle = prev.Subsubtitle - r.Step
	return next
}

// Apply returns a rescaled copy of content and the profile it was rescaled to.
// Text-bearing blocks are reassigned by exact match of their size against
// prev; content itself is left untouched.
func (r Rescaler) Apply(content []ContentBlock, prev TypographyProfile) ([]ContentBlock, TypographyProfile) {
	next := r.Next(prev)

	out := make([]ContentBlock, len(content))
	for i, b := range content {
		b = b.Clone()
		if b.HasText() {
			b.FontSize = prev.reassign(b.FontSize, next)
			if b.Margin != nil {
				shrinkMargin(b.Margin)
			}
		}
		out[i] = b
	}
	return out, next
}

// shrinkMargin takes one point off every side, never below MinMargin.
func shrinkMargin(m *Margin) {
	for i := range m {
		m[i] = max(MinMargin, m[i]-1)
	}
}
