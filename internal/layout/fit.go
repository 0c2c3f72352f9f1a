package layout

import (
	"fmt"
	"log/slog"

	"github.com/Ian9Franco/pdf-generator/internal/logging"
)

// DefaultFloor is the legibility floor for the body size, in points.
const DefaultFloor = 8.0

// Status tells how a fit run ended.
type Status int

const (
	// StatusFitted means the final estimate is a single page.
	StatusFitted Status = iota
	// StatusFloorReached means the body size hit the floor while the content
	// still overflowed; the returned content is the best effort.
	StatusFloorReached
)

// String returns "fitted" or "floor_reached".
func (s Status) String() string {
	if s == StatusFloorReached {
		return "floor_reached"
	}
	return "fitted"
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// FitOptions configures a fit run. The zero value reproduces the reference
// behavior: start at DefaultProfile, flat 0.5pt steps, 0.05 line-spacing
// steps, 8pt floor, font-blind estimator.
type FitOptions struct {
	// Profile is the starting typography. Nil means DefaultProfile().
	Profile *TypographyProfile

	Strategy        Strategy
	Estimator       Estimator
	Step            float64
	LineSpacingStep float64
	Floor           float64
}

// FitResult is the outcome of a fit run.
type FitResult struct {
	Document       DocumentDefinition
	Profile        TypographyProfile
	Status         Status
	Iterations     int
	EstimatedPages int
}

// withDefaults fills zero-valued numeric options.
func (o FitOptions) withDefaults() FitOptions {
	if o.Step == 0 {
		o.Step = DefaultStep
	}
	if o.LineSpacingStep == 0 {
		o.LineSpacingStep = DefaultLineSpacingStep
	}
	if o.Floor == 0 {
		o.Floor = DefaultFloor
	}
	return o
}

// validate checks numeric options and the starting profile.
func (o FitOptions) validate() error {
	if o.Step < 0 || o.LineSpacingStep < 0 {
		return fmt.Errorf("%w: step %.2f, line spacing step %.2f (must be positive)", ErrInvalidStep, o.Step, o.LineSpacingStep)
	}
	if o.Floor < 0 {
		return fmt.Errorf("%w: floor %.2f must not be negative", ErrInvalidStep, o.Floor)
	}
	if o.Strategy != StrategyFlat && o.Strategy != StrategyProportional {
		return fmt.Errorf("%w: %d", ErrInvalidStrategy, o.Strategy)
	}
	if o.Profile != nil {
		if err := o.Profile.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Fit shrinks doc's typography until the estimate is one page or the body
// size reaches the floor. doc is not modified; the result holds a new
// definition. Each step reassigns every text block to the next tier sizes,
// shrinks margins, and updates the default style to the new body size and
// line spacing.
//
// The body size never drops below the floor. When the next step would cross
// it the run stops with StatusFloorReached.
func Fit(doc DocumentDefinition, opts FitOptions) (*FitResult, error) {
	if err := doc.PageSize.Validate(); err != nil {
		return nil, err
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}
	opts = opts.withDefaults()

	profile := DefaultProfile()
	if opts.Profile != nil {
		profile = *opts.Profile
	}

	rescaler := Rescaler{
		Strategy:        opts.Strategy,
		Step:            opts.Step,
		LineSpacingStep: opts.LineSpacingStep,
		Base:            profile,
	}

	log := logging.Logger()
	out := doc.Clone()
	pages := opts.Estimator.Pages(out)
	iterations := 0

	for pages > 1 && profile.Normal > opts.Floor {
		if profile.Normal-opts.Step < opts.Floor {
			break
		}

		out.Content, profile = rescaler.Apply(out.Content, profile)
		out.DefaultStyle.FontSize = profile.Normal
		out.DefaultStyle.LineSpacing = profile.LineSpacing
		iterations++

		pages = opts.Estimator.Pages(out)
		log.Debug("fit iteration",
			slog.Int("iteration", iterations),
			slog.Float64("normal", profile.Normal),
			slog.Float64("lineSpacing", profile.LineSpacing),
			slog.Int("pages", pages),
		)
	}

	status := StatusFitted
	if pages > 1 {
		status = StatusFloorReached
	}
	log.Debug("fit done",
		slog.String("status", status.String()),
		slog.Int("iterations", iterations),
		slog.Int("pages", pages),
	)

	return &FitResult{
		Document:       out,
		Profile:        profile,
		Status:         status,
		Iterations:     iterations,
		EstimatedPages: pages,
	}, nil
}
