package main

import (
	"fmt"
	"time"

	pdfgen "github.com/Ian9Franco/pdf-generator"
	"github.com/Ian9Franco/pdf-generator/internal/config"
)

// generationParams groups values shared across every file of a batch.
type generationParams struct {
	title      string
	page       *pdfgen.PageSettings
	typography *pdfgen.Typography
	skipFit    bool
	htmlOnly   bool
	htmlOutput bool
}

// mergeFlags merges CLI flags into config. CLI values override config values.
// Typography sizes are not merged here; see startProfile.
func mergeFlags(f *documentFlags, cfg *config.Config) {
	if f.page.size != "" {
		cfg.Page.Size = f.page.size
	}
	if f.page.orientation != "" {
		cfg.Page.Orientation = f.page.orientation
	}

	t := &cfg.Typography
	if f.typography.font != "" {
		t.Font = f.typography.font
	}
	if f.typography.titleColor != "" {
		t.TitleColor = f.typography.titleColor
	}
	if f.typography.subtitleColor != "" {
		t.SubtitleColor = f.typography.subtitleColor
	}
	if f.typography.subsubtitleColor != "" {
		t.SubsubtitleColor = f.typography.subsubtitleColor
	}
	if f.typography.twoColumns {
		t.TwoColumns = true
	}

	if f.fit.strategy != "" {
		cfg.Fit.Strategy = f.fit.strategy
	}
	if f.fit.fontAware {
		cfg.Fit.FontAware = true
	}
	if f.fit.noFit {
		cfg.Fit.Skip = true
	}

	if f.assets.style != "" {
		cfg.Assets.Style = f.assets.style
	}
	if f.assets.assetPath != "" {
		cfg.Assets.BasePath = f.assets.assetPath
	}
}

// startProfile resolves the starting profile. A saved profile file replaces
// the configured sizes; size flags override either. Nil means the default.
func startProfile(cfg *config.Config, saved *pdfgen.Profile, tf typographyFlags) *pdfgen.Profile {
	p := cfg.Typography.Profile()
	if saved != nil {
		s := *saved
		p = &s
	}

	overrides := []struct {
		value float64
		dst   func(*pdfgen.Profile) *float64
	}{
		{tf.title, func(p *pdfgen.Profile) *float64 { return &p.Title }},
		{tf.subtitle, func(p *pdfgen.Profile) *float64 { return &p.Subtitle }},
		{tf.subsubtitle, func(p *pdfgen.Profile) *float64 { return &p.Subsubtitle }},
		{tf.normal, func(p *pdfgen.Profile) *float64 { return &p.Normal }},
		{tf.lineSpacing, func(p *pdfgen.Profile) *float64 { return &p.LineSpacing }},
	}
	for _, o := range overrides {
		if o.value <= 0 {
			continue
		}
		if p == nil {
			d := pdfgen.DefaultProfile()
			p = &d
		}
		*o.dst(p) = o.value
	}
	return p
}

// loadSavedProfile reads the --profile file, if any.
func loadSavedProfile(path string) (*pdfgen.Profile, error) {
	if path == "" {
		return nil, nil
	}
	p, err := config.LoadProfile(path)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// buildParams derives the per-batch generation parameters.
func buildParams(f *documentFlags, cfg *config.Config) (*generationParams, error) {
	saved, err := loadSavedProfile(f.fit.profile)
	if err != nil {
		return nil, err
	}

	page := &pdfgen.PageSettings{Size: cfg.Page.Size, Orientation: cfg.Page.Orientation}
	if err := page.Validate(); err != nil {
		return nil, err
	}

	typography := &pdfgen.Typography{
		Profile:          startProfile(cfg, saved, f.typography),
		Font:             cfg.Typography.Font,
		TitleColor:       cfg.Typography.TitleColor,
		SubtitleColor:    cfg.Typography.SubtitleColor,
		SubsubtitleColor: cfg.Typography.SubsubtitleColor,
		TwoColumns:       cfg.Typography.TwoColumns,
	}
	if err := typography.Validate(); err != nil {
		return nil, err
	}

	return &generationParams{
		title:      f.title,
		page:       page,
		typography: typography,
		skipFit:    cfg.Fit.Skip,
	}, nil
}

// generatorOptions converts config into generator options. A zero timeout
// keeps the library default.
func generatorOptions(cfg *config.Config, timeout time.Duration) ([]pdfgen.Option, error) {
	strategy, err := pdfgen.ParseStrategy(cfg.Fit.Strategy)
	if err != nil {
		return nil, err
	}

	opts := []pdfgen.Option{
		pdfgen.WithStrategy(strategy),
		pdfgen.WithFontAwareEstimate(cfg.Fit.FontAware),
	}
	if cfg.Assets.BasePath != "" {
		opts = append(opts, pdfgen.WithAssetPath(cfg.Assets.BasePath))
	}
	if cfg.Assets.Style != "" {
		opts = append(opts, pdfgen.WithStyle(cfg.Assets.Style))
	}
	if timeout > 0 {
		opts = append(opts, pdfgen.WithTimeout(timeout))
	}
	return opts, nil
}

// describeReport formats a fit report for one line of CLI output.
func describeReport(r pdfgen.FitReport) string {
	return fmt.Sprintf("%s, %.1fpt text, %d iteration(s)", r.Status, r.Profile.Normal, r.Iterations)
}
