package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	pdfgen "github.com/Ian9Franco/pdf-generator"
	"github.com/Ian9Franco/pdf-generator/internal/config"
	"github.com/Ian9Franco/pdf-generator/internal/hints"
)

// runFitCmd runs the fit loop on one file and prints the report. No browser
// is started.
func runFitCmd(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseFitFlags(args, env.Stderr)
	if err != nil {
		return err
	}

	envCfg := loadEnvConfig()
	cfg, err := loadConfig(flags.common.config, envCfg)
	if err != nil {
		return err
	}
	mergeFlags(&flags.documentFlags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	inputPath, err := inputArg(positional, cfg)
	if err != nil {
		return err
	}
	if err := checkMarkdown(inputPath); err != nil {
		return err
	}
	content, err := os.ReadFile(inputPath) // #nosec G304 -- user-provided path
	if err != nil {
		return fmt.Errorf("%w: %w", ErrReadMarkdown, err)
	}

	params, err := buildParams(&flags.documentFlags, cfg)
	if err != nil {
		return err
	}
	opts, err := generatorOptions(cfg, 0)
	if err != nil {
		return err
	}

	pool := env.NewPool(1, opts...)
	defer pool.Close()

	gen, err := pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer pool.Release(gen)

	report, err := gen.Fit(ctx, pdfgen.Input{
		Title:      params.title,
		Markdown:   string(content),
		SourceDir:  filepath.Dir(inputPath),
		Page:       params.page,
		Typography: params.typography,
		SkipFit:    params.skipFit,
	})
	if err != nil {
		return err
	}

	if flags.json {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
	} else if !flags.common.quiet {
		printFitReport(env.Stdout, inputPath, report)
	}

	if report.Status == pdfgen.StatusFloorReached {
		fmt.Fprintf(env.Stderr, "warning: %s does not fit on one page%s\n",
			inputPath, hints.ForFloorReached(report.EstimatedPages))
	}

	if flags.fit.saveProfile != "" {
		if err := config.SaveProfile(flags.fit.saveProfile, report.Profile); err != nil {
			return err
		}
	}
	return nil
}

// printFitReport writes a human-readable report.
func printFitReport(w io.Writer, path string, r *pdfgen.FitReport) {
	fmt.Fprintf(w, "%s\n", path)
	fmt.Fprintf(w, "  status:       %s\n", r.Status)
	fmt.Fprintf(w, "  iterations:   %d\n", r.Iterations)
	fmt.Fprintf(w, "  pages:        %d\n", r.EstimatedPages)
	fmt.Fprintf(w, "  blocks:       %d\n", r.Blocks)
	fmt.Fprintf(w, "  title:        %.2fpt\n", r.Profile.Title)
	fmt.Fprintf(w, "  subtitle:     %.2fpt\n", r.Profile.Subtitle)
	fmt.Fprintf(w, "  subsubtitle:  %.2fpt\n", r.Profile.Subsubtitle)
	fmt.Fprintf(w, "  text:         %.2fpt\n", r.Profile.Normal)
	fmt.Fprintf(w, "  line spacing: %.2f\n", r.Profile.LineSpacing)
}
