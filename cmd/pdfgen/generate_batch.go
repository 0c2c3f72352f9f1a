package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	pdfgen "github.com/Ian9Franco/pdf-generator"
	"github.com/Ian9Franco/pdf-generator/internal/hints"
)

const (
	dirPermissions  = 0o750
	filePermissions = 0o644
)

var (
	ErrReadMarkdown = errors.New("failed to read markdown file")
	ErrWritePDF     = errors.New("failed to write PDF file")
	ErrWriteHTML    = errors.New("failed to write HTML file")
)

// outcome is what happened to one job.
type outcome struct {
	job
	written string // file actually written; the HTML path in --html-only mode
	report  pdfgen.FitReport
	err     error
	took    time.Duration
}

// summary counts outcomes. Overflowing files are also counted as succeeded.
type summary struct {
	succeeded int
	overflow  int
	failed    int
}

// batchError reports failed files and unwraps to the first failure, so the
// exit code reflects it.
type batchError struct {
	failed int
	first  error
}

func (e *batchError) Error() string {
	return fmt.Sprintf("%d generation(s) failed", e.failed)
}

func (e *batchError) Unwrap() error { return e.first }

// runJobs renders jobs with at most pool.Size() in flight. Each job borrows
// a generator for its own duration. Outcomes keep the order of jobs.
func runJobs(ctx context.Context, pool Pool, jobs []job, params *generationParams) []outcome {
	out := make([]outcome, len(jobs))

	var g errgroup.Group
	g.SetLimit(max(pool.Size(), 1))
	for i, j := range jobs {
		g.Go(func() error {
			out[i] = runJob(ctx, pool, j, params)
			return nil
		})
	}
	_ = g.Wait()

	return out
}

func runJob(ctx context.Context, pool Pool, j job, params *generationParams) outcome {
	if err := ctx.Err(); err != nil {
		return outcome{job: j, err: err}
	}
	gen, err := pool.Acquire(ctx)
	if err != nil {
		return outcome{job: j, err: err}
	}
	defer pool.Release(gen)

	start := time.Now()
	o := render(ctx, gen, j, params)
	o.took = time.Since(start)
	return o
}

// render converts one file and writes its output.
func render(ctx context.Context, gen DocumentGenerator, j job, params *generationParams) outcome {
	o := outcome{job: j, written: j.dst}

	content, err := os.ReadFile(j.src) // #nosec G304 -- discovered path
	if err != nil {
		o.err = fmt.Errorf("%w: %v", ErrReadMarkdown, err)
		return o
	}
	if err := os.MkdirAll(filepath.Dir(j.dst), dirPermissions); err != nil {
		o.err = fmt.Errorf("creating output directory: %w%s", err, hints.ForOutputDirectory())
		return o
	}

	res, err := gen.Generate(ctx, pdfgen.Input{
		Title:      params.title,
		Markdown:   string(content),
		SourceDir:  filepath.Dir(j.src),
		Page:       params.page,
		Typography: params.typography,
		HTMLOnly:   params.htmlOnly,
		SkipFit:    params.skipFit,
	})
	if err != nil {
		o.err = err
		return o
	}
	o.report = res.FitReport

	if params.htmlOnly || params.htmlOutput {
		htmlPath := htmlSibling(j.dst)
		// #nosec G306 -- output documents are meant to be shared
		if err := os.WriteFile(htmlPath, res.HTML, filePermissions); err != nil {
			o.err = fmt.Errorf("%w: %v", ErrWriteHTML, err)
			return o
		}
		if params.htmlOnly {
			o.written = htmlPath
			return o
		}
	}

	// #nosec G306 -- output documents are meant to be shared
	if err := os.WriteFile(j.dst, res.PDF, filePermissions); err != nil {
		o.err = fmt.Errorf("%w: %v", ErrWritePDF, err)
	}
	return o
}

func tally(outcomes []outcome) summary {
	var s summary
	for _, o := range outcomes {
		if o.err != nil {
			s.failed++
			continue
		}
		s.succeeded++
		if o.report.Status == pdfgen.StatusFloorReached {
			s.overflow++
		}
	}
	return s
}

// printOutcomes writes a line per file, plus totals for batches. Failures
// and overflow warnings go to stderr, even with quiet set.
func printOutcomes(outcomes []outcome, quiet, verbose bool, env *Environment) summary {
	for _, o := range outcomes {
		switch {
		case o.err != nil:
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", o.src, o.err)
			continue
		case o.report.Status == pdfgen.StatusFloorReached:
			fmt.Fprintf(env.Stderr, "warning: %s does not fit on one page%s\n",
				o.src, hints.ForFloorReached(o.report.EstimatedPages))
		}

		switch {
		case quiet:
		case verbose:
			fmt.Fprintf(env.Stdout, "%s -> %s (%s; %v)\n",
				o.src, o.written, describeReport(o.report), o.took.Round(time.Millisecond))
		default:
			fmt.Fprintf(env.Stdout, "Created %s (%s)\n", o.written, describeReport(o.report))
		}
	}

	s := tally(outcomes)
	if !quiet && len(outcomes) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded (%d over one page), %d failed\n", s.succeeded, s.overflow, s.failed)
	}
	return s
}

func firstFailure(outcomes []outcome) error {
	for _, o := range outcomes {
		if o.err != nil {
			return o.err
		}
	}
	return nil
}
