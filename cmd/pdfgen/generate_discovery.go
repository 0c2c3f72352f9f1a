package main

import (
	"cmp"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	pdfgen "github.com/Ian9Franco/pdf-generator"
	"github.com/Ian9Franco/pdf-generator/internal/config"
)

var (
	ErrNoInput            = errors.New("no input specified")
	ErrInvalidExtension   = errors.New("file must have .md or .markdown extension")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrInvalidTimeout     = errors.New("invalid timeout")
)

// job is one markdown source and the PDF it becomes.
type job struct {
	src string
	dst string
}

// inputArg returns the positional input, falling back to input.defaultDir.
func inputArg(positional []string, cfg *config.Config) (string, error) {
	switch {
	case len(positional) > 0:
		return positional[0], nil
	case cfg.Input.DefaultDir != "":
		return cfg.Input.DefaultDir, nil
	}
	return "", ErrNoInput
}

// outputArg returns --output, falling back to output.defaultDir.
func outputArg(flagOutput string, cfg *config.Config) string {
	return cmp.Or(flagOutput, cfg.Output.DefaultDir)
}

// planJobs lists the work for input. A file must be markdown; a directory
// is walked for every markdown file below it.
func planJobs(input, outDir string) ([]job, error) {
	info, err := os.Stat(input)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		if err := checkMarkdown(input); err != nil {
			return nil, err
		}
		return []job{{src: input, dst: pdfPathFor(input, outDir, "")}}, nil
	}

	var jobs []job
	walk := func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if !d.IsDir() && isMarkdown(path) {
			jobs = append(jobs, job{src: path, dst: pdfPathFor(path, outDir, input)})
		}
		return nil
	}
	if err := filepath.WalkDir(input, walk); err != nil {
		return nil, err
	}
	return jobs, nil
}

// pdfPathFor maps src to its PDF. Without outDir the PDF sits next to src.
// An outDir ending in .pdf is the file itself. Under a directory input
// (root) the relative layout is mirrored into outDir.
func pdfPathFor(src, outDir, root string) string {
	name := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src)) + ".pdf"

	switch {
	case outDir == "":
		return filepath.Join(filepath.Dir(src), name)
	case strings.HasSuffix(outDir, ".pdf"):
		return outDir
	case root != "":
		if rel, err := filepath.Rel(root, filepath.Dir(src)); err == nil {
			return filepath.Join(outDir, rel, name)
		}
	}
	return filepath.Join(outDir, name)
}

// htmlSibling is the .html path written next to a PDF.
func htmlSibling(pdfPath string) string {
	return strings.TrimSuffix(pdfPath, ".pdf") + ".html"
}

func isMarkdown(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return true
	}
	return false
}

func checkMarkdown(path string) error {
	if isMarkdown(path) {
		return nil
	}
	return fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(path))
}

// checkWorkers accepts 0 (automatic) through pdfgen.MaxPoolSize.
func checkWorkers(n int) error {
	if n < 0 || n > pdfgen.MaxPoolSize {
		return fmt.Errorf("%w: %d (want 0 for auto, or 1-%d)", ErrInvalidWorkerCount, n, pdfgen.MaxPoolSize)
	}
	return nil
}
