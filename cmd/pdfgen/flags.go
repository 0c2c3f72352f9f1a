package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// ErrUsage wraps flag parsing errors.
var ErrUsage = errors.New("invalid usage")

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// pageFlags holds page preset flags.
type pageFlags struct {
	size        string
	orientation string
}

// typographyFlags holds starting sizes, font and heading colors.
// Zero sizes leave the configured or default size in place.
type typographyFlags struct {
	title       float64
	subtitle    float64
	subsubtitle float64
	normal      float64
	lineSpacing float64

	font             string
	titleColor       string
	subtitleColor    string
	subsubtitleColor string
	twoColumns       bool
}

// fitFlags holds fit loop flags.
type fitFlags struct {
	strategy    string
	fontAware   bool
	noFit       bool
	profile     string // Starting profile file
	saveProfile string // Where to write the resulting profile
}

// assetFlags holds asset-related flags.
type assetFlags struct {
	style     string // Name or path for CSS
	assetPath string // Override asset directory
}

// outputFlags holds output mode flags for debugging.
type outputFlags struct {
	html     bool // Output HTML alongside PDF
	htmlOnly bool // Output HTML only, skip PDF
}

// documentFlags are the flags shared by generate and fit.
type documentFlags struct {
	common     commonFlags
	title      string
	page       pageFlags
	typography typographyFlags
	fit        fitFlags
	assets     assetFlags
}

// generateFlags holds all flags for the generate command.
type generateFlags struct {
	documentFlags
	output     string
	workers    int
	timeout    string
	outputMode outputFlags
}

// fitCmdFlags holds all flags for the fit command.
type fitCmdFlags struct {
	documentFlags
	json bool
}

// serveFlags holds all flags for the serve command.
type serveFlags struct {
	common    commonFlags
	addr      string
	workers   int
	timeout   string
	rateLimit int
	maxBody   int64
	strategy  string
	fontAware bool
	assets    assetFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "log fit iterations and timing")
}

// addPageFlags adds page preset flags to a FlagSet.
func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.StringVarP(&f.size, "page-size", "p", "", "page size: a4, letter, legal")
	fs.StringVar(&f.orientation, "orientation", "", "page orientation: portrait, landscape")
}

// addTypographyFlags adds typography flags to a FlagSet.
func addTypographyFlags(fs *flag.FlagSet, f *typographyFlags) {
	fs.Float64Var(&f.title, "title-size", 0, "starting title size in points")
	fs.Float64Var(&f.subtitle, "subtitle-size", 0, "starting subtitle size in points")
	fs.Float64Var(&f.subsubtitle, "subsubtitle-size", 0, "starting subsubtitle size in points")
	fs.Float64Var(&f.normal, "text-size", 0, "starting body text size in points")
	fs.Float64Var(&f.lineSpacing, "line-spacing", 0, "starting line spacing multiplier")
	fs.StringVar(&f.font, "font", "", "font family (see 'pdfgen fonts')")
	fs.StringVar(&f.titleColor, "title-color", "", "title color (hex)")
	fs.StringVar(&f.subtitleColor, "subtitle-color", "", "subtitle color (hex)")
	fs.StringVar(&f.subsubtitleColor, "subsubtitle-color", "", "subsubtitle color (hex)")
	fs.BoolVar(&f.twoColumns, "two-columns", false, "lay content out in two columns")
}

// addFitFlags adds fit loop flags to a FlagSet.
func addFitFlags(fs *flag.FlagSet, f *fitFlags) {
	fs.StringVar(&f.strategy, "strategy", "", "rescale strategy: flat, proportional")
	fs.BoolVar(&f.fontAware, "font-aware", false, "weight the page estimate by font size")
	fs.BoolVar(&f.noFit, "no-fit", false, "render at the starting sizes without fitting")
	fs.StringVar(&f.profile, "profile", "", "start from a saved profile file")
	fs.StringVar(&f.saveProfile, "save-profile", "", "write the resulting profile to a file")
}

// addAssetFlags adds asset-related flags to a FlagSet.
func addAssetFlags(fs *flag.FlagSet, f *assetFlags) {
	fs.StringVar(&f.style, "style", "", "CSS style name or file path")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
}

// addOutputFlags adds output mode flags to a FlagSet.
func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.BoolVar(&f.html, "html", false, "output HTML alongside PDF")
	fs.BoolVar(&f.htmlOnly, "html-only", false, "output HTML only, skip PDF")
}

// addDocumentFlags registers the flags shared by generate and fit.
func addDocumentFlags(fs *flag.FlagSet, f *documentFlags) {
	fs.StringVar(&f.title, "title", "", "document title (default: front matter title)")
	addCommonFlags(fs, &f.common)
	addPageFlags(fs, &f.page)
	addTypographyFlags(fs, &f.typography)
	addFitFlags(fs, &f.fit)
	addAssetFlags(fs, &f.assets)
}

// parseGenerateFlags parses generate command flags and returns positional args.
func parseGenerateFlags(args []string, w io.Writer) (*generateFlags, []string, error) {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	f := &generateFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "PDF generation timeout (e.g., 30s, 2m)")
	addDocumentFlags(fs, &f.documentFlags)
	addOutputFlags(fs, &f.outputMode)

	fs.SetOutput(w)
	fs.Usage = func() { printGenerateUsage(w) }

	if err := parse(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseFitFlags parses fit command flags and returns positional args.
func parseFitFlags(args []string, w io.Writer) (*fitCmdFlags, []string, error) {
	fs := flag.NewFlagSet("fit", flag.ContinueOnError)
	f := &fitCmdFlags{}

	fs.BoolVar(&f.json, "json", false, "print the report as JSON")
	addDocumentFlags(fs, &f.documentFlags)

	fs.SetOutput(w)
	fs.Usage = func() { printFitUsage(w) }

	if err := parse(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseServeFlags parses serve command flags.
func parseServeFlags(args []string, w io.Writer) (*serveFlags, error) {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	f := &serveFlags{}

	fs.StringVarP(&f.addr, "addr", "a", "", "listen address (default :8080)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "generator pool size (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "PDF generation timeout (e.g., 30s, 2m)")
	fs.IntVar(&f.rateLimit, "rate-limit", 0, "requests per minute per client IP (-1 = off)")
	fs.Int64Var(&f.maxBody, "max-body", 0, "request body limit in bytes")
	fs.StringVar(&f.strategy, "strategy", "", "rescale strategy: flat, proportional")
	fs.BoolVar(&f.fontAware, "font-aware", false, "weight the page estimate by font size")
	addCommonFlags(fs, &f.common)
	addAssetFlags(fs, &f.assets)

	fs.SetOutput(w)
	fs.Usage = func() { printServeUsage(w) }

	if err := parse(fs, args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: serve takes no arguments, got %q", ErrUsage, fs.Args())
	}
	return f, nil
}

// parse runs fs.Parse, tagging failures with ErrUsage. ErrHelp passes through.
func parse(fs *flag.FlagSet, args []string) error {
	err := fs.Parse(args)
	if err == nil || errors.Is(err, flag.ErrHelp) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrUsage, err)
}
