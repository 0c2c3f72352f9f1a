// Command pdfgen fits markdown documents onto a single page and renders them
// to PDF.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/Ian9Franco/pdf-generator/internal/logging"
)

// Version is set at build time via ldflags.
var Version = "dev"

// ErrUnknownCommand is returned for an unrecognized command name.
var ErrUnknownCommand = errors.New("unknown command")

func main() {
	verbose := hasVerboseFlag(os.Args[1:])
	logging.SetLogger(logging.NewTextLogger(os.Stderr, verbose))

	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	if verbose {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			logging.Logger().Debug(fmt.Sprintf(format, args...))
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	os.Exit(runMain(os.Args, DefaultEnv()))
}

// runMain dispatches the command in args[1] and returns the process exit code.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	warnUnknownEnvVars(env.Stderr)

	cmd, rest := args[1], args[2:]
	var err error
	switch cmd {
	case "generate":
		err = runGenerateCmd(ctx, rest, env)
	case "fit":
		err = runFitCmd(ctx, rest, env)
	case "serve":
		err = runServeCmd(ctx, rest, env)
	case "fonts":
		runFonts(env)
	case "doctor":
		return runDoctorCmd(rest, env)
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "pdfgen %s\n", Version)
	case "help", "-h", "--help":
		runHelp(rest, env)
	default:
		// "pdfgen notes.md" is shorthand for "pdfgen generate notes.md".
		if looksLikeMarkdown(cmd) {
			err = runGenerateCmd(ctx, args[1:], env)
			break
		}
		err = fmt.Errorf("%w: %s", ErrUnknownCommand, cmd)
		printUsage(env.Stderr)
	}

	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err))
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// looksLikeMarkdown reports whether arg names a markdown file.
func looksLikeMarkdown(arg string) bool {
	lower := strings.ToLower(arg)
	return strings.HasSuffix(lower, ".md") || strings.HasSuffix(lower, ".markdown")
}

// hasVerboseFlag scans raw arguments for -v/--verbose before any FlagSet
// has parsed them, so logging is configured before the command runs.
func hasVerboseFlag(args []string) bool {
	for _, a := range args {
		if a == "--" {
			return false
		}
		if a == "-v" || a == "--verbose" || a == "--verbose=true" {
			return true
		}
	}
	return false
}
