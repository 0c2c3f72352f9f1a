package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: pdfgen <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  generate   Fit markdown files onto one page and write PDFs")
	fmt.Fprintln(w, "  fit        Run the fit loop and report the chosen typography")
	fmt.Fprintln(w, "  serve      Start the HTTP API")
	fmt.Fprintln(w, "  fonts      List available font families")
	fmt.Fprintln(w, "  doctor     Check the browser and environment")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "'pdfgen notes.md' is shorthand for 'pdfgen generate notes.md'.")
	fmt.Fprintln(w, "Run 'pdfgen help <command>' for details on a specific command.")
}

// printDocumentFlags prints the flags shared by generate and fit.
func printDocumentFlags(w io.Writer) {
	fmt.Fprintln(w, "Document:")
	fmt.Fprintln(w, "      --title <s>             Title (default: front matter title)")
	fmt.Fprintln(w, "  -c, --config <name>         Config file name or path")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Page:")
	fmt.Fprintln(w, "  -p, --page-size <s>         Page size: a4, letter, legal")
	fmt.Fprintln(w, "      --orientation <s>       Orientation: portrait, landscape")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Typography (starting sizes in points):")
	fmt.Fprintln(w, "      --title-size <f>        Title size")
	fmt.Fprintln(w, "      --subtitle-size <f>     Subtitle size")
	fmt.Fprintln(w, "      --subsubtitle-size <f>  Subsubtitle size")
	fmt.Fprintln(w, "      --text-size <f>         Body text size")
	fmt.Fprintln(w, "      --line-spacing <f>      Line spacing multiplier")
	fmt.Fprintln(w, "      --font <name>           Font family (see 'pdfgen fonts')")
	fmt.Fprintln(w, "      --title-color <hex>     Title color")
	fmt.Fprintln(w, "      --subtitle-color <hex>  Subtitle color")
	fmt.Fprintln(w, "      --subsubtitle-color <hex>")
	fmt.Fprintln(w, "                              Subsubtitle color")
	fmt.Fprintln(w, "      --two-columns           Two-column layout")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Fitting:")
	fmt.Fprintln(w, "      --strategy <s>          Rescale strategy: flat, proportional")
	fmt.Fprintln(w, "      --font-aware            Weight the page estimate by font size")
	fmt.Fprintln(w, "      --no-fit                Render at the starting sizes")
	fmt.Fprintln(w, "      --profile <path>        Start from a saved profile")
	fmt.Fprintln(w, "      --save-profile <path>   Save the fitted profile")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Styling:")
	fmt.Fprintln(w, "      --style <name|path>     CSS style name or file")
	fmt.Fprintln(w, "      --asset-path <dir>      Custom asset directory")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet                 Only show errors")
	fmt.Fprintln(w, "  -v, --verbose               Log fit iterations and timing")
}

// printGenerateUsage prints usage for the generate command.
func printGenerateUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: pdfgen generate <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Fit markdown files onto a single page and write PDFs.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Markdown file or directory (optional if config has input.defaultDir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>         Output file or directory")
	fmt.Fprintln(w, "  -w, --workers <n>           Parallel workers (0 = auto)")
	fmt.Fprintln(w, "  -t, --timeout <d>           Generation timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w, "      --html                  Also write the HTML")
	fmt.Fprintln(w, "      --html-only             Write HTML only, skip PDF")
	fmt.Fprintln(w)
	printDocumentFlags(w)
}

// printFitUsage prints usage for the fit command.
func printFitUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: pdfgen fit <file.md> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run the fit loop without writing a PDF and report the result.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "      --json                  Print the report as JSON")
	fmt.Fprintln(w)
	printDocumentFlags(w)
}

// printServeUsage prints usage for the serve command.
func printServeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: pdfgen serve [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Serve the generator over HTTP.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Routes:")
	fmt.Fprintln(w, "  POST /api/generate    Fit and return a PDF")
	fmt.Fprintln(w, "  POST /api/fit         Fit and return the report as JSON")
	fmt.Fprintln(w, "  POST /api/preview     Return the HTML at the starting sizes")
	fmt.Fprintln(w, "  GET  /api/fonts       List font families")
	fmt.Fprintln(w, "  GET  /healthz         Liveness probe")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -a, --addr <addr>           Listen address (default :8080)")
	fmt.Fprintln(w, "  -w, --workers <n>           Generator pool size (0 = auto)")
	fmt.Fprintln(w, "  -t, --timeout <d>           Generation timeout")
	fmt.Fprintln(w, "      --rate-limit <n>        Requests per minute per IP (-1 = off)")
	fmt.Fprintln(w, "      --max-body <bytes>      Request body limit")
	fmt.Fprintln(w, "      --strategy <s>          Rescale strategy: flat, proportional")
	fmt.Fprintln(w, "      --font-aware            Weight the page estimate by font size")
	fmt.Fprintln(w, "      --style <name|path>     CSS style name or file")
	fmt.Fprintln(w, "      --asset-path <dir>      Custom asset directory")
	fmt.Fprintln(w, "  -c, --config <name>         Config file name or path")
	fmt.Fprintln(w, "  -v, --verbose               Log requests at debug level")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "generate":
		printGenerateUsage(env.Stdout)
	case "fit":
		printFitUsage(env.Stdout)
	case "serve":
		printServeUsage(env.Stdout)
	case "fonts":
		fmt.Fprintln(env.Stdout, "Usage: pdfgen fonts")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "List the font families accepted by --font.")
	case "doctor":
		fmt.Fprintln(env.Stdout, "Usage: pdfgen doctor [--json]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Check that Chrome can be found and the environment is usable.")
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: pdfgen version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: pdfgen help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
