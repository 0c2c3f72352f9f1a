// Package pdfgen turns Markdown into a single-page PDF, shrinking the
// typography until the content is estimated to fit on one page.
//
// # Quick Start
//
// Create a generator, generate, and close when done:
//
//	gen, err := pdfgen.NewGenerator()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer gen.Close()
//
//	result, err := gen.Generate(ctx, pdfgen.Input{
//	    Title:    "Weekly Report",
//	    Markdown: "## Summary\n\nAll good.",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("report.pdf", result.PDF, 0644)
//
// The result carries the PDF bytes, the intermediate HTML, and a FitReport:
// the final Profile, the Status (fitted or floor_reached), the number of
// shrink iterations and the estimated page count. Use Input.HTMLOnly to skip
// the browser, or Generator.Fit to get the report alone.
//
// # Pipeline
//
//  1. Front matter split (title, lang) and Markdown preprocessing
//  2. Content blocks from the Goldmark AST, sized from the starting profile
//  3. Fit loop: estimate pages, shrink every tier one step, repeat until one
//     page or the 8pt body floor
//  4. HTML from the fitted blocks and the document template
//  5. PDF rendering via headless Chrome (go-rod)
//
// The browser is never involved in the fit loop; the page estimate is a
// density heuristic over the serialized blocks.
//
// # Fitting
//
// By default every tier loses 0.5pt per step and the estimate ignores font
// size, so content that overflows at 12pt keeps overflowing until the floor.
// Two options change that:
//
//	gen, err := pdfgen.NewGenerator(
//	    pdfgen.WithStrategy(pdfgen.StrategyProportional), // keep tier ratios
//	    pdfgen.WithFontAwareEstimate(true),               // smaller type, fewer pages
//	)
//
// A Result's Profile can be fed back through Typography.Profile to resume
// from where the previous run stopped.
//
// # Configuration
//
//	gen, err := pdfgen.NewGenerator(
//	    pdfgen.WithTimeout(2 * time.Minute),
//	    pdfgen.WithStyle("compact"),
//	    pdfgen.WithAssetPath("/path/to/custom/assets"),
//	)
//
// # Parallel Rendering
//
// Each Generator owns one browser. For batches use a GeneratorPool:
//
//	pool := pdfgen.NewGeneratorPool(pdfgen.ResolvePoolSize(0))
//	defer pool.Close()
//
//	gen, err := pool.Acquire(ctx)
//	if err != nil {
//	    return err
//	}
//	defer pool.Release(gen)
//
// # Environment
//
// ROD_BROWSER_BIN points at a pre-installed Chrome. The sandbox is disabled
// when it is set, when CI=true or when ROD_NO_SANDBOX=1.
package pdfgen
