package pdfgen_test

import (
	"context"
	"fmt"

	pdfgen "github.com/Ian9Franco/pdf-generator"
)

// Example fits a short document and renders HTML only.
// For PDF output, leave HTMLOnly unset (requires Chrome).
func Example() {
	gen, err := pdfgen.NewGenerator()
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer gen.Close()

	result, err := gen.Generate(context.Background(), pdfgen.Input{
		Title:    "Hello",
		Markdown: "This is a test.",
		HTMLOnly: true,
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println(result.Status, result.Iterations, result.EstimatedPages)
	// Output: fitted 0 1
}

// ExampleGenerator_Fit continues fitting from a profile returned by an
// earlier run.
func ExampleGenerator_Fit() {
	gen, err := pdfgen.NewGenerator(pdfgen.WithStrategy(pdfgen.StrategyProportional))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer gen.Close()

	profile := pdfgen.Profile{Title: 15, Subtitle: 13, Subsubtitle: 11, Normal: 9, LineSpacing: 1}
	report, err := gen.Fit(context.Background(), pdfgen.Input{
		Markdown:   "# Agenda\n\n- intro\n- results",
		Page:       &pdfgen.PageSettings{Size: pdfgen.PageSizeLetter},
		Typography: &pdfgen.Typography{Profile: &profile},
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println(report.Status, report.Profile.Normal)
	// Output: fitted 9
}

// ExampleFonts lists the first selectable font families.
func ExampleFonts() {
	for _, f := range pdfgen.Fonts()[:3] {
		fmt.Println(f.Name)
	}
	// Output:
	// Beau Rivage
	// Exo
	// Glory
}
