package main

import (
	"fmt"

	pdfgen "github.com/Ian9Franco/pdf-generator"
)

// runFonts lists the selectable font families.
func runFonts(env *Environment) {
	for _, f := range pdfgen.Fonts() {
		fmt.Fprintln(env.Stdout, f.Name)
	}
}

// fontNames returns the font family names, for hints.
func fontNames() []string {
	fonts := pdfgen.Fonts()
	names := make([]string, len(fonts))
	for i, f := range fonts {
		names[i] = f.Name
	}
	return names
}
