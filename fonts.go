package pdfgen

import "strings"

// Font is a selectable font family.
type Font struct {
	Name     string `json:"name"`
	Variable string `json:"variable"` // CSS custom property naming the family
}

var fonts = []Font{
	{Name: "Beau Rivage", Variable: "--font-beau-rivage"},
	{Name: "Exo", Variable: "--font-exo"},
	{Name: "Glory", Variable: "--font-glory"},
	{Name: "IBM Plex Mono", Variable: "--font-ibm-plex-mono"},
	{Name: "IBM Plex Sans Condensed", Variable: "--font-ibm-plex-sans-condensed"},
	{Name: "IBM Plex Serif", Variable: "--font-ibm-plex-serif"},
	{Name: "Italianno", Variable: "--font-italianno"},
	{Name: "Open Sans", Variable: "--font-open-sans"},
	{Name: "Playfair Display", Variable: "--font-playfair-display"},
	{Name: "Poppins", Variable: "--font-poppins"},
	{Name: "Qwitcher Grypen", Variable: "--font-qwitcher-grypen"},
	{Name: "Roboto Mono", Variable: "--font-roboto-mono"},
	{Name: "Roboto Slab", Variable: "--font-roboto-slab"},
}

// Fonts returns the selectable font families in display order.
// The returned slice is a copy.
func Fonts() []Font {
	out := make([]Font, len(fonts))
	copy(out, fonts)
	return out
}

// LookupFont finds a font by name, ignoring case and surrounding spaces.
func LookupFont(name string) (Font, bool) {
	name = strings.TrimSpace(name)
	for _, f := range fonts {
		if strings.EqualFold(f.Name, name) {
			return f, true
		}
	}
	return Font{}, false
}
