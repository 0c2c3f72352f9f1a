package layout

import (
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestPagesForDensity - Area-based page count formula
// ---------------------------------------------------------------------------

func TestPagesForDensity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		density float64
		geom    PageGeometry
		want    int
	}{
		{name: "empty content is one page", density: 0, geom: a4, want: 1},
		{name: "50,000 on A4", density: 50_000, geom: a4, want: 1},
		{name: "exactly one page threshold", density: 185_915, geom: a4, want: 1},
		{name: "one byte over threshold", density: 185_916, geom: a4, want: 2},
		{name: "500,000 on A4", density: 500_000, geom: a4, want: 3},
		{name: "letter page", density: 200_000, geom: PageGeometry{Width: 612, Height: 792}, want: 2},
		{name: "degenerate page clamps area", density: 10, geom: PageGeometry{Width: 10, Height: 10}, want: 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := PagesForDensity(tt.density, tt.geom); got != tt.want {
				t.Errorf("PagesForDensity(%v) = %d, want %d", tt.density, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestDensityProxy - Serialized length of the content tree
// ---------------------------------------------------------------------------

func TestDensityProxy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content []ContentBlock
		want    int
	}{
		{name: "nil content", content: nil, want: len(`[]`)},
		{name: "empty content", content: []ContentBlock{}, want: len(`[]`)},
		{
			name:    "paragraph",
			content: []ContentBlock{Paragraph("abc", 12, nil)},
			want:    len(`[{"text":"abc","fontSize":12}]`),
		},
		{
			name:    "heading with margin",
			content: []ContentBlock{Heading(1, "T", "#000000", 18, NewMargin(0, 20, 0, 10))},
			want:    len(`[{"text":"T","style":"h1","bold":true,"color":"#000000","fontSize":18,"margin":[0,20,0,10]}]`),
		},
		{
			name:    "other keeps payload",
			content: []ContentBlock{Other(map[string]any{"tag": "hr"}, 12, nil)},
			want:    len(`[{"fontSize":12,"tag":"hr"}]`),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := DensityProxy(tt.content); got != tt.want {
				t.Errorf("DensityProxy() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDensityProxy_DoublingContent(t *testing.T) {
	t.Parallel()

	single := sampleDocument(5_000).Content
	double := append(CloneBlocks(single), CloneBlocks(single)...)

	// n items cost n*(len+1)+1 bytes, so doubling costs one byte less than twice.
	if got, want := DensityProxy(double), 2*DensityProxy(single)-1; got != want {
		t.Errorf("DensityProxy(doubled) = %d, want %d", got, want)
	}
}

// ---------------------------------------------------------------------------
// TestEstimate - Plain density model
// ---------------------------------------------------------------------------

func TestEstimate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content []ContentBlock
		want    int
	}{
		{name: "nil content", content: nil, want: 1},
		{name: "50,000 bytes", content: paragraphOfSize(50_000), want: 1},
		{name: "500,000 bytes", content: paragraphOfSize(500_000), want: 3},
		{name: "1,000,000 bytes", content: paragraphOfSize(1_000_000), want: 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Estimate(tt.content, a4); got != tt.want {
				t.Errorf("Estimate() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestEstimate_Monotonic(t *testing.T) {
	t.Parallel()

	prev := 0
	for n := 1_000; n <= 2_000_000; n += 37_000 {
		got := Estimate(paragraphOfSize(n), a4)
		if got < prev {
			t.Fatalf("Estimate(%d bytes) = %d, smaller than previous %d", n, got, prev)
		}
		prev = got
	}
}

func TestEstimate_DoublingRoughlyDoublesPages(t *testing.T) {
	t.Parallel()

	for _, n := range []int{400_000, 900_000, 1_500_000} {
		single := Estimate(paragraphOfSize(n), a4)
		double := Estimate(paragraphOfSize(2*n), a4)
		if double < 2*single-1 || double > 2*single {
			t.Errorf("n=%d: doubled estimate %d, want within [%d, %d]", n, double, 2*single-1, 2*single)
		}
	}
}

func TestEstimate_IgnoresFontSize(t *testing.T) {
	t.Parallel()

	big := paragraphOfSize(300_000)
	small := CloneBlocks(big)
	small[0].FontSize = 8

	if Estimate(big, a4) != Estimate(small, a4) {
		t.Error("plain estimate must not depend on font size")
	}
}

// ---------------------------------------------------------------------------
// TestEstimator_FontAware - Size-weighted density model
// ---------------------------------------------------------------------------

func TestEstimator_FontAware(t *testing.T) {
	t.Parallel()

	doc := DocumentDefinition{
		Content:      paragraphOfSize(300_000),
		DefaultStyle: Style{FontSize: 12, LineSpacing: 1.2},
		PageSize:     a4,
	}

	plain := Estimator{}.Pages(doc)
	aware := Estimator{FontAware: true}.Pages(doc)
	if plain != aware {
		t.Errorf("at reference size: font-aware %d, plain %d, want equal", aware, plain)
	}

	doc.Content[0].FontSize = 6
	if got := (Estimator{FontAware: true}).Pages(doc); got != 1 {
		t.Errorf("at 6pt: font-aware estimate = %d, want 1 (quarter density)", got)
	}

	doc.Content[0].FontSize = 24
	if got := (Estimator{FontAware: true}).Pages(doc); got <= aware {
		t.Errorf("at 24pt: font-aware estimate = %d, want more than %d", got, aware)
	}
}

func TestEstimator_FontAwareUsesDefaultStyleForUnsizedBlocks(t *testing.T) {
	t.Parallel()

	doc := DocumentDefinition{
		Content:      []ContentBlock{Other(map[string]any{"text": strings.Repeat("y", 300_000)}, 0, nil)},
		DefaultStyle: Style{FontSize: 6, LineSpacing: 1.2},
		PageSize:     a4,
	}

	if got := (Estimator{FontAware: true}).Pages(doc); got != 1 {
		t.Errorf("Pages() = %d, want 1 when default size is 6pt", got)
	}
}
