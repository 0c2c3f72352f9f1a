package layout

import (
	"errors"
	"testing"
)

// ---------------------------------------------------------------------------
// TestRescale - Flat step over heterogeneous blocks
// ---------------------------------------------------------------------------

func TestRescale(t *testing.T) {
	t.Parallel()

	content := []ContentBlock{
		Heading(1, "Title", "#000000", 18, NewMargin(0, 20, 0, 10)),
		Heading(2, "Sub", "#000000", 16, NewMargin(0, 15, 0, 7)),
		Heading(3, "Subsub", "#000000", 14, NewMargin(0, 10, 0, 5)),
		Paragraph("body", 12, NewMargin(0, 0, 0, 10)),
		Paragraph("near subtitle", 17, nil),
		Other(map[string]any{"text": "\n"}, 0, nil),
		Other(map[string]any{"tag": "hr"}, 0, NewMargin(0, 5, 0, 5)),
	}

	got, next := Rescale(content, DefaultProfile(), DefaultStep)

	wantSizes := []float64{17.5, 15.5, 13.5, 11.5, 11.5, 11.5, 0}
	for i, want := range wantSizes {
		if got[i].FontSize != want {
			t.Errorf("block %d (%s): FontSize = %v, want %v", i, got[i].Kind, got[i].FontSize, want)
		}
	}

	wantMargins := map[int]Margin{
		0: {1, 19, 1, 9},
		1: {1, 14, 1, 6},
		2: {1, 9, 1, 4},
		3: {1, 1, 1, 9},
		6: {0, 5, 0, 5}, // not text-bearing, untouched
	}
	for i, want := range wantMargins {
		if *got[i].Margin != want {
			t.Errorf("block %d: Margin = %v, want %v", i, *got[i].Margin, want)
		}
	}

	wantProfile := TypographyProfile{Title: 17.5, Subtitle: 15.5, Subsubtitle: 13.5, Normal: 11.5, LineSpacing: 1.15}
	if next.Title != wantProfile.Title || next.Subtitle != wantProfile.Subtitle ||
		next.Subsubtitle != wantProfile.Subsubtitle || next.Normal != wantProfile.Normal ||
		!almostEqual(next.LineSpacing, wantProfile.LineSpacing) {
		t.Errorf("profile = %+v, want %+v", next, wantProfile)
	}
}

func TestRescale_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	content := []ContentBlock{
		Heading(1, "Title", "", 18, NewMargin(0, 20, 0, 10)),
		Other(map[string]any{"text": "x"}, 12, NewMargin(4, 4, 4, 4)),
	}

	out, _ := Rescale(content, DefaultProfile(), DefaultStep)
	out[1].Payload["text"] = "changed"

	if content[0].FontSize != 18 {
		t.Errorf("input FontSize = %v, want 18", content[0].FontSize)
	}
	if *content[0].Margin != (Margin{0, 20, 0, 10}) {
		t.Errorf("input Margin = %v, want [0 20 0 10]", *content[0].Margin)
	}
	if content[1].Payload["text"] != "x" {
		t.Errorf("input payload mutated: %v", content[1].Payload["text"])
	}
}

func TestRescale_PreservesOrder(t *testing.T) {
	t.Parallel()

	content := sampleDocument(100).Content
	out, _ := Rescale(content, DefaultProfile(), DefaultStep)

	if len(out) != len(content) {
		t.Fatalf("len = %d, want %d", len(out), len(content))
	}
	for i := range content {
		if out[i].Kind != content[i].Kind || out[i].Text != content[i].Text {
			t.Errorf("block %d reordered: got %s %q, want %s %q", i, out[i].Kind, out[i].Text, content[i].Kind, content[i].Text)
		}
	}
}

func TestRescale_MatchesAgainstPreviousTiers(t *testing.T) {
	t.Parallel()

	content := []ContentBlock{Heading(1, "Title", "", 18, nil)}
	profile := DefaultProfile()

	for i := 0; i < 4; i++ {
		content, profile = Rescale(content, profile, DefaultStep)
	}

	if content[0].FontSize != 16 || profile.Title != 16 {
		t.Errorf("after 4 passes: heading %v, title tier %v, want 16 and 16", content[0].FontSize, profile.Title)
	}
}

func TestRescale_ExactMatchQuirk(t *testing.T) {
	t.Parallel()

	// 17pt is visually close to the subtitle tier but matches no tier exactly,
	// so it falls through to the body size on the first pass.
	content := []ContentBlock{Heading(2, "Almost", "", 17, nil)}

	out, next := Rescale(content, DefaultProfile(), DefaultStep)

	if out[0].FontSize != next.Normal {
		t.Errorf("FontSize = %v, want body size %v", out[0].FontSize, next.Normal)
	}
}

func TestRescale_MarginFloor(t *testing.T) {
	t.Parallel()

	content := []ContentBlock{Paragraph("p", 12, NewMargin(0, 1, 2, 3))}
	profile := DefaultProfile()

	for i := 0; i < 5; i++ {
		content, profile = Rescale(content, profile, DefaultStep)
	}

	if *content[0].Margin != (Margin{1, 1, 1, 1}) {
		t.Errorf("Margin = %v, want all sides at %v", *content[0].Margin, MinMargin)
	}
}

func TestRescale_LineSpacingIsUnfloored(t *testing.T) {
	t.Parallel()

	profile := TypographyProfile{Title: 60, Subtitle: 50, Subsubtitle: 40, Normal: 30, LineSpacing: 0.1}
	_, next := Rescale(nil, profile, DefaultStep)

	if !almostEqual(next.LineSpacing, 0.05) {
		t.Errorf("LineSpacing = %v, want 0.05", next.LineSpacing)
	}
	_, next = Rescale(nil, next, DefaultStep)
	if next.LineSpacing > epsilon {
		t.Errorf("LineSpacing = %v, want ~0 (no floor)", next.LineSpacing)
	}
}

// ---------------------------------------------------------------------------
// TestRescaleProportional - Ratio-preserving strategy
// ---------------------------------------------------------------------------

func TestRescaleProportional(t *testing.T) {
	t.Parallel()

	base := DefaultProfile()
	content := []ContentBlock{
		Heading(1, "T", "", base.Title, nil),
		Heading(3, "S", "", base.Subsubtitle, nil),
		Paragraph("p", base.Normal, nil),
	}

	profile := base
	for i := 0; i < 8; i++ {
		content, profile = RescaleProportional(content, profile, base, DefaultStep)
	}

	if profile.Normal != 8 {
		t.Fatalf("Normal = %v, want 8", profile.Normal)
	}
	if !almostEqual(profile.Title, 12) {
		t.Errorf("Title = %v, want 12", profile.Title)
	}
	if !almostEqual(profile.Title/profile.Normal, base.Title/base.Normal) {
		t.Errorf("title ratio = %v, want %v", profile.Title/profile.Normal, base.Title/base.Normal)
	}
	if !(profile.Title > profile.Subtitle && profile.Subtitle > profile.Subsubtitle && profile.Subsubtitle > profile.Normal) {
		t.Errorf("hierarchy collapsed: %+v", profile)
	}
	if content[0].FontSize != profile.Title || content[1].FontSize != profile.Subsubtitle || content[2].FontSize != profile.Normal {
		t.Errorf("block sizes = %v/%v/%v, want tiers %v/%v/%v",
			content[0].FontSize, content[1].FontSize, content[2].FontSize,
			profile.Title, profile.Subsubtitle, profile.Normal)
	}
}

// ---------------------------------------------------------------------------
// TestParseStrategy - Strategy names
// ---------------------------------------------------------------------------

func TestParseStrategy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    Strategy
		wantErr error
	}{
		{input: "", want: StrategyFlat},
		{input: "flat", want: StrategyFlat},
		{input: "Proportional", want: StrategyProportional},
		{input: " proportional ", want: StrategyProportional},
		{input: "ratio", wantErr: ErrInvalidStrategy},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := ParseStrategy(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseStrategy(%q) = %v, want %v", tt.input, got, tt.want)
			}
			if got.String() != map[Strategy]string{StrategyFlat: "flat", StrategyProportional: "proportional"}[got] {
				t.Errorf("String() = %q", got.String())
			}
		})
	}
}
