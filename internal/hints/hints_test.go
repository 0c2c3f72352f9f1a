package hints

// Notes:
// - TestForBrowserConnect sets environment variables and swaps
//   IsInContainer, so it does not run in parallel.

import (
	"path/filepath"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestForBrowserConnect - Suggestions depend on CI, container and rod vars
// ---------------------------------------------------------------------------

func TestForBrowserConnect(t *testing.T) {
	tests := []struct {
		name        string
		ci          string
		container   bool
		noSandbox   string
		browserBin  string
		wantSandbox bool
		wantBin     bool
	}{
		{"ci without sandbox", "true", false, "", "", true, true},
		{"container without sandbox", "", true, "", "", true, true},
		{"sandbox already disabled", "true", true, "1", "", false, true},
		{"browser bin set", "", false, "", "/usr/bin/chromium", false, false},
		{"everything configured", "true", true, "1", "/usr/bin/chromium", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orig := IsInContainer
			t.Cleanup(func() { IsInContainer = orig })
			IsInContainer = func() bool { return tt.container }

			for _, v := range ciVars {
				t.Setenv(v, "")
			}
			t.Setenv("CI", tt.ci)
			t.Setenv("ROD_NO_SANDBOX", tt.noSandbox)
			t.Setenv("ROD_BROWSER_BIN", tt.browserBin)

			hint := ForBrowserConnect()

			if got := strings.Contains(hint, "ROD_NO_SANDBOX"); got != tt.wantSandbox {
				t.Errorf("sandbox suggestion = %v, want %v (hint %q)", got, tt.wantSandbox, hint)
			}
			if got := strings.Contains(hint, "ROD_BROWSER_BIN"); got != tt.wantBin {
				t.Errorf("browser suggestion = %v, want %v (hint %q)", got, tt.wantBin, hint)
			}
			if !tt.wantSandbox && !tt.wantBin && hint != "" {
				t.Errorf("hint = %q, want empty", hint)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestHints - Content of the fixed and list-based hints
// ---------------------------------------------------------------------------

func TestHints(t *testing.T) {
	t.Parallel()

	userPath := filepath.Join("home", "ada", ".config", "pdf-generator", "work.yaml")

	tests := []struct {
		name string
		hint string
		want []string
	}{
		{"timeout", ForTimeout(), []string{"--timeout"}},
		{"config with user path", ForConfigNotFound([]string{"work.yaml", userPath}), []string{"--config", "or create " + userPath}},
		{"output directory", ForOutputDirectory(), []string{"writable"}},
		{"style", ForStyleNotFound([]string{"compact", "default"}), []string{"--style", "compact, default", ".css"}},
		{"font", ForUnknownFont([]string{"Exo", "Poppins"}), []string{"pdfgen fonts", "Exo, Poppins"}},
		{"profile", ForProfileNotFound(), []string{"--save-profile"}},
		{"floor", ForFloorReached(3), []string{"3 pages", "--page-size legal"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if !strings.HasPrefix(tt.hint, "\n  hint: ") {
				t.Errorf("hint %q lacks the standard prefix", tt.hint)
			}
			for _, w := range tt.want {
				if !strings.Contains(tt.hint, w) {
					t.Errorf("hint %q should contain %q", tt.hint, w)
				}
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestHints_Empty - Nothing to suggest renders nothing
// ---------------------------------------------------------------------------

func TestHints_Empty(t *testing.T) {
	t.Parallel()

	if got := ForStyleNotFound(nil); got != "" {
		t.Errorf("ForStyleNotFound(nil) = %q", got)
	}
	if got := ForUnknownFont(nil); got != "" {
		t.Errorf("ForUnknownFont(nil) = %q", got)
	}
	if got := ForConfigNotFound([]string{"work.yaml"}); strings.Contains(got, "create") {
		t.Errorf("ForConfigNotFound without a user path = %q", got)
	}
	if got := join("", ""); got != "" {
		t.Errorf("join of empty parts = %q", got)
	}
	if got := join("a", "", "b"); got != "\n  hint: a; b" {
		t.Errorf("join() = %q", got)
	}
}
