package yamlutil_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Ian9Franco/pdf-generator/internal/yamlutil"
)

type sizes struct {
	Title  float64 `yaml:"titleSize"`
	Normal float64 `yaml:"normalTextSize"`
	Font   string  `yaml:"font"`
}

// ---------------------------------------------------------------------------
// TestDecode - Lenient and strict modes
// ---------------------------------------------------------------------------

func TestDecode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    string
		mode    yamlutil.Mode
		want    sizes
		wantErr bool
	}{
		{"known fields", "titleSize: 18\nnormalTextSize: 11.5\nfont: Exo", yamlutil.Strict, sizes{Title: 18, Normal: 11.5, Font: "Exo"}, false},
		{"unknown key ignored", "titleSize: 18\ncolor: red", yamlutil.Lenient, sizes{Title: 18}, false},
		{"unknown key rejected", "titleSize: 18\ncolor: red", yamlutil.Strict, sizes{}, true},
		{"syntax error", "titleSize: [unclosed", yamlutil.Lenient, sizes{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got sizes
			err := yamlutil.Decode([]byte(tt.data), &got, tt.mode)
			if tt.wantErr {
				if err == nil || !strings.HasPrefix(err.Error(), "yamlutil:") {
					t.Fatalf("error = %v, want a yamlutil error", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if got != tt.want {
				t.Errorf("decoded %+v, want %+v", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestDecode_Empty - Blank input is an error, not a zero value
// ---------------------------------------------------------------------------

func TestDecode_Empty(t *testing.T) {
	t.Parallel()

	for _, data := range []string{"", "  \n\t\n"} {
		if err := yamlutil.Decode([]byte(data), &sizes{}, yamlutil.Lenient); !errors.Is(err, yamlutil.ErrEmpty) {
			t.Errorf("Decode(%q) = %v, want ErrEmpty", data, err)
		}
	}
	if err := yamlutil.Decode([]byte("font: x"), nil, yamlutil.Lenient); err == nil {
		t.Error("Decode into nil should fail")
	}
}

// ---------------------------------------------------------------------------
// TestWriteThenReadFile - Round trip through disk
// ---------------------------------------------------------------------------

func TestWriteThenReadFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "profile.yaml")
	want := sizes{Title: 16.5, Normal: 10.5, Font: "Glory"}

	if err := yamlutil.WriteFile(path, want); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	var got sizes
	if err := yamlutil.ReadFile(path, &got, yamlutil.Strict); err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if got != want {
		t.Errorf("read back %+v, want %+v", got, want)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("%d entries next to the file, want no leftovers", len(entries))
	}
}

// ---------------------------------------------------------------------------
// TestReadFile_Errors - Missing files and unreadable paths
// ---------------------------------------------------------------------------

func TestReadFile_Errors(t *testing.T) {
	t.Parallel()

	var got sizes
	if err := yamlutil.ReadFile(filepath.Join(t.TempDir(), "missing.yaml"), &got, yamlutil.Lenient); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file: %v, want os.ErrNotExist", err)
	}
	if err := yamlutil.ReadFile(t.TempDir(), &got, yamlutil.Lenient); err == nil {
		t.Error("reading a directory should fail")
	}
}

// ---------------------------------------------------------------------------
// TestMaxInputSize - Oversized input is refused
// ---------------------------------------------------------------------------

// Changes the package-level limit, so it does not run in parallel.
func TestMaxInputSize(t *testing.T) {
	orig := yamlutil.MaxInputSize
	t.Cleanup(func() { yamlutil.MaxInputSize = orig })
	yamlutil.MaxInputSize = 100

	padded := func(n int) []byte {
		return []byte("font: " + strings.Repeat("x", n-len("font: ")))
	}

	if err := yamlutil.Decode(padded(100), &sizes{}, yamlutil.Strict); err != nil {
		t.Errorf("input at the limit: %v", err)
	}

	err := yamlutil.Decode(padded(101), &sizes{}, yamlutil.Strict)
	if !errors.Is(err, yamlutil.ErrInputTooLarge) {
		t.Fatalf("input over the limit: %v, want ErrInputTooLarge", err)
	}
	if !strings.Contains(err.Error(), "101 bytes") || !strings.Contains(err.Error(), "max 100") {
		t.Errorf("error should name both sizes: %s", err)
	}

	path := filepath.Join(t.TempDir(), "big.yaml")
	if err := os.WriteFile(path, padded(300), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := yamlutil.ReadFile(path, &sizes{}, yamlutil.Lenient); !errors.Is(err, yamlutil.ErrInputTooLarge) {
		t.Errorf("oversized file: %v, want ErrInputTooLarge", err)
	}
}
