package fileutil_test

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/Ian9Franco/pdf-generator/internal/fileutil"
)

// ---------------------------------------------------------------------------
// TestWriteTemp - Content, naming and removal
// ---------------------------------------------------------------------------

func TestWriteTemp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ext  string
		want string
	}{
		{"bare extension", "html", ".html"},
		{"leading dot", ".css", ".css"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path, remove, err := fileutil.WriteTemp([]byte("<p>hi</p>"), tt.ext)
			if err != nil {
				t.Fatalf("WriteTemp: %v", err)
			}

			base := filepath.Base(path)
			if !strings.HasPrefix(base, fileutil.TempPrefix) || !strings.HasSuffix(base, tt.want) {
				t.Errorf("name = %q, want %s*%s", base, fileutil.TempPrefix, tt.want)
			}
			got, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("reading temp file: %v", err)
			}
			if string(got) != "<p>hi</p>" {
				t.Errorf("content = %q", got)
			}

			remove()
			if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
				t.Errorf("file still present after remove: %v", err)
			}
			remove()
		})
	}
}

// ---------------------------------------------------------------------------
// TestWriteTemp_InvalidExtension - Separators and empty extensions
// ---------------------------------------------------------------------------

func TestWriteTemp_InvalidExtension(t *testing.T) {
	t.Parallel()

	for _, ext := range []string{"", ".", "../html", `x\y`, "ht\x00ml"} {
		path, remove, err := fileutil.WriteTemp([]byte("x"), ext)
		if !errors.Is(err, fileutil.ErrInvalidExtension) {
			t.Errorf("WriteTemp(%q) error = %v, want ErrInvalidExtension", ext, err)
		}
		if path != "" || remove != nil {
			t.Errorf("WriteTemp(%q) should return no path or remove func", ext)
		}
	}
}

// ---------------------------------------------------------------------------
// TestProbeWritable - Writable and missing directories
// ---------------------------------------------------------------------------

func TestProbeWritable(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := fileutil.ProbeWritable(dir); err != nil {
		t.Fatalf("ProbeWritable(%s) = %v", dir, err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("probe left %d entries behind", len(entries))
	}

	if err := fileutil.ProbeWritable(filepath.Join(dir, "missing")); err == nil {
		t.Error("ProbeWritable on a missing directory should fail")
	}
}

func TestProbeWritable_ReadOnly(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" || os.Getuid() == 0 {
		t.Skip("permission bits are not enforced here")
	}

	dir := t.TempDir()
	if err := os.Chmod(dir, 0o500); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chmod(dir, 0o700) })

	if err := fileutil.ProbeWritable(dir); err == nil {
		t.Error("ProbeWritable on a read-only directory should fail")
	}
}

// ---------------------------------------------------------------------------
// TestIsRegularFile - Files, directories and missing paths
// ---------------------------------------------------------------------------

func TestIsRegularFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "doc.md")
	if err := os.WriteFile(file, []byte("# doc"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
		want bool
	}{
		{"regular file", file, true},
		{"directory", dir, false},
		{"missing", filepath.Join(dir, "nope.md"), false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		if got := fileutil.IsRegularFile(tt.path); got != tt.want {
			t.Errorf("%s: IsRegularFile(%q) = %v, want %v", tt.name, tt.path, got, tt.want)
		}
	}
}

// ---------------------------------------------------------------------------
// TestLooksLikePath - Style and config names versus paths
// ---------------------------------------------------------------------------

func TestLooksLikePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"default", false},
		{"compact", false},
		{"work-config", false},
		{"theme.css", false},
		{"", false},
		{"./theme.css", true},
		{"../shared/theme.css", true},
		{"/etc/pdfgen/work.yaml", true},
		{`C:\styles\theme.css`, true},
		{"styles/theme.css", true},
	}

	for _, tt := range tests {
		if got := fileutil.LooksLikePath(tt.input); got != tt.want {
			t.Errorf("LooksLikePath(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
