package assets

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// writeAsset creates {dir}/{sub}/{file} with content.
func writeAsset(t *testing.T, dir, sub, file, content string) {
	t.Helper()
	full := filepath.Join(dir, sub)
	if err := os.MkdirAll(full, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", full, err)
	}
	if err := os.WriteFile(filepath.Join(full, file), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", file, err)
	}
}

// ---------------------------------------------------------------------------
// TestNewFilesystemLoader - The base path must be a readable directory
// ---------------------------------------------------------------------------

func TestNewFilesystemLoader(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := NewFilesystemLoader(t.TempDir()); err != nil {
		t.Errorf("directory: %v", err)
	}
	for _, bad := range []string{"", filepath.Join(t.TempDir(), "missing"), file} {
		if _, err := NewFilesystemLoader(bad); !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("NewFilesystemLoader(%q) = %v, want ErrInvalidBasePath", bad, err)
		}
	}
}

// ---------------------------------------------------------------------------
// TestFilesystemLoader_Load - Lookups by kind and name
// ---------------------------------------------------------------------------

func TestFilesystemLoader_Load(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeAsset(t, dir, "styles", "brand.css", "body { color: red; }")
	writeAsset(t, dir, "templates", "document.html", "<main>{{.Body}}</main>")

	loader, err := NewFilesystemLoader(dir)
	if err != nil {
		t.Fatalf("NewFilesystemLoader: %v", err)
	}

	tests := []struct {
		name    string
		load    func(string) (string, error)
		asset   string
		want    string
		wantErr error
	}{
		{"style", loader.LoadStyle, "brand", "body { color: red; }", nil},
		{"template", loader.LoadTemplate, "document", "<main>{{.Body}}</main>", nil},
		{"missing style", loader.LoadStyle, "absent", "", ErrStyleNotFound},
		{"missing template", loader.LoadTemplate, "absent", "", ErrTemplateNotFound},
		{"traversal style", loader.LoadStyle, "../secret", "", ErrInvalidAssetName},
		{"dotted template", loader.LoadTemplate, "document.evil", "", ErrInvalidAssetName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := tt.load(tt.asset)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("load(%q) error = %v, want %v", tt.asset, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("load(%q) = %q, want %q", tt.asset, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestFilesystemLoader_SymlinkEscape - Links out of the directory are refused
// ---------------------------------------------------------------------------

func TestFilesystemLoader_SymlinkEscape(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "styles"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	outside := filepath.Join(t.TempDir(), "secret.css")
	if err := os.WriteFile(outside, []byte("secret"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.Symlink(outside, filepath.Join(dir, "styles", "evil.css")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	loader, err := NewFilesystemLoader(dir)
	if err != nil {
		t.Fatalf("NewFilesystemLoader: %v", err)
	}

	got, err := loader.LoadStyle("evil")
	if !errors.Is(err, ErrAssetRead) {
		t.Errorf("LoadStyle(evil) error = %v, want ErrAssetRead", err)
	}
	if got == "secret" {
		t.Error("content outside the asset directory was returned")
	}
}
