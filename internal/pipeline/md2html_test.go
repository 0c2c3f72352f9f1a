package pipeline

import (
	"context"
	"errors"
	"runtime"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestPreview - Markdown straight to HTML
// ---------------------------------------------------------------------------

func TestPreview(t *testing.T) {
	t.Parallel()

	p := NewPreviewer()

	tests := []struct {
		name     string
		input    string
		opts     PreviewOptions
		contains []string
		excludes []string
	}{
		{
			name:     "document shell",
			input:    "# Hi",
			contains: []string{"<!DOCTYPE html>", "<title>Preview</title>", `<h1 id="hi">Hi</h1>`},
		},
		{
			name:     "title escaped",
			input:    "x",
			opts:     PreviewOptions{Title: "A & <B>"},
			contains: []string{"<title>A &amp; &lt;B&gt;</title>"},
		},
		{
			name:     "highlight becomes mark",
			input:    "a ==b== c",
			contains: []string{"<mark>b</mark>"},
			excludes: []string{MarkStartPlaceholder},
		},
		{
			name:     "gfm table",
			input:    "| a | b |\n|---|---|\n| 1 | 2 |",
			contains: []string{"<table>", "<th>a</th>", "<td>2</td>"},
		},
		{
			name:     "raw html escaped",
			input:    "<script>alert(1)</script>",
			excludes: []string{"<script>alert(1)</script>"},
		},
		{
			name:     "code highlighted inline",
			input:    "```go\nfunc main() {}\n```",
			contains: []string{"<pre", "style=", "func"},
		},
		{
			name:     "css injected",
			input:    "x",
			opts:     PreviewOptions{CSS: "p { color: red; }"},
			contains: []string{"<style>p { color: red; }</style></head>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := p.Preview(context.Background(), tt.input, tt.opts)
			if err != nil {
				t.Fatalf("Preview() error = %v", err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("Preview() lacks %q:\n%s", want, got)
				}
			}
			for _, bad := range tt.excludes {
				if strings.Contains(got, bad) {
					t.Errorf("Preview() contains %q:\n%s", bad, got)
				}
			}
		})
	}
}

func TestPreview_RewritesImages(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("unix paths")
	}

	got, err := NewPreviewer().Preview(context.Background(), "![p](img/p.png)", PreviewOptions{SourceDir: "/notes"})
	if err != nil {
		t.Fatalf("Preview() error = %v", err)
	}
	if !strings.Contains(got, "file:///notes/img/p.png") {
		t.Errorf("image not rewritten:\n%s", got)
	}
}

func TestPreview_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewPreviewer().Preview(ctx, "# x", PreviewOptions{}); !errors.Is(err, context.Canceled) {
		t.Errorf("Preview() error = %v, want context.Canceled", err)
	}
}
