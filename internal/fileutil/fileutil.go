// Package fileutil holds the path and temp file helpers shared by the
// generator, the renderer and the CLI.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// TempPrefix starts the name of every temp file this module creates.
const TempPrefix = "pdfgen-"

// ErrInvalidExtension rejects temp file extensions that could name a path.
var ErrInvalidExtension = errors.New("invalid temp file extension")

// WriteTemp writes content to a new file named TempPrefix*.ext in the system
// temp directory. The returned func removes it.
func WriteTemp(content []byte, ext string) (path string, remove func(), err error) {
	ext = strings.TrimPrefix(ext, ".")
	if ext == "" || strings.ContainsAny(ext, "/\\\x00") {
		return "", nil, fmt.Errorf("%w: %q", ErrInvalidExtension, ext)
	}

	f, err := os.CreateTemp("", TempPrefix+"*."+ext)
	if err != nil {
		return "", nil, fmt.Errorf("creating temp file: %w", err)
	}
	path = f.Name()
	remove = func() { _ = os.Remove(path) }

	_, werr := f.Write(content)
	if err := errors.Join(werr, f.Close()); err != nil {
		remove()
		return "", nil, fmt.Errorf("writing temp file: %w", err)
	}
	return path, remove, nil
}

// ProbeWritable creates and removes a file in dir.
func ProbeWritable(dir string) error {
	f, err := os.CreateTemp(dir, TempPrefix+"probe-*")
	if err != nil {
		return err
	}
	name := f.Name()
	_ = f.Close()
	return os.Remove(name)
}

// IsRegularFile reports whether path exists and is not a directory.
func IsRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// LooksLikePath reports whether s names a file rather than a bundled style
// or a config name: anything holding a / or \ separator.
func LooksLikePath(s string) bool {
	return strings.ContainsAny(s, `/\`)
}
