// Package yamlutil reads and writes the YAML this module persists: config
// files, saved typography profiles and document front matter.
package yamlutil

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
)

// MaxInputSize caps decoded input, in bytes.
var MaxInputSize = 1 << 20

var (
	ErrEmpty         = errors.New("yamlutil: empty input")
	ErrInputTooLarge = errors.New("yamlutil: input exceeds maximum size")
	ErrRead          = errors.New("yamlutil: reading file")
	ErrWrite         = errors.New("yamlutil: writing file")
)

// Mode selects how keys without a matching field are treated.
type Mode int

const (
	Lenient Mode = iota // ignore unknown keys
	Strict              // reject unknown keys
)

func (m Mode) options() []yaml.DecodeOption {
	if m == Strict {
		return []yaml.DecodeOption{yaml.Strict()}
	}
	return nil
}

// Decode parses data into v, which must be a non-nil pointer.
func Decode(data []byte, v any, mode Mode) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return ErrEmpty
	}
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	if err := yaml.UnmarshalWithOptions(data, v, mode.options()...); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// ReadFile decodes the file at path into v. A missing file returns an error
// matching os.ErrNotExist. At most MaxInputSize+1 bytes are read, enough to
// tell that a file is too large.
func ReadFile(path string, v any, mode Mode) error {
	f, err := os.Open(path) // #nosec G304 -- user-chosen config or profile
	if errors.Is(err, os.ErrNotExist) {
		return err
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRead, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, int64(MaxInputSize)+1))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRead, err)
	}
	return Decode(data, v, mode)
}

// WriteFile encodes v to path, creating missing directories. The data goes
// to a sibling temp file first and is renamed over path, so readers never
// see a partial file.
func WriteFile(path string, v any) (err error) {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	_, werr := tmp.Write(data)
	if err := errors.Join(werr, tmp.Close()); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return nil
}
