package main

import (
	"io"
	"os"
	"time"

	pdfgen "github.com/Ian9Franco/pdf-generator"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now    func() time.Time
	Stdout io.Writer
	Stderr io.Writer

	// NewPool builds the generator pool for generate and fit.
	NewPool func(size int, opts ...pdfgen.Option) Pool
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:     time.Now,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		NewPool: newGeneratorPool,
	}
}
