package main

import (
	"context"
	"fmt"

	pdfgen "github.com/Ian9Franco/pdf-generator"
)

// DocumentGenerator is the part of *pdfgen.Generator the CLI uses.
type DocumentGenerator interface {
	Generate(ctx context.Context, input pdfgen.Input) (*pdfgen.Result, error)
	Fit(ctx context.Context, input pdfgen.Input) (*pdfgen.FitReport, error)
}

// Compile-time interface implementation check.
var _ DocumentGenerator = (*pdfgen.Generator)(nil)

// Pool abstracts generator pool operations for testability.
type Pool interface {
	Acquire(ctx context.Context) (DocumentGenerator, error)
	Release(DocumentGenerator)
	Size() int
	Close() error
}

// poolAdapter adapts *pdfgen.GeneratorPool to Pool.
type poolAdapter struct {
	pool *pdfgen.GeneratorPool
}

// Compile-time check that poolAdapter implements Pool.
var _ Pool = (*poolAdapter)(nil)

// newGeneratorPool is the production Environment.NewPool.
func newGeneratorPool(size int, opts ...pdfgen.Option) Pool {
	return &poolAdapter{pool: pdfgen.NewGeneratorPool(size, opts...)}
}

func (a *poolAdapter) Acquire(ctx context.Context) (DocumentGenerator, error) {
	g, err := a.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return g, nil
}

// Release panics if g did not come from this adapter (programmer error).
func (a *poolAdapter) Release(g DocumentGenerator) {
	gen, ok := g.(*pdfgen.Generator)
	if !ok {
		panic(fmt.Sprintf("poolAdapter.Release: unexpected type %T", g))
	}
	a.pool.Release(gen)
}

func (a *poolAdapter) Size() int {
	return a.pool.Size()
}

func (a *poolAdapter) Close() error {
	return a.pool.Close()
}
