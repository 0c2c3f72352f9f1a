package pdfgen

import (
	"context"
	"errors"
	"runtime"
	"sync"

	"golang.org/x/sync/semaphore"
)

const (
	MinPoolSize = 1

	// MaxPoolSize bounds the automatic size. Each generator may hold a
	// browser of roughly 200MB.
	MaxPoolSize = 8

	// cpuDivisor keeps half the CPUs for Chrome's own processes.
	cpuDivisor = 2
)

// GeneratorPool lends Generators to concurrent callers. At most Size
// generators exist at once. They share the pool's options and are built on
// first demand, so an idle pool starts no browser.
type GeneratorPool struct {
	opts  []Option
	size  int
	slots *semaphore.Weighted

	mu     sync.Mutex
	idle   []*Generator
	all    []*Generator
	closed bool
}

// NewGeneratorPool returns a pool of n generators; n below one means one.
func NewGeneratorPool(n int, opts ...Option) *GeneratorPool {
	n = max(n, MinPoolSize)
	return &GeneratorPool{
		opts:  opts,
		size:  n,
		slots: semaphore.NewWeighted(int64(n)),
	}
}

// Acquire waits for a free slot and returns an idle generator, or builds a
// new one. It fails with ctx's error when ctx ends first and with
// ErrPoolClosed after Close. A failed build gives the slot back.
func (p *GeneratorPool) Acquire(ctx context.Context) (*Generator, error) {
	if p.isClosed() {
		return nil, ErrPoolClosed
	}
	if err := p.slots.Acquire(ctx, 1); err != nil {
		return nil, err
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		p.slots.Release(1)
		return nil, ErrPoolClosed
	}
	if n := len(p.idle); n > 0 {
		g := p.idle[n-1]
		p.idle = p.idle[:n-1]
		p.mu.Unlock()
		return g, nil
	}
	p.mu.Unlock()

	g, err := NewGenerator(p.opts...)
	if err != nil {
		p.slots.Release(1)
		return nil, err
	}

	p.mu.Lock()
	closed := p.closed
	if !closed {
		p.all = append(p.all, g)
	}
	p.mu.Unlock()

	if closed {
		p.slots.Release(1)
		_ = g.Close()
		return nil, ErrPoolClosed
	}
	return g, nil
}

// Release hands g back. After Close the generator is already shut down and
// only its slot is returned, which lets blocked callers see ErrPoolClosed.
func (p *GeneratorPool) Release(g *Generator) {
	if g == nil {
		return
	}
	p.mu.Lock()
	if !p.closed {
		p.idle = append(p.idle, g)
	}
	p.mu.Unlock()
	p.slots.Release(1)
}

// Close shuts down every generator the pool built, including lent ones.
// Calling it again is a no-op.
func (p *GeneratorPool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	all := p.all
	p.all, p.idle = nil, nil
	p.mu.Unlock()

	errs := make([]error, 0, len(all))
	for _, g := range all {
		errs = append(errs, g.Close())
	}
	return errors.Join(errs...)
}

// Size returns the pool capacity.
func (p *GeneratorPool) Size() int {
	return p.size
}

func (p *GeneratorPool) isClosed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

// ResolvePoolSize returns workers when positive. Otherwise it derives a
// size from GOMAXPROCS, which automaxprocs fits to the container quota,
// clamped to [MinPoolSize, MaxPoolSize].
func ResolvePoolSize(workers int) int {
	if workers > 0 {
		return workers
	}
	return min(max(runtime.GOMAXPROCS(0)/cpuDivisor, MinPoolSize), MaxPoolSize)
}
