package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	pdfgen "github.com/Ian9Franco/pdf-generator"
)

// ---------------------------------------------------------------------------
// Test doubles
// ---------------------------------------------------------------------------

const mockPDF = "%PDF-1.7 mock"

// mockGenerator records inputs and returns a fixed report.
type mockGenerator struct {
	mu     sync.Mutex
	inputs []pdfgen.Input
	report pdfgen.FitReport
	err    error
}

func fittedReport() pdfgen.FitReport {
	return pdfgen.FitReport{
		Profile:        pdfgen.DefaultProfile(),
		Status:         pdfgen.StatusFitted,
		Iterations:     1,
		EstimatedPages: 1,
		Blocks:         3,
	}
}

func newMockGenerator() *mockGenerator {
	return &mockGenerator{report: fittedReport()}
}

func (m *mockGenerator) record(in pdfgen.Input) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inputs = append(m.inputs, in)
}

func (m *mockGenerator) calls() []pdfgen.Input {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]pdfgen.Input(nil), m.inputs...)
}

func (m *mockGenerator) Generate(_ context.Context, in pdfgen.Input) (*pdfgen.Result, error) {
	m.record(in)
	if m.err != nil {
		return nil, m.err
	}
	res := &pdfgen.Result{FitReport: m.report, HTML: []byte("<html><body>mock</body></html>")}
	if !in.HTMLOnly {
		res.PDF = []byte(mockPDF)
	}
	return res, nil
}

func (m *mockGenerator) Fit(_ context.Context, in pdfgen.Input) (*pdfgen.FitReport, error) {
	m.record(in)
	if m.err != nil {
		return nil, m.err
	}
	r := m.report
	return &r, nil
}

// mockPool hands out a single shared generator.
type mockPool struct {
	gen        *mockGenerator
	size       int
	acquireErr error

	mu     sync.Mutex
	closed bool
}

func (p *mockPool) Acquire(context.Context) (DocumentGenerator, error) {
	if p.acquireErr != nil {
		return nil, p.acquireErr
	}
	return p.gen, nil
}

func (p *mockPool) Release(DocumentGenerator) {}

func (p *mockPool) Size() int { return p.size }

func (p *mockPool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

// testEnv wires a mock generator into an Environment.
type testEnv struct {
	*Environment
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	gen    *mockGenerator

	mu        sync.Mutex
	poolSizes []int
	pools     []*mockPool
	acquire   error
}

func newTestEnv(gen *mockGenerator) *testEnv {
	te := &testEnv{
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
		gen:    gen,
	}
	te.Environment = &Environment{
		Now:    func() time.Time { return time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC) },
		Stdout: te.stdout,
		Stderr: te.stderr,
		NewPool: func(size int, _ ...pdfgen.Option) Pool {
			te.mu.Lock()
			defer te.mu.Unlock()
			p := &mockPool{gen: te.gen, size: size, acquireErr: te.acquire}
			te.poolSizes = append(te.poolSizes, size)
			te.pools = append(te.pools, p)
			return p
		},
	}
	return te
}

// writeMarkdown writes content under dir and returns the path.
func writeMarkdown(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
