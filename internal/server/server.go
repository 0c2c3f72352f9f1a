// Package server exposes the generator over HTTP.
//
// Routes:
//
//	POST /api/generate  JSON request, PDF response (HTML with htmlOnly)
//	POST /api/fit       JSON request, JSON fit report
//	POST /api/preview   JSON request, HTML preview fragment
//	GET  /api/fonts     selectable font families
//	GET  /healthz       liveness
//
// Generators come from a Pool, so concurrent requests are bounded by the
// pool size rather than by the number of open connections.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	pdfgen "github.com/Ian9Franco/pdf-generator"
	"github.com/Ian9Franco/pdf-generator/internal/logging"
)

// Generator is the subset of *pdfgen.Generator used by the handlers.
type Generator interface {
	Generate(ctx context.Context, input pdfgen.Input) (*pdfgen.Result, error)
	Fit(ctx context.Context, input pdfgen.Input) (*pdfgen.FitReport, error)
	Preview(ctx context.Context, input pdfgen.Input) (string, error)
}

// Pool hands out generators for the duration of one request.
type Pool interface {
	Acquire(ctx context.Context) (Generator, error)
	Release(Generator)
}

// FromGeneratorPool adapts a *pdfgen.GeneratorPool to Pool.
func FromGeneratorPool(p *pdfgen.GeneratorPool) Pool {
	return generatorPool{p: p}
}

type generatorPool struct {
	p *pdfgen.GeneratorPool
}

func (g generatorPool) Acquire(ctx context.Context) (Generator, error) {
	gen, err := g.p.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return gen, nil
}

func (g generatorPool) Release(gen Generator) {
	if pg, ok := gen.(*pdfgen.Generator); ok {
		g.p.Release(pg)
	}
}

// Config tunes the HTTP layer.
type Config struct {
	// MaxBodyBytes caps request bodies. Zero means 1MB.
	MaxBodyBytes int64

	// RateLimit is the number of requests a client IP may make per
	// RateWindow. Zero or negative disables limiting.
	RateLimit  int
	RateWindow time.Duration

	// RequestTimeout bounds each request's context. Zero means no bound
	// beyond the generator's own timeout.
	RequestTimeout time.Duration
}

const (
	defaultMaxBodyBytes = 1 << 20
	defaultRateWindow   = time.Minute
	shutdownTimeout     = 10 * time.Second
)

// Server is the HTTP front end.
type Server struct {
	echo    *echo.Echo
	pool    Pool
	cfg     Config
	limiter *Limiter
}

// New builds a Server over pool. Call Close when done to stop the limiter.
func New(pool Pool, cfg Config) *Server {
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = defaultMaxBodyBytes
	}
	if cfg.RateWindow <= 0 {
		cfg.RateWindow = defaultRateWindow
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{echo: e, pool: pool, cfg: cfg}
	if cfg.RateLimit > 0 {
		s.limiter = NewLimiter(cfg.RateLimit, cfg.RateWindow)
	}

	s.setupMiddleware()
	s.routes()
	return s
}

func (s *Server) routes() {
	api := s.echo.Group("/api")
	if s.limiter != nil {
		api.Use(s.limiter.Middleware())
	}
	api.POST("/generate", s.handleGenerate)
	api.POST("/fit", s.handleFit)
	api.POST("/preview", s.handlePreview)
	api.GET("/fonts", s.handleFonts)

	s.echo.GET("/healthz", s.handleHealth)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

// Start listens on addr until ctx is canceled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		logging.Logger().Info("server listening", "addr", addr)
		errCh <- s.echo.Start(addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	logging.Logger().Info("server shutting down")
	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Close stops the rate limiter sweep. It does not close the pool.
func (s *Server) Close() {
	if s.limiter != nil {
		s.limiter.Close()
	}
}
