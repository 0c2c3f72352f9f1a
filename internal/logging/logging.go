// Package logging holds the process-wide *slog.Logger used by the fit engine,
// the generator and the HTTP server.
//
// Nothing is logged until SetLogger installs a real handler; the default is a
// discard logger so library callers pay nothing for debug statements.
package logging

import (
	"io"
	"log/slog"
	"sync/atomic"
)

var logger atomic.Pointer[slog.Logger]

// SetLogger replaces the package logger. Passing nil restores the discard logger.
// Safe for concurrent use.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	logger.Store(l)
}

// Logger returns the package logger, never nil. Safe for concurrent use.
func Logger() *slog.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	l := slog.New(slog.DiscardHandler)
	logger.CompareAndSwap(nil, l)
	return logger.Load()
}

// NewTextLogger builds the logger used by the CLI: text output on w,
// debug level when verbose, warnings only otherwise.
func NewTextLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
