package swr

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// discardHandler drops every record. Enabled is false at all levels, so
// log calls return before building attributes.
type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return discardHandler{} }
func (discardHandler) WithGroup(string) slog.Handler             { return discardHandler{} }

var (
	silent = slog.New(discardHandler{})

	// logger is nil until SetLogger installs one.
	logger atomic.Pointer[slog.Logger]
)

// SetLogger routes the package's diagnostics to l; nil turns them off
// again, which is also the initial state. It may be called while other
// goroutines draw.
//
// swr logs at two levels. Debug covers rasterizer creation, resizes and
// one summary per drawn batch. Warn reports programs that fail to link and
// draw calls issued without a program.
//
//	swr.SetLogger(slog.New(slog.NewTextHandler(os.Stderr,
//	    &slog.HandlerOptions{Level: slog.LevelDebug})))
func SetLogger(l *slog.Logger) {
	logger.Store(l)
}

// Logger returns the logger installed by SetLogger, or a disabled logger.
// It never returns nil.
func Logger() *slog.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	return silent
}
