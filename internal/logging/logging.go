// Package logging sets up diagnostic logging for the CLI. Diagnostics go to
// stderr and, optionally, a rotating log file; standard output belongs to
// workflow commands and is never used.
package logging

import (
	"context"
	"io"
	"log/slog"
	"strconv"

	"gopkg.in/natefinch/lumberjack.v2"

	"actioncore/pkg/env"
)

// Environment variables configuring the file sink.
const (
	FileVariable       = "ACTIONS_CORE_LOG_FILE"
	MaxSizeVariable    = "ACTIONS_CORE_LOG_MAX_SIZE"
	MaxBackupsVariable = "ACTIONS_CORE_LOG_MAX_BACKUPS"
	MaxAgeVariable     = "ACTIONS_CORE_LOG_MAX_AGE"
)

// Masker hides secret values in a string.
type Masker interface {
	Mask(s string) string
}

// Config configures New.
type Config struct {
	Env     env.Reader
	Stderr  io.Writer
	Verbose bool
	// Masker, when set, redacts every logged message and attribute.
	Masker Masker
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New builds the diagnostic logger. The stderr level is Warn, or Debug when
// Verbose is set or RUNNER_DEBUG=1. The file sink, when configured, always
// logs at Debug. Close the returned io.Closer before exiting.
func New(cfg Config) (*slog.Logger, io.Closer) {
	level := slog.LevelWarn
	if cfg.Verbose || env.Get(cfg.Env, "RUNNER_DEBUG") == "1" {
		level = slog.LevelDebug
	}
	replace := maskAttr(cfg.Masker)

	handlers := []slog.Handler{
		slog.NewTextHandler(cfg.Stderr, &slog.HandlerOptions{Level: level, ReplaceAttr: replace}),
	}
	var closer io.Closer = nopCloser{}
	if path := env.Get(cfg.Env, FileVariable); path != "" {
		file := newFileLogger(cfg.Env, path)
		handlers = append(handlers, slog.NewJSONHandler(file, &slog.HandlerOptions{Level: slog.LevelDebug, ReplaceAttr: replace}))
		closer = file
	}
	if len(handlers) == 1 {
		return slog.New(handlers[0]), closer
	}
	return slog.New(&multiHandler{handlers: handlers}), closer
}

// newFileLogger creates the rotating file sink, with sizes from the
// environment overriding the defaults.
func newFileLogger(r env.Reader, path string) *lumberjack.Logger {
	config := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    1,
		MaxBackups: 2,
		MaxAge:     30,
	}
	if n, ok := positiveInt(r, MaxSizeVariable, false); ok {
		config.MaxSize = n
	}
	if n, ok := positiveInt(r, MaxBackupsVariable, true); ok {
		config.MaxBackups = n
	}
	if n, ok := positiveInt(r, MaxAgeVariable, false); ok {
		config.MaxAge = n
	}
	return config
}

func positiveInt(r env.Reader, key string, allowZero bool) (int, bool) {
	n, err := strconv.Atoi(env.Get(r, key))
	if err != nil || n < 0 || (n == 0 && !allowZero) {
		return 0, false
	}
	return n, true
}

func maskAttr(m Masker) func(groups []string, a slog.Attr) slog.Attr {
	if m == nil {
		return nil
	}
	return func(_ []string, a slog.Attr) slog.Attr {
		switch a.Value.Kind() {
		case slog.KindString, slog.KindAny:
			s := a.Value.String()
			if masked := m.Mask(s); masked != s {
				return slog.String(a.Key, masked)
			}
		}
		return a
	}
}

// multiHandler fans out log records to multiple handlers.
type multiHandler struct {
	handlers []slog.Handler
}

func (h *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *multiHandler) Handle(ctx context.Context, record slog.Record) error {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, record.Level) {
			if err := handler.Handle(ctx, record.Clone()); err != nil {
				return err
			}
		}
	}
	return nil
}

func (h *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newHandlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		newHandlers[i] = handler.WithAttrs(attrs)
	}
	return &multiHandler{handlers: newHandlers}
}

func (h *multiHandler) WithGroup(name string) slog.Handler {
	newHandlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		newHandlers[i] = handler.WithGroup(name)
	}
	return &multiHandler{handlers: newHandlers}
}
