// internal/platform/logx/logx.go
package logx

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

type Logger interface {
	Debug(msg string, kv ...any)
	Info(msg string, kv ...any)
	Warn(msg string, kv ...any)
	Err(err error, kv ...any)
	With(kv ...any) Logger
	SetLevel(lvl Level)
}

type slogLogger struct {
	lvl *slog.LevelVar
	lg  *slog.Logger
}

// New creates a stderr logger whose level comes from EXAMGUARD_LOG_LEVEL.
func New() Logger {
	return NewWithWriter(os.Stderr, parseLevel(os.Getenv("EXAMGUARD_LOG_LEVEL")))
}

// NewWithLevel creates a stderr logger with a specific log level
func NewWithLevel(lvl Level) Logger {
	return NewWithWriter(os.Stderr, lvl)
}

// NewSilent creates a logger that only outputs errors (silent mode for UI)
func NewSilent() Logger {
	return NewWithLevel(LevelError)
}

// NewWithWriter creates a logger writing to w. Colour is only used when w is a terminal.
func NewWithWriter(w io.Writer, lvl Level) Logger {
	lv := new(slog.LevelVar)
	lv.Set(toSlog(lvl))

	h := tint.NewHandler(w, &tint.Options{
		Level:      lv,
		TimeFormat: time.TimeOnly,
		NoColor:    !isTerminal(w),
	})

	return &slogLogger{lvl: lv, lg: slog.New(h)}
}

func (s *slogLogger) With(kv ...any) Logger {
	return &slogLogger{lvl: s.lvl, lg: s.lg.With(kv...)}
}

// SetLevel changes the level of this logger and every logger derived from it with With.
func (s *slogLogger) SetLevel(lvl Level) {
	s.lvl.Set(toSlog(lvl))
}

func (s *slogLogger) Debug(msg string, kv ...any) { s.lg.Debug(msg, kv...) }
func (s *slogLogger) Info(msg string, kv ...any)  { s.lg.Info(msg, kv...) }
func (s *slogLogger) Warn(msg string, kv ...any)  { s.lg.Warn(msg, kv...) }
func (s *slogLogger) Err(err error, kv ...any) {
	if err == nil {
		return
	}
	s.lg.Log(context.Background(), slog.LevelError, "", append([]any{tint.Err(err)}, kv...)...)
}

func toSlog(l Level) slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// ParseLevel converts a level name (debug, info, warn, error) into a Level.
// Unknown names map to LevelInfo.
func ParseLevel(s string) Level {
	return parseLevel(s)
}

func parseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug", "dbg":
		return LevelDebug
	case "info", "inf", "":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "err", "error":
		return LevelError
	default:
		return LevelInfo
	}
}
