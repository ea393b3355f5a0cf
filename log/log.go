// Package log is the leveled logger used throughout tinput. Messages are
// printf formatted and handed to a slog.Logger, which discards everything
// until one is installed with SetLogger or SetOutput
package log

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"sync/atomic"
	"time"

	"golang.org/x/exp/slog"
)

const (
	LevelError int = iota
	LevelWarn
	LevelInfo
	LevelDebug
	LevelTrace

	calldepth = 3
)

// SlogLevelTrace is the slog level trace messages are logged at
const SlogLevelTrace = slog.Level(-8)

var (
	level  atomic.Int32
	logger atomic.Pointer[slog.Logger]

	slogLevels = [...]slog.Level{
		LevelError: slog.LevelError,
		LevelWarn:  slog.LevelWarn,
		LevelInfo:  slog.LevelInfo,
		LevelDebug: slog.LevelDebug,
		LevelTrace: SlogLevelTrace,
	}
)

// LevelError = 0
// LevelWarn = 1
// LevelInfo  = 2
// LevelDebug  = 3
// LevelTrace = 4
func SetLevel(l int) {
	level.Store(int32(l))
}

func init() {
	SetLevel(LevelError)
	SetLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// SetLogger sends all messages to l
func SetLogger(l *slog.Logger) {
	if l == nil {
		return
	}
	logger.Store(l)
}

// SetOutput sends all messages to w, in slog's text format
func SetOutput(w io.Writer) {
	SetLogger(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		AddSource: true,
		Level:     SlogLevelTrace,
	})))
}

func output(l int, format string, args ...any) {
	if l > int(level.Load()) || l < LevelError {
		return
	}
	lvl := slogLevels[l]
	ctx := context.Background()
	lg := logger.Load()
	if !lg.Enabled(ctx, lvl) {
		return
	}
	message := format
	if len(args) > 0 {
		message = fmt.Sprintf(format, args...)
	}
	var pcs [1]uintptr
	runtime.Callers(calldepth, pcs[:])
	r := slog.NewRecord(time.Now(), lvl, message, pcs[0])
	_ = lg.Handler().Handle(ctx, r)
}

func Trace(format string, args ...any) {
	output(LevelTrace, format, args...)
}

func Debug(format string, args ...any) {
	output(LevelDebug, format, args...)
}

func Info(format string, args ...any) {
	output(LevelInfo, format, args...)
}

func Warn(format string, args ...any) {
	output(LevelWarn, format, args...)
}

func Error(format string, args ...any) {
	output(LevelError, format, args...)
}
