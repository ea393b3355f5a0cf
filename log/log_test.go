package log

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/exp/slog"
)

func capture(t *testing.T, l int) *bytes.Buffer {
	t.Cleanup(func() {
		SetLevel(LevelError)
		SetLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	})
	buf := &bytes.Buffer{}
	SetOutput(buf)
	SetLevel(l)
	return buf
}

func TestLevels(t *testing.T) {
	buf := capture(t, LevelInfo)
	Debug("hidden")
	Trace("hidden")
	Info("shown %d", 1)
	Error("broken: %s", "pipe")
	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `msg="shown 1"`)
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, `msg="broken: pipe"`)
}

func TestTrace(t *testing.T) {
	buf := capture(t, LevelTrace)
	Trace("seq")
	assert.Contains(t, buf.String(), "level=DEBUG-4")
}

func TestSource(t *testing.T) {
	buf := capture(t, LevelDebug)
	Warn("where")
	assert.Contains(t, buf.String(), "log_test.go")
}

func TestSetLoggerNil(t *testing.T) {
	buf := capture(t, LevelDebug)
	SetLogger(nil)
	Info("still here")
	assert.Contains(t, buf.String(), "still here")
}

func TestDefaultLevel(t *testing.T) {
	assert.Equal(t, int32(LevelError), level.Load())
	buf := capture(t, int(level.Load()))
	Warn("quiet")
	Debug("quiet")
	Error("loud")
	assert.NotContains(t, buf.String(), "quiet")
	assert.Contains(t, buf.String(), "loud")
}
