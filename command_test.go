//go:build !windows

package tinput

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingWriter records each call to Write
type countingWriter struct {
	bytes.Buffer
	writes int
}

func (w *countingWriter) Write(p []byte) (int, error) {
	w.writes += 1
	return w.Buffer.Write(p)
}

func TestCommandANSI(t *testing.T) {
	tests := []struct {
		name string
		cmd  Command
		want string
	}{
		{
			name: "enable bracketed paste",
			cmd:  EnableBracketedPaste,
			want: "\x1b[?2004h",
		},
		{
			name: "disable bracketed paste",
			cmd:  DisableBracketedPaste,
			want: "\x1b[?2004l",
		},
		{
			name: "enable focus change",
			cmd:  EnableFocusChange,
			want: "\x1b[?1004h",
		},
		{
			name: "disable focus change",
			cmd:  DisableFocusChange,
			want: "\x1b[?1004l",
		},
		{
			name: "enable mouse capture",
			cmd:  EnableMouseCapture,
			want: "\x1b[?1000h\x1b[?1002h\x1b[?1003h\x1b[?1015h\x1b[?1006h",
		},
		{
			name: "disable mouse capture",
			cmd:  DisableMouseCapture,
			want: "\x1b[?1006l\x1b[?1015l\x1b[?1003l\x1b[?1002l\x1b[?1000l",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			require.NoError(t, test.cmd.WriteANSI(buf))
			assert.Equal(t, test.want, buf.String())
			assert.Equal(t, test.want, test.cmd.String())

			// rendering is stateless
			require.NoError(t, test.cmd.WriteANSI(buf))
			assert.Equal(t, strings.Repeat(test.want, 2), buf.String())
		})
	}
}

func TestCommandUnknownCapability(t *testing.T) {
	buf := &bytes.Buffer{}
	err := Command{Capability: Capability(42), Enable: true}.WriteANSI(buf)
	assert.Error(t, err)
	assert.Equal(t, 0, buf.Len())
	assert.Equal(t, "Capability(42)", Capability(42).String())
}

func TestExecute(t *testing.T) {
	w := &countingWriter{}
	err := Execute(w, EnableBracketedPaste, EnableFocusChange)
	require.NoError(t, err)
	assert.Equal(t, 1, w.writes)
	assert.Equal(t, "\x1b[?2004h\x1b[?1004h", w.String())
}

func TestExecuteFailsWholeBatch(t *testing.T) {
	w := &countingWriter{}
	err := Execute(w, EnableBracketedPaste, Command{Capability: Capability(42)})
	assert.Error(t, err)
	assert.Equal(t, 0, w.writes)
}

func TestExecuteNative(t *testing.T) {
	for _, cmd := range []Command{EnableMouseCapture, DisableBracketedPaste} {
		assert.NoError(t, cmd.ExecuteNative())
	}
}
