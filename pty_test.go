//go:build linux || darwin || freebsd

package tinput

import (
	"bytes"
	"io"
	"testing"
	"time"

	"github.com/creack/pty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/term"
)

func TestPty(t *testing.T) {
	ptmx, tty, err := pty.Open()
	if err != nil {
		t.Skipf("no pty available: %v", err)
	}
	defer ptmx.Close()
	defer tty.Close()

	_, err = term.MakeRaw(int(tty.Fd()))
	require.NoError(t, err)
	require.NoError(t, pty.Setsize(ptmx, &pty.Winsize{Rows: 24, Cols: 80}))

	d := NewVTDecoder(tty)
	defer d.Close()
	r := NewReader(d, Options{})

	// play the terminal: answer cursor position requests
	go func() {
		buf := make([]byte, 64)
		for {
			n, err := ptmx.Read(buf)
			if err != nil {
				return
			}
			if bytes.Contains(buf[:n], []byte(dsrcpr)) {
				io.WriteString(ptmx, "\x1b[5;10R")
			}
		}
	}()

	_, err = ptmx.Write([]byte("a\x1b[200~pasted\x1b[201~\x1b[<0;2;3M"))
	require.NoError(t, err)

	in, err := r.Read()
	require.NoError(t, err)
	assert.Equal(t, EventInput{Event: Key{Codepoint: 'a', Text: "a", EventType: EventPress}}, in)

	in, err = r.Read()
	require.NoError(t, err)
	assert.Equal(t, Paste("pasted"), in)

	in, err = r.Read()
	require.NoError(t, err)
	assert.Equal(t, EventInput{Event: Mouse{Button: MouseLeftButton, Col: 1, Row: 2, EventType: EventPress}}, in)

	col, row, err := r.CursorPosition(tty, time.Second)
	require.NoError(t, err)
	assert.Equal(t, 9, col)
	assert.Equal(t, 4, row)

	rows, cols, err := pty.Getsize(tty)
	require.NoError(t, err)
	d.PostResize(Resize{Cols: cols, Rows: rows})
	ok, err := r.Poll(time.Second)
	require.NoError(t, err)
	require.True(t, ok)
	in, err = r.Read()
	require.NoError(t, err)
	assert.Equal(t, EventInput{Event: Resize{Cols: 80, Rows: 24}}, in)
}
