// Package term opens the controlling terminal and switches it in and out of
// raw mode
package term

import (
	"io"
	"os"
)

// TTY is a handle to the controlling terminal
type TTY interface {
	io.ReadWriteCloser

	// Fd is the descriptor input is read from
	Fd() uintptr
	Name() string

	MakeRaw() error
	// Restore returns the terminal to the state it was in before MakeRaw.
	// It is a no-op if MakeRaw was never called
	Restore() error
	// Size reports the terminal's current size
	Size() (Size, error)
	// Notify reports terminal events which can't otherwise be included in
	// the input stream. Currently only size change signals will be sent.
	// The provided channel should have a buffer of at least 1: signals will
	// be dropped if they cannot immediately be sent to the channel
	Notify(chan os.Signal)
	// Stop undoes Notify for ch
	Stop(chan os.Signal)
}

// Open opens a handle to the controlling terminal
func Open() (TTY, error) {
	return open()
}

type Size struct {
	Row    int
	Col    int
	XPixel int
	YPixel int
}
