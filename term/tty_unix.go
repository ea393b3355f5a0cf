//go:build aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris || zos

package term

import (
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// tty is /dev/tty
type tty struct {
	*os.File
	state *term.State
}

func open() (TTY, error) {
	f, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return nil, err
	}
	return &tty{File: f}, nil
}

func (t *tty) MakeRaw() error {
	state, err := term.MakeRaw(int(t.Fd()))
	if err != nil {
		return err
	}
	t.state = state
	return nil
}

func (t *tty) Restore() error {
	if t.state == nil {
		return nil
	}
	return term.Restore(int(t.Fd()), t.state)
}

func (t *tty) Size() (Size, error) {
	ws, err := unix.IoctlGetWinsize(int(t.Fd()), unix.TIOCGWINSZ)
	if err != nil {
		return Size{}, err
	}
	return Size{
		Row:    int(ws.Row),
		Col:    int(ws.Col),
		XPixel: int(ws.Xpixel),
		YPixel: int(ws.Ypixel),
	}, nil
}

func (t *tty) Notify(ch chan os.Signal) {
	signal.Notify(ch, syscall.SIGWINCH)
}

func (t *tty) Stop(ch chan os.Signal) {
	signal.Stop(ch)
}
