//go:build windows

package term

import (
	"os"

	"golang.org/x/term"
)

// console reads from CONIN$ and writes to CONOUT$
type console struct {
	in    *os.File
	out   *os.File
	state *term.State
}

func open() (TTY, error) {
	in, err := os.OpenFile("CONIN$", os.O_RDWR, 0)
	if err != nil {
		return nil, err
	}
	out, err := os.OpenFile("CONOUT$", os.O_RDWR, 0)
	if err != nil {
		in.Close()
		return nil, err
	}
	return &console{in: in, out: out}, nil
}

func (c *console) Read(p []byte) (int, error) {
	return c.in.Read(p)
}

func (c *console) Write(p []byte) (int, error) {
	return c.out.Write(p)
}

func (c *console) Close() error {
	err := c.in.Close()
	if oerr := c.out.Close(); err == nil {
		err = oerr
	}
	return err
}

func (c *console) Fd() uintptr {
	return c.in.Fd()
}

func (c *console) Name() string {
	return c.in.Name()
}

func (c *console) MakeRaw() error {
	state, err := term.MakeRaw(int(c.in.Fd()))
	if err != nil {
		return err
	}
	c.state = state
	return nil
}

func (c *console) Restore() error {
	if c.state == nil {
		return nil
	}
	return term.Restore(int(c.in.Fd()), c.state)
}

func (c *console) Size() (Size, error) {
	cols, rows, err := term.GetSize(int(c.out.Fd()))
	if err != nil {
		return Size{}, err
	}
	return Size{
		Row: rows,
		Col: cols,
	}, nil
}

// Notify is a no-op: the console reports size changes as input records
func (c *console) Notify(chan os.Signal) {}

func (c *console) Stop(chan os.Signal) {}
