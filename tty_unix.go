//go:build aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris || zos

package tinput

import (
	"os"

	"github.com/muesli/cancelreader"

	"git.sr.ht/~rockorager/tinput/log"
	"git.sr.ht/~rockorager/tinput/term"
)

// OpenTTY opens the controlling terminal and decodes its input. Size changes
// are delivered as Resize events. The caller is responsible for putting the
// terminal in raw mode
func OpenTTY() (*VTDecoder, error) {
	tty, err := term.Open()
	if err != nil {
		return nil, err
	}
	cr, err := cancelreader.NewReader(tty)
	if err != nil {
		tty.Close()
		return nil, err
	}
	d := NewVTDecoder(cr)

	winch := make(chan os.Signal, 1)
	tty.Notify(winch)
	go func() {
		for {
			select {
			case <-winch:
				reportWinsize(d, tty)
			case <-d.done:
				return
			}
		}
	}()

	d.closer = func() error {
		tty.Stop(winch)
		cr.Cancel()
		if err := cr.Close(); err != nil {
			log.Warn("closing cancel reader: %v", err)
		}
		return tty.Close()
	}
	return d, nil
}

// reportWinsize posts a Resize
func reportWinsize(d *VTDecoder, tty term.TTY) {
	ws, err := tty.Size()
	if err != nil {
		log.Error("couldn't get winsize: %v", err)
		return
	}
	d.PostResize(Resize{
		Cols:   ws.Col,
		Rows:   ws.Row,
		XPixel: ws.XPixel,
		YPixel: ws.YPixel,
	})
}

func openTerminal() (Decoder, error) {
	return OpenTTY()
}
