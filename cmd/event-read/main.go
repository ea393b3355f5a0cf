// event-read demonstrates blocking reads. It prints every event and paste the
// terminal reports until Esc is pressed
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-runewidth"
	"golang.org/x/exp/slog"

	"git.sr.ht/~rockorager/tinput"
	"git.sr.ht/~rockorager/tinput/log"
	"git.sr.ht/~rockorager/tinput/term"
)

const help = `Blocking read
 - Keyboard, mouse, focus and terminal resize events enabled
 - Hit "c" to print current cursor position
 - Use Esc to quit
`

func main() {
	var (
		trace bool
		width int
	)
	flag.BoolVar(&trace, "trace", false, "log every decoded sequence")
	flag.IntVar(&width, "width", 60, "truncate pastes to this many columns")
	flag.Parse()

	// Logs are written once the terminal is restored
	logBuf := bytes.NewBuffer(nil)
	level := slog.LevelDebug
	log.SetLevel(log.LevelDebug)
	if trace {
		level = log.SlogLevelTrace
		log.SetLevel(log.LevelTrace)
	}
	handler := tint.NewHandler(logBuf, &tint.Options{
		AddSource:  true,
		Level:      level,
		TimeFormat: "15:04:05.000",
	})

	err := run(slog.New(handler), width)
	fmt.Print(logBuf.String())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger, width int) error {
	fmt.Print(help)

	tty, err := term.Open()
	if err != nil {
		return err
	}
	defer tty.Close()

	if err := tinput.Init(tinput.Options{Logger: logger}); err != nil {
		return err
	}
	defer tinput.Close()

	if err := tty.MakeRaw(); err != nil {
		return err
	}
	defer tty.Restore()

	err = tinput.Execute(tty,
		tinput.EnableBracketedPaste,
		tinput.EnableFocusChange,
		tinput.EnableMouseCapture,
	)
	if err != nil {
		return err
	}
	defer tinput.Execute(tty,
		tinput.DisableBracketedPaste,
		tinput.DisableFocusChange,
		tinput.DisableMouseCapture,
	)

	if err := printEvents(tty, width); err != nil {
		fmt.Fprintf(tty, "Error: %v\r\n", err)
	}
	return nil
}

func printEvents(w io.Writer, width int) error {
	for {
		in, err := tinput.Read()
		var seqErr *tinput.SequenceError
		switch {
		case errors.As(err, &seqErr):
			fmt.Fprintf(w, "Skipped: %v\r\n", err)
			continue
		case err != nil:
			return err
		}

		switch in := in.(type) {
		case tinput.EventInput:
			fmt.Fprintf(w, "Event: %s\r\n", describe(in.Event))
			switch ev := in.Event.(type) {
			case tinput.Key:
				if ev.Matches('c') {
					col, row, err := tinput.CursorPosition(w, time.Second)
					switch err {
					case nil:
						fmt.Fprintf(w, "Cursor position: (%d, %d)\r\n", col, row)
					default:
						fmt.Fprintf(w, "Cursor position: %v\r\n", err)
					}
				}
				if ev.Matches(tinput.KeyEsc) {
					return nil
				}
			case tinput.Resize:
				first, last, err := tinput.CoalesceResize(tinput.Terminal, ev)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "Resize from: %dx%d, to: %dx%d\r\n",
					first.Cols, first.Rows, last.Cols, last.Rows)
			}
		case tinput.Paste:
			text := runewidth.Truncate(string(in), width, "…")
			fmt.Fprintf(w, "Pasted %q (%d bytes)\r\n", text, len(in))
		}
	}
}

func describe(ev tinput.Event) string {
	switch ev := ev.(type) {
	case tinput.Key:
		return fmt.Sprintf("Key %s", ev)
	case tinput.Mouse:
		return fmt.Sprintf("Mouse button=%d col=%d row=%d type=%d mods=%d",
			ev.Button, ev.Col, ev.Row, ev.EventType, ev.Modifiers)
	case tinput.Resize:
		return fmt.Sprintf("Resize %dx%d", ev.Cols, ev.Rows)
	case tinput.FocusIn:
		return "FocusIn"
	case tinput.FocusOut:
		return "FocusOut"
	default:
		return fmt.Sprintf("%T", ev)
	}
}
