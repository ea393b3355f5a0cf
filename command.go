package tinput

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// Capability is an optional terminal reporting mode
type Capability int

const (
	// BracketedPaste wraps pasted text so it is reported as a Paste
	BracketedPaste Capability = iota
	// FocusChange reports FocusIn and FocusOut events
	FocusChange
	// MouseCapture reports mouse presses, releases, drags and motion
	MouseCapture
)

func (c Capability) String() string {
	switch c {
	case BracketedPaste:
		return "BracketedPaste"
	case FocusChange:
		return "FocusChange"
	case MouseCapture:
		return "MouseCapture"
	default:
		return fmt.Sprintf("Capability(%d)", int(c))
	}
}

// modes returns the DEC private modes of the capability, in the order they
// are enabled
func (c Capability) modes() []int {
	switch c {
	case BracketedPaste:
		return []int{bracketedPaste}
	case FocusChange:
		return []int{focusEvents}
	case MouseCapture:
		// Request SGR and urxvt encodings last so they take precedence
		// on terminals supporting several
		return []int{mouseX10, mouseButtonEvents, mouseAllEvents, mouseURXVT, mouseSGR}
	default:
		return nil
	}
}

// Command toggles a Capability. Commands carry no state: the control
// sequence sets the mode rather than counting, so issuing a Command twice has
// the same effect on the terminal as issuing it once
type Command struct {
	Capability Capability
	Enable     bool
}

var (
	EnableBracketedPaste  = Command{Capability: BracketedPaste, Enable: true}
	DisableBracketedPaste = Command{Capability: BracketedPaste}
	EnableFocusChange     = Command{Capability: FocusChange, Enable: true}
	DisableFocusChange    = Command{Capability: FocusChange}
	EnableMouseCapture    = Command{Capability: MouseCapture, Enable: true}
	DisableMouseCapture   = Command{Capability: MouseCapture}
)

// WriteANSI writes the control sequence of the command to w. It does nothing
// but format: the sequence only has an effect once the caller delivers it to
// the terminal
func (c Command) WriteANSI(w io.Writer) error {
	s := c.String()
	if s == "" {
		return fmt.Errorf("tinput: unknown capability %d", int(c.Capability))
	}
	_, err := io.WriteString(w, s)
	return err
}

// String returns the control sequence of the command
func (c Command) String() string {
	modes := c.Capability.modes()
	b := strings.Builder{}
	switch c.Enable {
	case true:
		for _, m := range modes {
			b.WriteString(decset(m))
		}
	case false:
		// Reset in reverse order
		for i := len(modes) - 1; i >= 0; i -= 1 {
			b.WriteString(decrst(modes[i]))
		}
	}
	return b.String()
}

// Execute delivers the commands to the terminal. When the terminal
// interprets control sequences, all of them are rendered into one buffer and
// written with a single Write, so a formatting failure writes nothing. When it
// doesn't, each command is run through ExecuteNative instead
func Execute(w io.Writer, cmds ...Command) error {
	if !supportsANSI() {
		for _, cmd := range cmds {
			if err := cmd.ExecuteNative(); err != nil {
				return fmt.Errorf("tinput: %s: %w", cmd.Capability, err)
			}
		}
		return nil
	}
	buf := &bytes.Buffer{}
	for _, cmd := range cmds {
		if err := cmd.WriteANSI(buf); err != nil {
			return err
		}
	}
	_, err := w.Write(buf.Bytes())
	return err
}
