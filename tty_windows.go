//go:build windows

package tinput

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/erikgeiser/coninput"
	"golang.org/x/sys/windows"

	"git.sr.ht/~rockorager/tinput/ansi"
	"git.sr.ht/~rockorager/tinput/log"
)

// wakeInterval bounds how long a blocked Next goes without noticing Close
const wakeInterval = 100 * time.Millisecond

// ConsoleDecoder decodes windows console input records
type ConsoleDecoder struct {
	handle windows.Handle

	mu      sync.Mutex
	pending []Signal
	buttons coninput.ButtonState

	closed atomic.Bool
}

// OpenConsole decodes the input records of the console attached to stdin
func OpenConsole() (*ConsoleDecoder, error) {
	h, err := coninput.NewStdinHandle()
	if err != nil {
		return nil, err
	}
	return &ConsoleDecoder{handle: h}, nil
}

func openTerminal() (Decoder, error) {
	return OpenConsole()
}

// Next blocks until a record producing a Signal arrives
func (d *ConsoleDecoder) Next() (Signal, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for len(d.pending) == 0 {
		if d.closed.Load() {
			return nil, ErrClosed
		}
		ready, err := d.wait(wakeInterval)
		if err != nil {
			return nil, err
		}
		if !ready {
			continue
		}
		if err := d.fill(); err != nil {
			return nil, err
		}
	}
	sig := d.pending[0]
	d.pending = d.pending[1:]
	return sig, nil
}

// Poll reports whether a Signal is available within timeout. Records which
// don't produce Signals (key releases) are consumed while waiting
func (d *ConsoleDecoder) Poll(timeout time.Duration) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	deadline := time.Now().Add(timeout)
	for len(d.pending) == 0 {
		if d.closed.Load() {
			return false, ErrClosed
		}
		ready, err := d.wait(max(time.Until(deadline), 0))
		if err != nil {
			return false, err
		}
		if !ready {
			return false, nil
		}
		if err := d.fill(); err != nil {
			return false, err
		}
	}
	return true, nil
}

// Close makes blocked and later calls return ErrClosed. The console handle
// belongs to the process and stays open
func (d *ConsoleDecoder) Close() error {
	d.closed.Store(true)
	return nil
}

func (d *ConsoleDecoder) wait(timeout time.Duration) (bool, error) {
	ev, err := windows.WaitForSingleObject(d.handle, uint32(timeout/time.Millisecond))
	switch ev {
	case windows.WAIT_OBJECT_0:
		return true, nil
	case uint32(windows.WAIT_TIMEOUT):
		return false, nil
	default:
		return false, err
	}
}

func (d *ConsoleDecoder) fill() error {
	records, err := coninput.ReadNConsoleInputs(d.handle, 16)
	if err != nil {
		return err
	}
	for _, rec := range records {
		switch e := rec.Unwrap().(type) {
		case coninput.KeyEventRecord:
			key, ok := decodeConsoleKey(e)
			if ok {
				d.pending = append(d.pending, EventSignal{Event: key})
			}
		case coninput.MouseEventRecord:
			d.pending = append(d.pending, EventSignal{Event: d.decodeMouse(e)})
		case coninput.WindowBufferSizeEventRecord:
			d.pending = append(d.pending, EventSignal{Event: Resize{
				Cols: int(e.Size.X),
				Rows: int(e.Size.Y),
			}})
		case coninput.FocusEventRecord:
			var ev Event = FocusOut{}
			if e.SetFocus {
				ev = FocusIn{}
			}
			d.pending = append(d.pending, EventSignal{Event: ev})
		default:
			log.Trace("[console] ignoring %T", e)
		}
	}
	return nil
}

var consoleKeys = map[coninput.VirtualKeyCode]rune{
	coninput.VK_RETURN: KeyEnter,
	coninput.VK_BACK:   KeyBackspace,
	coninput.VK_TAB:    KeyTab,
	coninput.VK_ESCAPE: KeyEsc,
	coninput.VK_UP:     KeyUp,
	coninput.VK_DOWN:   KeyDown,
	coninput.VK_LEFT:   KeyLeft,
	coninput.VK_RIGHT:  KeyRight,
	coninput.VK_HOME:   KeyHome,
	coninput.VK_END:    KeyEnd,
	coninput.VK_PRIOR:  KeyPgUp,
	coninput.VK_NEXT:   KeyPgDown,
	coninput.VK_INSERT: KeyInsert,
	coninput.VK_DELETE: KeyDelete,
	coninput.VK_F1:     KeyF01,
	coninput.VK_F2:     KeyF02,
	coninput.VK_F3:     KeyF03,
	coninput.VK_F4:     KeyF04,
	coninput.VK_F5:     KeyF05,
	coninput.VK_F6:     KeyF06,
	coninput.VK_F7:     KeyF07,
	coninput.VK_F8:     KeyF08,
	coninput.VK_F9:     KeyF09,
	coninput.VK_F10:    KeyF10,
	coninput.VK_F11:    KeyF11,
	coninput.VK_F12:    KeyF12,
}

func consoleModifiers(state coninput.ControlKeyState) ModifierMask {
	var mods ModifierMask
	if state.Contains(coninput.SHIFT_PRESSED) {
		mods |= ModShift
	}
	if state.Contains(coninput.LEFT_ALT_PRESSED) || state.Contains(coninput.RIGHT_ALT_PRESSED) {
		mods |= ModAlt
	}
	if state.Contains(coninput.LEFT_CTRL_PRESSED) || state.Contains(coninput.RIGHT_CTRL_PRESSED) {
		mods |= ModCtrl
	}
	if state.Contains(coninput.CAPSLOCK_ON) {
		mods |= ModCapsLock
	}
	if state.Contains(coninput.NUMLOCK_ON) {
		mods |= ModNumLock
	}
	return mods
}

func decodeConsoleKey(e coninput.KeyEventRecord) (Key, bool) {
	if !e.KeyDown {
		return Key{}, false
	}
	switch e.VirtualKeyCode {
	case coninput.VK_SHIFT, coninput.VK_CONTROL, coninput.VK_MENU:
		// modifiers by themselves
		return Key{}, false
	}
	key := Key{
		Modifiers: consoleModifiers(e.ControlKeyState),
		EventType: EventPress,
	}
	if e.RepeatCount > 1 {
		key.EventType = EventRepeat
	}
	if cp, ok := consoleKeys[e.VirtualKeyCode]; ok {
		key.Codepoint = cp
		return key, true
	}
	switch {
	case e.Char == 0:
		return Key{}, false
	case e.Char < 0x20:
		// the console reports ctrl+letter as its control character
		c0 := decodeC0(ansi.C0(e.Char))
		key.Codepoint = c0.Codepoint
		key.Modifiers |= c0.Modifiers
	default:
		key.Codepoint = e.Char
		if key.Modifiers&^(ModShift|ModCapsLock|ModNumLock) == 0 {
			key.Text = string(e.Char)
		}
		// shift is already applied to the character
		key.Modifiers &^= ModShift
	}
	return key, true
}

func (d *ConsoleDecoder) decodeMouse(e coninput.MouseEventRecord) Mouse {
	m := Mouse{
		Col:       int(e.MousePositon.X),
		Row:       int(e.MousePositon.Y),
		Modifiers: consoleModifiers(e.ControlKeyState) &^ (ModCapsLock | ModNumLock),
	}
	switch e.EventFlags {
	case coninput.MOUSE_WHEELED:
		m.Button = MouseWheelDown
		if e.WheelDirection > 0 {
			m.Button = MouseWheelUp
		}
		m.EventType = EventPress
		return m
	case coninput.MOUSE_HWHEELED:
		m.Button = MouseWheelLeft
		if e.WheelDirection > 0 {
			m.Button = MouseWheelRight
		}
		m.EventType = EventPress
		return m
	}

	pressed := e.ButtonState &^ d.buttons
	released := d.buttons &^ e.ButtonState
	d.buttons = e.ButtonState
	switch {
	case pressed != 0:
		m.Button = consoleButton(pressed)
		m.EventType = EventPress
	case released != 0:
		m.Button = consoleButton(released)
		m.EventType = EventRelease
	default:
		m.Button = consoleButton(e.ButtonState)
		m.EventType = EventMotion
	}
	return m
}

func consoleButton(state coninput.ButtonState) MouseButton {
	switch {
	case state&coninput.FROM_LEFT_1ST_BUTTON_PRESSED != 0:
		return MouseLeftButton
	case state&coninput.RIGHTMOST_BUTTON_PRESSED != 0:
		return MouseRightButton
	case state&coninput.FROM_LEFT_2ND_BUTTON_PRESSED != 0:
		return MouseMiddleButton
	default:
		return MouseNoButton
	}
}
