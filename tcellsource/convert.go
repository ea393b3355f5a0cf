package tcellsource

import (
	"github.com/gdamore/tcell/v2"

	"git.sr.ht/~rockorager/tinput"
)

var keys = map[tcell.Key]rune{
	tcell.KeyEnter:      tinput.KeyEnter,
	tcell.KeyTab:        tinput.KeyTab,
	tcell.KeyEscape:     tinput.KeyEsc,
	tcell.KeyBackspace:  tinput.KeyBackspace,
	tcell.KeyBackspace2: tinput.KeyBackspace,
	tcell.KeyDelete:     tinput.KeyDelete,
	tcell.KeyInsert:     tinput.KeyInsert,
	tcell.KeyHome:       tinput.KeyHome,
	tcell.KeyEnd:        tinput.KeyEnd,
	tcell.KeyPgUp:       tinput.KeyPgUp,
	tcell.KeyPgDn:       tinput.KeyPgDown,
	tcell.KeyUp:         tinput.KeyUp,
	tcell.KeyDown:       tinput.KeyDown,
	tcell.KeyLeft:       tinput.KeyLeft,
	tcell.KeyRight:      tinput.KeyRight,
	tcell.KeyF1:         tinput.KeyF01,
	tcell.KeyF2:         tinput.KeyF02,
	tcell.KeyF3:         tinput.KeyF03,
	tcell.KeyF4:         tinput.KeyF04,
	tcell.KeyF5:         tinput.KeyF05,
	tcell.KeyF6:         tinput.KeyF06,
	tcell.KeyF7:         tinput.KeyF07,
	tcell.KeyF8:         tinput.KeyF08,
	tcell.KeyF9:         tinput.KeyF09,
	tcell.KeyF10:        tinput.KeyF10,
	tcell.KeyF11:        tinput.KeyF11,
	tcell.KeyF12:        tinput.KeyF12,
}

// convertKey converts a tcell key event. tcell reports ctrl+letter as the
// control character
func convertKey(e *tcell.EventKey) (tinput.Key, bool) {
	key := tinput.Key{
		Modifiers: convertMod(e.Modifiers()),
		EventType: tinput.EventPress,
	}
	k := e.Key()
	switch {
	case k == tcell.KeyRune:
		key.Codepoint = e.Rune()
		if key.Modifiers&^tinput.ModShift == 0 {
			key.Text = string(e.Rune())
		}
	case k == tcell.KeyBacktab:
		key.Codepoint = tinput.KeyTab
		key.Modifiers |= tinput.ModShift
	case keys[k] != 0:
		key.Codepoint = keys[k]
	case k == tcell.KeyCtrlSpace:
		key.Codepoint = tinput.KeySpace
		key.Modifiers |= tinput.ModCtrl
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		key.Codepoint = rune(k-tcell.KeyCtrlA) + 'a'
		key.Modifiers |= tinput.ModCtrl
	default:
		return tinput.Key{}, false
	}
	return key, true
}

func convertMod(m tcell.ModMask) tinput.ModifierMask {
	var result tinput.ModifierMask
	if m&tcell.ModShift != 0 {
		result |= tinput.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		result |= tinput.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		result |= tinput.ModAlt
	}
	if m&tcell.ModMeta != 0 {
		result |= tinput.ModMeta
	}
	return result
}

const wheels = tcell.WheelUp | tcell.WheelDown | tcell.WheelLeft | tcell.WheelRight

// convertMouse converts a tcell mouse event. tcell reports which buttons are
// held, presses and releases are found by comparing with the previous event
func (d *Decoder) convertMouse(e *tcell.EventMouse) tinput.Mouse {
	x, y := e.Position()
	m := tinput.Mouse{
		Col:       x,
		Row:       y,
		Modifiers: convertMod(e.Modifiers()),
	}
	held := e.Buttons()
	if held&wheels != 0 {
		m.Button = convertMouseButton(held & wheels)
		m.EventType = tinput.EventPress
		return m
	}
	pressed := held &^ d.buttons
	released := d.buttons &^ held
	d.buttons = held
	switch {
	case pressed != 0:
		m.Button = convertMouseButton(pressed)
		m.EventType = tinput.EventPress
	case released != 0:
		m.Button = convertMouseButton(released)
		m.EventType = tinput.EventRelease
	default:
		m.Button = convertMouseButton(held)
		m.EventType = tinput.EventMotion
	}
	return m
}

// convertMouseButton converts tcell button mask to a MouseButton
func convertMouseButton(b tcell.ButtonMask) tinput.MouseButton {
	switch {
	case b&tcell.Button1 != 0:
		return tinput.MouseLeftButton
	case b&tcell.Button2 != 0:
		return tinput.MouseRightButton
	case b&tcell.Button3 != 0:
		return tinput.MouseMiddleButton
	case b&tcell.WheelUp != 0:
		return tinput.MouseWheelUp
	case b&tcell.WheelDown != 0:
		return tinput.MouseWheelDown
	case b&tcell.WheelLeft != 0:
		return tinput.MouseWheelLeft
	case b&tcell.WheelRight != 0:
		return tinput.MouseWheelRight
	default:
		return tinput.MouseNoButton
	}
}
