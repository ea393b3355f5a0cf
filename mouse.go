package tinput

import (
	"git.sr.ht/~rockorager/tinput/ansi"
	"git.sr.ht/~rockorager/tinput/log"
)

// Mouse is a mouse event. Col and Row are 0-indexed
type Mouse struct {
	Button    MouseButton
	Col       int
	Row       int
	EventType EventType
	Modifiers ModifierMask
}

// MouseButton represents a mouse button
type MouseButton int

const (
	MouseLeftButton MouseButton = iota
	MouseMiddleButton
	MouseRightButton
	MouseNoButton

	MouseWheelUp    MouseButton = 64
	MouseWheelDown  MouseButton = 65
	MouseWheelLeft  MouseButton = 66
	MouseWheelRight MouseButton = 67

	MouseButton8  MouseButton = 128
	MouseButton9  MouseButton = 129
	MouseButton10 MouseButton = 130
	MouseButton11 MouseButton = 131
)

const (
	motion        = 0b00100000
	buttonBits    = 0b11000011
	mouseModShift = 0b00000100
	mouseModAlt   = 0b00001000
	mouseModCtrl  = 0b00010000
)

// parseMouseEvent decodes SGR (CSI < Cb ; Cx ; Cy M/m) and urxvt
// (CSI Cb ; Cx ; Cy M) mouse reports
func parseMouseEvent(seq ansi.CSI) (Mouse, bool) {
	mouse := Mouse{}
	sgr := len(seq.Intermediate) == 1 && seq.Intermediate[0] == '<'
	if !sgr && len(seq.Intermediate) != 0 {
		log.Error("[CSI] unknown mouse sequence: %s", seq)
		return mouse, false
	}
	if !sgr && seq.Final != 'M' {
		return mouse, false
	}
	if len(seq.Parameters) != 3 {
		log.Error("[CSI] unknown mouse sequence: %s", seq)
		return mouse, false
	}
	for _, p := range seq.Parameters {
		if len(p) == 0 {
			log.Error("[CSI] empty mouse parameter: %s", seq)
			return mouse, false
		}
	}

	cb := seq.Parameters[0][0]
	if !sgr {
		// urxvt encodes the button like X10, offset by 32
		cb -= 32
	}

	switch seq.Final {
	case 'M':
		mouse.EventType = EventPress
	case 'm':
		mouse.EventType = EventRelease
	}

	// buttons are encoded with the high two and low two bits
	mouse.Button = MouseButton(cb & buttonBits)
	if !sgr && mouse.Button == MouseNoButton {
		// urxvt has no release final, button 3 means release
		mouse.EventType = EventRelease
	}

	if cb&motion != 0 {
		mouse.EventType = EventMotion
	}

	if cb&mouseModShift != 0 {
		mouse.Modifiers |= ModShift
	}
	if cb&mouseModAlt != 0 {
		mouse.Modifiers |= ModAlt
	}
	if cb&mouseModCtrl != 0 {
		mouse.Modifiers |= ModCtrl
	}

	mouse.Col = seq.Parameters[1][0] - 1
	mouse.Row = seq.Parameters[2][0] - 1

	return mouse, true
}
