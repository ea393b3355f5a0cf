//go:build windows

package tinput

import (
	"golang.org/x/sys/windows"

	"git.sr.ht/~rockorager/tinput/log"
)

// ExecuteNative enables the capability through the console API, for consoles
// which don't interpret control sequences. Mouse capture is a console input
// mode. Bracketed paste and focus reporting have no native toggle: the
// console always reports focus records, and never brackets pastes
func (c Command) ExecuteNative() error {
	switch c.Capability {
	case MouseCapture:
		h, err := windows.GetStdHandle(windows.STD_INPUT_HANDLE)
		if err != nil {
			return err
		}
		var mode uint32
		if err := windows.GetConsoleMode(h, &mode); err != nil {
			return err
		}
		switch c.Enable {
		case true:
			// Quick edit mode swallows mouse input
			mode |= windows.ENABLE_MOUSE_INPUT | windows.ENABLE_EXTENDED_FLAGS
			mode &^= windows.ENABLE_QUICK_EDIT_MODE
		case false:
			mode &^= windows.ENABLE_MOUSE_INPUT
		}
		log.Debug("setting console input mode %#x", mode)
		return windows.SetConsoleMode(h, mode)
	default:
		return nil
	}
}

// supportsANSI reports whether the console output processes virtual
// terminal sequences
func supportsANSI() bool {
	h, err := windows.GetStdHandle(windows.STD_OUTPUT_HANDLE)
	if err != nil {
		return false
	}
	var mode uint32
	if err := windows.GetConsoleMode(h, &mode); err != nil {
		return false
	}
	return mode&windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING != 0
}
