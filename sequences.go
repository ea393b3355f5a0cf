package tinput

import "strconv"

// DEC private modes toggled by Commands
const (
	mouseX10          = 1000
	mouseButtonEvents = 1002
	mouseAllEvents    = 1003
	focusEvents       = 1004
	mouseURXVT        = 1015
	mouseSGR          = 1006
	bracketedPaste    = 2004
)

const (
	// Device Status Report - Cursor Position Report
	dsrcpr = "\x1b[6n"

	csi = "\x1b["
)

// decset returns the sequence which sets the DEC private mode
func decset(mode int) string {
	return csi + "?" + strconv.Itoa(mode) + "h"
}

// decrst returns the sequence which resets the DEC private mode
func decrst(mode int) string {
	return csi + "?" + strconv.Itoa(mode) + "l"
}
