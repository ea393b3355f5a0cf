package tinput

// Signal is a single decoded unit of terminal input, as produced by a
// Decoder. Signals are delivered in the order they occurred and are consumed
// exactly once
type Signal interface {
	isSignal()
}

// EventSignal carries a discrete Event
type EventSignal struct {
	Event Event
}

// PasteSignal carries the complete content of one bracketed paste. Control
// sequences inside the paste are dropped, so a raw ESC takes the bytes of the
// sequence it starts with it ("a\x1bxb" arrives as "ab"). A paste cut short by
// the end of input carries what was received
type PasteSignal struct {
	Text string
}

// CursorPositionSignal is a cursor position report. Col and Row are 0-indexed.
// It is only surfaced to consumers asking for it with CursorPositionFilter
type CursorPositionSignal struct {
	Col int
	Row int
}

func (EventSignal) isSignal()          {}
func (PasteSignal) isSignal()          {}
func (CursorPositionSignal) isSignal() {}
