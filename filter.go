package tinput

// A Filter selects which Signals a read is willing to accept from the shared
// queue. Filters are evaluated repeatedly against queued Signals and must not
// have side effects
type Filter interface {
	Accept(Signal) bool
}

var (
	// InputFilter accepts every Signal which Read surfaces: events and
	// pastes
	InputFilter Filter = inputFilter{}
	// ResizeFilter accepts only resize events
	ResizeFilter Filter = resizeFilter{}
	// CursorPositionFilter accepts only cursor position reports
	CursorPositionFilter Filter = cursorPositionFilter{}
)

type inputFilter struct{}

func (inputFilter) Accept(sig Signal) bool {
	switch sig.(type) {
	case EventSignal, PasteSignal:
		return true
	}
	return false
}

type resizeFilter struct{}

func (resizeFilter) Accept(sig Signal) bool {
	ev, ok := sig.(EventSignal)
	if !ok {
		return false
	}
	_, ok = ev.Event.(Resize)
	return ok
}

type cursorPositionFilter struct{}

func (cursorPositionFilter) Accept(sig Signal) bool {
	_, ok := sig.(CursorPositionSignal)
	return ok
}
