package tinput

// Event is a discrete input occurrence. It is one of Key, Mouse, FocusIn,
// FocusOut or Resize
type Event interface {
	isEvent()
}

// Resize is delivered whenever a window size change is detected (likely via
// SIGWINCH)
type Resize struct {
	Cols   int
	Rows   int
	XPixel int
	YPixel int
}

// FocusIn is sent when the terminal has gained focus
type FocusIn struct{}

// FocusOut is sent when the terminal has lost focus
type FocusOut struct{}

func (Key) isEvent()      {}
func (Mouse) isEvent()    {}
func (Resize) isEvent()   {}
func (FocusIn) isEvent()  {}
func (FocusOut) isEvent() {}

// Input is the result of a successful Read. It is either an EventInput or a
// Paste
type Input interface {
	isInput()
}

// EventInput wraps a discrete Event
type EventInput struct {
	Event Event
}

// Paste is delivered when a bracketed paste was detected. The value of Paste
// is the pasted content
type Paste string

func (EventInput) isInput() {}
func (Paste) isInput()      {}
