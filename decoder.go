package tinput

import (
	"errors"
	"time"
)

// ErrClosed is returned by decoders which have been closed
var ErrClosed = errors.New("tinput: decoder closed")

// ErrTimeout is returned by queries which did not receive a response in time
var ErrTimeout = errors.New("tinput: timed out")

// A Decoder turns raw terminal input into Signals. Signals must be produced in
// the order they occurred. An error fails only the call which returned it
// unless the decoder has reached the end of its input, in which case every
// following call reports the same error
type Decoder interface {
	// Next blocks until the next Signal is available and returns it
	Next() (Signal, error)
	// Poll reports whether a Signal is available, waiting at most timeout.
	// It does not consume the Signal: the next call to Next returns it
	// without blocking
	Poll(timeout time.Duration) (bool, error)
}
