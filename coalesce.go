package tinput

import "time"

// InputReader is the reading surface CoalesceResize works on. *Reader
// implements it
type InputReader interface {
	Read() (Input, error)
	Poll(timeout time.Duration) (bool, error)
}

// CoalescePolicy decides what happens to input other than resizes read in
// the middle of a resize burst
type CoalescePolicy int

const (
	// DiscardOthers drops any other input read during the burst
	DiscardOthers CoalescePolicy = iota
	// KeepOthers returns any other input read during the burst, in order,
	// in ResizeBurst.Skipped
	KeepOthers
)

// ResizeBurst is the outcome of coalescing a burst of resizes
type ResizeBurst struct {
	// First is the size which started the burst
	First Resize
	// Last is the most recent size seen before the burst went quiet
	Last Resize
	// Skipped holds the other input read during the burst. It is
	// always empty under DiscardOthers
	Skipped []Input
}

// Coalescer reduces bursts of resize events, as emitted while the user drags
// a window edge, to the first and last size
type Coalescer struct {
	// Interval is how long to wait for the next input of the burst. If
	// nothing arrives within Interval the burst is over. Defaults to
	// DefaultResizeInterval
	Interval time.Duration
	Policy   CoalescePolicy
}

// Coalesce drains the burst started by first. It keeps reading while r has
// input within the interval, and returns as soon as a poll times out. If a
// read fails the burst seen so far is returned with the error
func (c Coalescer) Coalesce(r InputReader, first Resize) (ResizeBurst, error) {
	interval := c.Interval
	if interval <= 0 {
		interval = DefaultResizeInterval
	}
	burst := ResizeBurst{
		First: first,
		Last:  first,
	}
	for {
		ok, err := r.Poll(interval)
		if err != nil {
			return burst, err
		}
		if !ok {
			return burst, nil
		}
		in, err := r.Read()
		if err != nil {
			return burst, err
		}
		if ev, isEvent := in.(EventInput); isEvent {
			if rs, isResize := ev.Event.(Resize); isResize {
				burst.Last = rs
				continue
			}
		}
		if c.Policy == KeepOthers {
			burst.Skipped = append(burst.Skipped, in)
		}
	}
}

// CoalesceResize drains the resize burst started by first, waiting
// DefaultResizeInterval for each following input and dropping anything that
// is not a resize. It returns the first and last size of the burst
func CoalesceResize(r InputReader, first Resize) (Resize, Resize, error) {
	burst, err := Coalescer{}.Coalesce(r, first)
	return burst.First, burst.Last, err
}
