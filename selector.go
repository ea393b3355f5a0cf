package tinput

import (
	"sync"
	"time"
)

// selector hands out Signals from a Decoder to callers asking with different
// Filters. Signals a caller does not accept are kept, in arrival order, for
// the next caller
type selector struct {
	mu      sync.Mutex
	dec     Decoder
	pending []Signal
}

func newSelector(dec Decoder) *selector {
	return &selector{
		dec: dec,
	}
}

// next returns the first Signal accepted by f. Queued Signals are offered
// before newer ones are pulled from the decoder. next blocks until an accepted
// Signal arrives or the decoder fails
func (s *selector) next(f Filter) (Signal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.find(f); i >= 0 {
		return s.remove(i), nil
	}
	for {
		sig, err := s.dec.Next()
		if err != nil {
			return nil, err
		}
		if f.Accept(sig) {
			return sig, nil
		}
		s.pending = append(s.pending, sig)
	}
}

// poll reports whether a Signal accepted by f is, or becomes within timeout,
// available. Nothing is consumed: anything pulled from the decoder is queued
func (s *selector) poll(f Filter, timeout time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.find(f) >= 0 {
		return true, nil
	}
	deadline := time.Now().Add(max(timeout, 0))
	for {
		ready, err := s.dec.Poll(max(time.Until(deadline), 0))
		if err != nil {
			return false, err
		}
		if !ready {
			return false, nil
		}
		sig, err := s.dec.Next()
		if err != nil {
			return false, err
		}
		s.pending = append(s.pending, sig)
		if f.Accept(sig) {
			return true, nil
		}
	}
}

// find returns the index of the first queued Signal accepted by f, or -1
func (s *selector) find(f Filter) int {
	for i, sig := range s.pending {
		if f.Accept(sig) {
			return i
		}
	}
	return -1
}

func (s *selector) remove(i int) Signal {
	sig := s.pending[i]
	n := len(s.pending)
	switch n {
	case 1:
		s.pending = nil
	default:
		copy(s.pending[i:], s.pending[i+1:])
		s.pending[n-1] = nil
		s.pending = s.pending[:n-1]
	}
	return sig
}

// queued returns the number of queued Signals
func (s *selector) queued() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}
