// Package tcellsource decodes the events of a tcell screen into tinput
// Signals, for programs which already draw with tcell
package tcellsource

import (
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"git.sr.ht/~rockorager/tinput"
	"git.sr.ht/~rockorager/tinput/log"
)

// EventSource is the part of a tcell.Screen events are read from. PollEvent
// returns nil once the screen is finalized
type EventSource interface {
	PollEvent() tcell.Event
}

// Decoder is a tinput.Decoder reading from an EventSource
type Decoder struct {
	src  EventSource
	sigs chan tinput.Signal
	done chan struct{}

	// owned by the pump goroutine
	inPaste  bool
	pasteBuf *strings.Builder
	buttons  tcell.ButtonMask

	mu        sync.Mutex
	peeked    tinput.Signal
	err       error
	closeOnce sync.Once
}

// New starts reading events from src
func New(src EventSource) *Decoder {
	d := &Decoder{
		src:      src,
		sigs:     make(chan tinput.Signal),
		done:     make(chan struct{}),
		pasteBuf: &strings.Builder{},
	}
	go d.pump()
	return d
}

func (d *Decoder) pump() {
	defer close(d.sigs)
	for {
		ev := d.src.PollEvent()
		if ev == nil {
			return
		}
		sig, ok := d.convertEvent(ev)
		if !ok {
			continue
		}
		select {
		case d.sigs <- sig:
		case <-d.done:
			return
		}
	}
}

// Next blocks until the next Signal. Once the screen is finalized it returns
// tinput.ErrClosed
func (d *Decoder) Next() (tinput.Signal, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.peeked != nil {
		sig := d.peeked
		d.peeked = nil
		return sig, nil
	}
	if d.err != nil {
		return nil, d.err
	}
	select {
	case sig, ok := <-d.sigs:
		if !ok {
			d.err = tinput.ErrClosed
			return nil, d.err
		}
		return sig, nil
	case <-d.done:
		d.err = tinput.ErrClosed
		return nil, d.err
	}
}

// Poll reports whether a Signal is available within timeout
func (d *Decoder) Poll(timeout time.Duration) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.peeked != nil {
		return true, nil
	}
	if d.err != nil {
		return false, d.err
	}
	timer := time.NewTimer(max(timeout, 0))
	defer timer.Stop()
	select {
	case sig, ok := <-d.sigs:
		if !ok {
			d.err = tinput.ErrClosed
			return false, d.err
		}
		d.peeked = sig
		return true, nil
	case <-timer.C:
		return false, nil
	case <-d.done:
		d.err = tinput.ErrClosed
		return false, d.err
	}
}

// Close stops delivering events. It does not finalize the screen
func (d *Decoder) Close() error {
	d.closeOnce.Do(func() {
		close(d.done)
	})
	return nil
}

// convertEvent converts tcell events to Signals. Key events between the
// start and end of a paste are collected into a single PasteSignal
func (d *Decoder) convertEvent(ev tcell.Event) (tinput.Signal, bool) {
	switch e := ev.(type) {
	case *tcell.EventPaste:
		if e.Start() {
			d.inPaste = true
			d.pasteBuf.Reset()
			return nil, false
		}
		if !d.inPaste {
			log.Warn("[tcell] paste end without start")
			return nil, false
		}
		d.inPaste = false
		return tinput.PasteSignal{Text: d.pasteBuf.String()}, true

	case *tcell.EventKey:
		if d.inPaste {
			d.appendPaste(e)
			return nil, false
		}
		key, ok := convertKey(e)
		if !ok {
			return nil, false
		}
		return tinput.EventSignal{Event: key}, true

	case *tcell.EventMouse:
		return tinput.EventSignal{Event: d.convertMouse(e)}, true

	case *tcell.EventResize:
		w, h := e.Size()
		return tinput.EventSignal{Event: tinput.Resize{Cols: w, Rows: h}}, true

	case *tcell.EventFocus:
		if e.Focused {
			return tinput.EventSignal{Event: tinput.FocusIn{}}, true
		}
		return tinput.EventSignal{Event: tinput.FocusOut{}}, true

	default:
		log.Trace("[tcell] ignoring %T", ev)
		return nil, false
	}
}

func (d *Decoder) appendPaste(e *tcell.EventKey) {
	switch e.Key() {
	case tcell.KeyRune:
		d.pasteBuf.WriteRune(e.Rune())
	case tcell.KeyEnter, tcell.KeyLF:
		d.pasteBuf.WriteRune('\n')
	case tcell.KeyTab:
		d.pasteBuf.WriteRune('\t')
	default:
		log.Trace("[tcell] dropping %s in paste", e.Name())
	}
}
