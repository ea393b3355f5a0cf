package tinput

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/muesli/cancelreader"

	"git.sr.ht/~rockorager/tinput/ansi"
	"git.sr.ht/~rockorager/tinput/log"
)

// SequenceError is returned for a control sequence which was recognized but
// could not be decoded. It fails only the call which returned it
type SequenceError struct {
	Sequence string
	Reason   string
}

func (e *SequenceError) Error() string {
	return fmt.Sprintf("tinput: %s: %s", e.Reason, e.Sequence)
}

// result is one delivery of a VTDecoder. end marks the error which ended the
// input
type result struct {
	sig Signal
	err error
	end bool
}

// VTDecoder decodes the byte stream of a VT compatible terminal: xterm style
// keys, the kitty keyboard protocol, SGR and urxvt mouse reports, focus
// reports, bracketed paste and cursor position reports
type VTDecoder struct {
	parser  *ansi.Parser
	results *queue[result]

	// owned by the decoding goroutine
	inPaste  bool
	pasteBuf *strings.Builder

	mu     sync.Mutex
	peeked *result
	err    error

	closeOnce sync.Once
	done      chan struct{}
	closer    func() error
}

// NewVTDecoder decodes the input read from r. Reading stops at the first read
// error, which every later call to Next reports.
//
// Close returns immediately, but the goroutine reading r only exits once a
// Read returns. Readers which can't be interrupted (pipes, sockets) keep it
// alive until their writer closes; OpenTTY uses a cancelable reader
func NewVTDecoder(r io.Reader) *VTDecoder {
	d := &VTDecoder{
		parser:   ansi.NewParser(r),
		results:  newQueue[result](),
		pasteBuf: &strings.Builder{},
		done:     make(chan struct{}),
	}
	go d.run()
	return d
}

func (d *VTDecoder) run() {
	for {
		select {
		case seq, ok := <-d.parser.Next():
			if !ok {
				return
			}
			if eof, ok := seq.(ansi.EOF); ok {
				d.flushPaste()
				d.results.push(result{err: endOfInput(eof.Err), end: true})
				return
			}
			d.handleSequence(seq)
		case <-d.done:
			// unblock the parser until its reader is done
			for range d.parser.Next() {
			}
			return
		}
	}
}

func endOfInput(err error) error {
	switch {
	case err == nil, errors.Is(err, io.EOF):
		return io.EOF
	case errors.Is(err, cancelreader.ErrCanceled):
		return ErrClosed
	default:
		return fmt.Errorf("tinput: read terminal: %w", err)
	}
}

func (d *VTDecoder) post(sig Signal) {
	d.results.push(result{sig: sig})
}

func (d *VTDecoder) postEvent(ev Event) {
	d.post(EventSignal{Event: ev})
}

func (d *VTDecoder) fail(seq ansi.Sequence, reason string) {
	log.Error("[stdin] %s: %v", reason, seq)
	d.results.push(result{err: &SequenceError{
		Sequence: fmt.Sprint(seq),
		Reason:   reason,
	}})
}

// PostResize delivers a resize in order with the decoded input. Platforms
// which learn about size changes out of band (SIGWINCH) report them here
func (d *VTDecoder) PostResize(rs Resize) {
	d.postEvent(rs)
}

// Next blocks until the next Signal is decoded
func (d *VTDecoder) Next() (Signal, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err != nil {
		return nil, d.err
	}
	var res result
	switch {
	case d.peeked != nil:
		res = *d.peeked
		d.peeked = nil
	default:
		select {
		case res = <-d.results.Chan():
		case <-d.done:
			d.err = ErrClosed
			return nil, d.err
		}
	}
	if res.end {
		d.err = res.err
	}
	return res.sig, res.err
}

// Poll reports whether Next would return without blocking, waiting at most
// timeout
func (d *VTDecoder) Poll(timeout time.Duration) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err != nil {
		return false, d.err
	}
	if d.peeked != nil {
		return true, nil
	}
	select {
	case <-d.done:
		d.err = ErrClosed
		return false, d.err
	default:
	}
	if timeout <= 0 {
		select {
		case res := <-d.results.Chan():
			d.peeked = &res
			return true, nil
		default:
			return false, nil
		}
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case res := <-d.results.Chan():
		d.peeked = &res
		return true, nil
	case <-timer.C:
		return false, nil
	case <-d.done:
		d.err = ErrClosed
		return false, d.err
	}
}

// Close stops decoding. Blocked and later calls return ErrClosed
func (d *VTDecoder) Close() error {
	var err error
	d.closeOnce.Do(func() {
		close(d.done)
		d.results.stop()
		if d.closer != nil {
			err = d.closer()
		}
	})
	return err
}

func (d *VTDecoder) handleSequence(seq ansi.Sequence) {
	log.Trace("[stdin] sequence %v", seq)
	if d.inPaste {
		d.handlePaste(seq)
		return
	}
	switch seq := seq.(type) {
	case ansi.Print:
		d.postEvent(decodePrint(seq))
	case ansi.C0:
		d.postEvent(decodeC0(seq))
	case ansi.ESC:
		key, ok := decodeEsc(seq)
		if !ok {
			log.Trace("[stdin] unhandled escape: %s", seq)
			return
		}
		d.postEvent(key)
	case ansi.SS3:
		key, ok := decodeSS3(seq)
		if !ok {
			log.Trace("[stdin] unhandled SS3: %q", rune(seq))
			return
		}
		d.postEvent(key)
	case ansi.CSI:
		d.handleCSI(seq)
	default:
		// OSC, DCS and APC are replies to queries tinput doesn't send
		log.Trace("[stdin] ignoring %T", seq)
	}
}

// handlePaste collects everything up to the end of a bracketed paste
func (d *VTDecoder) handlePaste(seq ansi.Sequence) {
	switch seq := seq.(type) {
	case ansi.Print:
		d.pasteBuf.WriteString(string(seq))
	case ansi.C0:
		d.pasteBuf.WriteRune(rune(seq))
	case ansi.CSI:
		if seq.Final == '~' && len(seq.Intermediate) == 0 && seq.Param(0, 0) == 201 {
			d.inPaste = false
			d.post(PasteSignal{Text: d.pasteBuf.String()})
			d.pasteBuf.Reset()
			return
		}
		log.Trace("[stdin] dropping %s in paste", seq)
	default:
		log.Trace("[stdin] dropping %T in paste", seq)
	}
}

// flushPaste delivers the text of a paste cut short by the end of input
func (d *VTDecoder) flushPaste() {
	if !d.inPaste {
		return
	}
	d.inPaste = false
	log.Warn("[stdin] input ended in a paste, delivering %d bytes", d.pasteBuf.Len())
	d.post(PasteSignal{Text: d.pasteBuf.String()})
	d.pasteBuf.Reset()
}

func (d *VTDecoder) handleCSI(seq ansi.CSI) {
	switch seq.Final {
	case 'I':
		if len(seq.Parameters) == 0 && len(seq.Intermediate) == 0 {
			d.postEvent(FocusIn{})
			return
		}
	case 'O':
		if len(seq.Parameters) == 0 && len(seq.Intermediate) == 0 {
			d.postEvent(FocusOut{})
			return
		}
	case 'R':
		// Could also be a modified F3 from terminals predating the kitty
		// keyboard protocol. Reports are far more likely
		if len(seq.Intermediate) != 0 {
			break
		}
		if len(seq.Parameters) != 2 {
			d.fail(seq, "malformed cursor position report")
			return
		}
		d.post(CursorPositionSignal{
			Row: seq.Param(0, 1) - 1,
			Col: seq.Param(1, 1) - 1,
		})
		return
	case 'u':
		if len(seq.Intermediate) != 0 {
			// kitty keyboard flags report
			log.Trace("[stdin] ignoring %s", seq)
			return
		}
	case '~':
		if len(seq.Intermediate) != 0 {
			break
		}
		switch seq.Param(0, 0) {
		case 200:
			d.inPaste = true
			return
		case 201:
			log.Warn("[stdin] paste end without start")
			return
		}
	case 'M', 'm':
		mouse, ok := parseMouseEvent(seq)
		if !ok {
			d.fail(seq, "malformed mouse report")
			return
		}
		d.postEvent(mouse)
		return
	}

	key, ok := decodeCSIKey(seq)
	if !ok {
		log.Trace("[stdin] unhandled sequence: %s", seq)
		return
	}
	d.postEvent(key)
}
