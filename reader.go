package tinput

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"git.sr.ht/~rockorager/tinput/log"
)

// Reader delivers the Signals of one Decoder. Read and Poll see events and
// pastes; ReadSignal and PollSignal let internal consumers pick out narrower
// Signal shapes without disturbing the order of everything else
type Reader struct {
	dec    Decoder
	sel    *selector
	opts   Options
	closed bool
	mu     sync.Mutex
}

// NewReader creates a Reader over dec
func NewReader(dec Decoder, opts Options) *Reader {
	return &Reader{
		dec:  dec,
		sel:  newSelector(dec),
		opts: opts.setup(),
	}
}

// Read blocks until the next event or paste is available
func (r *Reader) Read() (Input, error) {
	sig, err := r.sel.next(InputFilter)
	if err != nil {
		return nil, err
	}
	switch sig := sig.(type) {
	case EventSignal:
		return EventInput{Event: sig.Event}, nil
	case PasteSignal:
		return Paste(sig.Text), nil
	default:
		// InputFilter only accepts the two above
		return nil, fmt.Errorf("tinput: unexpected signal %T", sig)
	}
}

// Poll reports whether an event or paste is available within timeout. It
// does not consume anything: the next Read returns input in its original
// order
func (r *Reader) Poll(timeout time.Duration) (bool, error) {
	return r.sel.poll(InputFilter, timeout)
}

// ReadSignal blocks until a Signal accepted by f is available. Signals which f
// rejects stay queued for later reads
func (r *Reader) ReadSignal(f Filter) (Signal, error) {
	return r.sel.next(f)
}

// PollSignal reports whether a Signal accepted by f is available within
// timeout, without consuming it
func (r *Reader) PollSignal(f Filter, timeout time.Duration) (bool, error) {
	return r.sel.poll(f, timeout)
}

// CursorPosition requests a cursor position report by writing DSR to w and
// waits at most timeout for the answer. Other input arriving in the meantime
// is left for Read. 0,0 is the upper left corner
func (r *Reader) CursorPosition(w io.Writer, timeout time.Duration) (col int, row int, err error) {
	if _, err := io.WriteString(w, dsrcpr); err != nil {
		return -1, -1, err
	}
	ok, err := r.sel.poll(CursorPositionFilter, timeout)
	if err != nil {
		return -1, -1, err
	}
	if !ok {
		log.Warn("CursorPosition timed out")
		return -1, -1, ErrTimeout
	}
	sig, err := r.sel.next(CursorPositionFilter)
	if err != nil {
		return -1, -1, err
	}
	pos := sig.(CursorPositionSignal)
	return pos.Col, pos.Row, nil
}

// CoalesceResize drains the resize burst started by first, using the
// interval and policy the Reader was configured with
func (r *Reader) CoalesceResize(first Resize) (ResizeBurst, error) {
	c := Coalescer{
		Interval: r.opts.ResizeInterval,
		Policy:   r.opts.CoalescePolicy,
	}
	return c.Coalesce(r, first)
}

// Close closes the underlying Decoder, if it can be closed
func (r *Reader) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	r.closed = true
	if c, ok := r.dec.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

var (
	stdMu     sync.Mutex
	stdReader *Reader
)

// Init opens the controlling terminal and sets up the process wide Reader
// used by Read and Poll. Calling Init is optional, the first Read or Poll
// will do it with the default Options
func Init(opts Options) error {
	stdMu.Lock()
	defer stdMu.Unlock()
	if stdReader != nil {
		return errors.New("tinput: already initialized")
	}
	return initLocked(opts)
}

func initLocked(opts Options) error {
	dec, err := openTerminal()
	if err != nil {
		return fmt.Errorf("tinput: open terminal: %w", err)
	}
	stdReader = NewReader(dec, opts)
	return nil
}

func std() (*Reader, error) {
	stdMu.Lock()
	defer stdMu.Unlock()
	if stdReader == nil {
		if err := initLocked(Options{}); err != nil {
			return nil, err
		}
	}
	return stdReader, nil
}

// Read blocks until the next event or paste arrives from the terminal
func Read() (Input, error) {
	r, err := std()
	if err != nil {
		return nil, err
	}
	return r.Read()
}

// Poll reports whether an event or paste from the terminal is available
// within timeout
func Poll(timeout time.Duration) (bool, error) {
	r, err := std()
	if err != nil {
		return false, err
	}
	return r.Poll(timeout)
}

// CursorPosition queries the terminal for the cursor position. See
// Reader.CursorPosition
func CursorPosition(w io.Writer, timeout time.Duration) (col int, row int, err error) {
	r, err := std()
	if err != nil {
		return -1, -1, err
	}
	return r.CursorPosition(w, timeout)
}

// Close releases the terminal opened by Init, Read or Poll. A later Read will
// open it again
func Close() error {
	stdMu.Lock()
	defer stdMu.Unlock()
	if stdReader == nil {
		return nil
	}
	err := stdReader.Close()
	stdReader = nil
	return err
}

// Terminal reads from the process wide Reader. It lets the package level Read
// and Poll be passed where an InputReader is expected
var Terminal InputReader = terminal{}

type terminal struct{}

func (terminal) Read() (Input, error) {
	return Read()
}

func (terminal) Poll(timeout time.Duration) (bool, error) {
	return Poll(timeout)
}
