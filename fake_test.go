package tinput

import (
	"time"
)

// scripted is one delivery of a fakeDecoder. It becomes available delay
// after the previous one was taken
type scripted struct {
	sig   Signal
	err   error
	delay time.Duration
}

// fakeDecoder replays a script. Once the script is exhausted it blocks
// forever, like a terminal nobody types into
type fakeDecoder struct {
	ch     chan scripted
	peeked *scripted
	closed bool
}

func newFakeDecoder(script ...scripted) *fakeDecoder {
	d := &fakeDecoder{
		ch: make(chan scripted),
	}
	go func() {
		for _, s := range script {
			time.Sleep(s.delay)
			d.ch <- s
		}
	}()
	return d
}

func (d *fakeDecoder) Next() (Signal, error) {
	if d.peeked != nil {
		s := d.peeked
		d.peeked = nil
		return s.sig, s.err
	}
	s := <-d.ch
	return s.sig, s.err
}

func (d *fakeDecoder) Poll(timeout time.Duration) (bool, error) {
	if d.peeked != nil {
		return true, nil
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case s := <-d.ch:
		d.peeked = &s
		return true, nil
	case <-timer.C:
		return false, nil
	}
}

func (d *fakeDecoder) Close() error {
	d.closed = true
	return nil
}

func key(cp rune) Signal {
	return EventSignal{Event: Key{Codepoint: cp, Text: string(cp), EventType: EventPress}}
}

func resize(cols int, rows int) Signal {
	return EventSignal{Event: Resize{Cols: cols, Rows: rows}}
}

func now(sigs ...Signal) []scripted {
	script := make([]scripted, 0, len(sigs))
	for _, sig := range sigs {
		script = append(script, scripted{sig: sig})
	}
	return script
}
