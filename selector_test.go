package tinput

import (
	"errors"
	"io"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectorOrder(t *testing.T) {
	sigs := []Signal{key('a'), resize(80, 24), PasteSignal{Text: "hi"}, key('b')}
	script := append(now(sigs...), scripted{err: io.EOF})
	sel := newSelector(newFakeDecoder(script...))
	for _, want := range sigs {
		got, err := sel.next(InputFilter)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := sel.next(InputFilter)
	assert.ErrorIs(t, err, io.EOF)
}

func TestSelectorNarrowFilter(t *testing.T) {
	a := resize(80, 24)
	b := key('c')
	c := resize(82, 25)
	sel := newSelector(newFakeDecoder(now(a, b, c)...))

	got, err := sel.next(ResizeFilter)
	require.NoError(t, err)
	assert.Equal(t, a, got)

	got, err = sel.next(ResizeFilter)
	require.NoError(t, err)
	assert.Equal(t, c, got)
	assert.Equal(t, 1, sel.queued())

	got, err = sel.next(InputFilter)
	require.NoError(t, err)
	assert.Equal(t, b, got)
	assert.Equal(t, 0, sel.queued())
}

func TestSelectorPendingFirst(t *testing.T) {
	sel := newSelector(newFakeDecoder(now(key('x'), CursorPositionSignal{Col: 1, Row: 2}, key('y'))...))

	got, err := sel.next(CursorPositionFilter)
	require.NoError(t, err)
	assert.Equal(t, CursorPositionSignal{Col: 1, Row: 2}, got)

	// x was queued, y still sits in the decoder
	got, err = sel.next(InputFilter)
	require.NoError(t, err)
	assert.Equal(t, key('x'), got)
	got, err = sel.next(InputFilter)
	require.NoError(t, err)
	assert.Equal(t, key('y'), got)
}

func TestSelectorPollDoesNotConsume(t *testing.T) {
	sel := newSelector(newFakeDecoder(now(key('a'))...))
	for i := 0; i < 3; i += 1 {
		ok, err := sel.poll(InputFilter, 100*time.Millisecond)
		require.NoError(t, err)
		assert.True(t, ok)
	}
	got, err := sel.next(InputFilter)
	require.NoError(t, err)
	assert.Equal(t, key('a'), got)
}

func TestSelectorPollQueuesRejected(t *testing.T) {
	sel := newSelector(newFakeDecoder(now(key('a'), key('b'), resize(10, 10))...))
	ok, err := sel.poll(ResizeFilter, 100*time.Millisecond)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 3, sel.queued())

	got, err := sel.next(InputFilter)
	require.NoError(t, err)
	assert.Equal(t, key('a'), got)
}

func TestSelectorPollTimeout(t *testing.T) {
	sel := newSelector(newFakeDecoder(scripted{sig: key('a'), delay: time.Second}))
	start := time.Now()
	ok, err := sel.poll(InputFilter, 20*time.Millisecond)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestSelectorPollTimeoutWithRejected(t *testing.T) {
	// keys keep arriving but no resize does: the bound still holds
	script := []scripted{}
	for i := 0; i < 20; i += 1 {
		script = append(script, scripted{sig: key('k'), delay: 5 * time.Millisecond})
	}
	sel := newSelector(newFakeDecoder(script...))
	start := time.Now()
	ok, err := sel.poll(ResizeFilter, 30*time.Millisecond)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Less(t, time.Since(start), 500*time.Millisecond)
	assert.Greater(t, sel.queued(), 0)
}

func TestSelectorZeroTimeout(t *testing.T) {
	sel := newSelector(newFakeDecoder(scripted{sig: key('a'), delay: time.Second}))
	ok, err := sel.poll(InputFilter, 0)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSelectorError(t *testing.T) {
	boom := errors.New("boom")
	sel := newSelector(newFakeDecoder(
		scripted{sig: key('a')},
		scripted{err: boom},
		scripted{sig: resize(1, 1)},
	))

	ok, err := sel.poll(ResizeFilter, 100*time.Millisecond)
	assert.ErrorIs(t, err, boom)
	assert.False(t, ok)
	assert.Equal(t, 1, sel.queued())

	// the failure is not sticky and pending is intact
	got, err := sel.next(ResizeFilter)
	require.NoError(t, err)
	assert.Equal(t, resize(1, 1), got)
	got, err = sel.next(InputFilter)
	require.NoError(t, err)
	assert.Equal(t, key('a'), got)
}

func TestFilters(t *testing.T) {
	tests := []struct {
		name   string
		sig    Signal
		input  bool
		resize bool
		cursor bool
	}{
		{
			name:  "key",
			sig:   key('a'),
			input: true,
		},
		{
			name:   "resize",
			sig:    resize(1, 2),
			input:  true,
			resize: true,
		},
		{
			name:  "paste",
			sig:   PasteSignal{Text: "x"},
			input: true,
		},
		{
			name:  "focus",
			sig:   EventSignal{Event: FocusIn{}},
			input: true,
		},
		{
			name:   "cursor position",
			sig:    CursorPositionSignal{},
			cursor: true,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.input, InputFilter.Accept(test.sig))
			assert.Equal(t, test.resize, ResizeFilter.Accept(test.sig))
			assert.Equal(t, test.cursor, CursorPositionFilter.Accept(test.sig))
		})
	}
}

func TestReaderConcurrentConsumers(t *testing.T) {
	const total = 2000
	pr, pw := io.Pipe()
	defer pw.Close()
	d := NewVTDecoder(pr)
	r := NewReader(d, Options{})

	var (
		wg   sync.WaitGroup
		got  = make([][]int, 4)
		seen = make(chan struct{}, total)
	)
	consume := func(i int, read func() (Event, error)) {
		defer wg.Done()
		for {
			ev, err := read()
			if err != nil {
				return
			}
			rs, ok := ev.(Resize)
			if !assert.True(t, ok, "got %T", ev) {
				return
			}
			got[i] = append(got[i], rs.Cols)
			seen <- struct{}{}
		}
	}
	for i := 0; i < 2; i += 1 {
		wg.Add(2)
		go consume(i, func() (Event, error) {
			in, err := r.Read()
			if err != nil {
				return nil, err
			}
			return in.(EventInput).Event, nil
		})
		go consume(i+2, func() (Event, error) {
			sig, err := r.ReadSignal(ResizeFilter)
			if err != nil {
				return nil, err
			}
			return sig.(EventSignal).Event, nil
		})
	}

	for i := 0; i < total; i += 1 {
		d.PostResize(Resize{Cols: i, Rows: 24})
	}
	timeout := time.After(5 * time.Second)
	for i := 0; i < total; i += 1 {
		select {
		case <-seen:
		case <-timeout:
			t.Fatalf("only %d of %d resizes delivered", i, total)
		}
	}
	require.NoError(t, d.Close())
	wg.Wait()

	var all []int
	for _, cols := range got {
		assert.True(t, sort.IntsAreSorted(cols), "out of order: %v", cols)
		all = append(all, cols...)
	}
	sort.Ints(all)
	require.Len(t, all, total)
	for i, cols := range all {
		assert.Equal(t, i, cols)
	}
}
