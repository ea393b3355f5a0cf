package tinput

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueue(t *testing.T) {
	q := newQueue[int]()
	size := 10_000
	for i := 0; i < size; i += 1 {
		q.push(i)
	}
	for i := 0; i < size; i += 1 {
		out := <-q.Chan()
		require.Equal(t, i, out, "event out of order")
	}
	q.stop()
}

func TestQueueRestart(t *testing.T) {
	q := newQueue[string]()
	defer q.stop()
	q.push("a")
	assert.Equal(t, "a", <-q.Chan())
	// let the process goroutine notice the queue is empty
	time.Sleep(10 * time.Millisecond)
	q.push("b")
	q.push("c")
	assert.Equal(t, "b", <-q.Chan())
	assert.Equal(t, "c", <-q.Chan())
}
