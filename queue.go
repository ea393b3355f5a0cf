package tinput

import (
	"sync"
)

// queue provides an infinitely buffered channel. Items are delivered on Chan
// in the order they were pushed
type queue[T any] struct {
	ch    chan T
	done  chan struct{}
	items []T
	mu    sync.Mutex
	busy  bool
}

func newQueue[T any]() *queue[T] {
	q := &queue[T]{
		ch:   make(chan T),
		done: make(chan struct{}),
	}
	return q
}

func (q *queue[T]) Chan() <-chan T {
	return q.ch
}

func (q *queue[T]) push(item T) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.items = append(q.items, item)
	if !q.busy {
		q.busy = true
		go q.process()
	}
}

// pop removes the first item. When the queue is empty it marks the queue idle
// so the next push starts a new process goroutine
func (q *queue[T]) pop() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	var item T
	switch len(q.items) {
	case 0:
		q.busy = false
		return item, false
	case 1:
		item = q.items[0]
		q.items = make([]T, 0)
	default:
		item = q.items[0]
		q.items = q.items[1:]
	}
	return item, true
}

func (q *queue[T]) process() {
	for {
		item, ok := q.pop()
		if !ok {
			return
		}
		select {
		case q.ch <- item:
		case <-q.done:
			return
		}
	}
}

// stop ends delivery. Pending items are abandoned
func (q *queue[T]) stop() {
	close(q.done)
}
