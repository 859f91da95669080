/*
Package queue provides the bounded, blocking FIFO through which the
coordinator and the workers of a sort exchange messages.

A Queue is a fixed-capacity ring buffer guarded by a single mutex, with
two distinct condition variables: notFull, waited on by producers while
the ring is full, and notEmpty, waited on by consumers while it is
empty. Enqueue only ever signals notEmpty and Dequeue only ever
signals notFull; signaling the wrong one loses wakeups under
contention.
*/
package queue

import (
	"fmt"
	"sync"
)

/*
A Queue is a bounded FIFO of Messages with blocking semantics.

The zero Queue is not valid; use New. A Queue must not be copied after
first use.
*/
type Queue struct {
	mu       sync.Mutex
	notFull  sync.Cond
	notEmpty sync.Cond

	ring       []Message
	head, tail int
	count      int
	highWater  int
	closed     bool
}

// New returns an empty queue that holds at most capacity messages.
//
// New panics if capacity < 1.
func New(capacity int) *Queue {
	if capacity < 1 {
		panic(fmt.Sprintf("invalid queue capacity: %v", capacity))
	}
	q := &Queue{ring: make([]Message, capacity)}
	q.notFull.L = &q.mu
	q.notEmpty.L = &q.mu
	return q
}

/*
Enqueue appends m at the tail of the queue, blocking while the queue is
full. It wakes one goroutine blocked in Dequeue.

Enqueue returns false without enqueuing m if the queue is closed.
*/
func (q *Queue) Enqueue(m Message) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	for q.count == len(q.ring) && !q.closed {
		q.notFull.Wait()
	}
	if q.closed {
		return false
	}
	q.ring[q.tail] = m
	q.tail++
	if q.tail == len(q.ring) {
		q.tail = 0
	}
	q.count++
	if q.count > q.highWater {
		q.highWater = q.count
	}
	q.notEmpty.Signal()
	return true
}

/*
Dequeue removes and returns the oldest message, blocking while the
queue is empty. It wakes one goroutine blocked in Enqueue.

Dequeue returns false once the queue is closed; messages still
buffered at that point are discarded.
*/
func (q *Queue) Dequeue() (Message, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for q.count == 0 && !q.closed {
		q.notEmpty.Wait()
	}
	if q.closed {
		return nil, false
	}
	m := q.ring[q.head]
	q.ring[q.head] = nil
	q.head++
	if q.head == len(q.ring) {
		q.head = 0
	}
	q.count--
	q.notFull.Signal()
	return m, true
}

// Close releases every goroutine blocked in Enqueue or Dequeue and makes
// all further calls return false. It is an abort path; an orderly
// shutdown is expressed with a Shutdown message instead.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
	q.notFull.Broadcast()
	q.notEmpty.Broadcast()
}

// Len returns the number of buffered messages.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.count
}

// Cap returns the capacity of the queue.
func (q *Queue) Cap() int {
	return len(q.ring)
}

// HighWater returns the largest number of messages that were ever
// buffered at the same time.
func (q *Queue) HighWater() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.highWater
}
