package qsort

import (
	"fmt"
	"sync"
)

// A span is the part of the shared buffer owned by one in-flight WORK
// message.
type span struct {
	data       []float64
	start, end int
}

// elems returns the owned elements. The capacity is clipped so that the
// slice cannot be used to reach past end.
func (s span) elems() []float64 {
	return s.data[s.start:s.end:s.end]
}

// disjoint reports whether s and t have no index in common.
func (s span) disjoint(t span) bool {
	return s.end <= t.start || t.end <= s.start
}

func (s span) String() string {
	return fmt.Sprintf("[%d, %d)", s.start, s.end)
}

// A ledger records the spans that workers are currently writing to.
// Ownership starts when a worker dequeues a WORK message and ends after
// its last write, before it enqueues the resulting messages.
type ledger struct {
	mu   sync.Mutex
	live map[int]span
}

func newLedger() *ledger {
	return &ledger{live: make(map[int]span)}
}

// acquire panics if s overlaps a span that is already live.
func (l *ledger) acquire(s span) {
	if s.start == s.end {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, t := range l.live {
		if !s.disjoint(t) {
			panic(fmt.Sprintf("span %v overlaps live span %v", s, t))
		}
	}
	l.live[s.start] = s
}

func (l *ledger) release(s span) {
	if s.start == s.end {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.live, s.start)
}
