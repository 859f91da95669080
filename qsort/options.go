package qsort

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
)

var (
	// ErrNoWorkers is returned when fewer than one worker is requested.
	ErrNoWorkers = errors.New("qsort: at least one worker is required")

	// ErrBadLimit is returned when the sequential threshold is below 1.
	ErrBadLimit = errors.New("qsort: sequential threshold must be at least 1")

	// ErrQueueTooSmall is returned when an explicit queue capacity cannot
	// hold every message that may be in flight at once.
	ErrQueueTooSmall = errors.New("qsort: queue capacity too small")
)

// Options configure a single call to Sort.
type Options struct {
	// Workers is the number of worker goroutines.
	Workers int

	// QueueCapacity bounds the message queue. 0 selects the smallest
	// capacity that cannot deadlock for the given buffer length.
	QueueCapacity int

	// Limit is the largest span that is sorted sequentially instead of
	// being partitioned.
	Limit int

	// CheckSpans makes every worker register the span it is writing to,
	// and panic if it overlaps a span owned by another worker.
	CheckSpans bool

	// Logger receives debug output about the pool. nil discards it.
	Logger *slog.Logger
}

// DefaultOptions returns four workers, a sequential threshold of 20
// elements, and an automatically sized queue.
func DefaultOptions() Options {
	return Options{Workers: 4, Limit: 20}
}

/*
MinCapacity returns the smallest queue capacity for which sorting n
elements never deadlocks.

Every WORK or FINISH message that is buffered, or held by a goroutine
that is about to enqueue it, names a non-empty span, and all such spans
are pairwise disjoint. There can therefore be at most n of them, and
SHUTDOWN is only sent once all of them have been consumed. A smaller
queue can fill up while every worker and the coordinator are blocked
in Enqueue.
*/
func MinCapacity(n int) int {
	return n + 1
}

func (o Options) resolve(n int) (Options, error) {
	if o.Workers < 1 {
		return o, ErrNoWorkers
	}
	if o.Limit < 1 {
		return o, ErrBadLimit
	}
	need := MinCapacity(n)
	switch {
	case o.QueueCapacity == 0:
		o.QueueCapacity = need
		if c := 2*o.Workers + 2; c > o.QueueCapacity {
			o.QueueCapacity = c
		}
	case o.QueueCapacity < need:
		return o, fmt.Errorf("%w: %d slots for %d elements, need at least %d",
			ErrQueueTooSmall, o.QueueCapacity, n, need)
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o, nil
}
