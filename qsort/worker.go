package qsort

import (
	"log/slog"

	"github.com/exascience/msgsort/queue"
	"github.com/exascience/msgsort/sort"
)

// WorkerStats counts what one worker did during a Sort.
type WorkerStats struct {
	Work       int // WORK messages handled
	Partitions int // spans split in two
	Leaves     int // spans sorted sequentially
	Forwarded  int // FINISH messages relayed back to the queue
	Shutdowns  int // SHUTDOWN messages observed
}

func (s *WorkerStats) add(t WorkerStats) {
	s.Work += t.Work
	s.Partitions += t.Partitions
	s.Leaves += t.Leaves
	s.Forwarded += t.Forwarded
	s.Shutdowns += t.Shutdowns
}

type worker struct {
	id     int
	data   []float64
	limit  int
	q      *queue.Queue
	ledger *ledger
	log    *slog.Logger

	stats WorkerStats
	panic interface{}
}

// run receives messages until it sees SHUTDOWN or the queue is closed.
func (w *worker) run() {
	for {
		m, ok := w.q.Dequeue()
		if !ok {
			w.log.Debug("msgsort: worker stopped by closed queue", "worker_id", w.id)
			return
		}
		switch m := m.(type) {
		case queue.Shutdown:
			w.stats.Shutdowns++
			w.q.Enqueue(m)
			w.log.Debug("msgsort: worker shut down", "worker_id", w.id,
				"work", w.stats.Work, "leaves", w.stats.Leaves)
			return
		case queue.Finish:
			// only the coordinator accounts for FINISH
			w.stats.Forwarded++
			w.q.Enqueue(m)
		case queue.Work:
			w.sortSpan(m)
		}
	}
}

func (w *worker) sortSpan(m queue.Work) {
	w.stats.Work++
	s := span{w.data, m.Start, m.End}
	if w.ledger != nil {
		w.ledger.acquire(s)
	}

	if m.Len() <= w.limit {
		sort.InsertionSort(s.elems())
		w.releaseSpan(s)
		w.stats.Leaves++
		w.q.Enqueue(queue.Finish{Start: m.Start, End: m.End})
		return
	}

	middle := m.Start + sort.Partition(s.elems())
	w.releaseSpan(s)
	w.stats.Partitions++
	w.q.Enqueue(queue.Work{Start: m.Start, End: middle})
	w.q.Enqueue(queue.Work{Start: middle, End: m.End})
}

func (w *worker) releaseSpan(s span) {
	if w.ledger != nil {
		w.ledger.release(s)
	}
}
