/*
Package qsort sorts a []float64 in place with a fixed pool of worker
goroutines that communicate only through one bounded message queue.

The coordinator seeds the queue with WORK for the whole buffer. A worker
that dequeues WORK either sorts the span with insertion sort and reports
FINISH, or partitions it and enqueues WORK for both halves. The
coordinator consumes FINISH messages until their widths add up to the
length of the buffer, relaying every other message it happens to
dequeue, and then sends a single SHUTDOWN that the workers pass on to
each other before exiting.

Spans named by in-flight WORK messages never overlap, so workers mutate
the buffer without any locking beyond the queue itself.
*/
package qsort

import (
	"log/slog"
	"sync"

	"github.com/exascience/msgsort/internal"
	"github.com/exascience/msgsort/queue"
)

// Stats describes a completed Sort.
type Stats struct {
	Workers        []WorkerStats // per worker, indexed by worker id
	Completed      int           // elements accounted for by FINISH messages
	Finished       int           // FINISH messages consumed by the coordinator
	Forwarded      int           // other messages relayed by the coordinator
	QueueCapacity  int
	QueueHighWater int
}

// Total sums the statistics of all workers.
func (s Stats) Total() (total WorkerStats) {
	for _, w := range s.Workers {
		total.add(w)
	}
	return
}

/*
Sort sorts data in non-descending order, in place.

Sort returns an error without starting any goroutine if opts is
invalid. If a worker panics, the queue is closed, all workers are
joined, and Sort panics with the left-most recovered panic value,
annotated with a stack trace.
*/
func Sort(data []float64, opts Options) (stats Stats, err error) {
	opts, err = opts.resolve(len(data))
	if err != nil {
		return
	}
	p := startPool(data, opts)
	stats = p.coordinate(len(data))
	p.join(&stats)
	return
}

// A pool is a running set of workers sharing one queue with the
// coordinator.
type pool struct {
	q       *queue.Queue
	workers []*worker
	wg      sync.WaitGroup
	log     *slog.Logger
}

func startPool(data []float64, opts Options) *pool {
	p := &pool{
		q:       queue.New(opts.QueueCapacity),
		workers: make([]*worker, opts.Workers),
		log:     opts.Logger,
	}
	var spans *ledger
	if opts.CheckSpans {
		spans = newLedger()
	}
	for i := range p.workers {
		w := &worker{
			id:     i,
			data:   data,
			limit:  opts.Limit,
			q:      p.q,
			ledger: spans,
			log:    p.log,
		}
		p.workers[i] = w
		p.wg.Add(1)
		go func() {
			defer func() {
				if r := recover(); r != nil {
					w.panic = internal.WrapPanic(r, w.id)
					p.q.Close()
				}
				p.wg.Done()
			}()
			w.run()
		}()
	}
	p.log.Debug("msgsort: workers started",
		"workers", opts.Workers, "capacity", opts.QueueCapacity, "limit", opts.Limit, "length", len(data))
	return p
}

// coordinate seeds WORK for [0, n) and consumes FINISH messages until n
// elements are accounted for, or the queue is closed.
func (p *pool) coordinate(n int) (stats Stats) {
	if n > 0 {
		p.q.Enqueue(queue.Work{Start: 0, End: n})
	}
	for stats.Completed < n {
		m, ok := p.q.Dequeue()
		if !ok {
			break
		}
		if f, isFinish := m.(queue.Finish); isFinish {
			stats.Completed += f.Len()
			stats.Finished++
			continue
		}
		stats.Forwarded++
		p.q.Enqueue(m)
	}
	return
}

// join sends SHUTDOWN, waits for every worker, and rethrows the first
// worker panic, if any.
func (p *pool) join(stats *Stats) {
	p.q.Enqueue(queue.Shutdown{})
	p.wg.Wait()
	p.log.Debug("msgsort: workers joined", "finished", stats.Finished, "forwarded", stats.Forwarded)

	for _, w := range p.workers {
		if w.panic != nil {
			panic(w.panic)
		}
	}
	stats.Workers = make([]WorkerStats, len(p.workers))
	for i, w := range p.workers {
		stats.Workers[i] = w.stats
	}
	stats.QueueCapacity = p.q.Cap()
	stats.QueueHighWater = p.q.HighWater()
}
