// Package queue provides the ingestion buffer between the feed consumers and
// the persistence worker.
package queue

import (
	"sync"

	v1 "github.com/switch527/coin-base/internal/domain/record/v1"
)

// Queue is a concurrency-safe FIFO of records. Many feed consumers push,
// exactly one persistence worker pops. Ordering is guaranteed per producer
// only; pushes from different producers interleave arbitrarily.
type Queue struct {
	mu    sync.Mutex
	items []v1.Record
}

// New creates an empty queue.
func New() *Queue {
	return &Queue{}
}

// Push appends a record to the tail of the queue.
func (q *Queue) Push(rec v1.Record) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append(q.items, rec)
}

// TryPop removes and returns the head of the queue without blocking.
// The second return value is false when the queue is empty. Popping is the
// point of no return for a record: ownership transfers to the caller.
func (q *Queue) TryPop() (v1.Record, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.items) == 0 {
		return nil, false
	}

	rec := q.items[0]
	q.items[0] = nil
	q.items = q.items[1:]

	// reclaim the backing array once fully drained
	if len(q.items) == 0 {
		q.items = nil
	}

	return rec, true
}

// Len returns the number of buffered records.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
