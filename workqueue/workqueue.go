// Package workqueue implements the bounded, per-node MPSC queue of
// assembled input tuples that sits between a ReadChannel assembler and its
// ConsumerThread (spec.md §4.E, §5). Capacity is the backpressure bound:
// Push blocks once the queue is full, and that block is the suspension
// point that ultimately slows upstream senders.
package workqueue

import (
	"time"

	"github.com/flowgraph/flowgraph/packet"
)

// Tuple is an input assembled across every bound channel of a node, one
// packet per channel, in bind order.
type Tuple []packet.UntypedPacket

// Queue is a bounded FIFO of assembled tuples. The zero value is not
// usable; construct with New.
type Queue struct {
	ch chan Tuple
}

// New constructs a queue with room for capacity tuples before Push blocks.
func New(capacity int) *Queue {
	if capacity <= 0 {
		capacity = 1
	}
	return &Queue{ch: make(chan Tuple, capacity)}
}

// Push enqueues tuple, blocking while the queue is full. This is the
// reader-loop backpressure suspension point described in spec.md §5.
func (q *Queue) Push(tuple Tuple) {
	q.ch <- tuple
}

// PullTimeout waits up to d for a tuple. Returns ok=false on timeout, which
// the consumer thread uses purely to re-check GraphStatus (spec.md §4.G).
func (q *Queue) PullTimeout(d time.Duration) (Tuple, bool) {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case t := <-q.ch:
		return t, true
	case <-timer.C:
		return nil, false
	}
}

// Len reports the number of tuples currently buffered. Intended for tests
// and diagnostics only; racy against concurrent Push/Pull by design.
func (q *Queue) Len() int {
	return len(q.ch)
}
