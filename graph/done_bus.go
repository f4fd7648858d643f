package graph

import "sync"

// doneBus is the runtime's done-notification collector (spec.md §4.H): an
// MPMC of node ids reporting drain completion. Readers and consumers send
// idempotently -- the same node id may report more than once during drain
// (spec.md §9 "Done notifications") -- so the bus counts distinct ids
// rather than raw sends, and fires onQuorum exactly once.
type doneBus struct {
	mu       sync.Mutex
	reported map[string]struct{}
	total    int
	fired    bool
	onQuorum func()
}

func newDoneBus(total int, onQuorum func()) *doneBus {
	return &doneBus{
		reported: make(map[string]struct{}, total),
		total:    total,
		onQuorum: onQuorum,
	}
}

// Send records nodeID as having reported done at least once. Once every
// distinct node in the graph has reported, onQuorum fires (once).
func (b *doneBus) Send(nodeID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.reported[nodeID] = struct{}{}
	if !b.fired && len(b.reported) >= b.total {
		b.fired = true
		b.onQuorum()
	}
}

// count reports how many distinct nodes have reported done so far.
// Exposed for tests.
func (b *doneBus) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.reported)
}
