// Package lifecycle holds the two atomic status signals that drive every
// loop in the runtime (spec.md §3, §5): GraphStatus (one per graph) and
// WorkerStatus (one per node). Both are monotonic, single-variable signals
// reloaded with Relaxed ordering -- no other memory is ordered by them, so
// a plain atomic load/store is sufficient. An extension that adds a
// cross-atomic invariant must upgrade to Acquire/Release (spec.md §9).
package lifecycle

import "sync/atomic"

// GraphPhase is the lifecycle state of an entire graph.
type GraphPhase int32

const (
	// Running is the initial state: new input is expected and processed.
	Running GraphPhase = iota
	// WaitingForDataToTerminate is the drain state: no new external input
	// is expected, but in-flight data is still processed.
	WaitingForDataToTerminate
	// Terminating is absorbing: every node has acknowledged done.
	Terminating
)

func (p GraphPhase) String() string {
	switch p {
	case Running:
		return "Running"
	case WaitingForDataToTerminate:
		return "WaitingForDataToTerminate"
	case Terminating:
		return "Terminating"
	default:
		return "Unknown"
	}
}

// GraphStatus is an atomic GraphPhase. Transitions are monotonic
// (Running -> WaitingForDataToTerminate -> Terminating) but this type does
// not enforce that itself; callers drive the transition exactly once each.
type GraphStatus struct {
	v atomic.Int32
}

// NewGraphStatus returns a status initialized to Running.
func NewGraphStatus() *GraphStatus {
	return &GraphStatus{}
}

// Load reads the current phase.
func (s *GraphStatus) Load() GraphPhase {
	return GraphPhase(s.v.Load())
}

// Store sets the current phase.
func (s *GraphStatus) Store(p GraphPhase) {
	s.v.Store(int32(p))
}

// WorkerPhase is the lifecycle state of a single node's worker.
type WorkerPhase int32

const (
	// Idle: no task in flight; the consumer loop may dispatch one.
	Idle WorkerPhase = iota
	// WorkerRunning: a task is in flight under the thread pool.
	WorkerRunning
	// WorkerTerminating: end-of-stream or a fatal error ended this node's
	// work. Absorbing.
	WorkerTerminating
)

func (p WorkerPhase) String() string {
	switch p {
	case Idle:
		return "Idle"
	case WorkerRunning:
		return "Running"
	case WorkerTerminating:
		return "Terminating"
	default:
		return "Unknown"
	}
}

// WorkerStatus is an atomic WorkerPhase, one per node.
type WorkerStatus struct {
	v atomic.Int32
}

// NewWorkerStatus returns a status initialized to Idle.
func NewWorkerStatus() *WorkerStatus {
	return &WorkerStatus{}
}

// Load reads the current phase.
func (s *WorkerStatus) Load() WorkerPhase {
	return WorkerPhase(s.v.Load())
}

// Store sets the current phase.
func (s *WorkerStatus) Store(p WorkerPhase) {
	s.v.Store(int32(p))
}
