// Package worker implements the node-level consumer loop (spec.md §4.G):
// ProcessorWorker holds the three processor variants and the node's
// lifecycle status, and ConsumerThread drains the work queue, invokes the
// processor under a mutex, records timing, and reacts to termination
// signals.
package worker

import (
	"context"

	"github.com/pkg/errors"

	"github.com/flowgraph/flowgraph/writer"
	"github.com/flowgraph/flowgraph/workqueue"
)

// ErrEndOfStream is the sentinel a processor returns to request clean
// termination of its own node (spec.md §7).
var ErrEndOfStream = errors.New("worker: end of stream")

// Kind selects which processor variant a ProcessorWorker invokes.
type Kind int

const (
	// Source processors take no input and produce outputs from external
	// state (e.g. a ticking clock, a file reader).
	Source Kind = iota
	// Transform processors take an aligned input tuple and a write channel.
	Transform
	// Terminal processors take an aligned input tuple and produce no
	// outputs.
	Terminal
)

func (k Kind) String() string {
	switch k {
	case Source:
		return "Source"
	case Transform:
		return "Transform"
	case Terminal:
		return "Terminal"
	default:
		return "Unknown"
	}
}

// SourceProcessor produces packets from external state; called once per
// idle tick with no input.
type SourceProcessor interface {
	Handle(ctx context.Context, w *writer.WriteChannel) error
}

// TransformProcessor consumes one aligned input tuple and may produce
// output packets.
type TransformProcessor interface {
	Handle(ctx context.Context, in workqueue.Tuple, w *writer.WriteChannel) error
}

// TerminalProcessor consumes one aligned input tuple and produces no
// output.
type TerminalProcessor interface {
	Handle(ctx context.Context, in workqueue.Tuple) error
}
