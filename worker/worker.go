package worker

import (
	"context"
	"sync"

	"github.com/flowgraph/flowgraph/lifecycle"
	"github.com/flowgraph/flowgraph/workqueue"
	"github.com/flowgraph/flowgraph/writer"
)

// ProcessorWorker bundles one node's processor variant with its queues and
// lifecycle status. Processor state is shared between the consumer loop
// and the thread-pool task that invokes it; mu gates mutation to at most
// one in-flight invocation (spec.md §3, §9 "Processor mutex").
type ProcessorWorker struct {
	NodeID string
	Kind   Kind

	source    SourceProcessor
	transform TransformProcessor
	terminal  TerminalProcessor

	// WorkQueue is nil for Source workers, which have no input.
	WorkQueue *workqueue.Queue
	// WriteChannel is nil for Terminal workers, which produce no output.
	WriteChannel *writer.WriteChannel

	Status *lifecycle.WorkerStatus

	mu sync.Mutex
}

// NewSource constructs a Source-variant worker. workQueue is always nil;
// wc may be nil only if the source genuinely has no declared outputs.
func NewSource(nodeID string, p SourceProcessor, wc *writer.WriteChannel) *ProcessorWorker {
	return &ProcessorWorker{
		NodeID:       nodeID,
		Kind:         Source,
		source:       p,
		WriteChannel: wc,
		Status:       lifecycle.NewWorkerStatus(),
	}
}

// NewTransform constructs a Transform-variant worker.
func NewTransform(nodeID string, p TransformProcessor, wq *workqueue.Queue, wc *writer.WriteChannel) *ProcessorWorker {
	return &ProcessorWorker{
		NodeID:       nodeID,
		Kind:         Transform,
		transform:    p,
		WorkQueue:    wq,
		WriteChannel: wc,
		Status:       lifecycle.NewWorkerStatus(),
	}
}

// NewTerminal constructs a Terminal-variant worker.
func NewTerminal(nodeID string, p TerminalProcessor, wq *workqueue.Queue) *ProcessorWorker {
	return &ProcessorWorker{
		NodeID:    nodeID,
		Kind:      Terminal,
		terminal:  p,
		WorkQueue: wq,
		Status:    lifecycle.NewWorkerStatus(),
	}
}

// invoke runs the bound processor variant under the processor mutex. Only
// one invocation per worker is ever in flight, enforced by the caller never
// dispatching a second task before this one returns (ConsumerThread only
// dispatches while Status == Idle).
func (w *ProcessorWorker) invoke(ctx context.Context, in workqueue.Tuple) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch w.Kind {
	case Source:
		return w.source.Handle(ctx, w.WriteChannel)
	case Transform:
		return w.transform.Handle(ctx, in, w.WriteChannel)
	case Terminal:
		return w.terminal.Handle(ctx, in)
	default:
		return nil
	}
}
