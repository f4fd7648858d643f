package worker

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/flowgraph/flowgraph/lifecycle"
	"github.com/flowgraph/flowgraph/metrics"
	"github.com/flowgraph/flowgraph/printer"
	"github.com/flowgraph/flowgraph/workerpool"
	"github.com/flowgraph/flowgraph/workqueue"
)

// DoneSender is the minimal interface a ConsumerThread needs to report
// drain completion. Satisfied by the graph runtime's done-notification bus.
type DoneSender interface {
	Send(nodeID string)
}

// ConsumerThread drives one node's ProcessorWorker (spec.md §4.G): pull an
// assembled tuple (or none, for Source), dispatch the processor under the
// thread pool, react to the outcome, and repeat until the graph terminates.
type ConsumerThread struct {
	Worker      *ProcessorWorker
	GraphStatus *lifecycle.GraphStatus
	DoneTx      DoneSender
	Pool        *workerpool.Pool

	// PullTimeout bounds how long a blocking work-queue pull waits before
	// re-checking GraphStatus. IdleSleep is the fixed sleep while the
	// worker is not Idle. Both default to 100ms (spec.md §6) if zero.
	PullTimeout time.Duration
	IdleSleep   time.Duration

	Log printer.P
}

func (ct *ConsumerThread) pullTimeout() time.Duration {
	if ct.PullTimeout <= 0 {
		return 100 * time.Millisecond
	}
	return ct.PullTimeout
}

func (ct *ConsumerThread) idleSleep() time.Duration {
	if ct.IdleSleep <= 0 {
		return 100 * time.Millisecond
	}
	return ct.IdleSleep
}

func (ct *ConsumerThread) log() printer.P {
	if ct.Log == nil {
		return printer.Stderr
	}
	return ct.Log
}

// Consume runs the consumer loop until GraphStatus reaches Terminating.
func (ct *ConsumerThread) Consume(ctx context.Context) {
	ct.log().Debugf("node %s: consumer thread registered\n", ct.Worker.NodeID)
	defer ct.log().Debugf("node %s: consumer thread deregistered\n", ct.Worker.NodeID)

	for ct.GraphStatus.Load() != lifecycle.Terminating {
		if ct.Worker.Status.Load() == lifecycle.Idle {
			ct.tick(ctx)
			continue
		}

		time.Sleep(ct.idleSleep())
		if ct.GraphStatus.Load() == lifecycle.WaitingForDataToTerminate {
			ct.DoneTx.Send(ct.Worker.NodeID)
		}
	}
}

// tick handles one Idle-state iteration: pull input (if any), dispatch the
// processor, and transition Status based on the outcome.
func (ct *ConsumerThread) tick(ctx context.Context) {
	var in workqueue.Tuple
	if ct.Worker.WorkQueue != nil {
		tuple, ok := ct.Worker.WorkQueue.PullTimeout(ct.pullTimeout())
		if !ok {
			if ct.GraphStatus.Load() == lifecycle.WaitingForDataToTerminate {
				ct.DoneTx.Send(ct.Worker.NodeID)
			}
			return
		}
		in = tuple
	}

	ct.Worker.Status.Store(lifecycle.WorkerRunning)

	var invokeErr error
	start := time.Now()
	panicked, err := ct.Pool.Run(ctx, func() {
		invokeErr = ct.Worker.invoke(ctx, in)
	})
	metrics.ObserveProcessingTime(ct.Worker.NodeID, time.Since(start))

	if err != nil {
		// Pool acquisition failed (graph shutting down its context); treat
		// the node as terminating rather than spinning forever.
		ct.Worker.Status.Store(lifecycle.WorkerTerminating)
		return
	}

	if panicked {
		ct.log().Errorf("node %s: processor panicked; resetting to idle\n", ct.Worker.NodeID)
		ct.Worker.Status.Store(lifecycle.Idle)
		return
	}

	switch {
	case invokeErr == nil:
		ct.Worker.Status.Store(lifecycle.Idle)
	case errors.Is(invokeErr, ErrEndOfStream):
		ct.Worker.Status.Store(lifecycle.WorkerTerminating)
		ct.DoneTx.Send(ct.Worker.NodeID)
	default:
		ct.log().Errorf("node %s: processor error: %v\n", ct.Worker.NodeID, invokeErr)
		ct.Worker.Status.Store(lifecycle.WorkerTerminating)
	}
}
