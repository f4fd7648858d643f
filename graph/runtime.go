// Package graph is the runtime (spec.md §4.H): it owns the GraphStatus
// lifecycle, spawns a reader thread (where applicable) and a consumer
// thread per node, routes done notifications from both into a quorum, and
// coordinates orderly shutdown.
package graph

import (
	"context"
	"sync"
	"time"

	"github.com/flowgraph/flowgraph/assembler"
	"github.com/flowgraph/flowgraph/lifecycle"
	"github.com/flowgraph/flowgraph/printer"
	"github.com/flowgraph/flowgraph/runtimeconfig"
	"github.com/flowgraph/flowgraph/worker"
	"github.com/flowgraph/flowgraph/workerpool"
)

type registeredNode struct {
	id          NodeID
	readChannel *assembler.ReadChannel // nil for Source nodes
	worker      *worker.ProcessorWorker
}

// Graph is a wired, runnable dataflow graph. Construct with Builder.Build;
// a Graph's wiring cannot change after construction (spec.md §1 Non-goal:
// no dynamic reconfiguration after start).
type Graph struct {
	status *lifecycle.GraphStatus
	cfg    runtimeconfig.Config
	nodes  map[NodeID]*registeredNode
	bus    *doneBus
	log    printer.P

	pool   *workerpool.Pool
	wg     sync.WaitGroup
	cancel context.CancelFunc
}

// drainGuard adapts Graph's GraphStatus to assembler.DrainState without
// exposing the lifecycle package to every caller.
type drainGuard struct{ status *lifecycle.GraphStatus }

func (d drainGuard) Draining() bool {
	return d.status.Load() == lifecycle.WaitingForDataToTerminate
}

// Status reports the current GraphPhase.
func (g *Graph) Status() lifecycle.GraphPhase {
	return g.status.Load()
}

// Run spawns the reader and consumer threads for every node and returns
// immediately; call Wait to block until the graph has fully terminated.
func (g *Graph) Run(ctx context.Context) {
	runCtx, cancel := context.WithCancel(ctx)
	g.cancel = cancel
	g.pool = workerpool.New(g.cfg.PoolSize)

	drain := drainGuard{status: g.status}

	for _, n := range g.nodes {
		n := n

		if n.readChannel != nil {
			g.wg.Add(1)
			go func() {
				defer g.wg.Done()
				for g.status.Load() != lifecycle.Terminating {
					if err := n.readChannel.Read(string(n.id), drain, g.bus); err != nil {
						g.log.Errorf("node %s: reader error: %v\n", n.id, err)
					}
				}
				n.readChannel.Stop()
			}()
		}

		g.wg.Add(1)
		go func() {
			defer g.wg.Done()
			ct := &worker.ConsumerThread{
				Worker:      n.worker,
				GraphStatus: g.status,
				DoneTx:      g.bus,
				Pool:        g.pool,
				PullTimeout: g.cfg.PullTimeout,
				IdleSleep:   g.cfg.IdleSleep,
				Log:         g.log,
			}
			ct.Consume(runCtx)
		}()
	}
}

// Stop begins the shutdown protocol (spec.md §4.H): GraphStatus moves to
// WaitingForDataToTerminate, in-flight data continues draining, and once
// every node has reported done the runtime advances to Terminating on its
// own (via the doneBus quorum callback).
func (g *Graph) Stop() {
	g.status.Store(lifecycle.WaitingForDataToTerminate)
}

// Wait blocks until every reader and consumer thread has exited, which only
// happens once GraphStatus reaches Terminating.
func (g *Graph) Wait() {
	g.wg.Wait()
	if g.cancel != nil {
		g.cancel()
	}
}

// WaitTimeout is Wait bounded by a timeout; returns false if the graph had
// not fully terminated in time.
func (g *Graph) WaitTimeout(d time.Duration) bool {
	done := make(chan struct{})
	go func() {
		g.Wait()
		close(done)
	}()
	select {
	case <-done:
		return true
	case <-time.After(d):
		return false
	}
}
