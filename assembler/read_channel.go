// Package assembler implements the read-channel assembler (spec.md §4.E):
// it drains a node's inbound recv queues into a per-channel buffer, matches
// packets across channels by version using a pluggable Policy, and pushes
// aligned input tuples to the node's bounded work queue.
package assembler

import (
	"github.com/pkg/errors"

	"github.com/flowgraph/flowgraph/buffer"
	"github.com/flowgraph/flowgraph/packet"
	"github.com/flowgraph/flowgraph/printer"
	"github.com/flowgraph/flowgraph/queue"
	"github.com/flowgraph/flowgraph/workqueue"
)

// DoneSender is the minimal interface a ReadChannel needs to report a drain
// tick. Satisfied by the graph runtime's done-notification bus.
type DoneSender interface {
	Send(nodeID string)
}

// DrainState reports whether the graph is currently draining, i.e.
// lifecycle.GraphStatus == WaitingForDataToTerminate. Declared narrowly so
// this package doesn't need to import lifecycle's full atomic type.
type DrainState interface {
	Draining() bool
}

// ReadChannel is bound at construction to an ordered list of input
// channels. It owns the per-channel buffer exclusively (spec.md §3): only
// the reader thread driving Read ever touches it.
type ReadChannel struct {
	channels  []packet.ChannelID
	receivers map[packet.ChannelID]queue.Receiver
	buf       *buffer.PerChannelBuffer
	policy    Policy
	workQueue *workqueue.Queue
	log       printer.P
}

// New constructs a ReadChannel bound to channels in bind order, with a
// per-channel buffer capped at maxSize versions and a bounded work queue of
// the given capacity. Use AddReceiver to attach the recv queue for each
// channel before calling Read.
func New(channels []packet.ChannelID, maxSize, workQueueCapacity int, policy Policy) *ReadChannel {
	if policy == nil {
		policy = VersionExact{}
	}
	buf := buffer.NewPerChannelBuffer(maxSize)
	for _, c := range channels {
		// CreateChannel fails only for a channel id listed twice; the graph
		// builder does not check for repeats, and the error is ignored here,
		// so a repeated id shares one buffer.
		_ = buf.CreateChannel(c)
	}
	return &ReadChannel{
		channels:  channels,
		receivers: make(map[packet.ChannelID]queue.Receiver, len(channels)),
		buf:       buf,
		policy:    policy,
		workQueue: workqueue.New(workQueueCapacity),
		log:       printer.Stderr,
	}
}

// AddReceiver attaches the recv queue handle for channel c. Must be called
// once per bound channel before the reader thread starts.
func (rc *ReadChannel) AddReceiver(c packet.ChannelID, r queue.Receiver) {
	rc.receivers[c] = r
}

// WorkQueue exposes the bounded tuple queue the consumer thread pulls from.
func (rc *ReadChannel) WorkQueue() *workqueue.Queue {
	return rc.workQueue
}

// Read runs one cycle of the reader loop (spec.md §4.E): non-blockingly
// drain every recv queue into the buffer, then attempt assembly. On success
// the assembled tuple is pushed to the work queue (which may block under
// backpressure). If the graph is draining and no tuple could be assembled
// this cycle (the recv queues having just been emptied), a done
// notification is sent for nodeID.
func (rc *ReadChannel) Read(nodeID string, drain DrainState, doneTx DoneSender) error {
	for _, c := range rc.channels {
		recv, ok := rc.receivers[c]
		if !ok {
			return errors.Errorf("assembler: no receiver attached for channel %q", c)
		}

	drainLoop:
		for {
			p, status := recv.TryReceive()
			switch status {
			case queue.Received:
				if err := rc.buf.Insert(c, p); err != nil {
					if errors.Is(err, buffer.ErrDuplicateVersion) {
						rc.log.Warningf("node %s: dropping duplicate version %s on channel %s\n", nodeID, p.Version, c)
						continue
					}
					return errors.Wrapf(err, "node %s: channel %s", nodeID, c)
				}
			case queue.Empty, queue.Disconnected:
				break drainLoop
			}
		}
	}

	tuple, ok := rc.policy.TryAssemble(rc.buf, rc.channels)
	if ok {
		rc.workQueue.Push(tuple)
		return nil
	}

	if drain != nil && drain.Draining() {
		doneTx.Send(nodeID)
	}
	return nil
}

// Stop releases every receiver handle attached to this ReadChannel. The
// underlying buffer is simply abandoned; there is no persistence across
// restarts (spec.md §1 Non-goals).
func (rc *ReadChannel) Stop() {
	for _, r := range rc.receivers {
		r.Close()
	}
}
