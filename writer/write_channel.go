// Package writer implements the fan-out write side of a node (spec.md
// §4.F): each output channel may be bound to any number of downstream send
// queues, and a single Write call to a congested or disconnected consumer
// must not stop delivery to the others.
package writer

import (
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/flowgraph/flowgraph/packet"
	"github.com/flowgraph/flowgraph/queue"
)

// WriteChannel holds, per output channel, the set of send queue handles
// that channel fans out to. The send-queue sets are fixed at graph-build
// time, so Write needs no locking of its own.
type WriteChannel struct {
	senders map[packet.ChannelID][]queue.Sender
}

// New constructs an empty WriteChannel; use AddSender to bind downstream
// queues before the owning node starts running.
func New() *WriteChannel {
	return &WriteChannel{senders: make(map[packet.ChannelID][]queue.Sender)}
}

// AddSender attaches a downstream send queue handle to output channel c.
func (w *WriteChannel) AddSender(c packet.ChannelID, s queue.Sender) {
	w.senders[c] = append(w.senders[c], s)
}

// Write fans p out to every send queue bound to c. A disconnected
// downstream is reported but does not stop delivery to the rest of the
// fan-out; the union of any send errors is returned via go-multierror. A
// channel with no bound consumers is a silent no-op: an output channel
// declared but never wired is not itself an error.
func (w *WriteChannel) Write(c packet.ChannelID, p packet.UntypedPacket) error {
	senders, ok := w.senders[c]
	if !ok {
		return nil
	}

	var result *multierror.Error
	for _, s := range senders {
		if err := s.Send(p); err != nil {
			result = multierror.Append(result, errors.Wrapf(err, "channel %s", c))
		}
	}
	return result.ErrorOrNil()
}
