// Package queue implements the unbounded MPMC send/recv queue pair that
// carries untyped packets between nodes (spec.md §4.D, §6). Senders and
// receivers are independently cloneable handles onto shared state: a
// Sender.Send fails once every receiver has gone away, and a
// Receiver.TryReceive reports Disconnected once every sender has gone away
// and the backlog is drained.
package queue

import (
	"sync"

	"github.com/flowgraph/flowgraph/packet"
)

type shared struct {
	mu        sync.Mutex
	buf       []packet.UntypedPacket
	senders   int
	receivers int
}

// New creates a connected Sender/Receiver pair backed by a single shared,
// unbounded FIFO.
func New() (Sender, Receiver) {
	s := &shared{senders: 1, receivers: 1}
	return Sender{s: s}, Receiver{s: s}
}

// Sender is a cloneable handle for pushing packets onto the queue.
type Sender struct {
	s *shared
}

// Send appends p to the queue. Returns ErrDisconnected if every receiver
// has been dropped; the send is otherwise always accepted since the queue
// is unbounded.
func (snd Sender) Send(p packet.UntypedPacket) error {
	snd.s.mu.Lock()
	defer snd.s.mu.Unlock()

	if snd.s.receivers == 0 {
		return ErrDisconnected
	}
	snd.s.buf = append(snd.s.buf, p)
	return nil
}

// Clone returns a new handle sharing the same underlying queue; the queue
// is not considered disconnected until every clone (including the
// original) has been closed.
func (snd Sender) Clone() Sender {
	snd.s.mu.Lock()
	snd.s.senders++
	snd.s.mu.Unlock()
	return Sender{s: snd.s}
}

// Close releases this handle. Once every Sender handle has been closed,
// the Receiver side observes Disconnected after draining any buffered
// packets.
func (snd Sender) Close() {
	snd.s.mu.Lock()
	snd.s.senders--
	snd.s.mu.Unlock()
}

// Receiver is a cloneable handle for draining packets from the queue.
type Receiver struct {
	s *shared
}

// TryReceive is the non-blocking poll the reader loop drives: it returns
// immediately with Received+the packet, Empty (queue has senders but
// nothing buffered right now), or Disconnected (no senders remain and the
// backlog is drained).
func (r Receiver) TryReceive() (packet.UntypedPacket, ReceiveStatus) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if len(r.s.buf) > 0 {
		p := r.s.buf[0]
		r.s.buf = r.s.buf[1:]
		return p, Received
	}
	if r.s.senders == 0 {
		return packet.UntypedPacket{}, Disconnected
	}
	return packet.UntypedPacket{}, Empty
}

// Clone returns a new handle sharing the same underlying queue.
func (r Receiver) Clone() Receiver {
	r.s.mu.Lock()
	r.s.receivers++
	r.s.mu.Unlock()
	return Receiver{s: r.s}
}

// Close releases this handle. Once every Receiver handle has been closed,
// the Sender side's Send calls start failing with ErrDisconnected.
func (r Receiver) Close() {
	r.s.mu.Lock()
	r.s.receivers--
	r.s.mu.Unlock()
}
