package buffer

import (
	"github.com/flowgraph/flowgraph/packet"
)

// PerChannelBuffer maps ChannelID to an independently ordered
// FixedSizeOrdered buffer. A channel must be explicitly created before any
// insert; max_size is propagated to every per-channel buffer it creates
// (spec.md §9 calls out the teacher's failure to do this as a bug — fixed
// here).
type PerChannelBuffer struct {
	maxSize  int
	channels map[packet.ChannelID]*FixedSizeOrdered
}

// NewPerChannelBuffer constructs an empty multi-channel buffer; maxSize is
// the per-channel capacity applied to every channel created through it.
func NewPerChannelBuffer(maxSize int) *PerChannelBuffer {
	return &PerChannelBuffer{
		maxSize:  maxSize,
		channels: make(map[packet.ChannelID]*FixedSizeOrdered),
	}
}

// CreateChannel registers an empty buffer for c. Returns ErrDuplicateChannel
// if c was already created.
func (m *PerChannelBuffer) CreateChannel(c packet.ChannelID) error {
	if _, ok := m.channels[c]; ok {
		return ErrDuplicateChannel
	}
	m.channels[c] = NewFixedSizeOrdered(m.maxSize)
	return nil
}

// Insert inserts p into channel c's buffer. Returns ErrMissingChannel if c
// was never created, or ErrDuplicateVersion if has_version(c, p.Version)
// already holds.
func (m *PerChannelBuffer) Insert(c packet.ChannelID, p packet.UntypedPacket) error {
	buf, ok := m.channels[c]
	if !ok {
		return ErrMissingChannel
	}
	return buf.Insert(p.Version, p)
}

// Consume removes the entry at addr, then cleans up every strictly older
// version on the same channel, and returns the removed packet (if any).
// The channel lookup happens exactly once (spec.md §9 flags the teacher's
// double lookup as worth calling out explicitly).
func (m *PerChannelBuffer) Consume(addr packet.PacketBufferAddress) (packet.UntypedPacket, bool) {
	buf, ok := m.channels[addr.Channel]
	if !ok {
		return packet.UntypedPacket{}, false
	}
	p, removed := buf.Remove(addr.Version)
	buf.CleanupBefore(addr.Version)
	return p, removed
}

// Get performs a point read at addr without mutating any buffer.
func (m *PerChannelBuffer) Get(addr packet.PacketBufferAddress) (packet.UntypedPacket, bool) {
	buf, ok := m.channels[addr.Channel]
	if !ok {
		return packet.UntypedPacket{}, false
	}
	return buf.Get(addr.Version)
}

// HasVersion reports whether c exists and its buffer contains v.
func (m *PerChannelBuffer) HasVersion(c packet.ChannelID, v packet.DataVersion) bool {
	buf, ok := m.channels[c]
	if !ok {
		return false
	}
	return buf.ContainsKey(v)
}

// AvailableChannels returns a snapshot of known channel IDs; order is
// unspecified.
func (m *PerChannelBuffer) AvailableChannels() []packet.ChannelID {
	out := make([]packet.ChannelID, 0, len(m.channels))
	for c := range m.channels {
		out = append(out, c)
	}
	return out
}

// Channel exposes the underlying single-channel buffer for c, so the
// assembler can scan versions in order without going through the
// (channel, version) address API for every candidate.
func (m *PerChannelBuffer) Channel(c packet.ChannelID) (*FixedSizeOrdered, bool) {
	buf, ok := m.channels[c]
	return buf, ok
}
