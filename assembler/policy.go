package assembler

import (
	"github.com/flowgraph/flowgraph/buffer"
	"github.com/flowgraph/flowgraph/packet"
	"github.com/flowgraph/flowgraph/workqueue"
)

// Policy is the pluggable synchronization strategy a ReadChannel uses to
// turn per-channel buffers into aligned input tuples (spec.md §9
// "Assembler extensibility"). VersionExact is the only policy shipped; the
// seam exists so approximate-time-window and latest-available matching can
// be added without touching the buffer or worker packages, mirroring the
// teacher's akinet.TCPParserFactory plugin-list shape in trace/run.go.
type Policy interface {
	// TryAssemble scans buf for the bound channels and, if a tuple can be
	// formed, consumes the matched entries from buf and returns them in
	// channel-bind order. ok is false if no tuple could be formed this
	// cycle; buf is left untouched in that case.
	TryAssemble(buf *buffer.PerChannelBuffer, channels []packet.ChannelID) (workqueue.Tuple, bool)
}

// VersionExact implements the version-exact match policy of spec.md §4.E:
// the smallest version present on every bound channel is consumed and
// emitted as one tuple; cleanup_before on each consume evicts older
// stragglers so they can never unblock a future match.
type VersionExact struct{}

// TryAssemble implements Policy.
func (VersionExact) TryAssemble(buf *buffer.PerChannelBuffer, channels []packet.ChannelID) (workqueue.Tuple, bool) {
	if len(channels) == 0 {
		return nil, false
	}

	first, ok := buf.Channel(channels[0])
	if !ok {
		return nil, false
	}

	var matchVersion packet.DataVersion
	matched := false
	first.Ascend(func(v packet.DataVersion, _ packet.UntypedPacket) bool {
		for _, c := range channels[1:] {
			if !buf.HasVersion(c, v) {
				return true // keep scanning ascending versions
			}
		}
		matchVersion = v
		matched = true
		return false
	})
	if !matched {
		return nil, false
	}

	tuple := make(workqueue.Tuple, len(channels))
	for i, c := range channels {
		p, ok := buf.Consume(packet.PacketBufferAddress{Channel: c, Version: matchVersion})
		if !ok {
			// Another lookup raced the consume within the same single-owner
			// reader thread; this should be unreachable given buf's
			// ownership invariant (spec.md §3), but don't fabricate data.
			return nil, false
		}
		tuple[i] = p
	}
	return tuple, true
}
