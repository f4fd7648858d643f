package packet

import "fmt"

// DataVersion is a totally ordered version tag. The runtime treats it as an
// opaque comparable key; callers in this codebase use it as a monotonic
// timestamp, but nothing below the processor boundary inspects its meaning
// beyond ordering.
type DataVersion uint64

// Less reports whether v sorts strictly before other.
func (v DataVersion) Less(other DataVersion) bool {
	return v < other
}

func (v DataVersion) String() string {
	return fmt.Sprintf("v%d", uint64(v))
}

// PacketBufferAddress is the hashable identity of a packet within the
// runtime: the channel it arrived on plus its version.
type PacketBufferAddress struct {
	Channel ChannelID
	Version DataVersion
}

func (a PacketBufferAddress) String() string {
	return fmt.Sprintf("%s@%s", a.Channel.String(), a.Version.String())
}
