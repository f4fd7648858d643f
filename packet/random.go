package packet

import "github.com/google/uuid"

// NewRandomChannelID mints a ChannelID suitable for programmatically
// constructed graphs (e.g. demo wiring, tests) where no stable external
// name is needed.
func NewRandomChannelID(prefix string) ChannelID {
	name := uuid.NewString()
	if prefix != "" {
		name = prefix + "-" + name
	}
	return NewChannelID(name)
}
