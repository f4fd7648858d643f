package graph

import "github.com/google/uuid"

// NodeID is the string identity the done-notification quorum and metrics
// labels key on (spec.md §3, §6). Graphs built by hand should use short
// stable names; NewNodeID is for programmatically constructed graphs that
// need a unique name with no external meaning.
type NodeID string

// NewNodeID mints a NodeID of the form "<prefix>-<uuid>", or a bare
// "<uuid>" when prefix is empty.
func NewNodeID(prefix string) NodeID {
	if prefix == "" {
		return NodeID(uuid.NewString())
	}
	return NodeID(prefix + "-" + uuid.NewString())
}

func (n NodeID) String() string {
	return string(n)
}
