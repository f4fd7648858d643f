package graph

import "github.com/pkg/errors"

var (
	// ErrDuplicateNode is returned by Builder.Build if two nodes were added
	// under the same NodeID.
	ErrDuplicateNode = errors.New("graph: duplicate node id")
	// ErrUnboundChannel is returned by Builder.Build if a node declares an
	// input channel that no other node produces.
	ErrUnboundChannel = errors.New("graph: input channel has no producer")
	// ErrNoNodes is returned by Builder.Build for an empty graph.
	ErrNoNodes = errors.New("graph: no nodes registered")
)
