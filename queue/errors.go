package queue

import "github.com/pkg/errors"

// ErrDisconnected is returned by Send when every receiver has been dropped.
var ErrDisconnected = errors.New("queue: all receivers disconnected")

// ReceiveStatus reports the outcome of a non-blocking TryReceive.
type ReceiveStatus int

const (
	// Received means Packet holds a valid value.
	Received ReceiveStatus = iota
	// Empty means the queue had nothing buffered right now; not an error,
	// it just drives the reader's poll loop.
	Empty
	// Disconnected means every sender has closed and the queue is drained;
	// treated as a graceful upstream-closed signal.
	Disconnected
)
