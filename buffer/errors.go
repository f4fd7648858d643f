package buffer

import "github.com/pkg/errors"

// Sentinel error kinds for the buffer taxonomy (spec.md §7). Callers that
// need to branch on kind should use errors.Is/errors.As against these.
var (
	// ErrDuplicateVersion: the same (channel, version) was inserted twice.
	// Recoverable at the reader; the original packet is left intact.
	ErrDuplicateVersion = errors.New("buffer: version already present")

	// ErrDuplicateChannel: create_channel called twice for the same channel.
	ErrDuplicateChannel = errors.New("buffer: channel already exists")

	// ErrMissingChannel: Insert referenced a channel that was never created
	// (Consume and Get report a missing channel as ok=false instead).
	// Internal bug. ReadChannel.Read returns it to the graph runtime, which
	// logs it; the node keeps running.
	ErrMissingChannel = errors.New("buffer: channel not created")
)
