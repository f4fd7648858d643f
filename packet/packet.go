package packet

import "github.com/pkg/errors"

// ErrPayloadType is returned by As when the packet's payload does not match
// the type the processor asked for. Processors decide what to do with it;
// the runtime never inspects the payload itself.
var ErrPayloadType = errors.New("packet: payload does not match requested type")

// UntypedPacket is the wire-level unit the runtime moves around: a version
// tag plus an opaque payload. The payload may be downcast by the processor
// that owns the channel; the runtime never inspects it.
type UntypedPacket struct {
	Version DataVersion
	Payload any
}

// NewUntyped wraps an arbitrary payload with a version tag.
func NewUntyped(v DataVersion, payload any) UntypedPacket {
	return UntypedPacket{Version: v, Payload: payload}
}

// Packet is the typed view a processor is actually handed. It is
// bit-for-bit equivalent to UntypedPacket with a statically known payload
// type.
type Packet[T any] struct {
	Version DataVersion
	Value   T
}

// As attempts to downcast an UntypedPacket into a typed Packet[T]. Returns
// ErrPayloadType (wrapped with the channel's reported version) if the
// dynamic type does not match.
func As[T any](p UntypedPacket) (Packet[T], error) {
	v, ok := p.Payload.(T)
	if !ok {
		return Packet[T]{}, errors.Wrapf(ErrPayloadType, "version %s", p.Version)
	}
	return Packet[T]{Version: p.Version, Value: v}, nil
}

// Untype converts a typed packet back into its wire representation for
// insertion into a buffer or queue.
func Untype[T any](p Packet[T]) UntypedPacket {
	return UntypedPacket{Version: p.Version, Payload: p.Value}
}
