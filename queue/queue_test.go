package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowgraph/flowgraph/packet"
)

func TestSendReceiveFIFO(t *testing.T) {
	s, r := New()

	require.NoError(t, s.Send(packet.NewUntyped(1, "a")))
	require.NoError(t, s.Send(packet.NewUntyped(2, "b")))

	p, status := r.TryReceive()
	require.Equal(t, Received, status)
	assert.Equal(t, packet.DataVersion(1), p.Version)

	p, status = r.TryReceive()
	require.Equal(t, Received, status)
	assert.Equal(t, packet.DataVersion(2), p.Version)
}

func TestTryReceiveEmpty(t *testing.T) {
	_, r := New()
	_, status := r.TryReceive()
	assert.Equal(t, Empty, status)
}

func TestTryReceiveDisconnectedAfterSenderClose(t *testing.T) {
	s, r := New()
	require.NoError(t, s.Send(packet.NewUntyped(1, "a")))
	s.Close()

	// Backlog still drains before Disconnected is reported.
	_, status := r.TryReceive()
	require.Equal(t, Received, status)

	_, status = r.TryReceive()
	assert.Equal(t, Disconnected, status)
}

func TestSendFailsAfterAllReceiversClosed(t *testing.T) {
	s, r := New()
	r.Close()

	err := s.Send(packet.NewUntyped(1, "a"))
	assert.ErrorIs(t, err, ErrDisconnected)
}

func TestCloneSharesState(t *testing.T) {
	s, r := New()
	s2 := s.Clone()
	r2 := r.Clone()

	require.NoError(t, s.Send(packet.NewUntyped(1, "a")))
	require.NoError(t, s2.Send(packet.NewUntyped(2, "b")))

	p1, _ := r.TryReceive()
	p2, _ := r2.TryReceive()
	assert.ElementsMatch(t, []packet.DataVersion{1, 2}, []packet.DataVersion{p1.Version, p2.Version})

	// Closing one sender clone doesn't disconnect while the other remains open.
	s.Close()
	require.NoError(t, s2.Send(packet.NewUntyped(3, "c")))
}
