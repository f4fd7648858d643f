package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowgraph/flowgraph/packet"
)

func TestMultiInsertRequiresChannel(t *testing.T) {
	// S4 companion: insert before create_channel is a distinct error.
	m := NewPerChannelBuffer(20)
	ch := packet.NewChannelID("a")

	err := m.Insert(ch, packet.NewUntyped(1, "x"))
	require.ErrorIs(t, err, ErrMissingChannel)
}

func TestMultiDoubleCreateRejected(t *testing.T) {
	// S4
	m := NewPerChannelBuffer(20)
	ch := packet.NewChannelID("ch0")

	require.NoError(t, m.CreateChannel(ch))
	err := m.CreateChannel(ch)
	require.ErrorIs(t, err, ErrDuplicateChannel)
}

func TestMultiHasVersionInvariant(t *testing.T) {
	m := NewPerChannelBuffer(20)
	ch := packet.NewChannelID("a")

	assert.False(t, m.HasVersion(ch, 1), "unknown channel has no versions")

	require.NoError(t, m.CreateChannel(ch))
	assert.False(t, m.HasVersion(ch, 1))

	require.NoError(t, m.Insert(ch, packet.NewUntyped(1, "x")))
	assert.True(t, m.HasVersion(ch, 1))
}

func TestMultiConsumeCleansUpOlderVersions(t *testing.T) {
	m := NewPerChannelBuffer(20)
	ch := packet.NewChannelID("a")
	require.NoError(t, m.CreateChannel(ch))
	for _, v := range []packet.DataVersion{1, 2, 3, 4, 5} {
		require.NoError(t, m.Insert(ch, packet.NewUntyped(v, int(v))))
	}

	addr := packet.PacketBufferAddress{Channel: ch, Version: 3}
	got, ok := m.Consume(addr)
	require.True(t, ok)
	assert.Equal(t, 3, got.Payload)

	for _, v := range []packet.DataVersion{1, 2, 3} {
		assert.False(t, m.HasVersion(ch, v))
	}
	for _, v := range []packet.DataVersion{4, 5} {
		assert.True(t, m.HasVersion(ch, v))
	}
}

func TestMultiMaxSizePropagatedToEachChannel(t *testing.T) {
	// The spec calls out that max_size must be honored per channel
	// (spec.md §9 Open Question).
	m := NewPerChannelBuffer(2)
	ch := packet.NewChannelID("a")
	require.NoError(t, m.CreateChannel(ch))

	for _, v := range []packet.DataVersion{1, 2, 3} {
		require.NoError(t, m.Insert(ch, packet.NewUntyped(v, int(v))))
	}

	buf, ok := m.Channel(ch)
	require.True(t, ok)
	assert.Equal(t, 2, buf.Len())
	assert.False(t, m.HasVersion(ch, 1), "oldest version should be evicted under the per-channel cap")
}

func TestMultiAvailableChannels(t *testing.T) {
	m := NewPerChannelBuffer(20)
	a := packet.NewChannelID("a")
	b := packet.NewChannelID("b")
	require.NoError(t, m.CreateChannel(a))
	require.NoError(t, m.CreateChannel(b))

	chans := m.AvailableChannels()
	assert.ElementsMatch(t, []packet.ChannelID{a, b}, chans)
}
