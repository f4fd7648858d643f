package buffer

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowgraph/flowgraph/packet"
)

func pkt(v int) packet.UntypedPacket {
	return packet.NewUntyped(packet.DataVersion(v), v)
}

func TestOrderedInsertAndGet(t *testing.T) {
	b := NewFixedSizeOrdered(20)

	require.NoError(t, b.Insert(1, pkt(1)))
	got, ok := b.Get(1)
	require.True(t, ok)
	assert.Equal(t, pkt(1), got)

	// S7: retention on get -- repeated reads return the same packet.
	for i := 0; i < 3; i++ {
		got, ok = b.Get(1)
		require.True(t, ok)
		assert.Equal(t, pkt(1), got)
	}
}

func TestOrderedDuplicateVersionRejected(t *testing.T) {
	// S3
	b := NewFixedSizeOrdered(20)
	require.NoError(t, b.Insert(1, packet.NewUntyped(1, "hello")))

	err := b.Insert(1, packet.NewUntyped(1, "world"))
	require.ErrorIs(t, err, ErrDuplicateVersion)

	got, ok := b.Get(1)
	require.True(t, ok)
	assert.Equal(t, "hello", got.Payload)
}

func TestOrderedCleanupBeforeAfterConsume(t *testing.T) {
	// S2
	b := NewFixedSizeOrdered(20)
	for _, v := range []int{1, 2, 3, 4, 5} {
		require.NoError(t, b.Insert(packet.DataVersion(v), pkt(v)))
	}

	_, ok := b.Remove(3)
	require.True(t, ok)
	b.CleanupBefore(3)

	for _, v := range []int{1, 2, 3} {
		_, ok := b.Get(packet.DataVersion(v))
		assert.False(t, ok, "version %d should have been cleaned up", v)
	}
	for _, v := range []int{4, 5} {
		_, ok := b.Get(packet.DataVersion(v))
		assert.True(t, ok, "version %d should still be present", v)
	}
}

func TestOrderedCleanupBeforeIdempotent(t *testing.T) {
	b := NewFixedSizeOrdered(20)
	require.NoError(t, b.Insert(5, pkt(5)))
	b.CleanupBefore(3)
	b.CleanupBefore(3)
	_, ok := b.Get(5)
	assert.True(t, ok)
}

func TestOrderedEvictsOldestOnOverflow(t *testing.T) {
	b := NewFixedSizeOrdered(3)
	for _, v := range []int{1, 2, 3} {
		require.NoError(t, b.Insert(packet.DataVersion(v), pkt(v)))
	}
	require.NoError(t, b.Insert(4, pkt(4)))

	assert.Equal(t, 3, b.Len())
	_, ok := b.Get(1)
	assert.False(t, ok, "oldest entry should have been evicted")
	_, ok = b.Get(4)
	assert.True(t, ok)
}

func TestOrderedAscendIsSorted(t *testing.T) {
	// S1-style: shuffled insertion, ascending iteration.
	versions := make([]int, 100)
	for i := range versions {
		versions[i] = i + 1
	}
	rand.Shuffle(len(versions), func(i, j int) { versions[i], versions[j] = versions[j], versions[i] })

	b := NewFixedSizeOrdered(200)
	for _, v := range versions {
		require.NoError(t, b.Insert(packet.DataVersion(v), pkt(v)))
	}

	var seen []int
	b.Ascend(func(v packet.DataVersion, p packet.UntypedPacket) bool {
		seen = append(seen, int(v))
		return true
	})

	require.Len(t, seen, 100)
	for i, v := range seen {
		assert.Equal(t, i+1, v)
	}
}
