package packet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannelIDEquality(t *testing.T) {
	a := NewChannelID("sensor-a")
	b := NewChannelID("sensor-a")
	c := NewChannelID("sensor-b")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Equal(t, "sensor-a", a.String())
}

func TestDataVersionOrdering(t *testing.T) {
	assert.True(t, DataVersion(1).Less(DataVersion(2)))
	assert.False(t, DataVersion(2).Less(DataVersion(2)))
	assert.False(t, DataVersion(3).Less(DataVersion(2)))
}

func TestAsRoundTrip(t *testing.T) {
	up := NewUntyped(DataVersion(7), "hello")

	typed, err := As[string](up)
	require.NoError(t, err)
	assert.Equal(t, DataVersion(7), typed.Version)
	assert.Equal(t, "hello", typed.Value)

	back := Untype(typed)
	assert.Equal(t, up, back)
}

func TestAsPayloadMismatch(t *testing.T) {
	up := NewUntyped(DataVersion(1), 42)

	_, err := As[string](up)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPayloadType)
}
