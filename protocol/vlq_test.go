package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVLQRoundTrip(t *testing.T) {
	values := []int32{
		0, 1, -1, 32, -32, 33, -33, 95, -96, 96, -97,
		1000, -1000, 1 << 20, -(1 << 20),
		1<<31 - 1, -(1 << 31),
	}
	for _, v := range values {
		buf := EncodeVLQ(nil, v)
		got, n, err := DecodeVLQ(buf)
		require.NoError(t, err)
		assert.Equal(t, len(buf), n)
		assert.Equal(t, v, got, "round-trip mismatch for %d", v)
	}
}

func TestVLQEncodedLength(t *testing.T) {
	cases := []struct {
		v    int32
		want int
	}{
		{0, 1},
		{95, 1},   // 3<<5 - 1
		{96, 2},   // 3<<5
		{-32, 1},  // -(1<<5)
		{-33, 2},  // -(1<<5) - 1
		{3<<12 - 1, 2},
		{3 << 12, 3},
		{3<<19 - 1, 3},
		{3 << 19, 4},
		{3<<26 - 1, 4},
		{3 << 26, 5},
	}
	for _, c := range cases {
		got := EncodeVLQ(nil, c.v)
		assert.Lenf(t, got, c.want, "EncodeVLQ(%d)", c.v)
	}
}

func TestVLQDecodeTruncatedIsError(t *testing.T) {
	// A leading byte with its continuation bit set but nothing following.
	_, _, err := DecodeVLQ([]byte{0x80})
	assert.ErrorIs(t, err, ErrFrameInvalid)

	_, _, err = DecodeVLQ(nil)
	assert.ErrorIs(t, err, ErrFrameInvalid)
}

func TestVLQSignExtensionBoundary(t *testing.T) {
	// 0x20 has bit5 set, bit6 clear: no sign extension, decodes as +32.
	v, n, err := DecodeVLQ([]byte{0x20})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.EqualValues(t, 32, v)

	// 0x60 has bits 5 and 6 both set: sign-extends to -32.
	v, n, err = DecodeVLQ([]byte{0x60})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.EqualValues(t, -32, v)
}
