package vlq_test

import (
	"testing"

	"github.com/arloliu/beads/vlq"
	"github.com/stretchr/testify/require"
)

func TestAppendAndRead(t *testing.T) {
	cases := []struct {
		value uint64
		want  []byte
	}{
		{45, []byte{45}},
		{146, []byte{146, 1}},
		{256, []byte{128, 2}},
		{257, []byte{129, 2}},
		{258, []byte{130, 2}},
		{2580, []byte{148, 20}},
		{22580, []byte{180, 176, 1}},
	}

	for _, c := range cases {
		got := vlq.Append(nil, c.value)
		require.Equal(t, c.want, got, "value %d", c.value)
		require.Equal(t, len(c.want), vlq.Size(c.value))

		decoded, n, err := vlq.Read(got)
		require.NoError(t, err)
		require.Equal(t, len(c.want), n)
		require.Equal(t, c.value, decoded)
	}
}

func TestReadZero(t *testing.T) {
	got := vlq.Append(nil, 0)
	require.Equal(t, []byte{0}, got)

	v, n, err := vlq.Read(got)
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Equal(t, uint64(0), v)
}

func TestReadTruncated(t *testing.T) {
	_, _, err := vlq.Read([]byte{0x80, 0x80})
	require.Error(t, err)

	_, _, err = vlq.Read(nil)
	require.Error(t, err)
}

func TestZigZag(t *testing.T) {
	cases := []struct {
		signed   int64
		unsigned uint64
	}{
		{0, 0},
		{-1, 1},
		{1, 2},
		{-2, 3},
		{2, 4},
		{-3, 5},
		{3, 6},
		{-127, 253},
		{127, 254},
		{-128, 255},
	}

	for _, c := range cases {
		require.Equal(t, c.unsigned, vlq.ZigZagEncode(c.signed), "encode %d", c.signed)
		require.Equal(t, c.signed, vlq.ZigZagDecode(c.unsigned), "decode %d", c.unsigned)
		require.Equal(t, c.signed, vlq.ZigZagDecode(vlq.ZigZagEncode(c.signed)))
	}
}

func TestPutZigZag(t *testing.T) {
	buf := make([]byte, vlq.MaxBytes)
	n := vlq.PutZigZag(buf, -128)
	require.Equal(t, 2, n) // 255 carries 8 significant bits: two 7-bit groups
	require.Equal(t, byte(255), buf[0])
}
