package beads

import (
	"testing"

	"github.com/arloliu/beads/beadtype"
	"github.com/arloliu/beads/compress"
	"github.com/stretchr/testify/require"
)

func TestTopLevelSequenceRoundTrip(t *testing.T) {
	set, err := NewSet(beadtype.U8, beadtype.I8, beadtype.Vlq, beadtype.VlqZ, beadtype.U64, beadtype.I64, beadtype.F64)
	require.NoError(t, err)

	b := NewBuilder(set)
	b.PushUint(7)
	b.PushInt(-42)
	b.PushDouble(3.25, 0)

	encoded := b.Encode()

	r, err := NewReader(encoded, set)
	require.NoError(t, err)
	require.Equal(t, 3, r.Len())

	it := r.Iterator()
	want := []float64{7, -42, 3.25}
	var got []float64
	for i := 0; i < 3; i++ {
		ref, ok := it.Next()
		require.True(t, ok)
		v, err := ref.Float()
		require.NoError(t, err)
		got = append(got, v)
	}
	require.Equal(t, want, got)
}

func TestTopLevelContainerBuilders(t *testing.T) {
	ib := NewIndexedBuilder()
	ib.Push([]byte("a"))
	ib.Push([]byte("bb"))
	require.Equal(t, 2, ib.Len())

	fb := NewFixedBuilder(4)
	fb.Push([]byte{1, 2, 3, 4})
	require.Equal(t, 1, fb.Len())

	incb := NewIncrementalUintBuilder()
	incb.Push(300)
	require.Equal(t, 1, incb.Len())

	db := NewDedupBuilder()
	db.Push([]byte("x"))
	db.Push([]byte("x"))
	require.Equal(t, 1, db.Unique())
}

func TestTopLevelCompressRoundTrip(t *testing.T) {
	data := []byte("hello beads")
	enveloped, err := Compress(compress.Zstd, data)
	require.NoError(t, err)

	out, err := Decompress(enveloped)
	require.NoError(t, err)
	require.Equal(t, data, out)
}
