package csv

import (
	"testing"

	"github.com/arloliu/beads/beadtype"
	"github.com/arloliu/beads/compress"
	"github.com/arloliu/beads/container"
	"github.com/arloliu/beads/sequence"
	"github.com/stretchr/testify/require"
)

func decodeColumn(t *testing.T, root []byte, col int) []string {
	t.Helper()

	reader, err := container.NewReader(root)
	require.NoError(t, err)

	colBuf, err := reader.Get(col)
	require.NoError(t, err)

	utf8Set, err := beadtype.NewSet(beadtype.Utf8)
	require.NoError(t, err)

	seq, err := sequence.NewReader(colBuf, utf8Set)
	require.NoError(t, err)

	var out []string
	it := seq.Iterator()
	for {
		ref, ok := it.Next()
		if !ok {
			break
		}
		s, err := ref.String()
		require.NoError(t, err)
		out = append(out, s)
	}

	return out
}

func TestToIndexedStringBeads_Basic(t *testing.T) {
	csvText := "a,b,c\n1,2,3\n"

	encoded, err := ToIndexedStringBeads(csvText)
	require.NoError(t, err)

	require.Equal(t, []string{"a", "1"}, decodeColumn(t, encoded, 0))
	require.Equal(t, []string{"b", "2"}, decodeColumn(t, encoded, 1))
	require.Equal(t, []string{"c", "3"}, decodeColumn(t, encoded, 2))
}

func TestToIndexedStringBeads_ExcludeFirstLine(t *testing.T) {
	csvText := "name,age\nalice,30\nbob,25\n"

	encoded, err := ToIndexedStringBeads(csvText, WithFirstLineRule(ExcludeFirstLine))
	require.NoError(t, err)

	require.Equal(t, []string{"alice", "bob"}, decodeColumn(t, encoded, 0))
	require.Equal(t, []string{"30", "25"}, decodeColumn(t, encoded, 1))
}

func TestToIndexedStringBeads_QuotedFields(t *testing.T) {
	csvText := "\"hello, world\",\"say \"\"hi\"\"\"\n"

	encoded, err := ToIndexedStringBeads(csvText)
	require.NoError(t, err)

	require.Equal(t, []string{"hello, world"}, decodeColumn(t, encoded, 0))
	require.Equal(t, []string{`say "hi"`}, decodeColumn(t, encoded, 1))
}

func TestToIndexedStringBeads_CRLF(t *testing.T) {
	csvText := "a,b\r\n1,2\r\n"

	encoded, err := ToIndexedStringBeads(csvText)
	require.NoError(t, err)

	require.Equal(t, []string{"a", "1"}, decodeColumn(t, encoded, 0))
	require.Equal(t, []string{"b", "2"}, decodeColumn(t, encoded, 1))
}

func TestWriteContainer_Compressed(t *testing.T) {
	csvText := "a,b\n1,2\n"

	enveloped, err := WriteContainer(csvText, compress.Zstd)
	require.NoError(t, err)
	require.NotEmpty(t, enveloped)
}

func TestStringBeadsToIntBeads(t *testing.T) {
	strSet, err := beadtype.NewSet(beadtype.Utf8)
	require.NoError(t, err)

	b := sequence.NewBuilder(strSet)
	b.PushString("42")
	b.PushString("-7")
	b.PushString("not a number")
	strBuf := b.Encode()

	target, err := beadtype.NewSet(beadtype.I8, beadtype.I16, beadtype.I32, beadtype.I64, beadtype.None)
	require.NoError(t, err)

	intBuf, err := StringBeadsToIntBeads(strBuf, target)
	require.NoError(t, err)

	reader, err := sequence.NewReader(intBuf, target)
	require.NoError(t, err)
	require.Equal(t, 3, reader.Len())

	it := reader.Iterator()
	ref, ok := it.Next()
	require.True(t, ok)
	v, err := ref.Int()
	require.NoError(t, err)
	require.Equal(t, int64(42), v)

	ref, ok = it.Next()
	require.True(t, ok)
	v, err = ref.Int()
	require.NoError(t, err)
	require.Equal(t, int64(-7), v)

	ref, ok = it.Next()
	require.True(t, ok)
	require.True(t, ref.IsNone())
}

func TestHeaderFingerprint_StableAndSensitive(t *testing.T) {
	a := HeaderFingerprint([]string{"id", "name", "age"})
	b := HeaderFingerprint([]string{"id", "name", "age"})
	require.Equal(t, a, b)

	c := HeaderFingerprint([]string{"id", "name", "ages"})
	require.NotEqual(t, a, c)

	d := HeaderFingerprint([]string{"id", "age", "name"})
	require.NotEqual(t, a, d)
}

func TestStringBeadsToDoubleBeads(t *testing.T) {
	strSet, err := beadtype.NewSet(beadtype.Utf8)
	require.NoError(t, err)

	b := sequence.NewBuilder(strSet)
	b.PushString("3.5")
	b.PushString("garbage")
	strBuf := b.Encode()

	target, err := beadtype.NewSet(beadtype.F32, beadtype.F64, beadtype.None)
	require.NoError(t, err)

	dblBuf, err := StringBeadsToDoubleBeads(strBuf, target, 0)
	require.NoError(t, err)

	reader, err := sequence.NewReader(dblBuf, target)
	require.NoError(t, err)
	require.Equal(t, 2, reader.Len())
}
