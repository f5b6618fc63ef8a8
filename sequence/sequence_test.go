package sequence_test

import (
	"testing"

	"github.com/arloliu/beads/beadtype"
	"github.com/arloliu/beads/sequence"
	"github.com/stretchr/testify/require"
)

func mustSet(t *testing.T, types ...beadtype.Type) beadtype.Set {
	t.Helper()
	s, err := beadtype.NewSet(types...)
	require.NoError(t, err)

	return s
}

func collect(t *testing.T, r *sequence.Reader) []sequence.Reference {
	t.Helper()
	it := r.Iterator()
	var out []sequence.Reference
	for {
		ref, ok := it.Next()
		if !ok {
			break
		}
		out = append(out, ref)
	}

	return out
}

func TestBuilderSingleType(t *testing.T) {
	set := mustSet(t, beadtype.U32)
	b := sequence.NewBuilder(set)

	require.True(t, b.PushUint(10))
	require.True(t, b.PushUint(20))
	require.True(t, b.PushUint(30))
	require.Equal(t, 3, b.Len())

	r, err := sequence.NewReader(b.Encode(), set)
	require.NoError(t, err)
	require.Equal(t, 3, r.Len())

	refs := collect(t, r)
	require.Len(t, refs, 3)
	for i, want := range []uint64{10, 20, 30} {
		got, err := refs[i].Uint()
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}

func TestBuilderBoolSequence(t *testing.T) {
	set := mustSet(t, beadtype.TrueFlag, beadtype.FalseFlag)
	b := sequence.NewBuilder(set)

	values := []bool{true, false, true, true, false, false, true, false, true}
	for _, v := range values {
		require.True(t, b.PushBool(v))
	}

	r, err := sequence.NewReader(b.Encode(), set)
	require.NoError(t, err)
	require.True(t, r.IsSymmetric())

	refs := collect(t, r)
	require.Len(t, refs, len(values))
	for i, want := range values {
		got, err := refs[i].Bool()
		require.NoError(t, err)
		require.Equal(t, want, got)
	}

	sym, err := r.Symmetric()
	require.NoError(t, err)
	for i, want := range values {
		ref, err := sym.Get(i)
		require.NoError(t, err)
		got, err := ref.Bool()
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}

func TestBuilderBoolAndNone(t *testing.T) {
	set := mustSet(t, beadtype.TrueFlag, beadtype.FalseFlag, beadtype.None)
	b := sequence.NewBuilder(set)

	require.True(t, b.PushBool(true))
	require.True(t, b.PushNone())
	require.True(t, b.PushBool(false))
	require.True(t, b.PushNone())

	r, err := sequence.NewReader(b.Encode(), set)
	require.NoError(t, err)

	refs := collect(t, r)
	require.Len(t, refs, 4)
	require.True(t, refs[0].IsTrue())
	require.True(t, refs[1].IsNone())
	require.True(t, refs[2].IsFalse())
	require.True(t, refs[3].IsNone())
}

func TestBuilderMixedIntPriority(t *testing.T) {
	set := mustSet(t, beadtype.I8, beadtype.I16, beadtype.I32, beadtype.I64)
	b := sequence.NewBuilder(set)

	values := []int64{-1, 200, -40000, 3_000_000_000}
	for _, v := range values {
		require.True(t, b.PushInt(v))
	}

	r, err := sequence.NewReader(b.Encode(), set)
	require.NoError(t, err)
	require.False(t, r.IsSymmetric())

	refs := collect(t, r)
	require.Equal(t, beadtype.I8, refs[0].Type())
	require.Equal(t, beadtype.I16, refs[1].Type())
	require.Equal(t, beadtype.I32, refs[2].Type())
	require.Equal(t, beadtype.I64, refs[3].Type())

	for i, want := range values {
		got, err := refs[i].Int()
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}

func TestBuilderStringsAndBytes(t *testing.T) {
	set := mustSet(t, beadtype.Utf8, beadtype.Bytes, beadtype.None)
	b := sequence.NewBuilder(set)

	require.True(t, b.PushString("hello"))
	require.True(t, b.PushBytes([]byte{0xde, 0xad, 0xbe, 0xef}))
	require.True(t, b.PushNone())
	require.True(t, b.PushString(""))

	r, err := sequence.NewReader(b.Encode(), set)
	require.NoError(t, err)

	refs := collect(t, r)
	require.Len(t, refs, 4)

	s, err := refs[0].String()
	require.NoError(t, err)
	require.Equal(t, "hello", s)

	bs, err := refs[1].ToBytes()
	require.NoError(t, err)
	require.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, bs)

	require.True(t, refs[2].IsNone())

	s, err = refs[3].String()
	require.NoError(t, err)
	require.Equal(t, "", s)
}

func TestBuilderEncodeWithTypesRoundTrip(t *testing.T) {
	set := mustSet(t, beadtype.U8, beadtype.U16, beadtype.U32)
	b := sequence.NewBuilder(set)
	require.True(t, b.PushUint(1))
	require.True(t, b.PushUint(1000))
	require.True(t, b.PushUint(100000))

	r, err := sequence.NewReaderWithTypes(b.EncodeWithTypes())
	require.NoError(t, err)
	require.Equal(t, set.Mask(), r.Set().Mask())

	refs := collect(t, r)
	require.Len(t, refs, 3)
}

func TestBuilderRejectsUnfitType(t *testing.T) {
	set := mustSet(t, beadtype.U8)
	b := sequence.NewBuilder(set)

	require.True(t, b.PushUint(10))
	require.False(t, b.PushUint(1000))
	require.False(t, b.PushString("nope"))
}

func TestSymmetricRequiresSymmetricSet(t *testing.T) {
	set := mustSet(t, beadtype.None, beadtype.U16)
	b := sequence.NewBuilder(set)
	require.True(t, b.PushNone())
	require.True(t, b.PushUint(5))

	r, err := sequence.NewReader(b.Encode(), set)
	require.NoError(t, err)
	require.False(t, r.IsSymmetric())

	_, err = r.Symmetric()
	require.Error(t, err)
}

func TestSymmetricDoublesRandomAccess(t *testing.T) {
	set := mustSet(t, beadtype.F64)
	b := sequence.NewBuilder(set)

	values := []float64{1.5, -2.25, 3.125, 0, 100.5}
	for _, v := range values {
		require.True(t, b.PushDouble(v, 0))
	}

	r, err := sequence.NewReader(b.Encode(), set)
	require.NoError(t, err)

	sym, err := r.Symmetric()
	require.NoError(t, err)
	require.Equal(t, len(values), sym.Len())

	for i := len(values) - 1; i >= 0; i-- {
		ref, err := sym.Get(i)
		require.NoError(t, err)
		got, err := ref.Float()
		require.NoError(t, err)
		require.InDelta(t, values[i], got, 1e-9)
	}

	_, err = sym.Get(len(values))
	require.Error(t, err)
}

// TestBoolSequenceScenario is the spec's "bool sequence" concrete
// scenario: it checks the exact encoded byte sequence, not just a
// successful round trip.
func TestBoolSequenceScenario(t *testing.T) {
	set := mustSet(t, beadtype.TrueFlag, beadtype.FalseFlag)
	b := sequence.NewBuilder(set)

	values := []bool{true, true, false, true, false, false, false, true, false, false, true, false}
	for _, v := range values {
		require.True(t, b.PushBool(v))
	}

	require.Equal(t, []byte{12, 116, 11}, b.Encode())

	r, err := sequence.NewReader(b.Encode(), set)
	require.NoError(t, err)
	refs := collect(t, r)
	require.Len(t, refs, len(values))
	for i, want := range values {
		got, err := refs[i].Bool()
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}

// TestBoolAndNoneScenario is the spec's "bool + None" concrete scenario.
func TestBoolAndNoneScenario(t *testing.T) {
	set := mustSet(t, beadtype.TrueFlag, beadtype.FalseFlag, beadtype.None)
	b := sequence.NewBuilder(set)

	require.True(t, b.PushBool(true))
	require.True(t, b.PushBool(true))
	require.True(t, b.PushNone())
	require.True(t, b.PushBool(false))
	require.True(t, b.PushBool(true))
	require.True(t, b.PushBool(false))
	require.True(t, b.PushBool(false))
	require.True(t, b.PushBool(false))
	require.True(t, b.PushBool(true))
	require.True(t, b.PushBool(false))
	require.True(t, b.PushBool(false))
	require.True(t, b.PushBool(true))
	require.True(t, b.PushBool(false))

	require.Equal(t, []byte{13, 133, 169, 105, 2}, b.Encode())
}

// TestMixedIntsFourTypesScenario is the spec's "mixed ints, 4 types"
// concrete scenario: integers 1..13 pushed against {I8, None, Vlq, VlqZ},
// with a None inserted right after 7.
func TestMixedIntsFourTypesScenario(t *testing.T) {
	set := mustSet(t, beadtype.I8, beadtype.None, beadtype.Vlq, beadtype.VlqZ)
	b := sequence.NewBuilder(set)

	for v := int64(1); v <= 13; v++ {
		require.True(t, b.PushInt(v))
		if v == 7 {
			require.True(t, b.PushNone())
		}
	}

	want := []byte{14, 85, 1, 2, 3, 4, 21, 5, 6, 7, 85, 8, 9, 10, 11, 5, 12, 13}
	require.Equal(t, want, b.Encode())

	r, err := sequence.NewReader(b.Encode(), set)
	require.NoError(t, err)
	require.Equal(t, 14, r.Len())

	refs := collect(t, r)
	require.Len(t, refs, 14)

	wantInts := []int64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13}
	wantIdx := 0
	for i, ref := range refs {
		if i == 7 {
			require.True(t, ref.IsNone())

			continue
		}
		got, err := ref.Int()
		require.NoError(t, err)
		require.Equal(t, wantInts[wantIdx], got)
		wantIdx++
	}
}

// TestSymmetricIntFloatMixScenario is the spec's "symmetric random
// access" concrete scenario: {U32, I32, F32}, pushing 0..100 shifted by
// -50 and checking the symmetric view's float conversion against
// (double)i - 50.0 for every i.
func TestSymmetricIntFloatMixScenario(t *testing.T) {
	set := mustSet(t, beadtype.U32, beadtype.I32, beadtype.F32)
	b := sequence.NewBuilder(set)

	const n = 101 // i ranges over 0..100 inclusive
	for i := 0; i <= 100; i++ {
		require.True(t, b.PushInt(int64(i-50)))
	}
	require.Equal(t, n, b.Len())

	r, err := sequence.NewReader(b.Encode(), set)
	require.NoError(t, err)
	require.True(t, r.IsSymmetric())

	sym, err := r.Symmetric()
	require.NoError(t, err)
	require.Equal(t, n, sym.Len())

	for i := 0; i <= 100; i++ {
		ref, err := sym.Get(i)
		require.NoError(t, err)
		got, err := ref.Float()
		require.NoError(t, err)
		require.Equal(t, float64(i-50), got)
	}
}
