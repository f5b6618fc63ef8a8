// Package beads implements the Beads binary serialization format: a
// closed catalog of 20 scalar encodings (bools, sized integers, floats,
// varints, strings, and opaque bytes), a tagged sequence that interleaves
// a packed per-element type tag stream with a data stream, and four
// container formats (indexed, fixed-size, fixed-size incremental-uint,
// and dedup) built on top of it.
//
// # Core Features
//
//   - Narrowest-fit encoding: builders try each permitted type in
//     priority order and commit to the first one the value fits
//   - O(1) random access when a sequence's type set has a uniform,
//     finite data size (see beadtype.Set.IsSymmetric)
//   - Four container layouts for columns of sequences or opaque blobs
//   - Optional compression envelope (None, Zstd, S2, LZ4)
//
// # Basic Usage
//
// Building and reading a tagged sequence:
//
//	set, _ := beadtype.NewSet(beadtype.U8, beadtype.I8, beadtype.Vlq, beadtype.VlqZ, beadtype.U64, beadtype.I64, beadtype.F64)
//	b := sequence.NewBuilder(set)
//	b.PushUint(7)
//	b.PushInt(-42)
//	b.PushDouble(3.25, 0)
//	encoded := b.Encode()
//
//	r, _ := beads.NewReader(encoded, set)
//	it := r.Iterator()
//	for {
//	    ref, ok := it.Next()
//	    if !ok {
//	        break
//	    }
//	    _ = ref
//	}
//
// # Package Structure
//
// This package provides convenient top-level wrappers around beadtype,
// sequence, container, and compress. For fine-grained control, use those
// packages directly.
package beads

import (
	"github.com/arloliu/beads/beadtype"
	"github.com/arloliu/beads/compress"
	"github.com/arloliu/beads/container"
	"github.com/arloliu/beads/sequence"
)

// NewSet builds a bead type set from an explicit list of member types.
func NewSet(types ...beadtype.Type) (beadtype.Set, error) {
	return beadtype.NewSet(types...)
}

// NewBuilder starts a tagged-sequence builder restricted to set's member
// types.
func NewBuilder(set beadtype.Set) *sequence.Builder {
	return sequence.NewBuilder(set)
}

// NewReader decodes a self-framed tagged-sequence buffer (one produced by
// Builder.Encode) against an explicit type set.
func NewReader(buf []byte, set beadtype.Set) (*sequence.Reader, error) {
	return sequence.NewReader(buf, set)
}

// NewReaderWithTypes decodes a tagged-sequence buffer that carries its own
// type-set mask (one produced by Builder.EncodeWithTypes).
func NewReaderWithTypes(buf []byte) (*sequence.Reader, error) {
	return sequence.NewReaderWithTypes(buf)
}

// NewIndexedBuilder starts a builder for the indexed-beads container:
// length-prefixed opaque values plus a side index of cumulative offsets.
func NewIndexedBuilder() *container.IndexedBuilder {
	return container.NewIndexedBuilder()
}

// NewFixedBuilder starts a builder for the fixed-size-beads container,
// where every record is exactly size bytes.
func NewFixedBuilder(size int) *container.FixedBuilder {
	return container.NewFixedBuilder(size)
}

// NewIncrementalUintBuilder starts a builder for the fixed-size
// incremental-uint container, which auto-narrows its record width to the
// widest pushed value.
func NewIncrementalUintBuilder() *container.IncrementalUintBuilder {
	return container.NewIncrementalUintBuilder()
}

// NewDedupBuilder starts a builder for the dedup-beads container, which
// stores each distinct pushed value once and records the slot of every
// push.
func NewDedupBuilder() *container.DedupBuilder {
	return container.NewDedupBuilder()
}

// Compress wraps encoded bytes in a compression envelope using the named
// algorithm.
func Compress(t compress.Type, data []byte) ([]byte, error) {
	return compress.Envelope(t, data)
}

// Decompress reverses Compress, returning the original uncompressed
// bytes.
func Decompress(buf []byte) ([]byte, error) {
	return compress.Open(buf)
}
