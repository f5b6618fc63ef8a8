// Package sequence implements the tagged-sequence bead container: an
// interleaved tag stream and data stream over a beadtype.Set, forward
// iteration, and (when the set is symmetric) O(1) random access.
package sequence

import (
	"github.com/arloliu/beads/beadtype"
	"github.com/arloliu/beads/internal/pool"
	"github.com/arloliu/beads/vlq"
)

// tagLayout describes how tag nibbles/bits are packed for a set of the
// given size, per the catalog: k=1 needs no tag stream at all; k=2 packs
// one bit per tag (8 tags/byte); k in {3,4} packs two bits (4 tags/byte);
// k in {5..16} packs four bits (2 tags/byte).
type tagLayout struct {
	bitsPerTag  int
	tagsPerByte int
	mask        byte
}

func newTagLayout(size int) tagLayout {
	switch {
	case size <= 1:
		return tagLayout{}
	case size == 2:
		return tagLayout{bitsPerTag: 1, tagsPerByte: 8, mask: 0x01}
	case size <= 4:
		return tagLayout{bitsPerTag: 2, tagsPerByte: 4, mask: 0x03}
	default:
		return tagLayout{bitsPerTag: 4, tagsPerByte: 2, mask: 0x0f}
	}
}

// Builder accumulates pushed values into a single tagged-sequence buffer.
// Each push tries every candidate type in the builder's priority order and
// commits to the first one whose encoding fits, emitting an interleaved
// tag bit/nibble (when the set has more than one member) ahead of the
// data bytes.
type Builder struct {
	set       beadtype.Set
	types     []beadtype.Type // declaration order, indexes double as tag values
	typeIndex map[beadtype.Type]uint8
	layout    tagLayout

	bb *pool.ByteBuffer

	count     int
	flagCount int
	flagPtr   int
	dataPtr   int
}

// NewBuilder starts an empty sequence builder over the given type set. Its
// backing buffer comes from the package's pooled blob-buffer allocator;
// call Release once the builder's bytes (Encode/EncodeWithTypes/Bytes
// always copy out) are no longer needed to return it for reuse.
func NewBuilder(set beadtype.Set) *Builder {
	types := set.Types()
	idx := make(map[beadtype.Type]uint8, len(types))
	for i, t := range types {
		idx[t] = uint8(i)
	}

	return &Builder{
		set:       set,
		types:     types,
		typeIndex: idx,
		layout:    newTagLayout(len(types)),
		bb:        pool.GetBlobBuffer(),
	}
}

// Len returns the number of values pushed so far.
func (b *Builder) Len() int { return b.count }

// Release returns the builder's backing buffer to the pool. The builder
// must not be used afterward. Safe to call multiple times.
func (b *Builder) Release() {
	if b.bb == nil {
		return
	}

	pool.PutBlobBuffer(b.bb)
	b.bb = nil
}

// ensure grows the backing buffer so indices [0, offset+size) are
// addressable, never shrinking it. This is the corrected analogue of the
// reference builder's grow-or-shrink buffer policy (see Open Question 1):
// growth only ever extends the buffer, delegated to the pooled byte
// buffer's own Grow (a fixed 16KiB step, or 25% of capacity for large
// buffers). Newly exposed bytes are zeroed, since a pooled buffer may
// still hold an earlier builder's bytes and tags are OR-ed in place.
func (b *Builder) ensure(offset, size int) {
	need := offset + size
	old := b.bb.Len()
	if old >= need {
		return
	}

	b.bb.Grow(need - old)
	b.bb.SetLength(need)
	clear(b.bb.B[old:need])
}

// dataStart returns the offset the next data payload must be written at,
// accounting for whether a tag nibble/bit still needs room ahead of it.
func (b *Builder) dataStart() int {
	additive := 1
	if len(b.types) == 1 {
		additive = 0
	}

	start := b.flagPtr + additive
	if b.dataPtr > start {
		start = b.dataPtr
	}

	return start
}

// moveFlagPointerIfNecessary advances the tag cursor to a fresh byte once
// the previously committed tag byte is full (positionInByte wraps to 0)
// and every tag so far has actually been committed (flagCount == count).
func (b *Builder) moveFlagPointerIfNecessary(positionInByte int) {
	if b.flagCount > 0 && b.flagCount == b.count && positionInByte == 0 {
		next := b.flagPtr + 1
		if b.dataPtr > next {
			next = b.dataPtr
		}
		b.flagPtr = next
	}
}

// addFlag speculatively commits the tag for the next pushed value to type
// index idx. It is a no-op when the set has a single member (no tag
// stream exists). Callers that fail to complete the push must call
// resetFlag to undo the speculative bit.
func (b *Builder) addFlag(idx uint8) {
	if len(b.types) == 1 {
		return
	}

	positionInByte := b.count % b.layout.tagsPerByte
	b.moveFlagPointerIfNecessary(positionInByte)
	b.ensure(b.flagPtr, 1)

	shift := positionInByte * b.layout.bitsPerTag
	b.bb.B[b.flagPtr] |= (byte(idx) & b.layout.mask) << shift
	b.flagCount = b.count + 1
}

// resetFlag undoes the most recent addFlag after a failed fit attempt.
func (b *Builder) resetFlag() {
	if len(b.types) == 1 {
		return
	}

	positionInByte := b.count % b.layout.tagsPerByte
	shift := positionInByte * b.layout.bitsPerTag
	b.bb.B[b.flagPtr] &^= b.layout.mask << shift
}

// PushNone appends a None marker. It reports whether None is a member of
// the builder's type set.
func (b *Builder) PushNone() bool { return b.pushMarker(beadtype.None) }

// PushBool appends a TrueFlag or FalseFlag marker depending on value. It
// reports whether the corresponding marker type is a member of the set.
func (b *Builder) PushBool(value bool) bool {
	if value {
		return b.pushMarker(beadtype.TrueFlag)
	}

	return b.pushMarker(beadtype.FalseFlag)
}

func (b *Builder) pushMarker(t beadtype.Type) bool {
	idx, ok := b.typeIndex[t]
	if !ok {
		return false
	}

	b.addFlag(idx)
	b.count++
	b.flagCount = b.count

	return true
}

// PushString appends a length-prefixed UTF-8 string. It reports whether
// Utf8 is a member of the set.
func (b *Builder) PushString(value string) bool {
	idx, ok := b.typeIndex[beadtype.Utf8]
	if !ok {
		return false
	}

	b.addFlag(idx)
	start := b.dataStart()
	payload := []byte(value)
	b.ensure(start, vlq.MaxBytes+len(payload))
	n := vlq.Put(b.bb.B[start:], uint64(len(payload)))
	copy(b.bb.B[start+n:], payload)

	b.dataPtr = start + n + len(payload)
	b.count++
	b.flagCount = b.count

	return true
}

// PushBytes appends a length-prefixed opaque byte string. It reports
// whether Bytes is a member of the set.
func (b *Builder) PushBytes(value []byte) bool {
	idx, ok := b.typeIndex[beadtype.Bytes]
	if !ok {
		return false
	}

	b.addFlag(idx)
	start := b.dataStart()
	b.ensure(start, vlq.MaxBytes+len(value))
	n := vlq.Put(b.bb.B[start:], uint64(len(value)))
	copy(b.bb.B[start+n:], value)

	b.dataPtr = start + n + len(value)
	b.count++
	b.flagCount = b.count

	return true
}

// PushUint tries every type in beadtype.UnsignedPriority that belongs to
// the set, in order, and commits to the first one whose fit test
// succeeds. It reports whether any candidate fit.
func (b *Builder) PushUint(value uint64) bool {
	for _, t := range beadtype.UnsignedPriority() {
		idx, ok := b.typeIndex[t]
		if !ok {
			continue
		}

		b.addFlag(idx)
		start := b.dataStart()
		b.ensure(start, 16)

		n, fit := t.PushUint(value, b.bb.B[start:])
		if fit {
			b.dataPtr = start + n
			b.count++
			b.flagCount = b.count

			return true
		}

		b.resetFlag()
	}

	return false
}

// PushInt tries every type in beadtype.SignedPriority that belongs to the
// set, in order, and commits to the first one whose fit test succeeds.
func (b *Builder) PushInt(value int64) bool {
	for _, t := range beadtype.SignedPriority() {
		idx, ok := b.typeIndex[t]
		if !ok {
			continue
		}

		b.addFlag(idx)
		start := b.dataStart()
		b.ensure(start, 16)

		n, fit := t.PushInt(value, b.bb.B[start:])
		if fit {
			b.dataPtr = start + n
			b.count++
			b.flagCount = b.count

			return true
		}

		b.resetFlag()
	}

	return false
}

// PushDouble tries every type in beadtype.DoublePriority that belongs to
// the set with the given accuracy tolerance (0 demands an exact round
// trip) and commits to the first one whose fit test succeeds.
func (b *Builder) PushDouble(value float64, accuracy float64) bool {
	for _, t := range beadtype.DoublePriority() {
		idx, ok := b.typeIndex[t]
		if !ok {
			continue
		}

		b.addFlag(idx)
		start := b.dataStart()
		b.ensure(start, 16)

		n, fit := t.PushDouble(value, accuracy, b.bb.B[start:])
		if fit {
			b.dataPtr = start + n
			b.count++
			b.flagCount = b.count

			return true
		}

		b.resetFlag()
	}

	return false
}

// Set returns the builder's type set.
func (b *Builder) Set() beadtype.Set { return b.set }

// region returns the length of the backing buffer actually in use: the
// data cursor, or one past the tag cursor's last partial byte, whichever
// ran further.
func (b *Builder) region() int {
	end := b.dataPtr
	if b.flagPtr+1 > end {
		end = b.flagPtr + 1
	}
	if end > b.bb.Len() {
		end = b.bb.Len()
	}

	return end
}

// EncodedLen returns the exact byte length Encode will produce, without
// materializing it — lets container.EncodeFromBuilders size a combining
// index over several column builders without encoding each one twice.
func (b *Builder) EncodedLen() int {
	return vlq.Size(uint64(b.count)) + b.region()
}

// Encode finalizes the builder and returns the wire form: a leading
// VLQ-encoded element count followed by the tagged-sequence bytes. The
// count makes a standalone sequence self-describing; container formats
// that already track their own element counts elsewhere may instead use
// Bytes to omit it.
func (b *Builder) Encode() []byte {
	region := b.region()

	var head [vlq.MaxBytes]byte
	n := vlq.Put(head[:], uint64(b.count))

	out := make([]byte, n+region)
	copy(out, head[:n])
	copy(out[n:], b.bb.B[:region])

	return out
}

// EncodeWithTypes is like Encode but prefixes the 4-byte little-endian
// type-set mask ahead of the count, so the sequence can be decoded
// without the reader already knowing the type set.
func (b *Builder) EncodeWithTypes() []byte {
	maskBytes := b.set.Bytes()
	body := b.Encode()

	out := make([]byte, 4+len(body))
	copy(out, maskBytes[:])
	copy(out[4:], body)

	return out
}

// Bytes returns only the tagged-sequence bytes (tag/data streams), with
// no leading count or type-set mask.
func (b *Builder) Bytes() []byte {
	region := b.region()
	out := make([]byte, region)
	copy(out, b.bb.B[:region])

	return out
}
