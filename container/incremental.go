package container

import (
	"encoding/binary"

	"github.com/arloliu/beads/vlq"
)

// IncrementalUintBuilder accumulates unsigned integers and picks the
// narrowest common little-endian record width (1..8 bytes, or 0 if every
// value is zero) that fits the largest value seen. Its wire form is
// exactly the fixed-size-beads format (a VLQ-encoded width followed by a
// flat record array), so it is decoded with NewFixedReader and
// UintFromRecord rather than a dedicated reader type.
type IncrementalUintBuilder struct {
	size   int
	values []uint64
}

// NewIncrementalUintBuilder starts an empty incremental-uint builder.
func NewIncrementalUintBuilder() *IncrementalUintBuilder {
	return &IncrementalUintBuilder{}
}

// Push appends one value, widening the builder's record size if needed.
func (b *IncrementalUintBuilder) Push(value uint64) {
	b.values = append(b.values, value)
	b.size = maxInt(b.size, byteWidth(value))
}

// Len returns the number of pushed values.
func (b *IncrementalUintBuilder) Len() int { return len(b.values) }

// EncodedLen returns the exact byte length Encode will produce.
func (b *IncrementalUintBuilder) EncodedLen() int {
	return vlq.Size(uint64(b.size)) + len(b.values)*b.size
}

// Encode finalizes the builder into the wire form: a VLQ-encoded record
// width followed by each value truncated to that width, little-endian.
//
// A size of 0 (every pushed value was zero) encodes to just the header —
// the records themselves vanish, since a zero-width record carries no
// information. A reader in that state cannot recover how many records
// there were from the bytes alone; it must already know the count from
// an enclosing container (the same gap the format this was grounded on
// has for an all-zero column).
func (b *IncrementalUintBuilder) Encode() []byte {
	var headBuf [vlq.MaxBytes]byte
	n := vlq.Put(headBuf[:], uint64(b.size))

	out := make([]byte, n+len(b.values)*b.size)
	copy(out, headBuf[:n])

	var tmp [8]byte
	pos := n
	for _, v := range b.values {
		binary.LittleEndian.PutUint64(tmp[:], v)
		copy(out[pos:pos+b.size], tmp[:b.size])
		pos += b.size
	}

	return out
}

// UintFromRecord zero-extends a little-endian record of 0..8 bytes (as
// produced by IncrementalUintBuilder and read back via FixedReader) to a
// uint64.
func UintFromRecord(record []byte) uint64 {
	var tmp [8]byte
	copy(tmp[:], record)

	return binary.LittleEndian.Uint64(tmp[:])
}
