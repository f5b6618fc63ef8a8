package container

import (
	"github.com/arloliu/beads/errs"
	"github.com/arloliu/beads/vlq"
)

// FixedBuilder accumulates byte records that must all share one declared
// width.
type FixedBuilder struct {
	size int
	buf  []byte
}

// NewFixedBuilder starts an empty fixed-size builder with the given
// per-record width.
func NewFixedBuilder(size int) *FixedBuilder {
	return &FixedBuilder{size: size}
}

// Push appends one record. It panics if value's length does not match
// the builder's declared size — a programmer error, not a runtime one,
// mirroring the reference builder's own contract.
func (b *FixedBuilder) Push(value []byte) {
	if len(value) != b.size {
		panic("container: value does not match fixed record size")
	}
	b.buf = append(b.buf, value...)
}

// Len returns the number of pushed records.
func (b *FixedBuilder) Len() int {
	if b.size == 0 {
		return 0
	}

	return len(b.buf) / b.size
}

// EncodedLen returns the exact byte length Encode will produce.
func (b *FixedBuilder) EncodedLen() int {
	return vlq.Size(uint64(b.size)) + len(b.buf)
}

// Encode finalizes the builder into the fixed-size wire form: a
// VLQ-encoded record width followed by the flat record array.
func (b *FixedBuilder) Encode() []byte {
	var headBuf [vlq.MaxBytes]byte
	n := vlq.Put(headBuf[:], uint64(b.size))

	out := make([]byte, n+len(b.buf))
	copy(out, headBuf[:n])
	copy(out[n:], b.buf)

	return out
}

// FixedReader decodes a fixed-size-beads buffer.
type FixedReader struct {
	size int
	buf  []byte
}

// NewFixedReader decodes buf as fixed-size beads.
func NewFixedReader(buf []byte) (*FixedReader, error) {
	size, n, err := vlq.Read(buf)
	if err != nil {
		return nil, err
	}

	return &FixedReader{size: int(size), buf: buf[n:]}, nil
}

// Size returns the declared record width.
func (r *FixedReader) Size() int { return r.size }

// Len returns the number of records.
func (r *FixedReader) Len() int {
	if r.size == 0 {
		return 0
	}

	return len(r.buf) / r.size
}

// Get returns the record at index, a borrowed slice into the reader's
// buffer.
func (r *FixedReader) Get(index int) ([]byte, error) {
	start := index * r.size
	end := start + r.size
	if index < 0 || len(r.buf) < end {
		return nil, errs.ErrInvalidIndex
	}

	return r.buf[start:end], nil
}
