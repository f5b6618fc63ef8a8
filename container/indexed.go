package container

import (
	"encoding/binary"

	"github.com/arloliu/beads/errs"
	"github.com/arloliu/beads/vlq"
)

// IndexedBuilder accumulates opaque byte blobs and encodes them as
// length-prefixed values with a side index of cumulative end offsets, the
// width of each offset chosen to be the narrowest that fits the total
// byte length.
type IndexedBuilder struct {
	buffers    [][]byte
	endOffsets []uint64
	cursor     uint64
}

// NewIndexedBuilder starts an empty indexed-beads builder.
func NewIndexedBuilder() *IndexedBuilder {
	return &IndexedBuilder{}
}

// Push appends one opaque value.
func (b *IndexedBuilder) Push(value []byte) {
	b.buffers = append(b.buffers, value)
	b.cursor += uint64(len(value))
	b.endOffsets = append(b.endOffsets, b.cursor)
}

// Len returns the number of pushed values.
func (b *IndexedBuilder) Len() int { return len(b.buffers) }

// EncodedLen returns the exact byte length Encode will produce, without
// materializing it — used to size the header when composing several
// indexed builders into one enclosing index (see EncodeFromBuilders).
func (b *IndexedBuilder) EncodedLen() int {
	if b.cursor == 0 {
		return 0
	}

	width := byteWidth(b.cursor)
	header := (uint64(len(b.buffers)) << 3) | uint64(width-1)

	return vlq.Size(header) + len(b.buffers)*width + int(b.cursor)
}

// Encode finalizes the builder into the indexed-beads wire form: a VLQ
// header packing the value count and index width, the side index, then
// the concatenated values. An empty builder (or one whose only values are
// all zero-length) encodes to nothing.
func (b *IndexedBuilder) Encode() []byte {
	if b.cursor == 0 {
		return nil
	}

	width := byteWidth(b.cursor)
	header := (uint64(len(b.buffers)) << 3) | uint64(width-1)

	var headBuf [vlq.MaxBytes]byte
	n := vlq.Put(headBuf[:], header)

	out := make([]byte, n+len(b.buffers)*width+int(b.cursor))
	copy(out, headBuf[:n])

	pos := n
	var tmp [8]byte
	for _, end := range b.endOffsets {
		binary.LittleEndian.PutUint64(tmp[:], end)
		copy(out[pos:pos+width], tmp[:width])
		pos += width
	}

	for _, buf := range b.buffers {
		copy(out[pos:], buf)
		pos += len(buf)
	}

	return out
}

// Reader decodes an indexed-beads buffer.
type Reader struct {
	index []byte
	value []byte
	count int
	width int
}

// NewReader decodes buf as indexed beads.
func NewReader(buf []byte) (*Reader, error) {
	header, n, err := vlq.Read(buf)
	if err != nil {
		return nil, err
	}

	count := int(header >> 3)
	width := int(header&7) + 1

	indexBytes := count * width
	if len(buf) <= n+indexBytes {
		return nil, errs.ErrTruncatedBuffer
	}

	return &Reader{
		index: buf[n : n+indexBytes],
		value: buf[n+indexBytes:],
		count: count,
		width: width,
	}, nil
}

// Len returns the number of values.
func (r *Reader) Len() int { return r.count }

func (r *Reader) position(entryIndex int) (int, error) {
	pos := 0
	for i := 0; i < r.width; i++ {
		off := entryIndex*r.width + i
		if off >= len(r.index) {
			return 0, errs.ErrInvalidIndex
		}
		pos |= int(r.index[off]) << (8 * i)
	}

	return pos, nil
}

// Get returns the value at index, a borrowed slice into the reader's
// value region.
func (r *Reader) Get(index int) ([]byte, error) {
	if index < 0 || index >= r.count {
		return nil, errs.ErrInvalidIndex
	}

	start := 0
	if index > 0 {
		s, err := r.position(index - 1)
		if err != nil {
			return nil, err
		}
		start = s
	}

	end, err := r.position(index)
	if err != nil {
		return nil, err
	}
	if end > len(r.value) {
		return nil, errs.ErrInvalidIndex
	}

	return r.value[start:end], nil
}

// Encoder is implemented by any builder that can report its own encoded
// length ahead of encoding, letting EncodeFromBuilders size a combining
// index without materializing every child twice.
type Encoder interface {
	EncodedLen() int
	Encode() []byte
}

// EncodeFromBuilders composes several independently-encodable builders
// (e.g. per-column sequence builders) into one indexed-beads buffer,
// without requiring the caller to pre-serialize each child.
func EncodeFromBuilders(builders []Encoder) []byte {
	if len(builders) == 0 {
		return nil
	}

	var cursor uint64
	for _, b := range builders {
		cursor += uint64(b.EncodedLen())
	}
	if cursor == 0 {
		return nil
	}

	width := byteWidth(cursor)
	header := (uint64(len(builders)) << 3) | uint64(width-1)

	var headBuf [vlq.MaxBytes]byte
	n := vlq.Put(headBuf[:], header)

	out := make([]byte, n, n+len(builders)*width+int(cursor))
	copy(out, headBuf[:n])

	running := uint64(0)
	var tmp [8]byte
	for _, b := range builders {
		running += uint64(b.EncodedLen())
		binary.LittleEndian.PutUint64(tmp[:], running)
		out = append(out, tmp[:width]...)
	}

	for _, b := range builders {
		out = append(out, b.Encode()...)
	}

	return out
}
