package sequence

import (
	"github.com/arloliu/beads/beadtype"
	"github.com/arloliu/beads/errs"
	"github.com/arloliu/beads/vlq"
)

// Reader decodes a tagged-sequence buffer produced by Builder.Encode: a
// leading VLQ-encoded element count followed by the interleaved tag/data
// bytes.
type Reader struct {
	set    beadtype.Set
	types  []beadtype.Type
	layout tagLayout
	buf    []byte
	count  int
}

// NewReader decodes buf — as produced by Builder.Encode — as a tagged
// sequence over set.
func NewReader(buf []byte, set beadtype.Set) (*Reader, error) {
	count, n, err := vlq.Read(buf)
	if err != nil {
		return nil, err
	}

	return NewReaderFromParts(buf[n:], set, int(count)), nil
}

// NewReaderWithTypes decodes buf — as produced by Builder.EncodeWithTypes
// — recovering the type set from its leading 4-byte mask.
func NewReaderWithTypes(buf []byte) (*Reader, error) {
	if len(buf) < 4 {
		return nil, errs.ErrTruncatedBuffer
	}

	mask := uint32(buf[0]) | uint32(buf[1])<<8 | uint32(buf[2])<<16 | uint32(buf[3])<<24
	set, err := beadtype.FromMask(mask)
	if err != nil {
		return nil, err
	}

	return NewReader(buf[4:], set)
}

// NewReaderFromParts wraps buf — already stripped of any count or
// type-set framing, as produced by Builder.Bytes — as a tagged sequence
// of count elements over set. Container formats that track their own
// element counts use this to avoid the redundant leading VLQ.
func NewReaderFromParts(buf []byte, set beadtype.Set, count int) *Reader {
	types := set.Types()

	return &Reader{
		set:    set,
		types:  types,
		layout: newTagLayout(len(types)),
		buf:    buf,
		count:  count,
	}
}

// Len returns the number of elements in the sequence.
func (r *Reader) Len() int { return r.count }

// Set returns the reader's type set.
func (r *Reader) Set() beadtype.Set { return r.set }

// IsSymmetric reports whether every member type shares one fixed data
// size, the precondition for Symmetric.
func (r *Reader) IsSymmetric() bool { return r.set.IsSymmetric() }

// Iterator returns a fresh forward iterator positioned before the first
// element.
func (r *Reader) Iterator() *Iterator {
	return &Iterator{r: r}
}

// Symmetric returns an O(1) random-access view. It fails with
// errs.ErrNotSymmetric if the set is not symmetric.
func (r *Reader) Symmetric() (*SymmetricView, error) {
	if !r.IsSymmetric() {
		return nil, errs.ErrNotSymmetric
	}

	return &SymmetricView{r: r, dataSize: r.types[0].DataSize()}, nil
}

// Iterator walks a Reader's elements in order, decoding each bead's type
// and payload lazily as it is reached.
type Iterator struct {
	r          *Reader
	index      int
	tagCursor  int
	dataCursor int
}

// Next decodes and returns the next element, or (Reference{}, false) once
// the sequence is exhausted.
func (it *Iterator) Next() (Reference, bool) {
	r := it.r
	if it.index >= r.count {
		return Reference{}, false
	}

	var t beadtype.Type
	if len(r.types) == 1 {
		t = r.types[0]
	} else {
		positionInByte := it.index % r.layout.tagsPerByte
		if positionInByte == 0 && it.index > 0 {
			next := it.tagCursor + 1
			if it.dataCursor > next {
				next = it.dataCursor
			}
			it.tagCursor = next
		}

		shift := positionInByte * r.layout.bitsPerTag
		tagByte := r.buf[it.tagCursor]
		typeIdx := (tagByte >> shift) & r.layout.mask
		t = r.types[typeIdx]
	}

	additive := 0
	if len(r.types) > 1 && !t.HasNoData() {
		additive = 1
	}

	start := it.dataCursor
	if len(r.types) > 1 {
		cand := it.tagCursor + additive
		if cand > start {
			start = cand
		}
	}

	ref, consumed := decodeAt(r.buf, start, t)

	it.dataCursor = start + consumed
	it.index++

	return ref, true
}

// decodeAt decodes one bead's payload starting at offset start, returning
// the populated Reference and the number of payload bytes consumed.
func decodeAt(buf []byte, start int, t beadtype.Type) (Reference, int) {
	switch {
	case t.HasNoData():
		return Reference{typ: t}, 0
	case t == beadtype.Vlq:
		value, n, err := vlq.Read(buf[start:])
		if err != nil {
			return Reference{typ: t}, 0
		}

		return Reference{typ: t, raw: value}, n
	case t == beadtype.VlqZ:
		value, n, err := vlq.Read(buf[start:])
		if err != nil {
			return Reference{typ: t}, 0
		}

		return Reference{typ: t, raw: value}, n
	case t == beadtype.Utf8 || t == beadtype.Bytes:
		length, n, err := vlq.Read(buf[start:])
		if err != nil {
			return Reference{typ: t}, 0
		}

		data := buf[start+n : start+n+int(length)]

		return Reference{typ: t, data: data}, n + int(length)
	default:
		size := t.DataSize()
		data := buf[start : start+size]

		return Reference{typ: t, data: data}, size
	}
}

// SymmetricView provides O(1) random access into a sequence whose type
// set is symmetric: every member shares one fixed data size, so an
// element's offset is a closed-form function of its index.
type SymmetricView struct {
	r        *Reader
	dataSize int
}

// Len returns the number of elements.
func (s *SymmetricView) Len() int { return s.r.count }

// Get decodes the element at index i directly, without scanning the
// elements before it. It fails with errs.ErrInvalidIndex if i is out of
// range, or errs.ErrTruncatedBuffer if the backing buffer is shorter than
// the computed offsets require.
func (s *SymmetricView) Get(i int) (Reference, error) {
	r := s.r
	if i < 0 || i >= r.count {
		return Reference{}, errs.ErrInvalidIndex
	}

	if len(r.types) == 1 {
		t := r.types[0]
		start := i * s.dataSize
		if start+s.dataSize > len(r.buf) {
			return Reference{}, errs.ErrTruncatedBuffer
		}

		if t.HasNoData() {
			return Reference{typ: t}, nil
		}

		return Reference{typ: t, data: r.buf[start : start+s.dataSize]}, nil
	}

	tagsPerByte := r.layout.tagsPerByte
	tagIndex := i % tagsPerByte
	numTagBytes := i / tagsPerByte
	numDataBytes := s.dataSize * tagsPerByte * numTagBytes

	tagByteOffset := numTagBytes + numDataBytes
	if tagByteOffset >= len(r.buf) {
		return Reference{}, errs.ErrTruncatedBuffer
	}

	shift := tagIndex * r.layout.bitsPerTag
	typeIdx := (r.buf[tagByteOffset] >> shift) & r.layout.mask
	if int(typeIdx) >= len(r.types) {
		return Reference{}, errs.ErrTruncatedBuffer
	}
	t := r.types[typeIdx]

	additive := 0
	if !t.HasNoData() {
		additive = 1
	}
	dataStart := numTagBytes + additive + i*s.dataSize

	if t.HasNoData() {
		return Reference{typ: t}, nil
	}
	if dataStart+s.dataSize > len(r.buf) {
		return Reference{}, errs.ErrTruncatedBuffer
	}

	return Reference{typ: t, data: r.buf[dataStart : dataStart+s.dataSize]}, nil
}
