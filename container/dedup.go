package container

import (
	"github.com/arloliu/beads/errs"
	"github.com/arloliu/beads/internal/collision"
	"github.com/arloliu/beads/vlq"
)

// DedupBuilder deduplicates pushed byte values against a hash-bucketed
// index, storing each distinct value once and recording, for every push,
// the slot it landed in. It encodes as indexed beads of exactly two
// children: a fixed/incremental-uint index-of-indices and an indexed pool
// of unique values — so Get on the decoded side reaches its result through
// an extra index lookup; the returned slice is still borrowed from the
// reader's buffer.
type DedupBuilder struct {
	index   *collision.Index
	indices []uint64
}

// NewDedupBuilder starts an empty dedup builder.
func NewDedupBuilder() *DedupBuilder {
	return &DedupBuilder{index: collision.NewIndex()}
}

// Push records value, reusing an existing slot if an identical value was
// already pushed.
func (b *DedupBuilder) Push(value []byte) {
	slot := b.index.Slot(value)
	b.indices = append(b.indices, uint64(slot))
}

// Len returns the number of pushed values (including repeats).
func (b *DedupBuilder) Len() int { return len(b.indices) }

// Unique returns the number of distinct values stored.
func (b *DedupBuilder) Unique() int { return b.index.Len() }

// Encode finalizes the builder into the dedup wire form. The
// index-of-indices child carries an explicit leading VLQ element count:
// IncrementalUintBuilder's own wire form infers its record count from
// buffer length divided by record width, which is ambiguous whenever
// every stored index is the same value as zero (the builder picks a
// record width of 0, and the resulting empty buffer cannot otherwise be
// told apart from zero records) — the common case of a column that
// dedups to a single unique value.
func (b *DedupBuilder) Encode() []byte {
	indexBuilder := NewIncrementalUintBuilder()
	for _, idx := range b.indices {
		indexBuilder.Push(idx)
	}
	indexBytes := indexBuilder.Encode()

	var countBuf [vlq.MaxBytes]byte
	countLen := vlq.Put(countBuf[:], uint64(len(b.indices)))
	indexChild := make([]byte, countLen+len(indexBytes))
	copy(indexChild, countBuf[:countLen])
	copy(indexChild[countLen:], indexBytes)

	valuesBuilder := NewIndexedBuilder()
	for _, v := range b.index.Values() {
		valuesBuilder.Push(v)
	}

	root := NewIndexedBuilder()
	root.Push(indexChild)
	root.Push(valuesBuilder.Encode())

	return root.Encode()
}

// DedupReader decodes a dedup-beads buffer.
type DedupReader struct {
	count          int
	indexOfIndices *FixedReader
	values         *Reader
}

// NewDedupReader decodes buf as dedup beads.
func NewDedupReader(buf []byte) (*DedupReader, error) {
	root, err := NewReader(buf)
	if err != nil {
		return nil, err
	}
	if root.Len() != 2 {
		return nil, errs.ErrDedupRootShape
	}

	indexChild, err := root.Get(0)
	if err != nil {
		return nil, err
	}
	valuesBuf, err := root.Get(1)
	if err != nil {
		return nil, err
	}

	count, n, err := vlq.Read(indexChild)
	if err != nil {
		return nil, err
	}

	indexOfIndices, err := NewFixedReader(indexChild[n:])
	if err != nil {
		return nil, err
	}
	values, err := NewReader(valuesBuf)
	if err != nil {
		return nil, err
	}

	return &DedupReader{count: int(count), indexOfIndices: indexOfIndices, values: values}, nil
}

// Len returns the number of values (including repeats).
func (r *DedupReader) Len() int { return r.count }

// Get reconstructs the value at index by following its stored slot into
// the unique-value pool.
func (r *DedupReader) Get(index int) ([]byte, error) {
	if index < 0 || index >= r.count {
		return nil, errs.ErrInvalidIndex
	}

	record, err := r.indexOfIndices.Get(index)
	if err != nil {
		return nil, err
	}

	slot := int(UintFromRecord(record))

	return r.values.Get(slot)
}
