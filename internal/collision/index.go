// Package collision implements hash-bucketed value deduplication: a fast
// way to map repeated byte values onto a single stored slot without
// comparing every pushed value against every earlier one.
package collision

import (
	"bytes"

	"github.com/cespare/xxhash/v2"
)

// Index maps pushed byte values to a small integer slot, reusing the slot
// of any earlier value with identical bytes. A lookup hashes the value
// with xxHash64 and walks the hash's bucket verifying full equality
// before reusing a slot, so a hash collision never merges two distinct
// values into the same slot.
type Index struct {
	buckets map[uint64][]int
	values  [][]byte
}

// NewIndex starts an empty index.
func NewIndex() *Index {
	return &Index{buckets: make(map[uint64][]int)}
}

// Slot returns the slot of an identical previously-seen value, or assigns
// and returns a new one.
func (idx *Index) Slot(value []byte) int {
	h := xxhash.Sum64(value)
	for _, slot := range idx.buckets[h] {
		if bytes.Equal(idx.values[slot], value) {
			return slot
		}
	}

	slot := len(idx.values)
	idx.values = append(idx.values, value)
	idx.buckets[h] = append(idx.buckets[h], slot)

	return slot
}

// Values returns the distinct values in slot order.
func (idx *Index) Values() [][]byte { return idx.values }

// Len returns the number of distinct values stored.
func (idx *Index) Len() int { return len(idx.values) }
