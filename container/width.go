// Package container implements the four Beads container formats that sit
// on top of a tagged sequence or a raw byte blob: indexed (length-prefixed
// blobs with a side index), fixed-size (uniform-width records), fixed-size
// incremental-uint (auto-narrowing uint records), and dedup (indexed
// beads of exactly two children: an index-of-indices and a unique-value
// pool).
package container

// byteWidth returns the number of bytes needed to hold v in a minimal
// little-endian unsigned representation: 0 only for v == 0 (an all-zero
// column needs no storage at all), otherwise ceil(bitlen(v)/8).
func byteWidth(v uint64) int {
	n := 0
	for v > 0 {
		n++
		v >>= 8
	}

	return n
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}

	return b
}
