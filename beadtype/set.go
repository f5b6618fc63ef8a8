package beadtype

import (
	"encoding/binary"

	"github.com/arloliu/beads/errs"
)

// Set is an immutable subset of 1..=16 bead types, stored as the 32-bit
// OR-mask of their bit positions — exactly the mask written to the wire by
// the types-included tagged-sequence variant.
type Set struct {
	mask uint32
}

// NewSet builds a Set from an explicit list of types. It fails with
// errs.ErrBadTypeSet if the resulting set is empty or carries more than 16
// distinct members.
func NewSet(types ...Type) (Set, error) {
	var mask uint32
	for _, t := range types {
		mask |= uint32(t)
	}

	return FromMask(mask)
}

// FromMask wraps a raw 32-bit mask (e.g. one decoded from a types-included
// buffer) as a Set, validating its size.
func FromMask(mask uint32) (Set, error) {
	s := Set{mask: mask}
	n := s.Size()
	if n < 1 || n > 16 {
		return Set{}, errs.ErrBadTypeSet
	}

	return s, nil
}

// Contains reports whether t is a member of the set.
func (s Set) Contains(t Type) bool {
	return uint32(t)&s.mask != 0
}

// Size returns the number of member types.
func (s Set) Size() int {
	n := 0
	m := s.mask
	for m != 0 {
		m &= m - 1
		n++
	}

	return n
}

// Mask returns the raw 32-bit mask.
func (s Set) Mask() uint32 {
	return s.mask
}

// Bytes returns the little-endian 4-byte wire form of the mask.
func (s Set) Bytes() [4]byte {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], s.mask)

	return b
}

// Types returns the set's members in catalog declaration order — the same
// order used to assign in-set tag indices.
func (s Set) Types() []Type {
	types := make([]Type, 0, s.Size())
	for _, t := range DeclarationOrder() {
		if s.Contains(t) {
			types = append(types, t)
		}
	}

	return types
}

// IsSymmetric reports whether every member type has the same, finite
// DataSize — the precondition for O(1) random access (see Open Question 2:
// a pure-marker set, where every member reports size 0, is symmetric; a
// set mixing a marker with a sized type is not, because the marker's size
// (0) differs from the sized type's).
func (s Set) IsSymmetric() bool {
	types := s.Types()
	if len(types) == 0 {
		return false
	}

	size := types[0].DataSize()
	if size == VariableSize {
		return false
	}
	for _, t := range types[1:] {
		if t.DataSize() != size {
			return false
		}
	}

	return true
}
