// Package errs collects the sentinel errors returned across the beads
// module. Callers should test for these with errors.Is rather than string
// matching; call sites that need more context wrap them with fmt.Errorf's
// %w verb.
package errs

import "errors"

var (
	// ErrBadTypeSet is returned when a type set is empty or carries more
	// than 16 members.
	ErrBadTypeSet = errors.New("beads: type set must carry 1..=16 types")

	// ErrTruncatedBuffer is returned when a read runs past the end of the
	// input slice.
	ErrTruncatedBuffer = errors.New("beads: truncated buffer")

	// ErrInvalidVarint is returned when a VLQ is unterminated or exceeds
	// the widest value the decoder will accept.
	ErrInvalidVarint = errors.New("beads: invalid or truncated varint")

	// ErrInvalidIndex is returned by Get(i) when i is out of bounds.
	ErrInvalidIndex = errors.New("beads: index out of bounds")

	// ErrTypeMismatch is returned when a value accessor is called on a
	// reference of an incompatible type category.
	ErrTypeMismatch = errors.New("beads: value accessor called on incompatible bead type")

	// ErrNotSymmetric is returned by sequence.Reader.Symmetric when the
	// sequence's type set does not have a uniform, finite data size.
	ErrNotSymmetric = errors.New("beads: sequence is not symmetrical")

	// ErrDedupRootShape is returned by NewDedupReader when the decoded
	// root is not an indexed container of exactly two children (the
	// index-of-indices and the unique-value pool) — the shape every
	// buffer produced by DedupBuilder.Encode has.
	ErrDedupRootShape = errors.New("beads: dedup root does not have exactly two children")
)
