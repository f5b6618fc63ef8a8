// Package compress provides the optional compression envelope wrapped
// around an encoded beads buffer for storage or transmission: one byte
// naming the algorithm (None, Zstd, S2, or LZ4), a VLQ-encoded
// uncompressed length, then the payload.
//
// Compression sits outside the beads wire format itself — a reader must
// call Open before handing the result to beadtype/sequence/container
// decoders, and a writer calls Envelope only after finishing encoding.
//
//	enveloped, err := compress.Envelope(compress.Zstd, encoded)
//	...
//	original, err := compress.Open(enveloped)
//
// Zstd favors compression ratio over speed, S2 balances the two, and LZ4
// favors decompression speed; None passes data through unchanged.
package compress
