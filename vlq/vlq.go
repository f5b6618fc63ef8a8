// Package vlq implements unsigned base-128 variable-length integer encoding
// and the zig-zag mapping used to carry signed values over the same wire
// encoding.
//
// Encoding is little-endian group order: the low 7 bits of the value are
// emitted with the continuation bit (0x80) set while more bits remain, and
// the encoding terminates on a byte without the continuation bit. Zero
// encodes as a single 0x00 byte.
package vlq

import "github.com/arloliu/beads/errs"

// MaxBytes is the widest varint this package ever produces: a full 64-bit
// magnitude needs at most ceil(64/7) = 10 groups.
const MaxBytes = 10

// Append appends the unsigned base-128 encoding of value to buf and returns
// the extended slice.
func Append(buf []byte, value uint64) []byte {
	for value > 127 {
		buf = append(buf, byte(value&127)|0x80)
		value >>= 7
	}

	return append(buf, byte(value))
}

// Put writes the unsigned base-128 encoding of value into buf starting at
// offset 0 and returns the number of bytes written. buf must have at least
// Size(value) bytes of capacity.
func Put(buf []byte, value uint64) int {
	n := 0
	for value > 127 {
		buf[n] = byte(value&127) | 0x80
		n++
		value >>= 7
	}
	buf[n] = byte(value)

	return n + 1
}

// Size returns the number of bytes Put/Append would write for value,
// without writing anything. Used for length pre-computation in indexed
// containers.
func Size(value uint64) int {
	n := 1
	for value > 127 {
		n++
		value >>= 7
	}

	return n
}

// ZigZagEncode maps a signed 64-bit value to an unsigned value so that
// small magnitudes (positive or negative) encode to short varints.
func ZigZagEncode(value int64) uint64 {
	return uint64((value >> 63) ^ (value << 1))
}

// ZigZagDecode is the inverse of ZigZagEncode.
func ZigZagDecode(value uint64) int64 {
	return int64(value>>1) ^ -int64(value&1)
}

// PutZigZag writes the zig-zag/VLQ encoding of a signed value into buf and
// returns the number of bytes written.
func PutZigZag(buf []byte, value int64) int {
	return Put(buf, ZigZagEncode(value))
}

// Read decodes a single VLQ from the front of buf, returning the decoded
// value and the number of bytes consumed. It fails with
// errs.ErrInvalidVarint if the buffer is exhausted before the varint
// terminates, or if the varint would need more than MaxBytes groups.
func Read(buf []byte) (value uint64, n int, err error) {
	var shift uint
	for n = 0; n < len(buf) && n < MaxBytes; n++ {
		b := buf[n]
		value |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			return value, n + 1, nil
		}
		shift += 7
	}

	return 0, 0, errs.ErrInvalidVarint
}
