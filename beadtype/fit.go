package beadtype

import (
	"encoding/binary"
	"math"

	"github.com/arloliu/beads/internal/f16"
	"github.com/arloliu/beads/vlq"
)

// put16 writes a 16-byte little-endian two's-complement/zero-extended
// record for the U128/I128 bead types, given a 64-bit magnitude and a
// sign-extension byte (0x00 for non-negative, 0xff for negative).
func put16(buf []byte, lo uint64, fill byte) {
	binary.LittleEndian.PutUint64(buf[0:8], lo)
	for i := 8; i < 16; i++ {
		buf[i] = fill
	}
}

// PushUint attempts to encode a non-negative integer as this bead type.
// It reports the number of bytes written and whether the value fit.
func (t Type) PushUint(value uint64, buf []byte) (int, bool) {
	switch t {
	case U8:
		if value>>8 == 0 {
			buf[0] = byte(value)
			return 1, true
		}
	case U16:
		if value>>16 == 0 {
			binary.LittleEndian.PutUint16(buf, uint16(value))
			return 2, true
		}
	case U32:
		if value>>32 == 0 {
			binary.LittleEndian.PutUint32(buf, uint32(value))
			return 4, true
		}
	case U64:
		binary.LittleEndian.PutUint64(buf, value)
		return 8, true
	case U128:
		put16(buf, value, 0x00)
		return 16, true
	case I8:
		if value>>7 == 0 {
			buf[0] = byte(value)
			return 1, true
		}
	case I16:
		if value>>15 == 0 {
			binary.LittleEndian.PutUint16(buf, uint16(value))
			return 2, true
		}
	case I32:
		if value>>31 == 0 {
			binary.LittleEndian.PutUint32(buf, uint32(value))
			return 4, true
		}
	case I64:
		if value>>63 == 0 {
			binary.LittleEndian.PutUint64(buf, value)
			return 8, true
		}
	case I128:
		// value is a non-negative uint64 magnitude; as a 128-bit signed
		// value it always fits with a zero high half.
		put16(buf, value, 0x00)
		return 16, true
	case Vlq:
		return vlq.Put(buf, value), true
	case VlqZ:
		if value <= math.MaxInt64 {
			return vlq.PutZigZag(buf, int64(value)), true
		}
	case F32:
		f := float32(value)
		if value == uint64(f) {
			binary.LittleEndian.PutUint32(buf, math.Float32bits(f))
			return 4, true
		}
	case F64:
		f := float64(value)
		if value == uint64(f) {
			binary.LittleEndian.PutUint64(buf, math.Float64bits(f))
			return 8, true
		}
	case F16:
		bits := f16.FromFloat32(float32(value))
		if value == uint64(f16.ToFloat32(bits)) {
			binary.LittleEndian.PutUint16(buf, bits)
			return 2, true
		}
	}

	return 0, false
}

// PushInt attempts to encode a signed integer as this bead type.
func (t Type) PushInt(value int64, buf []byte) (int, bool) {
	switch t {
	case I8:
		v := int8(value)
		if int64(v) == value {
			buf[0] = byte(v)
			return 1, true
		}
	case I16:
		v := int16(value)
		if int64(v) == value {
			binary.LittleEndian.PutUint16(buf, uint16(v))
			return 2, true
		}
	case I32:
		v := int32(value)
		if int64(v) == value {
			binary.LittleEndian.PutUint32(buf, uint32(v))
			return 4, true
		}
	case I64:
		binary.LittleEndian.PutUint64(buf, uint64(value))
		return 8, true
	case I128:
		fill := byte(0x00)
		if value < 0 {
			fill = 0xff
		}
		put16(buf, uint64(value), fill)
		return 16, true
	case U8:
		if value >= 0 && value>>8 == 0 {
			buf[0] = byte(value)
			return 1, true
		}
	case U16:
		if value >= 0 && value>>16 == 0 {
			binary.LittleEndian.PutUint16(buf, uint16(value))
			return 2, true
		}
	case U32:
		if value >= 0 && value>>32 == 0 {
			binary.LittleEndian.PutUint32(buf, uint32(value))
			return 4, true
		}
	case U64:
		if value >= 0 {
			binary.LittleEndian.PutUint64(buf, uint64(value))
			return 8, true
		}
	case U128:
		if value >= 0 {
			put16(buf, uint64(value), 0x00)
			return 16, true
		}
	case Vlq:
		if value >= 0 {
			return vlq.Put(buf, uint64(value)), true
		}
	case VlqZ:
		return vlq.PutZigZag(buf, value), true
	case F32:
		f := float32(value)
		if value == int64(f) {
			binary.LittleEndian.PutUint32(buf, math.Float32bits(f))
			return 4, true
		}
	case F64:
		f := float64(value)
		if value == int64(f) {
			binary.LittleEndian.PutUint64(buf, math.Float64bits(f))
			return 8, true
		}
	case F16:
		bits := f16.FromFloat32(float32(value))
		if value == int64(f16.ToFloat32(bits)) {
			binary.LittleEndian.PutUint16(buf, bits)
			return 2, true
		}
	}

	return 0, false
}

// PushDouble attempts to encode a floating-point value as this bead type.
// accuracy is the maximum allowed absolute error for lossy (integer or
// narrower-float) encodings; 0 demands an exact round trip.
func (t Type) PushDouble(value float64, accuracy float64, buf []byte) (int, bool) {
	fits := func(v float64) bool {
		d := value - v
		if d < 0 {
			d = -d
		}

		return d <= accuracy
	}

	switch t {
	case I8:
		v := int8(value)
		if fits(float64(v)) {
			buf[0] = byte(v)
			return 1, true
		}
	case I16:
		v := int16(value)
		if fits(float64(v)) {
			binary.LittleEndian.PutUint16(buf, uint16(v))
			return 2, true
		}
	case I32:
		v := int32(value)
		if fits(float64(v)) {
			binary.LittleEndian.PutUint32(buf, uint32(v))
			return 4, true
		}
	case U8:
		v := uint8(value)
		if fits(float64(v)) {
			buf[0] = v
			return 1, true
		}
	case U16:
		v := uint16(value)
		if fits(float64(v)) {
			binary.LittleEndian.PutUint16(buf, v)
			return 2, true
		}
	case U32:
		v := uint32(value)
		if fits(float64(v)) {
			binary.LittleEndian.PutUint32(buf, v)
			return 4, true
		}
	case Vlq:
		if value >= 0 {
			v := uint64(value)
			if fits(float64(v)) {
				return vlq.Put(buf, v), true
			}
		}
	case VlqZ:
		v := int64(value)
		if fits(float64(v)) {
			return vlq.PutZigZag(buf, v), true
		}
	case F32:
		v := float32(value)
		if fits(float64(v)) {
			binary.LittleEndian.PutUint32(buf, math.Float32bits(v))
			return 4, true
		}
	case F64:
		binary.LittleEndian.PutUint64(buf, math.Float64bits(value))
		return 8, true
	case F16:
		bits := f16.FromFloat32(float32(value))
		if fits(f16.ToFloat64(bits)) {
			binary.LittleEndian.PutUint16(buf, bits)
			return 2, true
		}
	}

	return 0, false
}
