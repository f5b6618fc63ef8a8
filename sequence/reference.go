package sequence

import (
	"encoding/binary"
	"math"

	"github.com/arloliu/beads/beadtype"
	"github.com/arloliu/beads/errs"
	"github.com/arloliu/beads/internal/f16"
	"github.com/arloliu/beads/vlq"
)

// Reference is a lightweight, non-owning view of one decoded bead: the
// bead's type, a borrowed slice into the reader's backing buffer, and (for
// Vlq/VlqZ beads, whose payload the iterator already had to decode to learn
// its length) the pre-decoded magnitude.
//
// A Reference is only valid for as long as the byte slice it was built over
// remains alive and unmodified.
type Reference struct {
	typ  beadtype.Type
	data []byte
	raw  uint64 // pre-decoded Vlq/VlqZ magnitude, else unused
}

// Type returns the bead's concrete type.
func (r Reference) Type() beadtype.Type { return r.typ }

// Bytes returns the borrowed raw payload slice (empty for markers).
func (r Reference) Bytes() []byte { return r.data }

func (r Reference) IsNone() bool  { return r.typ == beadtype.None }
func (r Reference) IsTrue() bool  { return r.typ == beadtype.TrueFlag }
func (r Reference) IsFalse() bool { return r.typ == beadtype.FalseFlag }
func (r Reference) IsBool() bool  { return r.typ == beadtype.TrueFlag || r.typ == beadtype.FalseFlag }

func (r Reference) IsUint() bool {
	switch r.typ {
	case beadtype.U8, beadtype.U16, beadtype.U32, beadtype.U64, beadtype.U128, beadtype.Vlq:
		return true
	default:
		return false
	}
}

func (r Reference) IsInt() bool {
	switch r.typ {
	case beadtype.I8, beadtype.I16, beadtype.I32, beadtype.I64, beadtype.I128, beadtype.VlqZ:
		return true
	default:
		return false
	}
}

func (r Reference) IsFloat() bool {
	switch r.typ {
	case beadtype.F16, beadtype.F32, beadtype.F64:
		return true
	default:
		return false
	}
}

func (r Reference) IsString() bool { return r.typ == beadtype.Utf8 }
func (r Reference) IsBytes() bool  { return r.typ == beadtype.Bytes }

// Bool returns the reference's boolean value. Fails with
// errs.ErrTypeMismatch unless the bead is TrueFlag or FalseFlag.
func (r Reference) Bool() (bool, error) {
	if !r.IsBool() {
		return false, errs.ErrTypeMismatch
	}

	return r.typ == beadtype.TrueFlag, nil
}

// String returns the reference's UTF-8 string value. Fails with
// errs.ErrTypeMismatch unless the bead is Utf8.
func (r Reference) String() (string, error) {
	if !r.IsString() {
		return "", errs.ErrTypeMismatch
	}

	return string(r.data), nil
}

// ToBytes returns the reference's raw byte payload. Fails with
// errs.ErrTypeMismatch unless the bead is Bytes.
func (r Reference) ToBytes() ([]byte, error) {
	if !r.IsBytes() {
		return nil, errs.ErrTypeMismatch
	}

	return r.data, nil
}

// Uint returns the reference's value as an unsigned 64-bit integer,
// converting across numeric categories when the conversion is exact. Fails
// with errs.ErrTypeMismatch if the bead is not numeric, or if it holds a
// negative signed value.
func (r Reference) Uint() (uint64, error) {
	switch r.typ {
	case beadtype.Vlq:
		return r.raw, nil
	case beadtype.U8:
		return uint64(r.data[0]), nil
	case beadtype.U16:
		return uint64(binary.LittleEndian.Uint16(r.data)), nil
	case beadtype.U32:
		return uint64(binary.LittleEndian.Uint32(r.data)), nil
	case beadtype.U64:
		return binary.LittleEndian.Uint64(r.data), nil
	case beadtype.U128:
		return binary.LittleEndian.Uint64(r.data[:8]), nil
	}

	if r.IsInt() {
		v, err := r.Int()
		if err != nil {
			return 0, err
		}
		if v < 0 {
			return 0, errs.ErrTypeMismatch
		}

		return uint64(v), nil
	}

	return 0, errs.ErrTypeMismatch
}

// Int returns the reference's value as a signed 64-bit integer, converting
// across numeric categories when the conversion is exact.
func (r Reference) Int() (int64, error) {
	switch r.typ {
	case beadtype.VlqZ:
		return vlq.ZigZagDecode(r.raw), nil
	case beadtype.I8:
		return int64(int8(r.data[0])), nil
	case beadtype.I16:
		return int64(int16(binary.LittleEndian.Uint16(r.data))), nil
	case beadtype.I32:
		return int64(int32(binary.LittleEndian.Uint32(r.data))), nil
	case beadtype.I64:
		return int64(binary.LittleEndian.Uint64(r.data)), nil
	case beadtype.I128:
		return int64(binary.LittleEndian.Uint64(r.data[:8])), nil
	}

	if r.IsUint() {
		v, err := r.Uint()
		if err != nil {
			return 0, err
		}
		if v > math.MaxInt64 {
			return 0, errs.ErrTypeMismatch
		}

		return int64(v), nil
	}

	return 0, errs.ErrTypeMismatch
}

// Float returns the reference's value as a float64, widening integers
// exactly representable in floating point.
func (r Reference) Float() (float64, error) {
	switch r.typ {
	case beadtype.F16:
		return f16.ToFloat64(binary.LittleEndian.Uint16(r.data)), nil
	case beadtype.F32:
		return float64(math.Float32frombits(binary.LittleEndian.Uint32(r.data))), nil
	case beadtype.F64:
		return math.Float64frombits(binary.LittleEndian.Uint64(r.data)), nil
	}

	if r.IsUint() {
		v, err := r.Uint()
		if err != nil {
			return 0, err
		}

		return float64(v), nil
	}
	if r.IsInt() {
		v, err := r.Int()
		if err != nil {
			return 0, err
		}

		return float64(v), nil
	}

	return 0, errs.ErrTypeMismatch
}
