package csv

import (
	"fmt"
	"strconv"

	"github.com/arloliu/beads/beadtype"
	"github.com/arloliu/beads/sequence"
)

// StringBeadsToIntBeads re-reads a {Utf8} tagged sequence and re-encodes
// each value as an integer into target. A value that fails to parse, or
// that no member of target fits, falls back to None when target
// contains it; otherwise the conversion fails with a descriptive error.
//
// Values are parsed as base-10 int64, not the original format's i128 —
// the same 64-bit simplification documented on the beadtype package.
func StringBeadsToIntBeads(buf []byte, target beadtype.Set) ([]byte, error) {
	utf8Set, err := beadtype.NewSet(beadtype.Utf8)
	if err != nil {
		return nil, err
	}

	reader, err := sequence.NewReader(buf, utf8Set)
	if err != nil {
		return nil, err
	}

	out := sequence.NewBuilder(target)
	it := reader.Iterator()
	for {
		ref, ok := it.Next()
		if !ok {
			break
		}

		s, err := ref.String()
		if err != nil {
			return nil, err
		}

		v, parseErr := strconv.ParseInt(s, 10, 64)
		if parseErr != nil {
			if !out.PushNone() {
				return nil, fmt.Errorf("csv: could not parse %q as an integer and target set has no None fallback", s)
			}

			continue
		}

		if !out.PushInt(v) {
			if !out.PushNone() {
				return nil, fmt.Errorf("csv: value %d does not fit target type set and has no None fallback", v)
			}
		}
	}

	return out.Encode(), nil
}

// StringBeadsToDoubleBeads re-reads a {Utf8} tagged sequence and
// re-encodes each value as a float into target, within accuracy (0
// demands an exact round trip). Behaves like StringBeadsToIntBeads on
// parse or fit failure.
func StringBeadsToDoubleBeads(buf []byte, target beadtype.Set, accuracy float64) ([]byte, error) {
	utf8Set, err := beadtype.NewSet(beadtype.Utf8)
	if err != nil {
		return nil, err
	}

	reader, err := sequence.NewReader(buf, utf8Set)
	if err != nil {
		return nil, err
	}

	out := sequence.NewBuilder(target)
	it := reader.Iterator()
	for {
		ref, ok := it.Next()
		if !ok {
			break
		}

		s, err := ref.String()
		if err != nil {
			return nil, err
		}

		v, parseErr := strconv.ParseFloat(s, 64)
		if parseErr != nil {
			if !out.PushNone() {
				return nil, fmt.Errorf("csv: could not parse %q as a float and target set has no None fallback", s)
			}

			continue
		}

		if !out.PushDouble(v, accuracy) {
			if !out.PushNone() {
				return nil, fmt.Errorf("csv: value %g does not fit target type set and has no None fallback", v)
			}
		}
	}

	return out.Encode(), nil
}
