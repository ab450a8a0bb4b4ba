// Copyright 2026 The fixedpoint authors. All rights reserved.

package fixedpoint

import (
	"fmt"
	"math/big"
	"strings"
)

// Bits is a read-only view of a value's raw bit pattern that supports single
// bit access, named field mapping, and slicing.
type Bits struct {
	raw    *big.Int
	signed bool
	m, n   int
}

// Bits returns a view of the raw bits of x.
func (x *FixedPoint) Bits() Bits {
	return Bits{raw: new(big.Int).Set(x.bits), signed: x.signed, m: x.m, n: x.n}
}

// RawBits returns a copy of the raw bit pattern as an unsigned integer.
func (x *FixedPoint) RawBits() *big.Int { return new(big.Int).Set(x.bits) }

func (b Bits) format() string { return formatQ(b.signed, b.m, b.n) }

// String returns the full-width binary rendition of the word, MSB first.
func (b Bits) String() string {
	return fmt.Sprintf("%0*b", b.m+b.n, b.raw)
}

// Bit returns bit i of the word, where the LSB is index 0. Negative indices
// also count from the LSB: -1 is the LSB, -2 the bit above it.
func (b Bits) Bit(i int) (uint, error) {
	l := b.m + b.n
	if i < -l || i >= l {
		return 0, fmt.Errorf("%w: bit %d does not exist in %s format", ErrBitSpec, i, b.format())
	}
	if i < 0 {
		i = -(i + 1)
	}
	return b.raw.Bit(i), nil
}

// FieldString returns a named bit field as a binary string, MSB first.
// Valid keys are "m"/"int" for the integer bits, "n"/"frac" for the
// fractional bits, "s"/"sign" for the sign bit of signed values, and
// "msb"/"lsb". Keys are case-insensitive; a key naming an empty field is
// invalid.
func (b Bits) FieldString(key string) (string, error) {
	s := b.String()
	switch k := strings.ToLower(key); {
	case (k == "m" || k == "int") && b.m > 0:
		return s[:b.m], nil
	case (k == "n" || k == "frac") && b.n > 0:
		return s[len(s)-b.n:], nil
	case k == "msb" || b.signed && (k == "s" || k == "sign"):
		return s[:1], nil
	case k == "lsb":
		return s[len(s)-1:], nil
	}
	return "", fmt.Errorf("%w: invalid bit specification %q for %s format", ErrBitSpec, key, b.format())
}

// Field returns a named bit field as an integer. See FieldString for the
// valid keys.
func (b Bits) Field(key string) (*big.Int, error) {
	s, err := b.FieldString(key)
	if err != nil {
		return nil, err
	}
	return bitsFromBinary(s), nil
}

// Slice returns a range of bits as a binary string.
//
// With non-negative bounds and a step of 0, 1 or -1, bounds are inclusive
// bit positions: ascending ranges index from the MSB (position 0), while
// descending ranges index from the LSB. Equal bounds require an explicit
// step of 1 or -1.
//
// Any other combination is an extended slice over the MSB-first bit string,
// with an exclusive stop bound, negative indices counting from the end, and
// out-of-range bounds clamped. A step of 0 means 1.
func (b Bits) Slice(start, stop, step int) (string, error) {
	s := b.String()
	if start >= 0 && stop >= 0 && step >= -1 && step <= 1 {
		switch {
		case start < stop || start == stop && step == 1:
			return substr(s, start, stop+1), nil
		case start > stop || start == stop && step == -1:
			r := reverse(s)
			return reverse(substr(r, stop, start+1)), nil
		default:
			return "", fmt.Errorf("%w: step must be 1 or -1 for equivalent start and stop bound %d",
				ErrBitSpec, start)
		}
	}
	if step == 0 {
		step = 1
	}
	lo, hi := sliceIndices(start, step, len(s)), sliceIndices(stop, step, len(s))
	var sb strings.Builder
	for i := lo; step > 0 && i < hi || step < 0 && i > hi; i += step {
		sb.WriteByte(s[i])
	}
	return sb.String(), nil
}

// SliceInt returns a range of bits as an integer. See Slice for the index
// semantics; an empty range yields 0.
func (b Bits) SliceInt(start, stop, step int) (*big.Int, error) {
	s, err := b.Slice(start, stop, step)
	if err != nil {
		return nil, err
	}
	return bitsFromBinary(s), nil
}

func bitsFromBinary(s string) *big.Int {
	v := new(big.Int)
	if s != "" {
		v.SetString(s, 2)
	}
	return v
}

func substr(s string, lo, hi int) string {
	if lo < 0 {
		lo = 0
	}
	if hi > len(s) {
		hi = len(s)
	}
	if lo >= hi {
		return ""
	}
	return s[lo:hi]
}

func reverse(s string) string {
	b := []byte(s)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return string(b)
}

// sliceIndices normalizes an extended slice bound the way extended string
// slicing does: negative indices count from the end, and out-of-range bounds
// clamp to the nearest reachable position for the step direction.
func sliceIndices(i, step, l int) int {
	if i < 0 {
		i += l
		if i < 0 {
			if step < 0 {
				return -1
			}
			return 0
		}
		return i
	}
	if i >= l {
		if step < 0 {
			return l - 1
		}
		return l
	}
	return i
}
