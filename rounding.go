// Copyright 2026 The fixedpoint authors. All rights reserved.

package fixedpoint

import (
	"fmt"
	"math/big"

	"github.com/avdva/fixedpoint/internal/bitstring"
)

func (x *FixedPoint) roundArgCheck(nfrac int) error {
	if nfrac < b2i(x.m == 0) || nfrac >= x.n {
		return fmt.Errorf("%w: cannot round %s format to %d fractional bits",
			ErrInvalidFormat, x.QFormat(), nfrac)
	}
	return nil
}

// roundWith reduces the fractional width to nfrac using the given scheme.
// An increment past the maximum triggers overflow handling; rounding can
// never underflow, a value only moves towards positive infinity or stays.
func (x *FixedPoint) roundWith(mode Rounding, nfrac int) error {
	if err := x.roundArgCheck(nfrac); err != nil {
		return err
	}
	shift := uint(x.n - nfrac)
	sv := x.signedValue()
	truncated := new(big.Int).Rsh(sv, shift)
	rem := new(big.Int).Lsh(truncated, shift)
	rem.Sub(sv, rem)

	inc := false
	if rem.Sign() != 0 {
		half := new(big.Int).Lsh(big.NewInt(1), shift-1)
		halfCmp := rem.Cmp(half)
		switch mode {
		case RoundingConvergent:
			inc = halfCmp > 0 || halfCmp == 0 && truncated.Bit(0) == 1
		case RoundingNearest:
			inc = halfCmp >= 0
		case RoundingDown:
		case RoundingIn:
			inc = sv.Sign() < 0
		case RoundingOut:
			if sv.Sign() < 0 {
				inc = halfCmp > 0
			} else {
				inc = halfCmp >= 0
			}
		case RoundingUp:
			inc = true
		}
	}

	width := x.m + nfrac
	if inc && truncated.Cmp(bitstring.Max(x.signed, width)) == 0 {
		err := x.alertOverflow("%s rounding to %s format causes overflow",
			mode, formatQ(x.signed, x.m, nfrac))
		if err != nil {
			return err
		}
		if x.props.overflow == OverflowClamp {
			x.alertOverflow("clamped to maximum")
			inc = false
		} else {
			x.alertOverflow("wrapped maximum")
		}
	}
	if inc {
		truncated.Add(truncated, big.NewInt(1))
	}
	x.n = nfrac
	x.bits = bitstring.Encode(truncated, width)
	return nil
}

// Round reduces the fractional width to nfrac using the configured
// rounding scheme.
func (x *FixedPoint) Round(nfrac int) error { return x.roundWith(x.props.rounding, nfrac) }

// RoundConvergent rounds to nfrac fractional bits, ties to even.
func (x *FixedPoint) RoundConvergent(nfrac int) error { return x.roundWith(RoundingConvergent, nfrac) }

// RoundNearest rounds to nfrac fractional bits, ties towards positive
// infinity.
func (x *FixedPoint) RoundNearest(nfrac int) error { return x.roundWith(RoundingNearest, nfrac) }

// RoundDown rounds to nfrac fractional bits towards negative infinity.
func (x *FixedPoint) RoundDown(nfrac int) error { return x.roundWith(RoundingDown, nfrac) }

// RoundIn rounds to nfrac fractional bits towards zero.
func (x *FixedPoint) RoundIn(nfrac int) error { return x.roundWith(RoundingIn, nfrac) }

// RoundOut rounds to nfrac fractional bits, ties away from zero.
func (x *FixedPoint) RoundOut(nfrac int) error { return x.roundWith(RoundingOut, nfrac) }

// RoundUp rounds to nfrac fractional bits towards positive infinity.
func (x *FixedPoint) RoundUp(nfrac int) error { return x.roundWith(RoundingUp, nfrac) }

// Floor zeroes the fractional bits, rounding towards negative infinity.
// The Q format does not change, so Floor never overflows.
func (x *FixedPoint) Floor() {
	if x.n == 0 {
		return
	}
	sv := x.signedValue()
	sv.Rsh(sv, uint(x.n)).Lsh(sv, uint(x.n))
	x.bits = bitstring.Encode(sv, x.m+x.n)
}

// Ceil rounds towards positive infinity and drops the fractional bits.
// A fraction-only format gains an integer bit to hold the result.
func (x *FixedPoint) Ceil() error {
	if x.n == 0 {
		return nil
	}
	if x.m == 0 {
		x.m = 1
	}
	return x.roundWith(RoundingUp, 0)
}

// Trunc rounds towards zero and drops the fractional bits.
// A fraction-only format gains an integer bit to hold the result.
func (x *FixedPoint) Trunc() error {
	if x.n == 0 {
		return nil
	}
	if x.m == 0 {
		x.m = 1
	}
	return x.roundWith(RoundingIn, 0)
}
