// Copyright 2026 The fixedpoint authors. All rights reserved.

package fixedpoint

// Copying counterparts of the mutating methods: each works on a copy of its
// argument and returns it, leaving the argument untouched.

// Resize returns a copy of x resized to m integer and n fractional bits.
func Resize(x *FixedPoint, m, n int, opts ...Option) (*FixedPoint, error) {
	ret := x.Copy()
	if err := ret.Resize(m, n, opts...); err != nil {
		return nil, err
	}
	return ret, nil
}

// Trim returns a copy of x with insignificant bits removed.
func Trim(x *FixedPoint) *FixedPoint {
	ret := x.Copy()
	ret.Trim()
	return ret
}

// Round returns a copy of x rounded to nfrac fractional bits using its
// configured rounding scheme.
func Round(x *FixedPoint, nfrac int) (*FixedPoint, error) {
	return roundCopy(x, nfrac, (*FixedPoint).Round)
}

// Convergent returns a copy of x rounded to nfrac fractional bits, ties to
// even.
func Convergent(x *FixedPoint, nfrac int) (*FixedPoint, error) {
	return roundCopy(x, nfrac, (*FixedPoint).RoundConvergent)
}

// RoundNearest returns a copy of x rounded to nfrac fractional bits, ties
// towards positive infinity.
func RoundNearest(x *FixedPoint, nfrac int) (*FixedPoint, error) {
	return roundCopy(x, nfrac, (*FixedPoint).RoundNearest)
}

// RoundDown returns a copy of x rounded to nfrac fractional bits towards
// negative infinity.
func RoundDown(x *FixedPoint, nfrac int) (*FixedPoint, error) {
	return roundCopy(x, nfrac, (*FixedPoint).RoundDown)
}

// RoundIn returns a copy of x rounded to nfrac fractional bits towards zero.
func RoundIn(x *FixedPoint, nfrac int) (*FixedPoint, error) {
	return roundCopy(x, nfrac, (*FixedPoint).RoundIn)
}

// RoundOut returns a copy of x rounded to nfrac fractional bits, ties away
// from zero.
func RoundOut(x *FixedPoint, nfrac int) (*FixedPoint, error) {
	return roundCopy(x, nfrac, (*FixedPoint).RoundOut)
}

// RoundUp returns a copy of x rounded to nfrac fractional bits towards
// positive infinity.
func RoundUp(x *FixedPoint, nfrac int) (*FixedPoint, error) {
	return roundCopy(x, nfrac, (*FixedPoint).RoundUp)
}

func roundCopy(x *FixedPoint, nfrac int, round func(*FixedPoint, int) error) (*FixedPoint, error) {
	ret := x.Copy()
	if err := round(ret, nfrac); err != nil {
		return nil, err
	}
	return ret, nil
}

// KeepMSBs returns a copy of x reduced to its m+n most significant bits.
func KeepMSBs(x *FixedPoint, m, n int, opts ...Option) (*FixedPoint, error) {
	ret := x.Copy()
	if err := ret.KeepMSBs(m, n, opts...); err != nil {
		return nil, err
	}
	return ret, nil
}

// KeepLSBs returns a copy of x reduced to its m+n least significant bits.
func KeepLSBs(x *FixedPoint, m, n int, opts ...Option) (*FixedPoint, error) {
	ret := x.Copy()
	if err := ret.KeepLSBs(m, n, opts...); err != nil {
		return nil, err
	}
	return ret, nil
}

// Clamp returns a copy of x with its integer width reduced to nint,
// saturating on overflow.
func Clamp(x *FixedPoint, nint int, alert ...Alert) (*FixedPoint, error) {
	ret := x.Copy()
	if err := ret.Clamp(nint, alert...); err != nil {
		return nil, err
	}
	return ret, nil
}

// Wrap returns a copy of x with its integer width reduced to nint by
// masking.
func Wrap(x *FixedPoint, nint int, alert ...Alert) (*FixedPoint, error) {
	ret := x.Copy()
	if err := ret.Wrap(nint, alert...); err != nil {
		return nil, err
	}
	return ret, nil
}
