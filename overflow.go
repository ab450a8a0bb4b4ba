// Copyright 2026 The fixedpoint authors. All rights reserved.

package fixedpoint

import (
	"fmt"

	"github.com/avdva/fixedpoint/internal/bitstring"
)

func overrideAlert(def Alert, override []Alert) Alert {
	if len(override) > 0 {
		return override[0]
	}
	return def
}

// reduceIntBits drops integer bits down to nint, clamping or wrapping when
// the value does not fit.
func (x *FixedPoint) reduceIntBits(nint int, clamp bool, severity Alert) error {
	if lo := b2i(x.n == 0 || x.signed); nint < lo || nint >= x.m {
		return fmt.Errorf("%w: %s format can only drop to between [%d, %d) integer bits",
			ErrInvalidFormat, x.QFormat(), lo, x.m)
	}
	width := nint + x.n
	sv := x.signedValue()
	truncated := bitstring.Decode(x.bits, x.signed, width)
	if truncated.Cmp(sv) != 0 {
		if err := raise(x.sink, severity, ErrOverflow, "overflow in %s format", x.QFormat()); err != nil {
			return err
		}
		extreme, target := "maximum", bitstring.Max(x.signed, width)
		if sv.Sign() < 0 {
			extreme, target = "minimum", bitstring.Min(x.signed, width)
		}
		raise(x.sink, severity, ErrOverflow, "%s %s", clampedVerb(clamp), extreme)
		if clamp {
			x.m = nint
			x.bits = bitstring.Encode(target, width)
			return nil
		}
	}
	x.m = nint
	x.bits = bitstring.Encode(x.bits, width)
	return nil
}

// Clamp removes integer bits down to nint, saturating the value when it does
// not fit. The optional alert overrides the overflow alert for this call.
func (x *FixedPoint) Clamp(nint int, alert ...Alert) error {
	return x.reduceIntBits(nint, true, overrideAlert(x.props.overflowAlert, alert))
}

// Wrap removes integer bits down to nint by masking them away. The optional
// alert overrides the overflow alert for this call.
func (x *FixedPoint) Wrap(nint int, alert ...Alert) error {
	return x.reduceIntBits(nint, false, overrideAlert(x.props.overflowAlert, alert))
}

// keepArgCheck validates target widths for KeepMSBs and KeepLSBs, which must
// strictly reduce the word size.
func (x *FixedPoint) keepArgCheck(m, n int) error {
	if m < 0 || n < 0 {
		return fmt.Errorf("%w: bit widths must be non-negative", ErrInvalidFormat)
	}
	if x.signed && m == 0 {
		return fmt.Errorf("%w: signed numbers must have at least 1 integer bit", ErrInvalidFormat)
	}
	if l := m + n; l < 2 || l >= x.m+x.n {
		return fmt.Errorf("%w: total number of bits must be in the range [2, %d)",
			ErrInvalidFormat, x.m+x.n)
	}
	return nil
}

// KeepLSBs keeps the m+n least significant bits and reformats the value to
// m integer and n fractional bits, handling overflow. WithOverflow and
// WithOverflowAlert override the corresponding properties for this call.
func (x *FixedPoint) KeepLSBs(m, n int, opts ...Option) error {
	if err := x.keepArgCheck(m, n); err != nil {
		return err
	}
	cfg := config{props: x.props, sink: x.sink}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return err
		}
	}
	severity := cfg.props.overflowAlert
	clamp := cfg.props.overflow == OverflowClamp

	sv := x.signedValue()
	kept := bitstring.Decode(x.bits, x.signed, m+n)
	if kept.Cmp(sv) != 0 {
		if err := raise(x.sink, severity, ErrOverflow, "overflow in %s format", x.QFormat()); err != nil {
			return err
		}
		extreme := "maximum"
		if sv.Sign() < 0 {
			extreme = "minimum"
		}
		raise(x.sink, severity, ErrOverflow, "%s %s", clampedVerb(clamp), extreme)
	}
	// Move the binary point, then drop the unwanted high bits silently, the
	// alert has already been issued.
	x.m, x.n = x.m+x.n-n, n
	return x.reduceIntBits(m, clamp, AlertIgnore)
}
