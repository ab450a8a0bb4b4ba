// Copyright 2026 The fixedpoint authors. All rights reserved.

package fixedpoint

import (
	"fmt"
	"math/big"

	"github.com/avdva/fixedpoint/internal/bitstring"
)

// SetIntBits changes the integer bit width. Growing sign-extends the value,
// shrinking employs overflow handling.
func (x *FixedPoint) SetIntBits(m int) error {
	if m < b2i(x.signed) {
		if x.signed {
			return fmt.Errorf("%w: number of integer bits must be positive for signed numbers", ErrInvalidFormat)
		}
		return fmt.Errorf("%w: number of integer bits must be non-negative", ErrInvalidFormat)
	}
	if m+x.n == 0 {
		return fmt.Errorf("%w: word size (integer and fractional) must be positive", ErrInvalidFormat)
	}
	switch {
	case m > x.m:
		if x.signedValue().Sign() < 0 {
			ext := new(big.Int).Lsh(bitstring.Mask(m-x.m), uint(x.m+x.n))
			x.bits.Or(x.bits, ext)
		}
		x.m = m
	case m < x.m:
		return x.reduceIntBits(m, x.props.overflow == OverflowClamp, x.props.overflowAlert)
	}
	return nil
}

// SetFracBits changes the fractional bit width. Growing shifts in zero bits,
// shrinking employs rounding.
func (x *FixedPoint) SetFracBits(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: number of fractional bits must be non-negative", ErrInvalidFormat)
	}
	if x.m+n == 0 {
		return fmt.Errorf("%w: word size (integer and fractional) must be positive", ErrInvalidFormat)
	}
	if n >= x.n {
		x.bits.Lsh(x.bits, uint(n-x.n))
		x.n = n
		return nil
	}
	return x.Round(n)
}

// SetSigned changes signedness. Bit widths remain the same, so a set sign
// bit triggers overflow handling against the extremes of the new format.
func (x *FixedPoint) SetSigned(signed bool) error {
	if signed == x.signed {
		return nil
	}
	if x.m == 0 && signed {
		return fmt.Errorf("%w: cannot change sign with 0 integer bits", ErrDomain)
	}
	if x.bits.Bit(x.m+x.n-1) == 0 {
		x.signed = signed
		return nil
	}
	extreme := "maximum"
	if x.signed {
		extreme = "minimum"
	}
	clamp := x.props.overflow == OverflowClamp
	if err := x.alertOverflow("changing signedness on %s causes overflow", x); err != nil {
		return err
	}
	x.alertOverflow("%s %s", clampedVerb(clamp), extreme)
	x.signed = signed
	if clamp {
		target := x.maximum()
		if extreme == "minimum" {
			target = x.minimum()
		}
		x.bits = bitstring.Encode(target, x.m+x.n)
	}
	return nil
}

// Resize changes both bit widths, rounding fractional bits first, then
// handling integer overflow with sign-extension as needed. WithRounding,
// WithOverflow and WithOverflowAlert override the corresponding properties
// for this call; on error the value is left unchanged.
func (x *FixedPoint) Resize(m, n int, opts ...Option) error {
	cfg := config{props: x.props, sink: x.sink}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return err
		}
	}
	cfg.props = cfg.props.normalized(x.signed)
	saved := x.snapshot()
	x.props.overflow = cfg.props.overflow
	x.props.rounding = cfg.props.rounding
	x.props.overflowAlert = cfg.props.overflowAlert
	err := x.SetFracBits(n)
	if err == nil {
		err = x.SetIntBits(m)
	}
	if err != nil {
		x.restore(saved)
		return err
	}
	x.props.overflow = saved.props.overflow
	x.props.rounding = saved.props.rounding
	x.props.overflowAlert = saved.props.overflowAlert
	return nil
}

// KeepMSBs keeps the m+n most significant bits and reformats the value to
// m integer and n fractional bits, rounding off the rest. WithRounding,
// WithOverflow and WithOverflowAlert override the corresponding properties
// for this call; on error the value is left unchanged.
func (x *FixedPoint) KeepMSBs(m, n int, opts ...Option) error {
	if err := x.keepArgCheck(m, n); err != nil {
		return err
	}
	cfg := config{props: x.props, sink: x.sink}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return err
		}
	}
	cfg.props = cfg.props.normalized(x.signed)
	saved := x.snapshot()
	x.props.overflow = cfg.props.overflow
	x.props.overflowAlert = cfg.props.overflowAlert
	// Move the binary point, then round off the unwanted low bits.
	x.m, x.n = m, x.m+x.n-m
	if err := x.roundWith(cfg.props.rounding, n); err != nil {
		x.restore(saved)
		return err
	}
	x.props.overflow = saved.props.overflow
	x.props.overflowAlert = saved.props.overflowAlert
	return nil
}
