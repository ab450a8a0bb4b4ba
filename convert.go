// Copyright 2026 The fixedpoint authors. All rights reserved.

package fixedpoint

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// Float64 returns the nearest floating-point representation of the value.
// Values beyond the float64 range become infinities.
func (x *FixedPoint) Float64() float64 {
	f := new(big.Float).SetInt(x.signedValue())
	f.SetMantExp(f, -x.n)
	ret, _ := f.Float64()
	return ret
}

// Int returns the integer part of the value, rounded towards negative
// infinity.
func (x *FixedPoint) Int() *big.Int {
	sv := x.signedValue()
	return sv.Rsh(sv, uint(x.n))
}

// Int64 returns the integer part of the value, rounded towards negative
// infinity. The result is undefined if it does not fit in 64 bits.
func (x *FixedPoint) Int64() int64 { return x.Int().Int64() }

// Decimal returns the exact decimal representation of the value. Every
// fixed-point number has one, since 2^-n scales to 5^n * 10^-n.
func (x *FixedPoint) Decimal() decimal.Decimal {
	sv := x.signedValue()
	five := new(big.Int).Exp(big.NewInt(5), big.NewInt(int64(x.n)), nil)
	return decimal.NewFromBigInt(sv.Mul(sv, five), -int32(x.n))
}

// String returns the raw bits in the configured base. Base 10 renditions are
// unpadded; bases 2, 8 and 16 are zero-padded to the full word length.
func (x *FixedPoint) String() string {
	base := x.props.strBase
	if !base.valid() {
		base = StrBase16
	}
	s := x.bits.Text(int(base))
	if base == StrBase10 {
		return s
	}
	bpd := base.bitsPerDigit()
	if digits := (x.m + x.n + bpd - 1) / bpd; len(s) < digits {
		s = strings.Repeat("0", digits-len(s)) + s
	}
	return s
}

// GoString returns a constructor expression that reproduces the value.
func (x *FixedPoint) GoString() string {
	return fmt.Sprintf("fixedpoint.FromString(%q, fixedpoint.Signed(%t), fixedpoint.IntBits(%d), fixedpoint.FracBits(%d))",
		"0x"+x.bits.Text(16), x.signed, x.m, x.n)
}

// Clamped reports whether the value sits at the minimum or maximum of its
// format.
func (x *FixedPoint) Clamped() bool {
	minPattern := new(big.Int).Abs(x.minimum())
	return x.bits.Cmp(minPattern) == 0 || x.bits.Cmp(x.maximum()) == 0
}

type jsonValue struct {
	Bits              string `json:"bits"`
	Signed            bool   `json:"signed"`
	M                 int    `json:"m"`
	N                 int    `json:"n"`
	Overflow          string `json:"overflow"`
	Rounding          string `json:"rounding"`
	StrBase           int    `json:"str_base"`
	OverflowAlert     string `json:"overflow_alert"`
	MismatchAlert     string `json:"mismatch_alert"`
	ImplicitCastAlert string `json:"implicit_cast_alert"`
}

// MarshalJSON encodes the raw bits, the Q format and the property set.
// The sink is not serialized.
func (x *FixedPoint) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonValue{
		Bits:              "0x" + x.bits.Text(16),
		Signed:            x.signed,
		M:                 x.m,
		N:                 x.n,
		Overflow:          x.props.overflow.String(),
		Rounding:          x.props.rounding.String(),
		StrBase:           int(x.props.strBase),
		OverflowAlert:     x.props.overflowAlert.String(),
		MismatchAlert:     x.props.mismatchAlert.String(),
		ImplicitCastAlert: x.props.implicitCastAlert.String(),
	})
}

// UnmarshalJSON restores a value encoded by MarshalJSON. The sink is reset
// to NopSink.
func (x *FixedPoint) UnmarshalJSON(data []byte) error {
	var jv jsonValue
	if err := json.Unmarshal(data, &jv); err != nil {
		return err
	}
	overflow, err := ParseOverflow(jv.Overflow)
	if err != nil {
		return err
	}
	rounding, err := ParseRounding(jv.Rounding)
	if err != nil {
		return err
	}
	overflowAlert, err := ParseAlert(jv.OverflowAlert)
	if err != nil {
		return err
	}
	mismatchAlert, err := ParseAlert(jv.MismatchAlert)
	if err != nil {
		return err
	}
	implicitCastAlert, err := ParseAlert(jv.ImplicitCastAlert)
	if err != nil {
		return err
	}
	ret, err := FromString(jv.Bits,
		Signed(jv.Signed), IntBits(jv.M), FracBits(jv.N),
		WithOverflow(overflow), WithRounding(rounding), WithStrBase(StrBase(jv.StrBase)),
		WithOverflowAlert(overflowAlert), WithMismatchAlert(mismatchAlert),
		WithImplicitCastAlert(implicitCastAlert))
	if err != nil {
		return err
	}
	*x = *ret
	return nil
}
