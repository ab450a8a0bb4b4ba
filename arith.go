// Copyright 2026 The fixedpoint authors. All rights reserved.

package fixedpoint

import (
	"fmt"
	"math"
	"math/big"

	"github.com/avdva/fixedpoint/internal/bitstring"
)

// Arithmetic is full precision: results grow their Q format so that no
// rounding is needed, and only unsigned subtraction can overflow. Binary
// operations resolve the property sets of both operands first; the result
// carries the resolved set and the left operand's sink.

// Add returns the full precision sum of x and y.
// The result has max(m1,m2)+1 integer and max(n1,n2) fractional bits.
func (x *FixedPoint) Add(y *FixedPoint) (*FixedPoint, error) {
	props, err := resolveProperties(x, y)
	if err != nil {
		return nil, err
	}
	return x.addWith(y, props), nil
}

func (x *FixedPoint) addWith(y *FixedPoint, props properties) *FixedPoint {
	n := maxInt(x.n, y.n)
	m := maxInt(x.m, y.m) + 1
	signed := x.signed || y.signed
	sum := x.scaledValue(n)
	sum.Add(sum, y.scaledValue(n))
	return newRaw(bitstring.Encode(sum, m+n), signed, m, n, props, x.sink)
}

// Sub returns the full precision difference of x and y.
// The result has 1+max(m1,m2) integer bits, plus one more on a signedness
// mismatch, and max(n1,n2) fractional bits. A negative difference of two
// unsigned operands triggers overflow handling.
func (x *FixedPoint) Sub(y *FixedPoint) (*FixedPoint, error) {
	props, err := resolveProperties(x, y)
	if err != nil {
		return nil, err
	}
	return x.subWith(y, props)
}

func (x *FixedPoint) subWith(y *FixedPoint, props properties) (*FixedPoint, error) {
	signed := x.signed || y.signed
	m := 1 + maxInt(x.m, y.m) + b2i(x.signed != y.signed)
	n := maxInt(x.n, y.n)
	diff := x.scaledValue(n)
	diff.Sub(diff, y.scaledValue(n))
	if !signed && diff.Sign() < 0 {
		err := raise(x.sink, props.overflowAlert, ErrOverflow, "unsigned subtraction causes overflow")
		if err != nil {
			return nil, err
		}
		clamp := props.overflow == OverflowClamp
		if clamp {
			diff.SetInt64(0)
		}
		raise(x.sink, props.overflowAlert, ErrOverflow, "%s minimum", clampedVerb(clamp))
	}
	return newRaw(bitstring.Encode(diff, m+n), signed, m, n, props, x.sink), nil
}

// Mul returns the full precision product of x and y.
// The result has m1+m2 integer and n1+n2 fractional bits.
func (x *FixedPoint) Mul(y *FixedPoint) (*FixedPoint, error) {
	props, err := resolveProperties(x, y)
	if err != nil {
		return nil, err
	}
	return x.mulWith(y, props), nil
}

func (x *FixedPoint) mulWith(y *FixedPoint, props properties) *FixedPoint {
	m, n := x.m+y.m, x.n+y.n
	signed := x.signed || y.signed
	prod := new(big.Int).Mul(x.signedValue(), y.signedValue())
	return newRaw(bitstring.Encode(prod, m+n), signed, m, n, props, x.sink)
}

// Pow returns x raised to a positive integer exponent, at full precision.
// The result has m*exp integer and n*exp fractional bits.
func (x *FixedPoint) Pow(exp int) (*FixedPoint, error) {
	if exp <= 0 {
		return nil, fmt.Errorf("%w: only positive integers are supported for exponentiation", ErrDomain)
	}
	m, n := x.m*exp, x.n*exp
	v := new(big.Int).Exp(x.signedValue(), big.NewInt(int64(exp)), nil)
	return newRaw(bitstring.Encode(v, m+n), x.signed, m, n, x.props, x.sink), nil
}

// Neg returns the arithmetic negation of x, which must be signed.
// Negating the most negative value grows the integer width by one bit after
// an overflow alert.
func (x *FixedPoint) Neg() (*FixedPoint, error) {
	if !x.signed {
		return nil, fmt.Errorf("%w: unsigned numbers cannot be negated", ErrDomain)
	}
	sv := x.signedValue()
	m := x.m
	if sv.Cmp(x.minimum()) == 0 {
		if err := x.alertOverflow("negating %s (%s) causes overflow", x, x.QFormat()); err != nil {
			return nil, err
		}
		x.alertOverflow("adjusting Q format to Q%d.%d to allow negation", x.m+1, x.n)
		m++
	}
	return newRaw(bitstring.Encode(sv.Neg(sv), m+x.n), true, m, x.n, x.props, x.sink), nil
}

// Abs returns the absolute value of x.
func (x *FixedPoint) Abs() (*FixedPoint, error) {
	if x.signed && x.signedValue().Sign() < 0 {
		return x.Neg()
	}
	return x.Copy(), nil
}

func (x *FixedPoint) shifted(left bool, nbits int) *FixedPoint {
	if nbits < 0 {
		left, nbits = !left, -nbits
	}
	sv := x.signedValue()
	if left {
		sv.Lsh(sv, uint(nbits))
	} else {
		sv.Rsh(sv, uint(nbits))
	}
	ret := x.Copy()
	ret.bits = bitstring.Encode(sv, x.m+x.n)
	return ret
}

// Lsh returns x with its value shifted left by nbits. The Q format does not
// change; bits shifted beyond the word are dropped without overflow
// handling. A negative count shifts right.
func (x *FixedPoint) Lsh(nbits int) *FixedPoint { return x.shifted(true, nbits) }

// Rsh returns x with its value arithmetically shifted right by nbits. The Q
// format does not change. A negative count shifts left.
func (x *FixedPoint) Rsh(nbits int) *FixedPoint { return x.shifted(false, nbits) }

func (x *FixedPoint) bitwise(op func(z, a, b *big.Int) *big.Int, bits *big.Int) *FixedPoint {
	ret := x.Copy()
	op(ret.bits, x.bits, bits)
	ret.bits.And(ret.bits, bitstring.Mask(x.m+x.n))
	return ret
}

// And returns the bitwise AND of the raw bits of x and y. The result takes
// x's format and properties; y's bits are used as-is, without alignment.
func (x *FixedPoint) And(y *FixedPoint) *FixedPoint { return x.AndBits(y.bits) }

// Or returns the bitwise OR of the raw bits of x and y. The result takes
// x's format and properties; y's bits are used as-is, without alignment.
func (x *FixedPoint) Or(y *FixedPoint) *FixedPoint { return x.OrBits(y.bits) }

// Xor returns the bitwise XOR of the raw bits of x and y. The result takes
// x's format and properties; y's bits are used as-is, without alignment.
func (x *FixedPoint) Xor(y *FixedPoint) *FixedPoint { return x.XorBits(y.bits) }

// AndBits returns the bitwise AND of x's raw bits and an integer.
func (x *FixedPoint) AndBits(bits *big.Int) *FixedPoint { return x.bitwise((*big.Int).And, bits) }

// OrBits returns the bitwise OR of x's raw bits and an integer.
func (x *FixedPoint) OrBits(bits *big.Int) *FixedPoint { return x.bitwise((*big.Int).Or, bits) }

// XorBits returns the bitwise XOR of x's raw bits and an integer.
func (x *FixedPoint) XorBits(bits *big.Int) *FixedPoint { return x.bitwise((*big.Int).Xor, bits) }

// Invert returns x with every bit of its word flipped.
func (x *FixedPoint) Invert() *FixedPoint {
	ret := x.Copy()
	ret.bits.Not(ret.bits).And(ret.bits, bitstring.Mask(x.m+x.n))
	return ret
}

// Cmp compares the numeric values of x and y, ignoring format and property
// differences. It returns -1, 0, or 1.
func (x *FixedPoint) Cmp(y *FixedPoint) int {
	n := maxInt(x.n, y.n)
	return x.scaledValue(n).Cmp(y.scaledValue(n))
}

// Eq reports whether x and y have equal numeric values.
func (x *FixedPoint) Eq(y *FixedPoint) bool { return x.Cmp(y) == 0 }

// Sign returns the sign of the numeric value: -1, 0, or 1.
func (x *FixedPoint) Sign() int { return x.signedValue().Sign() }

// castFloat64 converts a native float into an operand. The cast deduces a
// format that represents f exactly where possible and alerts otherwise.
func (x *FixedPoint) castFloat64(f float64, signed *bool) (*FixedPoint, error) {
	opts := []Option{WithSink(x.sink)}
	if signed != nil {
		opts = append(opts, Signed(*signed))
	}
	ret, err := FromFloat64(f, opts...)
	if err != nil {
		return nil, err
	}
	if got := ret.Float64(); got != f {
		err := raise(x.sink, x.props.implicitCastAlert, ErrImplicitCast,
			"casting %v to %s format introduces an error of %e", f, ret.QFormat(), math.Abs(f-got))
		if err != nil {
			return nil, err
		}
	}
	return ret, nil
}

func (x *FixedPoint) castInt64(v int64, signed *bool) (*FixedPoint, error) {
	opts := []Option{WithSink(x.sink)}
	if signed != nil {
		opts = append(opts, Signed(*signed))
	}
	return FromInt64(v, opts...)
}

// AddFloat64 adds a native float, casting it to fixed point first.
// The result carries x's properties.
func (x *FixedPoint) AddFloat64(f float64) (*FixedPoint, error) {
	y, err := x.castFloat64(f, nil)
	if err != nil {
		return nil, err
	}
	return x.addWith(y, x.props), nil
}

// AddInt64 adds a native integer, casting it to fixed point first.
func (x *FixedPoint) AddInt64(v int64) (*FixedPoint, error) {
	y, err := x.castInt64(v, nil)
	if err != nil {
		return nil, err
	}
	return x.addWith(y, x.props), nil
}

// SubFloat64 subtracts a native float, casting it to fixed point with x's
// signedness first.
func (x *FixedPoint) SubFloat64(f float64) (*FixedPoint, error) {
	y, err := x.castFloat64(f, &x.signed)
	if err != nil {
		return nil, err
	}
	return x.subWith(y, x.props)
}

// SubInt64 subtracts a native integer, casting it to fixed point with x's
// signedness first.
func (x *FixedPoint) SubInt64(v int64) (*FixedPoint, error) {
	y, err := x.castInt64(v, &x.signed)
	if err != nil {
		return nil, err
	}
	return x.subWith(y, x.props)
}

// MulFloat64 multiplies by a native float, casting it to fixed point first.
func (x *FixedPoint) MulFloat64(f float64) (*FixedPoint, error) {
	y, err := x.castFloat64(f, nil)
	if err != nil {
		return nil, err
	}
	return x.mulWith(y, x.props), nil
}

// MulInt64 multiplies by a native integer, casting it to fixed point first.
func (x *FixedPoint) MulInt64(v int64) (*FixedPoint, error) {
	y, err := x.castInt64(v, nil)
	if err != nil {
		return nil, err
	}
	return x.mulWith(y, x.props), nil
}
