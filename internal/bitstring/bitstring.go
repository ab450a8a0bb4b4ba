// Package bitstring provides two's-complement helpers over arbitrary-width
// bit patterns stored in big.Int values.
package bitstring

import "math/big"

var one = big.NewInt(1)

// Mask returns 2^width - 1.
func Mask(width int) *big.Int {
	m := new(big.Int).Lsh(one, uint(width))
	return m.Sub(m, one)
}

// Encode reduces v modulo 2^width, producing the raw bit pattern
// of v in two's-complement form.
func Encode(v *big.Int, width int) *big.Int {
	return new(big.Int).And(v, Mask(width))
}

// Decode interprets width raw bits as a two's-complement value.
// Non-canonical input (negative, or wider than width) is masked first.
func Decode(raw *big.Int, signed bool, width int) *big.Int {
	v := Encode(raw, width)
	if signed && v.Bit(width-1) == 1 {
		v.Sub(v, new(big.Int).Lsh(one, uint(width)))
	}
	return v
}

// SignBit reports whether the most significant of width bits is set.
func SignBit(raw *big.Int, width int) bool {
	if width == 0 {
		return false
	}
	return Encode(raw, width).Bit(width-1) == 1
}

// Min returns the smallest representable value: 0 for unsigned,
// -2^(width-1) for signed.
func Min(signed bool, width int) *big.Int {
	if !signed {
		return new(big.Int)
	}
	return new(big.Int).Neg(new(big.Int).Lsh(one, uint(width-1)))
}

// Max returns the largest representable value: 2^width - 1 for unsigned,
// 2^(width-1) - 1 for signed.
func Max(signed bool, width int) *big.Int {
	if signed {
		width--
	}
	return Mask(width)
}

// Field extracts size bits of raw starting at bit lo.
func Field(raw *big.Int, lo, size int) *big.Int {
	v := new(big.Int).Rsh(raw, uint(lo))
	return v.And(v, Mask(size))
}

// TrailingZeros counts zero bits above bit 0 of raw, up to limit.
// A zero value counts as limit trailing zeros.
func TrailingZeros(raw *big.Int, limit int) int {
	if raw.Sign() == 0 {
		return limit
	}
	var tz int
	for tz < limit && raw.Bit(tz) == 0 {
		tz++
	}
	return tz
}

// LeadingOnes counts consecutive set bits of raw downwards from bit width-1.
func LeadingOnes(raw *big.Int, width int) int {
	var count int
	for count < width && raw.Bit(width-1-count) == 1 {
		count++
	}
	return count
}

// LeadingZeros counts consecutive clear bits of raw downwards from bit width-1.
func LeadingZeros(raw *big.Int, width int) int {
	var count int
	for count < width && raw.Bit(width-1-count) == 0 {
		count++
	}
	return count
}
