// Copyright 2026 The fixedpoint authors. All rights reserved.

// Package fixedpoint implements an arbitrary-precision fixed-point number
// in Q notation (Qm.n for signed, UQm.n for unsigned values), with
// configurable rounding, overflow, and property-mismatch semantics.
// It targets bit-exact DSP-style arithmetic where floating-point behavior
// must be avoided: every operator grows the bit widths of its result so that
// no precision is lost, and precision is only removed by explicit rounding
// and overflow handling.
package fixedpoint

import (
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/avdva/fixedpoint/internal/bitstring"
)

// FixedPoint is a fixed-point number with m integer and n fractional bits.
// The raw bits are stored as an unsigned big integer; for signed values they
// are interpreted as a two's-complement pattern of width m+n, scaled by 2^-n.
//
// A value owns its bit storage and its property set. Values are not safe for
// concurrent mutation; callers must serialize access externally.
type FixedPoint struct {
	bits   *big.Int
	signed bool
	m, n   int

	props properties
	sink  Sink
}

type config struct {
	signed *bool
	m, n   *int
	props  properties
	sink   Sink
}

// Option configures a value at construction, or overrides a property for
// the scope of a single operation.
type Option func(*config) error

// Signed sets the signedness of the constructed value. If not given,
// signedness is deduced from the sign of the initializer.
func Signed(signed bool) Option {
	return func(c *config) error {
		c.signed = &signed
		return nil
	}
}

// IntBits sets the integer bit width m. If not given, the minimal width that
// fits the initializer (after worst-case rounding) is deduced.
func IntBits(m int) Option {
	return func(c *config) error {
		c.m = &m
		return nil
	}
}

// FracBits sets the fractional bit width n. If not given, the minimal width
// that represents the initializer exactly is deduced.
func FracBits(n int) Option {
	return func(c *config) error {
		c.n = &n
		return nil
	}
}

// WithOverflow sets the overflow handling scheme.
func WithOverflow(o Overflow) Option {
	return func(c *config) error {
		if !o.valid() {
			return fmt.Errorf("%w: invalid overflow setting %d", ErrInvalidFormat, o)
		}
		c.props.overflow = o
		return nil
	}
}

// WithRounding sets the rounding scheme. RoundingAuto selects convergent for
// signed and nearest for unsigned values.
func WithRounding(r Rounding) Option {
	return func(c *config) error {
		if r != RoundingAuto && !r.valid() {
			return fmt.Errorf("%w: invalid rounding setting %d", ErrInvalidFormat, r)
		}
		c.props.rounding = r
		return nil
	}
}

// WithStrBase sets the base used by String.
func WithStrBase(b StrBase) Option {
	return func(c *config) error {
		if !b.valid() {
			return fmt.Errorf("%w: invalid str_base setting %d", ErrInvalidFormat, b)
		}
		c.props.strBase = b
		return nil
	}
}

// WithOverflowAlert sets the overflow notification behavior.
func WithOverflowAlert(a Alert) Option {
	return func(c *config) error {
		if !a.valid() {
			return fmt.Errorf("%w: invalid overflow_alert setting %d", ErrInvalidFormat, a)
		}
		c.props.overflowAlert = a
		return nil
	}
}

// WithMismatchAlert sets the property mismatch notification behavior.
func WithMismatchAlert(a Alert) Option {
	return func(c *config) error {
		if !a.valid() {
			return fmt.Errorf("%w: invalid mismatch_alert setting %d", ErrInvalidFormat, a)
		}
		c.props.mismatchAlert = a
		return nil
	}
}

// WithImplicitCastAlert sets the implicit cast notification behavior.
func WithImplicitCastAlert(a Alert) Option {
	return func(c *config) error {
		if !a.valid() {
			return fmt.Errorf("%w: invalid implicit_cast_alert setting %d", ErrInvalidFormat, a)
		}
		c.props.implicitCastAlert = a
		return nil
	}
}

// WithSink sets the diagnostic sink warnings are emitted to.
func WithSink(s Sink) Option {
	return func(c *config) error {
		if s == nil {
			s = NopSink
		}
		c.sink = s
		return nil
	}
}

func applyOptions(opts []Option) (config, error) {
	c := config{props: defaultProperties(), sink: NopSink}
	for _, opt := range opts {
		if err := opt(&c); err != nil {
			return c, err
		}
	}
	return c, nil
}

// checkFormat validates a (signed, m, n) triple.
func checkFormat(signed bool, m, n int) error {
	if n < 0 {
		return fmt.Errorf("%w: number of fractional bits must be non-negative", ErrInvalidFormat)
	}
	if signed && m < 1 {
		return fmt.Errorf("%w: number of integer bits must be at least 1 for signed numbers", ErrInvalidFormat)
	}
	if m < 0 {
		return fmt.Errorf("%w: number of integer bits must be non-negative", ErrInvalidFormat)
	}
	if m+n == 0 {
		return fmt.Errorf("%w: word size (integer and fractional) must be positive", ErrInvalidFormat)
	}
	return nil
}

func formatQ(signed bool, m, n int) string {
	if signed {
		return fmt.Sprintf("Q%d.%d", m, n)
	}
	return fmt.Sprintf("UQ%d.%d", m, n)
}

func newRaw(bits *big.Int, signed bool, m, n int, props properties, sink Sink) *FixedPoint {
	return &FixedPoint{
		bits:   bits,
		signed: signed,
		m:      m,
		n:      n,
		props:  props,
		sink:   sink,
	}
}

// FromFloat64 constructs a value from a floating-point number.
// Rounding and overflow handling occur when the requested format cannot hold
// f exactly. With deduced bit widths the result always represents f exactly
// and is trimmed to its minimal format.
func FromFloat64(f float64, opts ...Option) (*FixedPoint, error) {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return nil, fmt.Errorf("%w: cannot represent %v", ErrDomain, f)
	}
	c, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}
	signed := f < 0
	if c.signed != nil {
		signed = *c.signed
	}
	r := new(big.Rat).SetFloat64(f)
	trimN := c.n == nil
	n := 0
	if trimN {
		n = minNRat(r)
	} else {
		n = *c.n
	}
	trimM := c.m == nil
	var m int
	if trimM {
		m = minMRat(r, signed)
		if m+n == 0 {
			m++
		}
	} else {
		m = *c.m
	}
	if err := checkFormat(signed, m, n); err != nil {
		return nil, err
	}
	x := newRaw(new(big.Int), signed, m, n, c.props.normalized(signed), c.sink)
	if err := x.setFloat(r, f); err != nil {
		return nil, err
	}
	x.trim(trimM, trimN)
	return x, nil
}

// FromInt64 constructs a value from an integer.
// Overflow handling occurs; rounding does not. The fractional width defaults
// to 0.
func FromInt64(v int64, opts ...Option) (*FixedPoint, error) {
	return FromBigInt(big.NewInt(v), opts...)
}

// FromBigInt constructs a value from an arbitrary-precision integer.
// Overflow handling occurs; rounding does not.
func FromBigInt(v *big.Int, opts ...Option) (*FixedPoint, error) {
	c, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}
	signed := v.Sign() < 0
	if c.signed != nil {
		signed = *c.signed
	}
	trimN := c.n == nil
	n := 0
	if !trimN {
		n = *c.n
	}
	trimM := c.m == nil
	var m int
	if trimM {
		m = minMInt(v, signed)
		if m+n == 0 {
			m++
		}
	} else {
		m = *c.m
	}
	if err := checkFormat(signed, m, n); err != nil {
		return nil, err
	}
	x := newRaw(new(big.Int), signed, m, n, c.props.normalized(signed), c.sink)
	if err := x.setInt(v); err != nil {
		return nil, err
	}
	x.trim(trimM, trimN)
	return x, nil
}

// FromString constructs a value from a raw bit literal. The Q format must be
// fully constrained with Signed, IntBits and FracBits. The literal may use
// 0x, 0o and 0b prefixes; without a prefix it is read as decimal. The bits
// are assigned directly, without rounding or overflow handling.
func FromString(s string, opts ...Option) (*FixedPoint, error) {
	c, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}
	if c.signed == nil || c.m == nil || c.n == nil {
		return nil, fmt.Errorf("%w: string literal initialization Q format must be fully constrained", ErrInvalidFormat)
	}
	signed, m, n := *c.signed, *c.m, *c.n
	if err := checkFormat(signed, m, n); err != nil {
		return nil, err
	}
	v, ok := new(big.Int).SetString(strings.TrimSpace(s), 0)
	if !ok {
		return nil, fmt.Errorf("%w: cannot parse bit literal %q", ErrInvalidFormat, s)
	}
	masked := bitstring.Encode(v, m+n)
	if masked.Cmp(v) != 0 {
		return nil, fmt.Errorf("%w: superfluous bits in literal %q for %s format",
			ErrInvalidFormat, s, formatQ(signed, m, n))
	}
	return newRaw(masked, signed, m, n, c.props.normalized(signed), c.sink), nil
}

// Copy returns a deep copy of x.
func (x *FixedPoint) Copy() *FixedPoint {
	c := *x
	c.bits = new(big.Int).Set(x.bits)
	return &c
}

// setInt assigns an integer value, handling overflow.
func (x *FixedPoint) setInt(v *big.Int) error {
	bits := new(big.Int).Lsh(v, uint(x.n))
	if bits.Cmp(x.minimum()) < 0 || bits.Cmp(x.maximum()) > 0 {
		if err := x.alertOverflow("integer %s overflows in %s format", v, x.QFormat()); err != nil {
			return err
		}
		clamp := x.props.overflow == OverflowClamp
		extreme, target := "maximum", x.maximum()
		if v.Sign() < 0 {
			extreme, target = "minimum", x.minimum()
		}
		x.alertOverflow("%s %s", clampedVerb(clamp), extreme)
		if clamp {
			bits = target
		}
	}
	x.bits = bitstring.Encode(bits, x.m+x.n)
	return nil
}

// setFloat assigns a value given as an exact rational, handling rounding and
// overflow. f is the original float, used for diagnostics only.
//
// The fractional remainder beyond n bits is folded into two extra low bits
// that preserve its relation to one half, so the configured rounding scheme
// produces the same bits as if it had seen the full-precision value.
func (x *FixedPoint) setFloat(r *big.Rat, f float64) error {
	width := x.m + x.n
	num := new(big.Int).Lsh(r.Num(), uint(x.n))
	denom := r.Denom()
	q, rem := new(big.Int).QuoRem(num, denom, new(big.Int))

	low := new(big.Rat).SetFrac(x.minimum(), pow2(x.n))
	high := new(big.Rat).SetFrac(x.maximum(), pow2(x.n))
	if r.Cmp(low) < 0 || r.Cmp(high) > 0 {
		if err := x.alertOverflow("%e overflows in %s format", f, x.QFormat()); err != nil {
			return err
		}
		clamp := x.props.overflow == OverflowClamp
		extreme, target := "maximum", x.maximum()
		if r.Sign() < 0 {
			extreme, target = "minimum", x.minimum()
		}
		x.alertOverflow("%s %s", clampedVerb(clamp), extreme)
		if clamp {
			q = target
		}
		x.bits = bitstring.Encode(q, width)
		return nil
	}

	raw := bitstring.Encode(q, width)
	if rem.Sign() == 0 {
		x.bits = raw
		return nil
	}

	// half compares |remainder| against denom/2.
	half := new(big.Int).Abs(rem)
	half.Lsh(half, 1)
	halfCmp := half.Cmp(denom)

	n := x.n
	x.n = n + 2
	b := new(big.Int).Lsh(raw, 2)
	var lowBits int64
	if r.Sign() < 0 {
		b.Sub(b, big.NewInt(4))
		if halfCmp < 0 {
			lowBits = 0b11
		} else {
			lowBits = 0b01
		}
	} else {
		if halfCmp < 0 {
			lowBits = 0b01
		} else {
			lowBits = 0b11
		}
	}
	if halfCmp == 0 {
		lowBits = 0b10
	}
	x.bits = b.Or(b, big.NewInt(lowBits))
	return x.Round(n)
}

// Signed reports whether the value is signed.
func (x *FixedPoint) Signed() bool { return x.signed }

// M returns the integer bit width.
func (x *FixedPoint) M() int { return x.m }

// N returns the fractional bit width.
func (x *FixedPoint) N() int { return x.n }

// Len returns the total word length m+n.
func (x *FixedPoint) Len() int { return x.m + x.n }

// QFormat returns the Q notation of the format, e.g. "Q5.4" or "UQ3.5".
func (x *FixedPoint) QFormat() string { return formatQ(x.signed, x.m, x.n) }

// Rounding returns the rounding scheme.
func (x *FixedPoint) Rounding() Rounding { return x.props.rounding }

// Overflow returns the overflow handling scheme.
func (x *FixedPoint) Overflow() Overflow { return x.props.overflow }

// StrBase returns the base used by String.
func (x *FixedPoint) StrBase() StrBase { return x.props.strBase }

// OverflowAlert returns the overflow notification behavior.
func (x *FixedPoint) OverflowAlert() Alert { return x.props.overflowAlert }

// MismatchAlert returns the property mismatch notification behavior.
func (x *FixedPoint) MismatchAlert() Alert { return x.props.mismatchAlert }

// ImplicitCastAlert returns the implicit cast notification behavior.
func (x *FixedPoint) ImplicitCastAlert() Alert { return x.props.implicitCastAlert }

// SetRounding changes the rounding scheme.
func (x *FixedPoint) SetRounding(r Rounding) error {
	if !r.valid() {
		return fmt.Errorf("%w: invalid rounding setting %q", ErrInvalidFormat, r)
	}
	x.props.rounding = r
	return nil
}

// SetOverflow changes the overflow handling scheme.
func (x *FixedPoint) SetOverflow(o Overflow) error {
	if !o.valid() {
		return fmt.Errorf("%w: invalid overflow setting %q", ErrInvalidFormat, o)
	}
	x.props.overflow = o
	return nil
}

// SetStrBase changes the base used by String.
func (x *FixedPoint) SetStrBase(b StrBase) error {
	if !b.valid() {
		return fmt.Errorf("%w: invalid str_base setting %d", ErrInvalidFormat, b)
	}
	x.props.strBase = b
	return nil
}

// SetOverflowAlert changes the overflow notification behavior.
func (x *FixedPoint) SetOverflowAlert(a Alert) error {
	if !a.valid() {
		return fmt.Errorf("%w: invalid overflow_alert setting %q", ErrInvalidFormat, a)
	}
	x.props.overflowAlert = a
	return nil
}

// SetMismatchAlert changes the property mismatch notification behavior.
func (x *FixedPoint) SetMismatchAlert(a Alert) error {
	if !a.valid() {
		return fmt.Errorf("%w: invalid mismatch_alert setting %q", ErrInvalidFormat, a)
	}
	x.props.mismatchAlert = a
	return nil
}

// SetImplicitCastAlert changes the implicit cast notification behavior.
func (x *FixedPoint) SetImplicitCastAlert(a Alert) error {
	if !a.valid() {
		return fmt.Errorf("%w: invalid implicit_cast_alert setting %q", ErrInvalidFormat, a)
	}
	x.props.implicitCastAlert = a
	return nil
}

// SetSink changes the diagnostic sink.
func (x *FixedPoint) SetSink(s Sink) {
	if s == nil {
		s = NopSink
	}
	x.sink = s
}

// minimum returns the smallest representable value in bit units, i.e. the
// true value scaled by 2^n.
func (x *FixedPoint) minimum() *big.Int {
	return bitstring.Min(x.signed, x.m+x.n)
}

// maximum returns the largest representable value in bit units.
func (x *FixedPoint) maximum() *big.Int {
	return bitstring.Max(x.signed, x.m+x.n)
}

// signedValue returns the two's-complement interpretation of the raw bits,
// in bit units.
func (x *FixedPoint) signedValue() *big.Int {
	return bitstring.Decode(x.bits, x.signed, x.m+x.n)
}

// scaledValue returns the signed value shifted to n fractional bits, n >= x.n.
func (x *FixedPoint) scaledValue(n int) *big.Int {
	v := x.signedValue()
	return v.Lsh(v, uint(n-x.n))
}

func (x *FixedPoint) alertOverflow(format string, args ...interface{}) error {
	return raise(x.sink, x.props.overflowAlert, ErrOverflow, format, args...)
}

func clampedVerb(clamp bool) string {
	if clamp {
		return "clamped to"
	}
	return "wrapped"
}

// trim removes insignificant bits: trailing fractional zeros, and leading
// zeros (ones for negative values) beyond what signedness requires.
// A zero value always trims to a one-bit integer format.
func (x *FixedPoint) trim(ints, fracs bool) {
	m, n := x.m, x.n
	if fracs && n > 0 {
		n -= bitstring.TrailingZeros(x.bits, n)
	}
	if ints {
		sv := x.signedValue()
		intField := bitstring.Field(x.bits, x.n, x.m)
		switch {
		case sv.Sign() < 0:
			m = 1 + x.m - bitstring.LeadingOnes(intField, x.m)
		case x.m > 0:
			significant := x.m - bitstring.LeadingZeros(intField, x.m)
			floor := 0
			if x.signed || n == 0 {
				floor = 1
			}
			m = significant
			if x.signed {
				m++
			}
			if m < floor {
				m = floor
			}
		}
	}
	x.bits.Rsh(x.bits, uint(x.n-n))
	x.n = n
	if m == 0 && n == 0 {
		m = 1
	}
	x.m = m
	x.bits.And(x.bits, bitstring.Mask(x.m+x.n))
}

// Trim removes insignificant leading and trailing bits.
func (x *FixedPoint) Trim() { x.trim(true, true) }

// TrimInts removes insignificant leading integer bits.
func (x *FixedPoint) TrimInts() { x.trim(true, false) }

// TrimFracs removes trailing zero fractional bits.
func (x *FixedPoint) TrimFracs() { x.trim(false, true) }

// MinM returns the minimum integer bit width that fits f after worst-case
// rounding.
func MinM(f float64, signed bool) int {
	return minMRat(new(big.Rat).SetFloat64(f), signed)
}

// MinN returns the minimum fractional bit width that represents f exactly.
func MinN(f float64) int {
	return minNRat(new(big.Rat).SetFloat64(f))
}

func pow2(n int) *big.Int {
	return new(big.Int).Lsh(big.NewInt(1), uint(n))
}

// minNRat relies on the denominator of a float-derived rational being a
// power of two.
func minNRat(r *big.Rat) int {
	return r.Denom().BitLen() - 1
}

func minMRat(r *big.Rat, signed bool) int {
	if r.Sign() == 0 {
		return 1
	}
	// Worst-case rounding moves the value away from zero to the next
	// integer boundary.
	wc := new(big.Int).Quo(r.Num(), r.Denom())
	if !r.IsInt() {
		if r.Sign() > 0 {
			wc.Add(wc, big.NewInt(1))
		} else {
			wc.Sub(wc, big.NewInt(1))
		}
	}
	abs := new(big.Int).Abs(wc)
	ret := new(big.Int).Sub(abs, big.NewInt(1)).BitLen()
	if signed || r.Sign() < 0 {
		if ret < 1 {
			ret = 1
		}
		for {
			boundary := pow2(ret - 1)
			if wc.Cmp(new(big.Int).Neg(boundary)) >= 0 && wc.Cmp(boundary) < 0 {
				break
			}
			ret++
		}
	} else if abs.Cmp(pow2(ret)) >= 0 {
		ret++
	}
	return ret
}

func minMInt(v *big.Int, signed bool) int {
	return minMRat(new(big.Rat).SetInt(v), signed)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}
