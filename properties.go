// Copyright 2026 The fixedpoint authors. All rights reserved.

package fixedpoint

import "fmt"

// Overflow selects how excess integer bits are handled.
type Overflow uint8

const (
	// OverflowClamp saturates to the minimum or maximum representable value.
	OverflowClamp Overflow = iota
	// OverflowWrap masks away excess high-order bits.
	OverflowWrap
)

// String returns the setting name.
func (o Overflow) String() string {
	switch o {
	case OverflowClamp:
		return "clamp"
	case OverflowWrap:
		return "wrap"
	}
	return fmt.Sprintf("overflow(%d)", uint8(o))
}

func (o Overflow) valid() bool { return o <= OverflowWrap }

// ParseOverflow parses an overflow setting name.
func ParseOverflow(s string) (Overflow, error) {
	switch s {
	case "clamp":
		return OverflowClamp, nil
	case "wrap":
		return OverflowWrap, nil
	}
	return 0, fmt.Errorf("%w: invalid overflow setting %q", ErrInvalidFormat, s)
}

// Rounding selects how excess fractional bits are removed.
// The declaration order of the concrete schemes doubles as the property
// resolution priority for signed operands.
type Rounding uint8

const (
	// RoundingAuto resolves to RoundingConvergent for signed values and
	// RoundingNearest for unsigned ones at construction time.
	RoundingAuto Rounding = iota
	// RoundingConvergent rounds half to even.
	RoundingConvergent
	// RoundingNearest rounds half up.
	RoundingNearest
	// RoundingDown rounds towards negative infinity.
	RoundingDown
	// RoundingIn rounds towards zero.
	RoundingIn
	// RoundingOut rounds half away from zero.
	RoundingOut
	// RoundingUp rounds towards positive infinity.
	RoundingUp
)

var roundingPriority = [...]Rounding{
	RoundingConvergent, RoundingNearest, RoundingDown,
	RoundingIn, RoundingOut, RoundingUp,
}

// String returns the setting name.
func (r Rounding) String() string {
	switch r {
	case RoundingAuto:
		return "auto"
	case RoundingConvergent:
		return "convergent"
	case RoundingNearest:
		return "nearest"
	case RoundingDown:
		return "down"
	case RoundingIn:
		return "in"
	case RoundingOut:
		return "out"
	case RoundingUp:
		return "up"
	}
	return fmt.Sprintf("rounding(%d)", uint8(r))
}

func (r Rounding) valid() bool { return r >= RoundingConvergent && r <= RoundingUp }

// ParseRounding parses a rounding setting name.
func ParseRounding(s string) (Rounding, error) {
	for r := RoundingAuto; r <= RoundingUp; r++ {
		if r.String() == s {
			return r, nil
		}
	}
	return 0, fmt.Errorf("%w: invalid rounding setting %q", ErrInvalidFormat, s)
}

// Alert selects the severity of a diagnostic condition: fail, warn through
// the sink, or stay silent.
type Alert uint8

const (
	// AlertError fails the operation with a wrapped error.
	AlertError Alert = iota
	// AlertWarning emits two diagnostic messages (cause and resolution) to
	// the sink and proceeds.
	AlertWarning
	// AlertIgnore proceeds silently.
	AlertIgnore
)

// String returns the setting name.
func (a Alert) String() string {
	switch a {
	case AlertError:
		return "error"
	case AlertWarning:
		return "warning"
	case AlertIgnore:
		return "ignore"
	}
	return fmt.Sprintf("alert(%d)", uint8(a))
}

func (a Alert) valid() bool { return a <= AlertIgnore }

// ParseAlert parses an alert setting name.
func ParseAlert(s string) (Alert, error) {
	switch s {
	case "error":
		return AlertError, nil
	case "warning":
		return AlertWarning, nil
	case "ignore":
		return AlertIgnore, nil
	}
	return 0, fmt.Errorf("%w: invalid alert setting %q", ErrInvalidFormat, s)
}

// StrBase is the numeric base used by String.
type StrBase int

const (
	StrBase2  StrBase = 2
	StrBase8  StrBase = 8
	StrBase10 StrBase = 10
	StrBase16 StrBase = 16
)

func (b StrBase) valid() bool {
	switch b {
	case StrBase2, StrBase8, StrBase10, StrBase16:
		return true
	}
	return false
}

// bitsPerDigit returns the number of bits a single digit covers.
func (b StrBase) bitsPerDigit() int {
	switch b {
	case StrBase2:
		return 1
	case StrBase8:
		return 3
	default:
		return 4
	}
}

// properties is the full configurable property set of a value.
type properties struct {
	overflow          Overflow
	rounding          Rounding
	strBase           StrBase
	overflowAlert     Alert
	mismatchAlert     Alert
	implicitCastAlert Alert
}

func defaultProperties() properties {
	return properties{
		overflow:          OverflowClamp,
		rounding:          RoundingAuto,
		strBase:           StrBase16,
		overflowAlert:     AlertError,
		mismatchAlert:     AlertWarning,
		implicitCastAlert: AlertWarning,
	}
}

// normalized replaces RoundingAuto with the signedness-dependent default.
func (p properties) normalized(signed bool) properties {
	if p.rounding == RoundingAuto {
		if signed {
			p.rounding = RoundingConvergent
		} else {
			p.rounding = RoundingNearest
		}
	}
	if p.strBase == 0 {
		p.strBase = StrBase16
	}
	return p
}
