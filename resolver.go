// Copyright 2026 The fixedpoint authors. All rights reserved.

package fixedpoint

// Property resolution for binary operations. When two operands carry
// different property sets, a single resolved set is computed in a fixed
// order: mismatch_alert, overflow, rounding, overflow_alert,
// implicit_cast_alert, str_base. Every mismatch emits two diagnostics
// (the conflict and the resolution) at the severity of the already-resolved
// mismatch alert; if that severity is AlertError, resolution fails at the
// first mismatched property and later properties are never computed.

var (
	mismatchAlertPriority = [...]Alert{AlertWarning, AlertError, AlertIgnore}
	overflowAlertPriority = [...]Alert{AlertError, AlertWarning, AlertIgnore}
	implicitCastPriority  = [...]Alert{AlertWarning, AlertError, AlertIgnore}
)

func pickAlert(a, b Alert, priority []Alert) Alert {
	for _, p := range priority {
		if a == p || b == p {
			return p
		}
	}
	return a
}

// reportMismatch emits the two per-mismatch diagnostics, or fails when the
// resolved mismatch alert is AlertError.
func reportMismatch(sink Sink, severity Alert, name string, have [2]string, using string) error {
	if err := raise(sink, severity, ErrMismatch, "non-matching %s behaviors [%s %s]", name, have[0], have[1]); err != nil {
		return err
	}
	raise(sink, severity, ErrMismatch, "using %q", using)
	return nil
}

// resolveProperties combines the property sets of two operands.
// Diagnostics go to the left operand's sink.
func resolveProperties(x, y *FixedPoint) (properties, error) {
	p := x.props
	sink := x.sink

	if x.props.mismatchAlert != y.props.mismatchAlert {
		p.mismatchAlert = pickAlert(x.props.mismatchAlert, y.props.mismatchAlert, mismatchAlertPriority[:])
		err := reportMismatch(sink, p.mismatchAlert, "mismatch_alert",
			[2]string{x.props.mismatchAlert.String(), y.props.mismatchAlert.String()},
			p.mismatchAlert.String())
		if err != nil {
			return p, err
		}
	}

	if x.props.overflow != y.props.overflow {
		p.overflow = OverflowClamp
		err := reportMismatch(sink, p.mismatchAlert, "overflow",
			[2]string{x.props.overflow.String(), y.props.overflow.String()},
			p.overflow.String())
		if err != nil {
			return p, err
		}
	}

	if x.props.rounding != y.props.rounding {
		p.rounding = resolveRounding(x, y)
		err := reportMismatch(sink, p.mismatchAlert, "rounding",
			[2]string{x.props.rounding.String(), y.props.rounding.String()},
			p.rounding.String())
		if err != nil {
			return p, err
		}
	}

	if x.props.overflowAlert != y.props.overflowAlert {
		p.overflowAlert = pickAlert(x.props.overflowAlert, y.props.overflowAlert, overflowAlertPriority[:])
		err := reportMismatch(sink, p.mismatchAlert, "overflow_alert",
			[2]string{x.props.overflowAlert.String(), y.props.overflowAlert.String()},
			p.overflowAlert.String())
		if err != nil {
			return p, err
		}
	}

	if x.props.implicitCastAlert != y.props.implicitCastAlert {
		p.implicitCastAlert = pickAlert(x.props.implicitCastAlert, y.props.implicitCastAlert, implicitCastPriority[:])
		err := reportMismatch(sink, p.mismatchAlert, "implicit_cast_alert",
			[2]string{x.props.implicitCastAlert.String(), y.props.implicitCastAlert.String()},
			p.implicitCastAlert.String())
		if err != nil {
			return p, err
		}
	}

	// str_base disagreement silently falls back to hexadecimal.
	if x.props.strBase != y.props.strBase {
		p.strBase = StrBase16
	}

	return p, nil
}

// resolveRounding picks the highest-priority rounding scheme of the two.
// With only unsigned operands 'nearest' wins whenever either operand has it,
// otherwise the signed priority order applies.
func resolveRounding(x, y *FixedPoint) Rounding {
	has := func(r Rounding) bool {
		return x.props.rounding == r || y.props.rounding == r
	}
	if !x.signed && !y.signed && has(RoundingNearest) {
		return RoundingNearest
	}
	for _, r := range roundingPriority {
		if has(r) {
			return r
		}
	}
	return x.props.rounding
}
