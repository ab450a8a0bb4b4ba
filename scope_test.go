// Copyright 2026 The fixedpoint authors. All rights reserved.

package fixedpoint

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoped(t *testing.T) {
	a := assert.New(t)

	x := mustFloat(t, -3.25) // Q3.2
	var inside string
	err := x.Scoped(func(v *FixedPoint) error {
		if err := v.Round(0); err != nil {
			return err
		}
		inside = v.QFormat()
		return nil
	}, WithRounding(RoundingUp), WithOverflowAlert(AlertIgnore))
	if a.NoError(err) {
		a.Equal("Q3.0", inside)
		// Everything is restored afterwards.
		a.Equal("Q3.2", x.QFormat())
		a.Equal(-3.25, x.Float64())
		a.Equal(RoundingConvergent, x.Rounding())
		a.Equal(AlertError, x.OverflowAlert())
	}

	// Format overrides apply before fn runs.
	err = x.Scoped(func(v *FixedPoint) error {
		a.Equal("Q5.4", v.QFormat())
		return nil
	}, IntBits(5), FracBits(4))
	a.NoError(err)
	a.Equal("Q3.2", x.QFormat())

	// The value is restored even when fn fails.
	err = x.Scoped(func(v *FixedPoint) error {
		return v.SetIntBits(2)
	})
	a.Error(err)
	a.Equal(-3.25, x.Float64())
}

func TestScopedRetain(t *testing.T) {
	a := assert.New(t)

	x := mustFloat(t, -3.25)
	err := x.ScopedRetain(func(v *FixedPoint) error {
		return v.Round(1)
	}, WithRounding(RoundingUp))
	if a.NoError(err) {
		// Changes stick, overrides included.
		a.Equal("Q3.1", x.QFormat())
		a.Equal(-3.0, x.Float64())
		a.Equal(RoundingUp, x.Rounding())
	}

	// A failing fn rolls everything back.
	y := mustFloat(t, -3.25)
	err = y.ScopedRetain(func(v *FixedPoint) error {
		return v.SetIntBits(2)
	}, WithRounding(RoundingUp))
	a.Error(err)
	a.Equal("Q3.2", y.QFormat())
	a.Equal(-3.25, y.Float64())
	a.Equal(RoundingConvergent, y.Rounding())

	// A failing override never reaches fn.
	called := false
	err = y.ScopedRetain(func(v *FixedPoint) error {
		called = true
		return nil
	}, IntBits(2))
	a.Error(err)
	a.False(called)
	a.Equal(-3.25, y.Float64())
}
