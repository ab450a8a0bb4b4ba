// Copyright 2026 The fixedpoint authors. All rights reserved.

package fixedpoint

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundingSchemes(t *testing.T) {
	a := assert.New(t)
	values := []float64{3.25, 3.5, 3.75, 4.5, -3.25, -3.5, -3.75, -4.5}
	tests := []struct {
		mode Rounding
		want []int64
	}{
		{RoundingConvergent, []int64{3, 4, 4, 4, -3, -4, -4, -4}},
		{RoundingNearest, []int64{3, 4, 4, 5, -3, -3, -4, -4}},
		{RoundingDown, []int64{3, 3, 3, 4, -4, -4, -4, -5}},
		{RoundingIn, []int64{3, 3, 3, 4, -3, -3, -3, -4}},
		{RoundingOut, []int64{3, 4, 4, 5, -3, -4, -4, -5}},
		{RoundingUp, []int64{4, 4, 4, 5, -3, -3, -3, -4}},
	}
	for _, test := range tests {
		for i, f := range values {
			t.Run(fmt.Sprintf("%s/%v", test.mode, f), func(t *testing.T) {
				x := mustFloat(t, f, Signed(true), IntBits(5), FracBits(2))
				a.NoError(x.SetRounding(test.mode))
				if a.NoError(x.Round(0)) {
					a.Equal("Q5.0", x.QFormat())
					a.Equal(test.want[i], x.Int64())
				}
			})
		}
	}
}

func TestRoundingFunctions(t *testing.T) {
	a := assert.New(t)
	x := mustFloat(t, 3.5, Signed(true), IntBits(5), FracBits(2))

	tests := []struct {
		round func(*FixedPoint, int) (*FixedPoint, error)
		want  int64
	}{
		{Convergent, 4},
		{RoundNearest, 4},
		{RoundDown, 3},
		{RoundIn, 3},
		{RoundOut, 4},
		{RoundUp, 4},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			res, err := test.round(x, 0)
			if a.NoError(err) {
				a.Equal(test.want, res.Int64())
				// The source is untouched.
				a.Equal(3.5, x.Float64())
			}
		})
	}

	res, err := Round(x, 1)
	if a.NoError(err) {
		a.Equal(3.5, res.Float64())
		a.Equal("Q5.1", res.QFormat())
	}
}

func TestRoundingOverflow(t *testing.T) {
	a := assert.New(t)

	x := mustFloat(t, 3.5) // UQ2.1
	err := x.RoundNearest(0)
	a.EqualError(err, "fixedpoint: overflow: nearest rounding to UQ2.0 format causes overflow")

	var sink recordSink
	x = mustFloat(t, 3.5, WithOverflowAlert(AlertWarning), WithSink(&sink))
	if a.NoError(x.RoundNearest(0)) {
		a.Equal(int64(3), x.Int64())
		a.True(x.Clamped())
		a.Equal([]string{
			"nearest rounding to UQ2.0 format causes overflow",
			"clamped to maximum",
		}, sink.msgs)
	}

	x = mustFloat(t, 3.5, WithOverflowAlert(AlertIgnore), WithOverflow(OverflowWrap))
	if a.NoError(x.RoundNearest(0)) {
		a.Equal(int64(0), x.Int64())
	}

	// Rounding down cannot overflow.
	x = mustFloat(t, 3.5)
	if a.NoError(x.RoundDown(0)) {
		a.Equal(int64(3), x.Int64())
	}
}

func TestRoundingArgCheck(t *testing.T) {
	a := assert.New(t)

	x := mustFloat(t, 3.0) // UQ2.0
	a.Error(x.Round(0))

	y := mustFloat(t, 0.25) // UQ0.2
	a.Error(y.Round(0))
	a.NoError(y.Round(1))
	a.Equal("UQ0.1", y.QFormat())

	z := mustFloat(t, 3.25, FracBits(3))
	a.Error(z.Round(3))
	a.Error(z.Round(-1))
}

func TestFloorCeilTrunc(t *testing.T) {
	a := assert.New(t)

	x := mustFloat(t, -3.25) // Q3.2
	x.Floor()
	a.Equal("Q3.2", x.QFormat())
	a.Equal(-4.0, x.Float64())

	x = mustFloat(t, -3.25)
	if a.NoError(x.Ceil()) {
		a.Equal("Q3.0", x.QFormat())
		a.Equal(int64(-3), x.Int64())
	}

	x = mustFloat(t, -3.25)
	if a.NoError(x.Trunc()) {
		a.Equal("Q3.0", x.QFormat())
		a.Equal(int64(-3), x.Int64())
	}

	// Fraction-only formats gain an integer bit.
	y := mustFloat(t, 0.25)
	if a.NoError(y.Ceil()) {
		a.Equal("UQ1.0", y.QFormat())
		a.Equal(int64(1), y.Int64())
	}
	y = mustFloat(t, 0.25)
	y.Floor()
	a.Equal("UQ0.2", y.QFormat())
	a.Equal(0.0, y.Float64())
	y = mustFloat(t, 0.25)
	if a.NoError(y.Trunc()) {
		a.Equal("UQ1.0", y.QFormat())
		a.Equal(int64(0), y.Int64())
	}

	// Ceil employs overflow handling.
	z := mustFloat(t, 3.75, Signed(true), IntBits(3), FracBits(2))
	a.EqualError(z.Ceil(), "fixedpoint: overflow: up rounding to Q3.0 format causes overflow")

	// Integer values are left as is.
	w := mustFloat(t, 5)
	a.NoError(w.Ceil())
	a.Equal("UQ3.0", w.QFormat())
	a.Equal(int64(5), w.Int64())
}
