// Copyright 2026 The fixedpoint authors. All rights reserved.

package fixedpoint

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetIntBits(t *testing.T) {
	a := assert.New(t)

	// Growing sign-extends negative values.
	x := mustFloat(t, -3.25) // Q3.2
	if a.NoError(x.SetIntBits(5)) {
		a.Equal("Q5.2", x.QFormat())
		a.Equal("1110011", x.Bits().String())
		a.Equal(-3.25, x.Float64())
	}

	// Shrinking employs overflow handling.
	if a.NoError(x.SetIntBits(3)) {
		a.Equal("Q3.2", x.QFormat())
		a.Equal(-3.25, x.Float64())
	}
	a.Error(x.SetIntBits(2))

	u := mustFloat(t, 2.5) // UQ2.1
	if a.NoError(u.SetIntBits(4)) {
		a.Equal("UQ4.1", u.QFormat())
		a.Equal(2.5, u.Float64())
	}

	a.Error(x.SetIntBits(0)) // signed values need an integer bit
	y := mustFloat(t, 0.5)   // UQ0.1
	a.Error(y.SetIntBits(-1))
}

func TestSetFracBits(t *testing.T) {
	a := assert.New(t)

	x := mustFloat(t, -3.25) // Q3.2
	if a.NoError(x.SetFracBits(4)) {
		a.Equal("Q3.4", x.QFormat())
		a.Equal(-3.25, x.Float64())
	}

	// Shrinking rounds with the configured scheme.
	if a.NoError(x.SetFracBits(1)) {
		a.Equal("Q3.1", x.QFormat())
		a.Equal(-3.0, x.Float64()) // convergent tie to even
	}

	a.Error(x.SetFracBits(-1))
	i, err := FromInt64(3) // UQ2.0
	a.NoError(err)
	a.NoError(i.SetFracBits(2))
	a.Equal("UQ2.2", i.QFormat())
}

func TestSetSigned(t *testing.T) {
	a := assert.New(t)

	// Clear sign bit converts freely.
	x, err := FromInt64(1, IntBits(2))
	a.NoError(err)
	if a.NoError(x.SetSigned(true)) {
		a.Equal("Q2.0", x.QFormat())
		a.Equal(int64(1), x.Int64())
	}
	a.NoError(x.SetSigned(false))

	// A set sign bit overflows.
	y, err := FromInt64(13) // UQ4.0
	a.NoError(err)
	a.Error(y.SetSigned(true))

	var sink recordSink
	y.SetSink(&sink)
	a.NoError(y.SetOverflowAlert(AlertWarning))
	if a.NoError(y.SetSigned(true)) {
		a.Equal(int64(7), y.Int64()) // clamped to signed maximum
		a.Len(sink.msgs, 2)
	}

	z, err := FromString("0b1101", Signed(false), IntBits(4), FracBits(0),
		WithOverflow(OverflowWrap), WithOverflowAlert(AlertIgnore))
	a.NoError(err)
	if a.NoError(z.SetSigned(true)) {
		a.Equal(int64(-3), z.Int64()) // bits kept, reinterpreted
	}

	// Signed to unsigned clamps negatives to zero.
	n := mustFloat(t, -3, WithOverflowAlert(AlertIgnore))
	if a.NoError(n.SetSigned(false)) {
		a.Equal(int64(0), n.Int64())
	}

	f := mustFloat(t, 0.25) // UQ0.2
	a.Error(f.SetSigned(true))
}

func TestResize(t *testing.T) {
	a := assert.New(t)

	x := mustFloat(t, 3.25, Signed(true), IntBits(3)) // Q3.2
	if a.NoError(x.Resize(3, 1)) {
		a.Equal("Q3.1", x.QFormat())
		a.Equal(3.0, x.Float64()) // convergent tie to even
	}

	// A failing resize leaves the value untouched.
	y := mustFloat(t, 3.25, Signed(true), IntBits(3))
	a.Error(y.Resize(2, 1))
	a.Equal("Q3.2", y.QFormat())
	a.Equal(3.25, y.Float64())

	// Scoped overrides apply for the call only.
	z := mustFloat(t, 3.25, Signed(true), IntBits(3))
	if a.NoError(z.Resize(2, 1, WithOverflowAlert(AlertIgnore))) {
		a.Equal("Q2.1", z.QFormat())
		a.Equal(1.5, z.Float64()) // clamped to maximum
		a.Equal(AlertError, z.OverflowAlert())
		a.Equal(RoundingConvergent, z.Rounding())
	}

	w := mustFloat(t, 3.25, Signed(true), IntBits(3))
	if a.NoError(w.Resize(3, 1, WithRounding(RoundingUp))) {
		a.Equal(3.5, w.Float64())
		a.Equal(RoundingConvergent, w.Rounding())
	}

	// Growing both widths never rounds or overflows.
	v := mustFloat(t, -3.25)
	if a.NoError(v.Resize(5, 4)) {
		a.Equal("Q5.4", v.QFormat())
		a.Equal(-3.25, v.Float64())
	}
}
