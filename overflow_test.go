// Copyright 2026 The fixedpoint authors. All rights reserved.

package fixedpoint

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampWrap(t *testing.T) {
	a := assert.New(t)

	x := mustFloat(t, -3.5, IntBits(4)) // Q4.1
	if a.NoError(x.Clamp(3)) {
		a.Equal("Q3.1", x.QFormat())
		a.Equal(-3.5, x.Float64())
	}

	a.EqualError(x.Clamp(2), "fixedpoint: overflow: overflow in Q3.1 format")

	var sink recordSink
	x.SetSink(&sink)
	if a.NoError(x.Clamp(2, AlertWarning)) {
		a.Equal("Q2.1", x.QFormat())
		a.Equal(-2.0, x.Float64()) // minimum of Q2.1
		a.Equal([]string{
			"overflow in Q3.1 format",
			"clamped to minimum",
		}, sink.msgs)
	}

	y := mustFloat(t, -3.5, IntBits(4)) // Q4.1, bits 11001
	if a.NoError(y.Wrap(2, AlertIgnore)) {
		a.Equal("Q2.1", y.QFormat())
		a.Equal(0.5, y.Float64()) // low bits 001
	}
}

func TestClampWrapArgCheck(t *testing.T) {
	a := assert.New(t)
	x := mustFloat(t, -3.5, IntBits(4)) // Q4.1
	a.Error(x.Clamp(4))
	a.Error(x.Clamp(0))
	a.Error(x.Wrap(5))

	u := mustFloat(t, 5) // UQ3.0
	a.Error(u.Clamp(0))  // 0 integer bits need fractional ones
}

func TestKeepLSBs(t *testing.T) {
	a := assert.New(t)

	x, err := FromInt64(13) // UQ4.0, bits 1101
	a.NoError(err)
	a.EqualError(x.KeepLSBs(2, 0), "fixedpoint: overflow: overflow in UQ4.0 format")
	a.Equal("UQ4.0", x.QFormat())

	var sink recordSink
	x.SetSink(&sink)
	if a.NoError(x.KeepLSBs(2, 0, WithOverflowAlert(AlertWarning))) {
		a.Equal("UQ2.0", x.QFormat())
		a.Equal(int64(3), x.Int64()) // clamped to maximum
		a.Equal([]string{
			"overflow in UQ4.0 format",
			"clamped to maximum",
		}, sink.msgs)
	}

	y, err := FromInt64(13)
	a.NoError(err)
	if a.NoError(y.KeepLSBs(2, 0, WithOverflow(OverflowWrap), WithOverflowAlert(AlertIgnore))) {
		a.Equal("UQ2.0", y.QFormat())
		a.Equal(int64(1), y.Int64()) // low bits 01
	}

	// No overflow when the value fits the kept bits.
	z, err := FromInt64(2, IntBits(4))
	a.NoError(err)
	if a.NoError(z.KeepLSBs(2, 0)) {
		a.Equal(int64(2), z.Int64())
	}

	// The binary point moves with the kept window.
	w := mustFloat(t, 1.25, IntBits(4)) // UQ4.2, bits 000101
	if a.NoError(w.KeepLSBs(1, 2)) {
		a.Equal("UQ1.2", w.QFormat())
		a.Equal(1.25, w.Float64())
	}
}

func TestKeepMSBs(t *testing.T) {
	a := assert.New(t)

	x, err := FromInt64(13) // UQ4.0, bits 1101
	a.NoError(err)
	if a.NoError(x.KeepMSBs(2, 0)) {
		a.Equal("UQ2.0", x.QFormat())
		a.Equal(int64(3), x.Int64())
	}

	y, err := FromInt64(13)
	a.NoError(err)
	if a.NoError(y.KeepMSBs(2, 1)) {
		a.Equal("UQ2.1", y.QFormat())
		a.Equal(3.5, y.Float64()) // 3.25 rounds half up
	}

	z, err := FromInt64(13)
	a.NoError(err)
	if a.NoError(z.KeepMSBs(2, 1, WithRounding(RoundingDown))) {
		a.Equal(3.0, z.Float64())
	}
}

func TestKeepArgCheck(t *testing.T) {
	a := assert.New(t)
	x, err := FromInt64(13) // UQ4.0
	a.NoError(err)
	a.Error(x.KeepMSBs(1, 0))  // fewer than 2 bits
	a.Error(x.KeepMSBs(4, 0))  // must shrink
	a.Error(x.KeepMSBs(-1, 3)) // negative widths
	a.Error(x.KeepLSBs(5, 0))
	a.Error(x.KeepLSBs(2, -1))

	s := mustFloat(t, -3.25, IntBits(4)) // Q4.2
	a.Error(s.KeepLSBs(0, 3)) // signed values need an integer bit
}
