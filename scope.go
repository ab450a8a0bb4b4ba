// Copyright 2026 The fixedpoint authors. All rights reserved.

package fixedpoint

import "math/big"

// state is a full snapshot of a value, used to roll back scoped mutations.
type state struct {
	bits   *big.Int
	signed bool
	m, n   int
	props  properties
	sink   Sink
}

func (x *FixedPoint) snapshot() state {
	return state{
		bits:   new(big.Int).Set(x.bits),
		signed: x.signed,
		m:      x.m,
		n:      x.n,
		props:  x.props,
		sink:   x.sink,
	}
}

func (x *FixedPoint) restore(s state) {
	x.bits = s.bits
	x.signed = s.signed
	x.m = s.m
	x.n = s.n
	x.props = s.props
	x.sink = s.sink
}

// applyScoped applies property overrides first, then format overrides in
// fractional, integer, signedness order, so that integer growth happens
// before a sign flip can overflow.
func (x *FixedPoint) applyScoped(fn func(*FixedPoint) error, opts []Option) error {
	cfg := config{props: x.props, sink: x.sink}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return err
		}
	}
	x.props = cfg.props.normalized(x.signed)
	x.sink = cfg.sink
	if cfg.n != nil {
		if err := x.SetFracBits(*cfg.n); err != nil {
			return err
		}
	}
	if cfg.m != nil {
		if err := x.SetIntBits(*cfg.m); err != nil {
			return err
		}
	}
	if cfg.signed != nil {
		if err := x.SetSigned(*cfg.signed); err != nil {
			return err
		}
	}
	return fn(x)
}

// Scoped runs fn on x with the given overrides applied, then restores the
// value, its format and its properties regardless of the outcome.
func (x *FixedPoint) Scoped(fn func(*FixedPoint) error, opts ...Option) error {
	saved := x.snapshot()
	defer x.restore(saved)
	return x.applyScoped(fn, opts)
}

// ScopedRetain runs fn on x with the given overrides applied. Changes are
// kept if fn succeeds and rolled back if it fails.
func (x *FixedPoint) ScopedRetain(fn func(*FixedPoint) error, opts ...Option) error {
	saved := x.snapshot()
	if err := x.applyScoped(fn, opts); err != nil {
		x.restore(saved)
		return err
	}
	return nil
}
