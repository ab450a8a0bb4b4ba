// Copyright 2026 The fixedpoint authors. All rights reserved.

package fixedpoint

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidFormat is returned for bad (signed, m, n) combinations and
	// malformed bit-width arguments.
	ErrInvalidFormat = errors.New("fixedpoint: invalid format")
	// ErrOverflow is returned when a value does not fit its format and the
	// acting overflow alert is set to AlertError.
	ErrOverflow = errors.New("fixedpoint: overflow")
	// ErrMismatch is returned when two operands have different properties and
	// the resolved mismatch alert is set to AlertError.
	ErrMismatch = errors.New("fixedpoint: property mismatch")
	// ErrImplicitCast is returned when casting a non-native operand introduces
	// a numeric error and the implicit cast alert is set to AlertError.
	ErrImplicitCast = errors.New("fixedpoint: implicit cast")
	// ErrDomain is returned for operations that are undefined for the value,
	// such as negating an unsigned number.
	ErrDomain = errors.New("fixedpoint: domain error")
	// ErrBitSpec is returned for out-of-range bit indices and unknown bit
	// field keys.
	ErrBitSpec = errors.New("fixedpoint: invalid bit specification")
)

// raise routes a single diagnostic through the alerting pipeline.
// AlertError produces a wrapped error, AlertWarning emits the message to the
// sink, AlertIgnore drops it.
func raise(sink Sink, severity Alert, kind error, format string, args ...interface{}) error {
	switch severity {
	case AlertError:
		return fmt.Errorf("%w: "+format, append([]interface{}{kind}, args...)...)
	case AlertWarning:
		sink.Warnf(format, args...)
	}
	return nil
}
