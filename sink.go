// Copyright 2026 The fixedpoint authors. All rights reserved.

package fixedpoint

import "go.uber.org/zap"

// Sink receives warning-level diagnostics from the alerting pipeline.
// A sink is attached to a value at construction with WithSink and is never
// shared process-wide.
type Sink interface {
	Warnf(format string, args ...interface{})
}

type nopSink struct{}

func (nopSink) Warnf(string, ...interface{}) {}

// NopSink discards all diagnostics. It is the default sink.
var NopSink Sink = nopSink{}

// SinkFunc adapts a plain function to the Sink interface.
type SinkFunc func(format string, args ...interface{})

// Warnf calls f.
func (f SinkFunc) Warnf(format string, args ...interface{}) { f(format, args...) }

type zapSink struct {
	s *zap.SugaredLogger
}

func (z zapSink) Warnf(format string, args ...interface{}) { z.s.Warnf(format, args...) }

// NewZapSink returns a Sink that logs diagnostics to l at warn level.
func NewZapSink(l *zap.Logger) Sink {
	return zapSink{s: l.WithOptions(zap.AddCallerSkip(2)).Sugar()}
}
