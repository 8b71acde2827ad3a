// Package obslog is the injected debug-log sink used by the parser and
// executor: debug logs, if any, go through an injected sink.
// Production code wires a zap.Logger-backed Sink; tests use NoOp or an
// observed sink from zap/zaptest to assert on emitted fields.
package obslog

import "go.uber.org/zap"

// Sink is the logging surface the core depends on. It never returns an
// error and never blocks on I/O, matching the core's purity contract.
type Sink interface {
	Debug(msg string, fields ...zap.Field)
	Warn(msg string, fields ...zap.Field)
}

// NoOp is a Sink that discards everything. It is the default when a caller
// does not wire a logger, so the core remains usable with zero setup.
var NoOp Sink = noopSink{}

type noopSink struct{}

func (noopSink) Debug(string, ...zap.Field) {}
func (noopSink) Warn(string, ...zap.Field)  {}

// Zap adapts a *zap.Logger to Sink.
func Zap(l *zap.Logger) Sink {
	if l == nil {
		return NoOp
	}
	return zapSink{l: l}
}

type zapSink struct{ l *zap.Logger }

func (z zapSink) Debug(msg string, fields ...zap.Field) { z.l.Debug(msg, fields...) }
func (z zapSink) Warn(msg string, fields ...zap.Field)  { z.l.Warn(msg, fields...) }
