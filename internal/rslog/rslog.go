// Package rslog is the structured-logging facade shared by the packages
// that log (dispatch, threadpool, statestore). Packages depend on
// the small Logger interface defined here, not on a concrete backend,
// mirroring how eventloop decouples its call sites from a specific
// logging framework.
package rslog

import (
	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
)

// Logger is the minimal structured-logging surface core packages use.
// Callers obtain one from New, or pass NoOp() to disable logging entirely.
type Logger interface {
	Debug() Event
	Info() Event
	Warn() Event
	Error() Event
}

// Event is a single in-flight log entry being built up with fields.
type Event interface {
	Str(key, value string) Event
	Err(err error) Event
	Int(key string, value int) Event
	Log(msg string)
}

// New returns a Logger backed by logiface+stumpy, configured by opts.
// Grounded on logiface-stumpy/factory.go's stumpy.L.New(stumpy.L.WithStumpy(...)) wiring.
func New(opts ...stumpy.Option) Logger {
	l := stumpy.L.New(stumpy.L.WithStumpy(opts...))
	return wrapped{l}
}

type wrapped struct {
	l *logiface.Logger[*stumpy.Event]
}

func (w wrapped) Debug() Event { return wrappedEvent{w.l.Debug()} }
func (w wrapped) Info() Event  { return wrappedEvent{w.l.Info()} }
func (w wrapped) Warn() Event  { return wrappedEvent{w.l.Warning()} }
func (w wrapped) Error() Event { return wrappedEvent{w.l.Err()} }

type wrappedEvent struct {
	b *logiface.Builder[*stumpy.Event]
}

func (e wrappedEvent) Str(key, value string) Event {
	return wrappedEvent{e.b.Str(key, value)}
}

func (e wrappedEvent) Err(err error) Event {
	return wrappedEvent{e.b.Err(err)}
}

func (e wrappedEvent) Int(key string, value int) Event {
	return wrappedEvent{e.b.Int(key, value)}
}

func (e wrappedEvent) Log(msg string) { e.b.Log(msg) }

// NoOp returns a Logger that discards everything, for callers (most tests,
// and any code that hasn't been given a real logger) that don't want the
// stumpy/logiface dependency exercised.
func NoOp() Logger { return noop{} }

type noop struct{}

func (noop) Debug() Event { return noopEvent{} }
func (noop) Info() Event  { return noopEvent{} }
func (noop) Warn() Event  { return noopEvent{} }
func (noop) Error() Event { return noopEvent{} }

type noopEvent struct{}

func (noopEvent) Str(string, string) Event { return noopEvent{} }
func (noopEvent) Err(error) Event          { return noopEvent{} }
func (noopEvent) Int(string, int) Event    { return noopEvent{} }
func (noopEvent) Log(string)               {}
