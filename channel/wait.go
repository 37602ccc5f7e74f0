// Package channel provides the Wait/Channel hierarchy: a uniform readiness
// contract (Wait), the Channel lifecycle it's layered under (close/closed/
// async/shared), and three capability flavors (EventChannel,
// MessageChannel[T], StreamChannel), plus the concrete channel types that
// implement them.
//
// Semantics are grounded on original_source/rs-core/channel.hpp; the
// concurrency primitives (atomic state, broadcast-on-notify condition
// variables) follow the idiom in eventloop/state.go.
package channel

import "time"

// Wait is satisfied by anything that can report and block on readiness.
type Wait interface {
	// WaitFor blocks until the channel is ready or d elapses, returning
	// whether it was ready by the time the call returned. A non-positive
	// d polls once without blocking.
	WaitFor(d time.Duration) bool
	// WaitUntil blocks until the channel is ready or t is reached.
	WaitUntil(t time.Time) bool
	// Poll is a non-blocking readiness check, equivalent to WaitFor(0).
	Poll() bool
}

// Channel is the base lifecycle every concrete channel implements.
type Channel interface {
	Wait
	// Close marks the channel closed. Closing an already-closed channel
	// is a no-op. The in-memory channel types never return an error;
	// channels backed by an OS resource (the socket package's types)
	// return the error from releasing it.
	Close() error
	// IsClosed reports whether Close has been called.
	IsClosed() bool
	// IsAsync reports whether the channel may be safely waited on from a
	// dedicated goroutine concurrently with other operations. All
	// concrete channels here are async-capable except signalchan.PosixSignal.
	IsAsync() bool
	// IsShared reports whether multiple goroutines may safely read/write
	// the channel concurrently (as opposed to a single-owner channel).
	IsShared() bool
}

// waitUntilFromFor implements WaitUntil in terms of a type's WaitFor,
// matching the relationship the original expresses the other way around
// (do_wait_for takes a duration; callers compute it from a deadline).
func waitUntilFromFor(w Wait, t time.Time) bool {
	return w.WaitFor(time.Until(t))
}
