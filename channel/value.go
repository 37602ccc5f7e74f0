package channel

import (
	"sync"
	"time"
)

// valueStatus mirrors the original's tri-state int (+1 new, 0 unchanged,
// -1 closed).
type valueStatus int

const (
	valueNone   valueStatus = 0
	valueNew    valueStatus = 1
	valueClosed valueStatus = -1
)

// ValueChannel holds the latest value of type T, becoming ready when it
// changes. Writing a value equal (==) to the current one is a documented
// no-op: it does not set the ready flag and does not wake waiters. This
// dedup-on-equal-write behavior is load-bearing, not an oversight — see
// channel.hpp's ValueChannel<T>::write. T must be comparable.
type ValueChannel[T comparable] struct {
	mu     sync.Mutex
	n      *notifier
	value  T
	status valueStatus
}

// NewValueChannel returns a ValueChannel initialized to the zero value of T.
func NewValueChannel[T comparable]() *ValueChannel[T] {
	return &ValueChannel[T]{n: newNotifier()}
}

// NewValueChannelWithValue returns a ValueChannel initialized to t, with no
// pending "new value" readiness (matching the original's explicit
// value-seeding constructor, which doesn't mark status as new).
func NewValueChannelWithValue[T comparable](t T) *ValueChannel[T] {
	return &ValueChannel[T]{n: newNotifier(), value: t}
}

func (c *ValueChannel[T]) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.status != valueClosed {
		c.status = valueClosed
		c.n.broadcast()
	}
	return nil
}

func (c *ValueChannel[T]) IsClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status == valueClosed
}

func (c *ValueChannel[T]) IsAsync() bool  { return true }
func (c *ValueChannel[T]) IsShared() bool { return true }

// Clear resets pending-new-value status back to none without changing the
// stored value, for callers that want to suppress a pending Read without
// consuming it.
func (c *ValueChannel[T]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.status == valueNew {
		c.status = valueNone
	}
}

// Write sets the value. Returns false only if the channel is closed. A
// write equal to the current value is a no-op (still returns true) and
// does not mark the channel ready or wake waiters.
func (c *ValueChannel[T]) Write(t T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.status == valueClosed {
		return false
	}
	if t == c.value {
		return true
	}
	c.value = t
	c.status = valueNew
	c.n.broadcast()
	return true
}

// Read takes the pending new value, if any. ok is false if the value
// hasn't changed since the last Read (or ever).
func (c *ValueChannel[T]) Read() (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.status != valueNew {
		var zero T
		return zero, false
	}
	v := c.value
	c.status = valueNone
	return v, true
}

func (c *ValueChannel[T]) Poll() bool { return c.WaitFor(0) }

func (c *ValueChannel[T]) WaitUntil(t time.Time) bool { return waitUntilFromFor(c, t) }

func (c *ValueChannel[T]) WaitFor(d time.Duration) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return waitForCond(&c.mu, c.n, d, func() bool {
		return c.status != valueNone
	})
}

var _ MessageChannel[int] = (*ValueChannel[int])(nil)
