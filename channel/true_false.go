package channel

import (
	"sync"
	"sync/atomic"
	"time"
)

// TrueChannel is always ready until closed, at which point it stays ready
// permanently (Close only flips the "open" flag an EventChannel consumer
// checks; readiness is unaffected, per the original's do_wait_for returning
// true unconditionally). Grounded on channel.hpp's TrueChannel.
type TrueChannel struct {
	open atomic.Bool
}

// NewTrueChannel returns an open TrueChannel.
func NewTrueChannel() *TrueChannel {
	c := &TrueChannel{}
	c.open.Store(true)
	return c
}

func (c *TrueChannel) Close() error        { c.open.Store(false); return nil }
func (c *TrueChannel) IsClosed() bool      { return !c.open.Load() }
func (c *TrueChannel) IsAsync() bool       { return true }
func (c *TrueChannel) IsShared() bool      { return true }
func (c *TrueChannel) Poll() bool          { return true }
func (c *TrueChannel) WaitFor(time.Duration) bool { return true }
func (c *TrueChannel) WaitUntil(t time.Time) bool { return waitUntilFromFor(c, t) }

var _ EventChannel = (*TrueChannel)(nil)

// FalseChannel is never ready until Close is called, after which it is
// permanently ready (a one-shot "done" signal). Grounded on
// channel.hpp's FalseChannel, condvar-notify-all on close.
type FalseChannel struct {
	mu   sync.Mutex
	n    *notifier
	open bool
}

// NewFalseChannel returns an open FalseChannel.
func NewFalseChannel() *FalseChannel {
	return &FalseChannel{n: newNotifier(), open: true}
}

func (c *FalseChannel) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.open {
		c.open = false
		c.n.broadcast()
	}
	return nil
}

func (c *FalseChannel) IsClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.open
}

func (c *FalseChannel) IsAsync() bool { return true }
func (c *FalseChannel) IsShared() bool { return true }

func (c *FalseChannel) Poll() bool { return c.WaitFor(0) }

func (c *FalseChannel) WaitUntil(t time.Time) bool { return waitUntilFromFor(c, t) }

func (c *FalseChannel) WaitFor(d time.Duration) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.open {
		return true
	}
	if d <= 0 {
		return false
	}
	ch := c.n.wait()
	waitTimeout(&c.mu, ch, d)
	return !c.open
}

var _ EventChannel = (*FalseChannel)(nil)
