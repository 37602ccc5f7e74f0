package channel

import (
	"sync"
	"time"
)

// ThrottleChannel is ready at most once per interval delta: the first wait
// is immediate, and overdue readiness does not accumulate (unlike
// TimerChannel, which tracks a fixed grid of ticks, ThrottleChannel just
// re-arms delta after each successful wait). Grounded on channel.hpp's
// ThrottleChannel.
type ThrottleChannel struct {
	mu    sync.Mutex
	n     *notifier
	delta time.Duration
	next  time.Time // zero value == "never armed", i.e. ready immediately
	open  bool
}

// NewThrottleChannel returns a ThrottleChannel allowing at most one
// readiness event per d.
func NewThrottleChannel(d time.Duration) *ThrottleChannel {
	if d < 0 {
		d = 0
	}
	return &ThrottleChannel{n: newNotifier(), delta: d, open: true}
}

func (c *ThrottleChannel) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.open {
		c.open = false
		c.n.broadcast()
	}
	return nil
}

func (c *ThrottleChannel) IsClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.open
}

func (c *ThrottleChannel) IsAsync() bool  { return true }
func (c *ThrottleChannel) IsShared() bool { return true }

func (c *ThrottleChannel) Interval() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.delta
}

func (c *ThrottleChannel) Poll() bool { return c.WaitFor(0) }

func (c *ThrottleChannel) WaitUntil(t time.Time) bool { return waitUntilFromFor(c, t) }

func (c *ThrottleChannel) WaitFor(d time.Duration) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.open {
		return true
	}
	now := time.Now()
	if c.next.IsZero() || !c.next.After(now) {
		c.next = now.Add(c.delta)
		return true
	}
	if d <= 0 {
		return false
	}
	remaining := c.next.Sub(now)
	wait := d
	if remaining < wait {
		wait = remaining
	}
	ch := c.n.wait()
	waitTimeout(&c.mu, ch, wait)
	if !c.open {
		return true
	}
	if wait == remaining && !c.next.After(time.Now()) {
		c.next = time.Now().Add(c.delta)
		return true
	}
	return false
}

var _ EventChannel = (*ThrottleChannel)(nil)
