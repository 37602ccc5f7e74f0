package channel

import (
	"sync"
	"time"
)

// TimerChannel is ready once per interval delta, catching up after a Flush
// by skipping ahead to the next future tick rather than firing a backlog.
// Grounded on channel.hpp's TimerChannel.
type TimerChannel struct {
	mu       sync.Mutex
	n        *notifier
	delta    time.Duration
	nextTick time.Time
	open     bool
}

// NewTimerChannel returns a TimerChannel that becomes ready every d,
// starting one interval from now. d <= 0 is clamped to 0 (always ready).
func NewTimerChannel(d time.Duration) *TimerChannel {
	if d < 0 {
		d = 0
	}
	return &TimerChannel{
		n:        newNotifier(),
		delta:    d,
		nextTick: time.Now().Add(d),
		open:     true,
	}
}

func (c *TimerChannel) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.open {
		c.open = false
		c.n.broadcast()
	}
	return nil
}

func (c *TimerChannel) IsClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.open
}

func (c *TimerChannel) IsAsync() bool  { return true }
func (c *TimerChannel) IsShared() bool { return true }

// Interval returns the configured tick period.
func (c *TimerChannel) Interval() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.delta
}

// Next returns the time of the next scheduled tick.
func (c *TimerChannel) Next() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.nextTick
}

// Flush discards any overdue ticks, advancing straight to the next tick
// strictly after now, rather than letting a caller observe a backlog of
// ready-ness for every missed interval.
func (c *TimerChannel) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.open {
		return
	}
	now := time.Now()
	if now.Before(c.nextTick) {
		return
	}
	if c.delta <= 0 {
		c.nextTick = now
		return
	}
	skip := int64(now.Sub(c.nextTick)) / int64(c.delta)
	c.nextTick = c.nextTick.Add(c.delta * time.Duration(skip+1))
}

func (c *TimerChannel) Poll() bool { return c.WaitFor(0) }

func (c *TimerChannel) WaitUntil(t time.Time) bool { return waitUntilFromFor(c, t) }

func (c *TimerChannel) WaitFor(d time.Duration) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.open {
		return true
	}
	now := time.Now()
	if !c.nextTick.After(now) {
		c.nextTick = c.nextTick.Add(c.delta)
		return true
	}
	if d <= 0 {
		return false
	}
	remaining := c.nextTick.Sub(now)
	wait := d
	if remaining < wait {
		wait = remaining
	}
	ch := c.n.wait()
	waitTimeout(&c.mu, ch, wait)
	if !c.open {
		return true
	}
	if wait == remaining && !c.nextTick.After(time.Now()) {
		c.nextTick = c.nextTick.Add(c.delta)
		return true
	}
	return false
}

var _ EventChannel = (*TimerChannel)(nil)
