// Package dispatch implements the registry that drives channels: a sync
// mode that polls registrations with an adaptive backoff, and an async mode
// that runs one goroutine per registration. Grounded on
// original_source/rs-core/channel.hpp's Dispatch class; the Go port
// structures the backoff/registration-sweep loop the way
// eventloop/loop.go's tick() structures its own event loop.
package dispatch

import (
	"runtime"
	"sync"
	"time"

	"github.com/joeycumines/go-rscore/channel"
	"github.com/joeycumines/go-rscore/internal/rslog"
	"github.com/joeycumines/go-rscore/rserr"
)

// Mode selects how a registration is driven.
type Mode int

const (
	// ModeSync is driven by the owning Dispatcher's Run loop (a polling
	// sweep across all sync registrations).
	ModeSync Mode = iota + 1
	// ModeAsync is driven by a dedicated goroutine per registration; only
	// valid for channels where IsAsync() is true.
	ModeAsync
)

func (m Mode) String() string {
	switch m {
	case ModeSync:
		return "sync"
	case ModeAsync:
		return "async"
	default:
		return "invalid"
	}
}

// Result is returned by Run, reporting which registration terminated the
// sweep and why.
type Result struct {
	Channel channel.Channel
	Err     error
}

// Reason derives the termination classification from a Result, per
// rserr.Reason.
func (r Result) Reason() rserr.Reason {
	switch {
	case r.Err != nil:
		return rserr.ReasonError
	case r.Channel != nil:
		return rserr.ReasonClosed
	default:
		return rserr.ReasonEmpty
	}
}

type registration struct {
	ch      channel.Channel
	mode    Mode
	call    func() error
	done    chan struct{}
	runErr  error
	stopped bool
}

// Dispatcher is an owned registry of channel registrations. Unlike the
// original's process-wide Dispatch singleton, every Dispatcher here is an
// explicit value a caller constructs and owns (see DESIGN.md's Open
// Question resolution on dispatch ordering); use Default for a
// convenience package-level instance if a single shared one is wanted.
type Dispatcher struct {
	log rslog.Logger

	mu    sync.Mutex
	order []channel.Channel
	regs  map[channel.Channel]*registration
}

// New returns an empty Dispatcher. A nil logger disables logging.
func New(log rslog.Logger) *Dispatcher {
	if log == nil {
		log = rslog.NoOp()
	}
	return &Dispatcher{log: log, regs: make(map[channel.Channel]*registration)}
}

// Default is a convenience shared Dispatcher, for callers that don't need
// isolated registries. Most code should construct its own via New.
var Default = New(nil)

// AddEvent registers an EventChannel; handler is invoked with no argument
// each time the channel is ready.
func AddEvent(d *Dispatcher, ch channel.EventChannel, m Mode, handler func()) error {
	if handler == nil {
		return rserr.ErrInvalidArgument
	}
	return d.addTask(ch, m, func() error {
		handler()
		return nil
	})
}

// AddMessage registers a MessageChannel[T]; handler receives each value the
// channel yields via Read.
func AddMessage[T any](d *Dispatcher, ch channel.MessageChannel[T], m Mode, handler func(T)) error {
	if handler == nil {
		return rserr.ErrInvalidArgument
	}
	return d.addTask(ch, m, func() error {
		if v, ok := ch.Read(); ok {
			handler(v)
		}
		return nil
	})
}

// AddStream registers a StreamChannel; handler receives each chunk read
// using the channel's configured buffer size.
func AddStream(d *Dispatcher, ch channel.StreamChannel, m Mode, handler func([]byte)) error {
	if handler == nil {
		return rserr.ErrInvalidArgument
	}
	buf := make([]byte, ch.BufferSize())
	return d.addTask(ch, m, func() error {
		n, _ := ch.Read(buf)
		if n > 0 {
			cp := make([]byte, n)
			copy(cp, buf[:n])
			handler(cp)
		}
		return nil
	})
}

// Drop removes ch's registration, if any, without closing it.
func (d *Dispatcher) Drop(ch channel.Channel) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.dropLocked(ch)
}

func (d *Dispatcher) dropLocked(ch channel.Channel) {
	if _, ok := d.regs[ch]; !ok {
		return
	}
	delete(d.regs, ch)
	for i, c := range d.order {
		if c == ch {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
}

// Empty reports whether no channel is currently registered.
func (d *Dispatcher) Empty() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.order) == 0
}

func (d *Dispatcher) addTask(ch channel.Channel, m Mode, call func() error) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.regs[ch]; exists && !ch.IsShared() {
		return rserr.ErrAlreadyRegistered
	}
	if m != ModeSync && m != ModeAsync {
		return rserr.ErrInvalidArgument
	}
	if m == ModeAsync && !ch.IsAsync() {
		return rserr.ErrInvalidArgument
	}
	if call == nil {
		return rserr.ErrInvalidArgument
	}

	r := &registration{ch: ch, mode: m, call: call}
	if _, exists := d.regs[ch]; !exists {
		d.order = append(d.order, ch)
	}
	d.regs[ch] = r

	if m == ModeAsync {
		r.done = make(chan struct{})
		go d.runAsync(ch, r)
	}
	return nil
}

func (d *Dispatcher) runAsync(ch channel.Channel, r *registration) {
	defer close(r.done)
	defer func() {
		if p := recover(); p != nil {
			r.runErr = &rserr.HandlerError{Panic: p}
		}
	}()
	for {
		if !ch.WaitFor(time.Second) {
			continue
		}
		if ch.IsClosed() {
			return
		}
		if err := safeCall(r.call); err != nil {
			r.runErr = err
			return
		}
	}
}

func safeCall(call func() error) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = &rserr.HandlerError{Panic: p}
		}
	}()
	return call()
}

const (
	minInterval = time.Microsecond
	maxInterval = time.Millisecond
)

// Run sweeps all registrations once per iteration, polling sync channels
// and checking whether async channels have terminated, backing off with
// doubling sleeps (capped at maxInterval) when a sweep makes no progress.
// It returns as soon as any single registration terminates (closes or
// errors), exactly as the original's Dispatch::run does, dropping that
// registration from the registry before returning.
func (d *Dispatcher) Run() Result {
	var rc Result
	if d.Empty() {
		return rc
	}

	waits := 0
	interval := minInterval
	for {
		d.mu.Lock()
		order := append([]channel.Channel(nil), d.order...)
		d.mu.Unlock()

		calls := 0
		for _, ch := range order {
			d.mu.Lock()
			r, ok := d.regs[ch]
			d.mu.Unlock()
			if !ok {
				continue
			}

			if r.mode == ModeSync {
				if !ch.Poll() {
					continue
				}
				if ch.IsClosed() {
					rc.Channel = ch
					d.Drop(ch)
					return rc
				}
				if err := safeCall(r.call); err != nil {
					rc.Channel = ch
					rc.Err = err
					d.log.Error().Err(err).Log("dispatch: sync handler error")
					d.Drop(ch)
					return rc
				}
				calls++
				continue
			}

			select {
			case <-r.done:
				rc.Channel = ch
				rc.Err = r.runErr
				if r.runErr != nil {
					d.log.Error().Err(r.runErr).Log("dispatch: async handler error")
				}
				d.Drop(ch)
				return rc
			default:
			}
		}

		if calls == 0 {
			waits++
			if waits == 1 {
				interval = minInterval
			} else {
				interval *= 2
				if interval > maxInterval {
					interval = maxInterval
				}
			}
			time.Sleep(interval)
		} else {
			waits = 0
			runtime.Gosched()
		}
	}
}

// Stop closes every registered channel, then repeatedly calls Run until the
// registry is empty, draining each registration's terminal sweep.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	order := append([]channel.Channel(nil), d.order...)
	d.mu.Unlock()
	for _, ch := range order {
		_ = ch.Close()
	}
	for !d.Empty() {
		d.Run()
	}
}
