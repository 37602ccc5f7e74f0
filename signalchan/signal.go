// Package signalchan implements PosixSignal, a MessageChannel[int] bridge
// onto OS signal delivery, grounded on original_source/rs-core/signal.hpp
// and signal.cpp and on the os/signal.Notify idiom shown in
// joeycumines-go-utilpkg/prompt/signal_common.go.
//
// The original has two implementations selected at compile time: one using
// sigtimedwait/pthread_sigmask on POSIX builds, one a plain
// mutex+condition_variable stub everywhere else ("is_async() == false" in
// both cases -- a single waiter only, never safe to wait on concurrently
// from two goroutines). Go's os/signal package already abstracts the
// platform difference, so PosixSignal has one implementation: a buffered
// os.Signal channel drained by WaitFor/Read, with a single-waiter contract
// enforced explicitly (see Open Question #3 in DESIGN.md) since Go gives no
// equivalent of sigtimedwait to make concurrent waits safe.
package signalchan

import (
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"time"

	"github.com/joeycumines/go-rscore/channel"
	"github.com/joeycumines/go-rscore/rserr"
)

// PosixSignal bridges a set of OS signals into the channel.MessageChannel[int]
// contract. Every signal number registered, plus SIGUSR1-equivalent wakeups
// used internally by the original to unblock a waiting sigtimedwait, maps in
// Go onto closing the bridge's internal signal.Notify channel via Close:
// no extra signal is needed since Go's select can watch a done channel
// directly alongside the signal channel.
type PosixSignal struct {
	sigCh chan os.Signal
	done  chan struct{}

	mu     sync.Mutex
	queue  []int
	closed bool

	waiting atomic.Bool
}

// New registers interest in the given signals and returns an open
// PosixSignal. The zero value is not usable; always construct via New.
func New(sigs ...os.Signal) *PosixSignal {
	p := &PosixSignal{
		sigCh: make(chan os.Signal, 128),
		done:  make(chan struct{}),
	}
	if len(sigs) > 0 {
		signal.Notify(p.sigCh, sigs...)
	}
	return p
}

// Close stops signal delivery and unblocks any in-progress WaitFor. Safe to
// call more than once.
func (p *PosixSignal) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	signal.Stop(p.sigCh)
	close(p.done)
	return nil
}

func (p *PosixSignal) IsClosed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

// IsAsync always reports false: matching the original's is_async() on both
// of its platform variants, a PosixSignal supports exactly one waiter at a
// time. A second concurrent WaitFor/Poll returns false immediately (and a
// second concurrent TryWait returns rserr.ErrInUse) rather than corrupting
// delivery order between two goroutines racing to drain the same os.Signal
// channel.
func (p *PosixSignal) IsAsync() bool { return false }

func (p *PosixSignal) IsShared() bool { return false }

// Read dequeues one previously observed signal number. It never blocks and
// never itself drains the OS channel -- that only happens inside WaitFor.
func (p *PosixSignal) Read() (int, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.queue) == 0 {
		return 0, false
	}
	s := p.queue[0]
	p.queue = p.queue[1:]
	return s, true
}

func (p *PosixSignal) Poll() bool { return p.WaitFor(0) }

func (p *PosixSignal) WaitUntil(t time.Time) bool { return p.WaitFor(time.Until(t)) }

// WaitFor blocks up to d for a signal to arrive, queuing it for Read, or
// for Close. Returns true immediately if already closed or if a signal is
// already queued. A second, concurrent WaitFor/Poll call (violating the
// IsAsync()==false single-waiter contract) returns false immediately rather
// than blocking or corrupting delivery order; use TryWait to distinguish
// that case from "not ready yet" via rserr.ErrInUse.
func (p *PosixSignal) WaitFor(d time.Duration) bool {
	ready, _ := p.TryWait(d)
	return ready
}

// TryWait is WaitFor's explicit-error sibling: where the original's
// is_async()==false contract means a second concurrent waiter is a logic
// bug, TryWait reports that case as rserr.ErrInUse instead of silently
// returning false, for callers that want to detect misuse rather than
// mistake contention for "not ready yet".
func (p *PosixSignal) TryWait(d time.Duration) (ready bool, err error) {
	if !p.waiting.CompareAndSwap(false, true) {
		return false, rserr.ErrInUse
	}
	defer p.waiting.Store(false)

	p.mu.Lock()
	if p.closed || len(p.queue) > 0 {
		p.mu.Unlock()
		return true, nil
	}
	p.mu.Unlock()

	if d <= 0 {
		select {
		case s := <-p.sigCh:
			p.push(s)
			return true, nil
		case <-p.done:
			return true, nil
		default:
			return false, nil
		}
	}

	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case s := <-p.sigCh:
		p.push(s)
		return true, nil
	case <-p.done:
		return true, nil
	case <-timer.C:
		return false, nil
	}
}

func (p *PosixSignal) push(s os.Signal) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.queue = append(p.queue, signalNumber(s))
}

var _ channel.MessageChannel[int] = (*PosixSignal)(nil)
