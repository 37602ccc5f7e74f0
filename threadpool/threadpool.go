// Package threadpool implements a fixed-size work-stealing goroutine pool.
// Grounded on original_source/rs-core/thread-pool.cpp/.hpp: round-robin
// submission, each worker popping its own queue from the back (LIFO), and
// stealing from a uniformly random victim's queue front (FIFO) when its own
// is empty. Deliberately a plain mutex-protected slice-as-deque per worker,
// not a lock-free Chase-Lev deque, matching the original's explicit design.
package threadpool

import (
	"math/rand"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/joeycumines/go-rscore/internal/rslog"
)

// Task is a unit of work submitted to a Pool.
type Task func()

type worker struct {
	mu    sync.Mutex
	tasks []Task
}

// popBack removes and returns the most recently pushed task (LIFO), for a
// worker draining its own queue.
func (w *worker) popBack() (Task, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	n := len(w.tasks)
	if n == 0 {
		return nil, false
	}
	t := w.tasks[n-1]
	w.tasks = w.tasks[:n-1]
	return t, true
}

// popFront removes and returns the oldest pushed task (FIFO), for a thief
// stealing from someone else's queue.
func (w *worker) popFront() (Task, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.tasks) == 0 {
		return nil, false
	}
	t := w.tasks[0]
	w.tasks = w.tasks[1:]
	return t, true
}

func (w *worker) push(t Task) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.tasks = append(w.tasks, t)
}

func (w *worker) clear() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	n := len(w.tasks)
	w.tasks = nil
	return n
}

// Pool is a fixed-size, work-stealing goroutine pool.
type Pool struct {
	log          rslog.Logger
	workers      []*worker
	nextWorker   atomic.Uint64
	pending      atomic.Int64
	clearing     atomic.Int32
	shuttingDown atomic.Bool
	wg           sync.WaitGroup
}

// Option configures a Pool at construction.
type Option func(*poolConfig)

type poolConfig struct {
	size int
	log  rslog.Logger
}

// WithSize fixes the worker count. size <= 0 means runtime.NumCPU(),
// clamped to a minimum of 1, matching the original's size==0 default.
func WithSize(size int) Option {
	return func(c *poolConfig) { c.size = size }
}

// WithLogger attaches a structured logger.
func WithLogger(log rslog.Logger) Option {
	return func(c *poolConfig) { c.log = log }
}

// New starts a Pool and its worker goroutines.
func New(opts ...Option) *Pool {
	var c poolConfig
	for _, o := range opts {
		o(&c)
	}
	if c.size <= 0 {
		c.size = runtime.NumCPU()
	}
	if c.size < 1 {
		c.size = 1
	}
	if c.log == nil {
		c.log = rslog.NoOp()
	}

	p := &Pool{log: c.log}
	p.workers = make([]*worker, c.size)
	for i := range p.workers {
		p.workers[i] = &worker{}
	}
	p.wg.Add(c.size)
	for i := range p.workers {
		go p.run(i)
	}
	return p
}

// Size returns the fixed worker count.
func (p *Pool) Size() int { return len(p.workers) }

// Pending returns the number of tasks submitted but not yet completed.
func (p *Pool) Pending() int { return int(p.pending.Load()) }

// Poll is a non-blocking check for whether the pool has drained, making the
// pool itself satisfy a readiness-style contract (no pending work).
func (p *Pool) Poll() bool { return p.Pending() == 0 }

// Insert submits a task, round-robin across workers. A nil task, a call
// after Shutdown, or a call while a Clear is in progress is a no-op,
// matching the original's insert() behavior under clear_count/shutting_down
// (`if (clear_count || !call) return;`).
func (p *Pool) Insert(t Task) {
	if t == nil || p.shuttingDown.Load() || p.clearing.Load() > 0 {
		return
	}
	idx := int(p.nextWorker.Add(1)-1) % len(p.workers)
	p.pending.Add(1)
	p.workers[idx].push(t)
}

// Clear discards every not-yet-started queued task, then blocks until any
// in-flight tasks finish (Pending reaches 0). While a Clear is in progress,
// Insert silently drops submissions, matching the original's clear_count
// guard (`++clear_count; ...wait(); --clear_count;`).
func (p *Pool) Clear() {
	p.clearing.Add(1)
	defer p.clearing.Add(-1)
	for _, w := range p.workers {
		if n := w.clear(); n > 0 {
			p.pending.Add(-int64(n))
		}
	}
	p.Wait()
}

// Wait blocks until Pending reaches zero.
func (p *Pool) Wait() {
	for p.Pending() > 0 {
		time.Sleep(time.Millisecond)
	}
}

// Shutdown discards every queued, not-yet-started task (via Clear), waits
// for in-flight tasks to finish, stops accepting new work, and returns once
// every worker goroutine has terminated.
func (p *Pool) Shutdown() {
	p.Clear()
	p.shuttingDown.Store(true)
	p.wg.Wait()
}

func (p *Pool) run(idx int) {
	defer p.wg.Done()
	self := p.workers[idx]
	rnd := rand.New(rand.NewSource(int64(idx) + time.Now().UnixNano()))
	n := len(p.workers)

	for {
		t, ok := self.popBack()
		if !ok && n > 1 {
			victim := idx
			for victim == idx {
				victim = rnd.Intn(n)
			}
			t, ok = p.workers[victim].popFront()
		}
		if ok {
			p.safeRun(t)
			p.pending.Add(-1)
			continue
		}
		if p.shuttingDown.Load() {
			return
		}
		time.Sleep(time.Millisecond)
	}
}

func (p *Pool) safeRun(t Task) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Error().Log("threadpool: task panicked")
		}
	}()
	t()
}
