package threadpool

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolDefaultSize(t *testing.T) {
	p := New()
	defer p.Shutdown()
	assert.GreaterOrEqual(t, p.Size(), 1)
}

func TestPoolExplicitSize(t *testing.T) {
	p := New(WithSize(4))
	defer p.Shutdown()
	assert.Equal(t, 4, p.Size())
}

func TestPoolRunsEveryTaskExactlyOnce(t *testing.T) {
	p := New(WithSize(4))
	defer p.Shutdown()

	const n = 100_000
	var counter atomic.Int64
	for i := 0; i < n; i++ {
		p.Insert(func() { counter.Add(1) })
	}
	p.Wait()
	assert.Equal(t, int64(n), counter.Load())
}

func TestPoolWorkStealingThroughput(t *testing.T) {
	p := New(WithSize(4))
	defer p.Shutdown()

	const n = 100_000
	start := time.Now()
	var counter atomic.Int64
	for i := 0; i < n; i++ {
		p.Insert(func() { counter.Add(1) })
	}
	p.Wait()
	elapsed := time.Since(start)
	assert.Equal(t, int64(n), counter.Load())
	assert.Less(t, elapsed, 5*time.Second)
}

func TestPoolClearDiscardsQueuedNotRunning(t *testing.T) {
	p := New(WithSize(1))
	defer p.Shutdown()

	block := make(chan struct{})
	started := make(chan struct{})
	p.Insert(func() {
		close(started)
		<-block
	})
	<-started

	var ran atomic.Bool
	p.Insert(func() { ran.Store(true) })

	// Clear must discard the still-queued second task while the first is
	// still running (blocked on <-block), then wait for that first task to
	// finish -- so run it concurrently and only unblock the first task
	// after giving Clear a chance to drop the queued one.
	clearDone := make(chan struct{})
	go func() {
		p.Clear()
		close(clearDone)
	}()
	time.Sleep(10 * time.Millisecond)
	close(block)
	<-clearDone
	assert.False(t, ran.Load(), "queued task must be discarded by Clear")
}

func TestPoolClearDropsConcurrentInsertsWhileClearing(t *testing.T) {
	p := New(WithSize(1))
	defer p.Shutdown()

	block := make(chan struct{})
	started := make(chan struct{})
	p.Insert(func() {
		close(started)
		<-block
	})
	<-started

	// Clear can't return until block is closed (the running task blocks
	// Wait from observing Pending()==0), so every Insert attempted between
	// here and close(block) below happens strictly while clearing>0.
	clearDone := make(chan struct{})
	go func() {
		p.Clear()
		close(clearDone)
	}()

	var ranAny atomic.Bool
	var attempts int
	stopFlood := make(chan struct{})
	floodDone := make(chan struct{})
	go func() {
		defer close(floodDone)
		for {
			select {
			case <-stopFlood:
				return
			default:
				attempts++
				p.Insert(func() { ranAny.Store(true) })
			}
		}
	}()

	time.Sleep(10 * time.Millisecond)
	close(stopFlood)
	<-floodDone
	close(block)
	<-clearDone

	assert.Greater(t, attempts, 0, "flood goroutine must have attempted at least one insert")
	assert.False(t, ranAny.Load(), "no task submitted while Clear is in progress may run")
}

func TestPoolShutdownJoinsWorkers(t *testing.T) {
	p := New(WithSize(2))
	var ran atomic.Bool
	p.Insert(func() { ran.Store(true) })
	p.Wait()
	p.Shutdown()
	require.True(t, ran.Load())
	p.Insert(func() { t.Fatal("task submitted after shutdown must not run") })
	time.Sleep(10 * time.Millisecond)
}
