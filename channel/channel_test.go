package channel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrueChannel(t *testing.T) {
	c := NewTrueChannel()
	assert.True(t, c.Poll())
	assert.False(t, c.IsClosed())
	require.NoError(t, c.Close())
	assert.True(t, c.IsClosed())
	assert.True(t, c.Poll(), "TrueChannel stays ready after close")
}

func TestFalseChannel(t *testing.T) {
	c := NewFalseChannel()
	assert.False(t, c.Poll())
	done := make(chan bool, 1)
	go func() { done <- c.WaitFor(time.Second) }()
	time.Sleep(20 * time.Millisecond)
	require.NoError(t, c.Close())
	assert.True(t, <-done)
	assert.True(t, c.IsClosed())
	assert.True(t, c.Poll(), "FalseChannel is permanently ready after close")
}

func TestTimerChannelDrift(t *testing.T) {
	c := NewTimerChannel(20 * time.Millisecond)
	start := time.Now()
	for i := 0; i < 3; i++ {
		require.True(t, c.WaitFor(time.Second))
	}
	elapsed := time.Since(start)
	// three ticks of 20ms should land close to 60ms, not drift wildly.
	assert.Greater(t, elapsed, 40*time.Millisecond)
	assert.Less(t, elapsed, 400*time.Millisecond)
}

func TestTimerChannelFlushSkipsBacklog(t *testing.T) {
	c := NewTimerChannel(10 * time.Millisecond)
	time.Sleep(55 * time.Millisecond)
	c.Flush()
	next := c.Next()
	assert.True(t, next.After(time.Now().Add(-time.Millisecond)))
}

func TestThrottleChannelRateBound(t *testing.T) {
	c := NewThrottleChannel(30 * time.Millisecond)
	assert.True(t, c.WaitFor(0), "first call is immediate")
	start := time.Now()
	assert.True(t, c.WaitFor(time.Second))
	elapsed := time.Since(start)
	assert.GreaterOrEqual(t, elapsed, 25*time.Millisecond)
}

func TestGeneratorChannel(t *testing.T) {
	i := 0
	c := NewGeneratorChannel(func() int {
		i++
		return i
	})
	v, ok := c.Read()
	require.True(t, ok)
	assert.Equal(t, 1, v)
	require.NoError(t, c.Close())
	_, ok = c.Read()
	assert.False(t, ok)
}

func TestQueueChannelFIFO(t *testing.T) {
	c := NewQueueChannel[int]()
	require.True(t, c.Write(1))
	require.True(t, c.Write(2))
	require.True(t, c.Write(3))
	for _, want := range []int{1, 2, 3} {
		v, ok := c.Read()
		require.True(t, ok)
		assert.Equal(t, want, v)
	}
	_, ok := c.Read()
	assert.False(t, ok)
}

func TestQueueChannelWaitForBlocksUntilWrite(t *testing.T) {
	c := NewQueueChannel[int]()
	done := make(chan bool, 1)
	go func() { done <- c.WaitFor(time.Second) }()
	time.Sleep(10 * time.Millisecond)
	c.Write(42)
	assert.True(t, <-done)
}

func TestValueChannelDedup(t *testing.T) {
	c := NewValueChannel[int]()
	require.True(t, c.Write(0), "write equal to zero value is a no-op")
	_, ok := c.Read()
	assert.False(t, ok, "dedup write must not set ready")

	require.True(t, c.Write(5))
	v, ok := c.Read()
	require.True(t, ok)
	assert.Equal(t, 5, v)

	require.True(t, c.Write(5), "repeat write is a no-op")
	_, ok = c.Read()
	assert.False(t, ok)
}

func TestBufferChannelCompaction(t *testing.T) {
	c := NewBufferChannel()
	require.True(t, c.Write([]byte("hello world")))
	buf := make([]byte, 6)
	n, err := c.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, 6, n)
	assert.Equal(t, "hello ", string(buf))

	n, err = c.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, "world", string(buf[:n]))

	require.NoError(t, c.Close())
}

func TestBufferChannelStreamConsumption(t *testing.T) {
	c := NewBufferChannel()
	written := make(chan struct{})
	go func() {
		for i := 0; i < 5; i++ {
			c.Write([]byte{byte('a' + i)})
		}
		close(written)
	}()
	var got []byte
	buf := make([]byte, 1)
	<-written
	for len(got) < 5 {
		require.True(t, c.WaitFor(time.Second))
		n, _ := c.Read(buf)
		got = append(got, buf[:n]...)
	}
	assert.Equal(t, "abcde", string(got))
	require.NoError(t, c.Close())
	assert.True(t, c.IsClosed())
}

func TestReadAllDrainsUntilClose(t *testing.T) {
	c := NewBufferChannel()
	go func() {
		c.Write([]byte("hello, "))
		c.Write([]byte("world"))
		// Close clears any unread bytes (matching the original's
		// destructor-closes-and-discards semantics), so wait for the
		// reader to fully drain before closing.
		for c.Poll() {
			time.Sleep(time.Millisecond)
		}
		require.NoError(t, c.Close())
	}()
	got := ReadAll(c)
	assert.Equal(t, "hello, world", string(got))
}
