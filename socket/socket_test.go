package socket

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joeycumines/go-rscore/channel"
)

func TestSocketReadWritePipe(t *testing.T) {
	a, b := net.Pipe()
	sa := NewSocket(a)
	sb := NewSocket(b)
	defer sa.Close()
	defer sb.Close()

	go func() {
		_, _ = sb.Write([]byte("hello"))
	}()

	require.Eventually(t, func() bool { return sa.WaitFor(50 * time.Millisecond) }, time.Second, 5*time.Millisecond)
	buf := make([]byte, 5)
	n, err := sa.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(buf[:n]))
}

func TestSocketPollDoesNotConsume(t *testing.T) {
	a, b := net.Pipe()
	sa := NewSocket(a)
	defer sa.Close()
	defer b.Close()

	go func() { _, _ = b.Write([]byte("x")) }()
	require.Eventually(t, func() bool { return sa.Poll() }, time.Second, 5*time.Millisecond)
	assert.True(t, sa.Poll(), "second poll still observes the same pending byte")

	buf := make([]byte, 1)
	n, err := sa.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "x", string(buf[:n]))
}

func TestTcpServerAcceptAndClient(t *testing.T) {
	srv, err := ListenTCP(Address{IP: net.ParseIP("127.0.0.1"), Port: 0})
	require.NoError(t, err)
	defer srv.Close()

	local := srv.Local()
	go func() {
		cli, err := DialTCP(local)
		require.NoError(t, err)
		defer cli.Close()
		_, _ = cli.Write([]byte("ping"))
	}()

	require.Eventually(t, func() bool { return srv.Poll() }, 2*time.Second, 10*time.Millisecond)
	conn, ok := srv.Read()
	require.True(t, ok)
	defer conn.Close()

	require.Eventually(t, func() bool { return conn.WaitFor(50 * time.Millisecond) }, time.Second, 10*time.Millisecond)
	buf := make([]byte, 4)
	n, err := conn.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "ping", string(buf[:n]))
}

func TestTcpServerWaitForDoesNotReAcceptPending(t *testing.T) {
	srv, err := ListenTCP(Address{IP: net.ParseIP("127.0.0.1"), Port: 0})
	require.NoError(t, err)
	defer srv.Close()

	local := srv.Local()
	go func() {
		cli, err := DialTCP(local)
		require.NoError(t, err)
		defer cli.Close()
		_, _ = cli.Write([]byte("ping"))
	}()

	require.Eventually(t, func() bool { return srv.Poll() }, 2*time.Second, 10*time.Millisecond)
	// A second Poll, with no intervening Read, must see the already-accepted
	// connection still pending rather than attempting (and timing out on) a
	// fresh OS-level accept.
	assert.True(t, srv.Poll(), "pending connection must still report ready")

	conn, ok := srv.Read()
	require.True(t, ok)
	defer conn.Close()
}

func TestSocketSetRegistrationOrderTieBreak(t *testing.T) {
	s := NewSocketSet()
	a1, a2 := net.Pipe()
	b1, b2 := net.Pipe()
	sa := NewSocket(a1)
	sb := NewSocket(b1)
	defer a2.Close()
	defer b2.Close()
	defer sa.Close()
	defer sb.Close()

	Insert[*Socket](s, sb)
	Insert[*Socket](s, sa)

	go func() { _, _ = a2.Write([]byte("A")) }()
	go func() { _, _ = b2.Write([]byte("B")) }()

	require.Eventually(t, func() bool { return s.WaitFor(20 * time.Millisecond) }, 2*time.Second, 5*time.Millisecond)
	ready, ok := s.Read()
	require.True(t, ok)
	assert.Equal(t, channel.Channel(sb), ready, "registration order: sb was inserted first")
}
