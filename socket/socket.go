// Package socket implements the Socket/TcpClient/TcpServer/UdpClient/
// SocketSet layer on top of net.Conn/net.Listener, grounded on
// original_source/rs-core/net.hpp for the blocking-after-connect and
// readiness contract. On Linux, Socket readiness checks use a raw
// MSG_PEEK recvfrom (see peek_linux.go) grounded on
// eventloop/poller_linux.go's raw-fd idiom; SocketSet multiplexing itself
// is a portable registration-order scan over its members' own Poll.
package socket

import (
	"errors"
	"io"
	"net"
	"syscall"
	"time"

	"github.com/joeycumines/go-rscore/channel"
)

const defaultBufferSize = 16384

// Socket wraps a net.Conn as a StreamChannel. Readiness (Poll/WaitFor) is
// checked without losing data: via MSG_PEEK where a peekFD backend applies,
// otherwise via a one-byte lookahead buffer filled by a deadline-bounded
// peek read -- the same technique Go's own net/http
// server uses internally to detect an idle connection has data or has
// closed, without actually consuming any application bytes.
type Socket struct {
	conn    net.Conn
	bufSize int

	peeked   byte
	hasPeek  bool
	peekErr  error
	closed   bool
}

// NewSocket wraps an already-established net.Conn.
func NewSocket(conn net.Conn) *Socket {
	return &Socket{conn: conn}
}

func (s *Socket) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.conn.Close()
}

func (s *Socket) IsClosed() bool { return s.closed }
func (s *Socket) IsAsync() bool  { return true }
func (s *Socket) IsShared() bool { return false }

func (s *Socket) BufferSize() int {
	if s.bufSize <= 0 {
		return defaultBufferSize
	}
	return s.bufSize
}

func (s *Socket) SetBufferSize(n int) {
	if n <= 0 {
		n = defaultBufferSize
	}
	s.bufSize = n
}

// Native exposes the underlying net.Conn for operations (SetNagle,
// LocalAddr, etc.) this abstraction doesn't cover directly.
func (s *Socket) Native() net.Conn { return s.conn }

// Local returns the local endpoint.
func (s *Socket) Local() Address {
	if a, ok := s.conn.LocalAddr().(*net.TCPAddr); ok {
		return AddressFromTCP(a)
	}
	return Address{}
}

// Remote returns the peer endpoint.
func (s *Socket) Remote() Address {
	if a, ok := s.conn.RemoteAddr().(*net.TCPAddr); ok {
		return AddressFromTCP(a)
	}
	return Address{}
}

// peek reports, without blocking past d, whether a byte (or EOF/error) is
// waiting. On platforms with a registered peekFD backend (Linux, via
// MSG_PEEK) each attempt costs a single syscall, never arms a read
// deadline, and leaves the byte in the receive buffer for Read; elsewhere
// it falls back to the deadline-bounded single-byte Read net/http's own
// connection reader uses for the same "is there unread data" question,
// which moves the byte into the one-byte lookahead.
func (s *Socket) peek(d time.Duration) bool {
	if s.hasPeek || s.peekErr != nil {
		return true
	}
	if sc, isSC := s.conn.(syscall.Conn); isSC {
		if ready, handled := s.peekViaFD(sc, d); handled {
			return ready
		}
	}
	return s.peekViaDeadline(d)
}

// peekViaFD uses the platform peekFD backend, polling it until d elapses.
// handled is false if this platform/conn has no such backend, signaling
// the caller to fall back to peekViaDeadline.
func (s *Socket) peekViaFD(sc syscall.Conn, d time.Duration) (ready, handled bool) {
	deadline := time.Now().Add(d)
	for {
		_, hasByte, eof, ok := peekFD(sc)
		if !ok {
			return false, false
		}
		switch {
		case hasByte:
			// MSG_PEEK did not consume the byte, so it is not copied into
			// the lookahead: the next Read receives it from the socket.
			return true, true
		case eof:
			s.peekErr = io.EOF
			return true, true
		}
		if d <= 0 || time.Now().After(deadline) {
			return false, true
		}
		time.Sleep(100 * time.Microsecond)
	}
}

// peekViaDeadline is the portable fallback: arm a read deadline and attempt
// a single-byte Read, the same "is there unread data" trick net/http's own
// connection reader uses to detect an idle connection without consuming
// application bytes.
func (s *Socket) peekViaDeadline(d time.Duration) bool {
	// A deadline that has already passed makes Read time out without
	// looking at the connection, so a poll gets a 1ms window instead.
	if d < time.Millisecond {
		d = time.Millisecond
	}
	_ = s.conn.SetReadDeadline(time.Now().Add(d))
	defer s.conn.SetReadDeadline(time.Time{})
	var b [1]byte
	n, err := s.conn.Read(b[:])
	if n > 0 {
		s.peeked = b[0]
		s.hasPeek = true
		return true
	}
	if err != nil {
		var ne net.Error
		if errors.As(err, &ne) && ne.Timeout() {
			return false
		}
		s.peekErr = err
		return true
	}
	return false
}

func (s *Socket) Poll() bool { return s.WaitFor(0) }

func (s *Socket) WaitUntil(t time.Time) bool { return s.WaitFor(time.Until(t)) }

func (s *Socket) WaitFor(d time.Duration) bool {
	if s.closed {
		return true
	}
	return s.peek(d)
}

// Read copies buffered/available bytes into dst. Returns io.EOF once the
// peer has closed and nothing is left.
func (s *Socket) Read(dst []byte) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	n := 0
	if s.hasPeek {
		dst[0] = s.peeked
		s.hasPeek = false
		n = 1
	}
	if s.peekErr != nil {
		if n > 0 {
			return n, nil
		}
		err := s.peekErr
		s.peekErr = nil
		if errors.Is(err, io.EOF) {
			s.closed = true
		}
		return 0, err
	}
	if n == len(dst) {
		return n, nil
	}
	_ = s.conn.SetReadDeadline(time.Now().Add(time.Millisecond))
	defer s.conn.SetReadDeadline(time.Time{})
	m, err := s.conn.Read(dst[n:])
	n += m
	if err != nil {
		var ne net.Error
		if errors.As(err, &ne) && ne.Timeout() {
			return n, nil
		}
		if errors.Is(err, io.EOF) {
			s.closed = true
		}
		return n, err
	}
	return n, nil
}

// Write writes the full contents of p, retrying on a transient
// would-block condition with a short sleep, matching the original
// Socket's write-retry-on-EWOULDBLOCK loop.
func (s *Socket) Write(p []byte) (int, error) {
	total := 0
	for total < len(p) {
		n, err := s.conn.Write(p[total:])
		total += n
		if err != nil {
			var ne net.Error
			if errors.As(err, &ne) && ne.Timeout() {
				time.Sleep(10 * time.Microsecond)
				continue
			}
			return total, err
		}
	}
	return total, nil
}

var _ channel.StreamChannel = (*Socket)(nil)
