package socket

import (
	"net"
	"time"

	"github.com/joeycumines/go-rscore/channel"
)

// TcpClient is a Socket over a TCP connection, with Nagle's algorithm
// disabled by default (original_source/rs-core/net.hpp's TcpClient, per
// spec.md §4.5).
type TcpClient struct {
	*Socket
	tcp *net.TCPConn
}

// DialTCP connects to remote and returns a TcpClient with Nagle disabled.
func DialTCP(remote Address) (*TcpClient, error) {
	conn, err := net.DialTCP("tcp", nil, remote.TCPAddr())
	if err != nil {
		return nil, err
	}
	c := &TcpClient{Socket: NewSocket(conn), tcp: conn}
	c.SetNagle(false)
	return c, nil
}

// NewTcpClient wraps an already-accepted *net.TCPConn (e.g. from
// TcpServer.Read), disabling Nagle by default.
func NewTcpClient(conn *net.TCPConn) *TcpClient {
	c := &TcpClient{Socket: NewSocket(conn), tcp: conn}
	c.SetNagle(false)
	return c
}

// SetNagle toggles Nagle's algorithm (TCP_NODELAY is the inverse: enabled
// means Nagle is on). flag=true enables Nagle (coalescing); flag=false
// (the default) sends immediately.
func (c *TcpClient) SetNagle(flag bool) error {
	return c.tcp.SetNoDelay(!flag)
}

// TcpServer yields accepted connections as a MessageChannel[*TcpClient].
// Grounded on net.hpp's TcpServer (backlog baked into construction, one
// accept per successful Read).
type TcpServer struct {
	ln      *net.TCPListener
	closed  bool
	pending []*net.TCPConn
}

// ListenTCP starts listening on local with the standard OS backlog
// (net.ListenTCP doesn't expose an explicit backlog knob; the original's
// backlog=10 default is the OS's concern here, same as every other
// idiomatic Go TCP server).
func ListenTCP(local Address) (*TcpServer, error) {
	ln, err := net.ListenTCP("tcp", local.TCPAddr())
	if err != nil {
		return nil, err
	}
	return &TcpServer{ln: ln}, nil
}

func (s *TcpServer) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.ln.Close()
}

func (s *TcpServer) IsClosed() bool { return s.closed }
func (s *TcpServer) IsAsync() bool  { return true }
func (s *TcpServer) IsShared() bool { return false }

// Local returns the listening endpoint.
func (s *TcpServer) Local() Address {
	return AddressFromTCP(s.ln.Addr().(*net.TCPAddr))
}

func (s *TcpServer) Poll() bool { return s.WaitFor(0) }

func (s *TcpServer) WaitUntil(t time.Time) bool { return s.WaitFor(time.Until(t)) }

func (s *TcpServer) WaitFor(d time.Duration) bool {
	if s.closed {
		return true
	}
	if len(s.pending) > 0 {
		return true
	}
	// A deadline that has already passed makes Accept time out without
	// looking at the listener, so a poll gets a 1ms window instead.
	if d < time.Millisecond {
		d = time.Millisecond
	}
	_ = s.ln.SetDeadline(time.Now().Add(d))
	conn, err := s.ln.AcceptTCP()
	if err != nil {
		return false
	}
	s.pending = append(s.pending, conn)
	return true
}

// Read accepts one pending connection (one previously observed ready by
// WaitFor/Poll), matching TcpServer::read's do-the-accept-in-read contract.
func (s *TcpServer) Read() (*TcpClient, bool) {
	if len(s.pending) == 0 {
		if !s.WaitFor(0) {
			return nil, false
		}
	}
	if len(s.pending) == 0 {
		return nil, false
	}
	conn := s.pending[0]
	s.pending = s.pending[1:]
	return NewTcpClient(conn), true
}

var _ channel.MessageChannel[*TcpClient] = (*TcpServer)(nil)
