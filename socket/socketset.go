package socket

import (
	"sync"
	"time"

	"github.com/joeycumines/go-rscore/channel"
)

// SocketSet multiplexes readiness across several registered sockets,
// yielding the first one observed ready as a channel.Channel via Read.
// Ties (more than one member ready in the same sweep) are broken by
// registration order, deterministically -- not by fairness/rotation.
// Grounded on net.hpp's SocketSet (do_select +1/0/-1 contract): a
// portable scan over each member's own Poll, in registration order.
type SocketSet struct {
	mu       sync.Mutex
	order    []channel.Channel
	byChan   map[channel.Channel]channel.Channel
	open     bool
	pendingQ []channel.Channel
}

// NewSocketSet returns an empty, open SocketSet.
func NewSocketSet() *SocketSet {
	return &SocketSet{byChan: make(map[channel.Channel]channel.Channel), open: true}
}

// Insert registers ch (a *Socket, *TcpClient, *TcpServer, or *UdpClient) for
// multiplexing.
func Insert[T channel.Channel](s *SocketSet, ch T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var c channel.Channel = ch
	if _, ok := s.byChan[c]; ok {
		return
	}
	s.order = append(s.order, c)
	s.byChan[c] = c
}

// Erase removes ch from the set.
func Erase[T channel.Channel](s *SocketSet, ch T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var c channel.Channel = ch
	if _, ok := s.byChan[c]; !ok {
		return
	}
	delete(s.byChan, c)
	for i, o := range s.order {
		if o == c {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

func (s *SocketSet) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = false
	return nil
}

func (s *SocketSet) IsClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.open
}

func (s *SocketSet) IsAsync() bool  { return true }
func (s *SocketSet) IsShared() bool { return false }

// Clear discards any pending ready-channel results (not the registrations
// themselves).
func (s *SocketSet) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pendingQ = nil
}

// Empty reports whether no socket is currently registered.
func (s *SocketSet) Empty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.order) == 0
}

// Size returns the number of currently registered sockets.
func (s *SocketSet) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.order)
}

// Read returns the next ready channel, if one is already pending from a
// prior WaitFor/Poll sweep.
func (s *SocketSet) Read() (channel.Channel, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.pendingQ) == 0 {
		return nil, false
	}
	c := s.pendingQ[0]
	s.pendingQ = s.pendingQ[1:]
	return c, true
}

func (s *SocketSet) Poll() bool { return s.WaitFor(0) }

func (s *SocketSet) WaitUntil(t time.Time) bool { return s.WaitFor(time.Until(t)) }

// WaitFor scans registrations in order, returning true as soon as the
// first one (in registration order) is ready, queuing it for Read.
func (s *SocketSet) WaitFor(d time.Duration) bool {
	s.mu.Lock()
	if !s.open {
		s.mu.Unlock()
		return true
	}
	if len(s.pendingQ) > 0 {
		s.mu.Unlock()
		return true
	}
	order := append([]channel.Channel(nil), s.order...)
	s.mu.Unlock()

	deadline := time.Now().Add(d)
	for {
		for _, c := range order {
			if c.Poll() {
				s.mu.Lock()
				s.pendingQ = append(s.pendingQ, c)
				s.mu.Unlock()
				return true
			}
		}
		if d <= 0 || time.Now().After(deadline) {
			return false
		}
		time.Sleep(time.Millisecond)
	}
}

var _ channel.MessageChannel[channel.Channel] = (*SocketSet)(nil)
